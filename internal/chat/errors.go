package chat

import "errors"

var (
	ErrMissingOwner = errors.New("owner_id is required")
	ErrMissingQuery = errors.New("user_query is required")
)

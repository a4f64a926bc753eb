package chat

// ConverseInput is one inbound user message.
type ConverseInput struct {
	OwnerID   string
	UserQuery string

	// SessionID ties follow-up turns together. Empty means a new
	// session; the use case mints an id and returns it.
	SessionID string
}

// ConverseOutput is the assistant's reply.
type ConverseOutput struct {
	Response  string
	SessionID string
}

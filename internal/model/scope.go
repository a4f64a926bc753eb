package model

// OwnerField is the document field every collection is scoped by.
const OwnerField = "ownerId"

// Scope identifies the tenant and conversation a request belongs to.
type Scope struct {
	OwnerID   string
	SessionID string
}

package models

// Caller is the identity decoded from a valid access token.
type Caller struct {
	UserID   uint
	RoleID   uint
	Username string
}

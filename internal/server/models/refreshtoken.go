package models

import "time"

// RefreshToken is the server-side record backing an opaque refresh token.
// Tokens are single-use: they are deleted on logout and replaced on every
// refresh. Lookups treat expired rows as absent.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

package models

import "time"

// PasswordResetToken is a single-use, time-limited credential for the
// forgot/reset password flow. Used is flipped exactly once; a used or
// expired token never resets a password again.
type PasswordResetToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Package common defines shared sentinel errors used across the service,
// repository, and HTTP layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration / user management conflicts.
	ErrEmailAlreadyExists = errors.New("user with this email already exists")

	// Auth errors (invalid, expired, or malformed access token — callers
	// cannot tell these apart).
	ErrInvalidToken = errors.New("invalid token")

	// Password reset lifecycle errors.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")

	// Change-password flow: presented current password does not match.
	ErrPasswordMismatch = errors.New("current password is incorrect")
)

// Package resettokens declares the repository contract for single-use
// password reset tokens.
package resettokens

import (
	"context"

	"github.com/dsavelev/foliotrack/internal/server/models"
)

// Repository defines persistence operations on password reset tokens.
type Repository interface {
	// Create stores a new reset token.
	Create(ctx context.Context, token *models.PasswordResetToken) error

	// Find returns the row matching the token string exactly, used or not,
	// or common.ErrorNotFound. Expiry and used-flag checks are the caller's
	// job so the service layer can fold all failures into one signal.
	Find(ctx context.Context, token string) (*models.PasswordResetToken, error)

	// MarkUsed flips the used flag on the row with the given id.
	MarkUsed(ctx context.Context, id string) error
}

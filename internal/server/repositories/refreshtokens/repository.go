// Package refreshtokens declares the repository contract for opaque refresh
// tokens. Expired rows are treated as absent: Find never returns them, so
// callers cannot distinguish an expired token from one that never existed.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dsavelev/foliotrack/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking
// refresh tokens.
type Repository interface {
	// Create stores a new refresh token for userID with an expiry of
	// now+validity.
	Create(ctx context.Context, userID, token string, validity time.Duration) error

	// Find looks up an unexpired refresh token by its opaque string and
	// returns its metadata, or common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a refresh token. Deleting an absent token is not an
	// error.
	Delete(ctx context.Context, token string) error

	// DeleteAllForUser revokes every refresh token owned by userID.
	DeleteAllForUser(ctx context.Context, userID string) error
}

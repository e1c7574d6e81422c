// Package investments declares the repository contract for portfolio
// positions. All reads exclude soft-deleted rows.
package investments

import (
	"context"

	"github.com/dsavelev/foliotrack/internal/server/models"
)

// Filter narrows List/Count results. Empty strings are ignored.
type Filter struct {
	Page      int
	Limit     int
	Search    string
	Type      string
	Status    string
	SortBy    string
	SortOrder string
}

// Repository defines persistence operations on investments.
type Repository interface {
	// Create inserts a new investment.
	Create(ctx context.Context, inv *models.Investment) (*models.Investment, error)

	// GetByIDAndUserID returns the non-deleted investment owned by userID.
	// A row owned by someone else and a missing row look identical:
	// common.ErrorNotFound.
	GetByIDAndUserID(ctx context.Context, id, userID string) (*models.Investment, error)

	// Update persists all mutable fields.
	Update(ctx context.Context, inv *models.Investment) (*models.Investment, error)

	// SoftDelete marks the investment deleted.
	SoftDelete(ctx context.Context, id string) error

	// ListActiveForUser returns every active, non-deleted investment owned
	// by userID. This is the report pipeline's only input for positions.
	ListActiveForUser(ctx context.Context, userID string) ([]*models.Investment, error)

	// List returns a page of the user's investments matching the filter.
	List(ctx context.Context, userID string, f Filter) ([]*models.Investment, error)

	// Count returns the number of the user's investments matching the filter.
	Count(ctx context.Context, userID string, f Filter) (int, error)
}

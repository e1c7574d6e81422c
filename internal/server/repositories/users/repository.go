// Package users declares the repository contract for persisted user records.
// All reads exclude soft-deleted rows.
package users

import (
	"context"

	"github.com/dsavelev/foliotrack/internal/server/models"
)

// Filter narrows List/Count results. Nil members are ignored.
type Filter struct {
	Page     int
	Limit    int
	Search   string
	Role     *string
	IsActive *bool
}

// Repository defines persistence operations on user records.
type Repository interface {
	// Create inserts a new user and returns it with timestamps populated.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByID returns the non-deleted user with the given id, or
	// common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail returns the non-deleted user with the given email, or
	// common.ErrorNotFound. Emails are matched case-sensitively as stored.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update persists profile and status fields (not the password hash).
	Update(ctx context.Context, user *models.User) (*models.User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// SetActive flips the active flag.
	SetActive(ctx context.Context, id string, active bool) error

	// SoftDelete marks the user deleted; the row is retained physically.
	SoftDelete(ctx context.Context, id string) error

	// List returns a page of users matching the filter, newest first.
	List(ctx context.Context, f Filter) ([]*models.User, error)

	// Count returns the number of users matching the filter.
	Count(ctx context.Context, f Filter) (int, error)
}

// Package activitylogs declares the repository contract for the audit trail.
package activitylogs

import (
	"context"
	"time"

	"github.com/dsavelev/foliotrack/internal/server/models"
)

// Filter narrows List/Count results. Nil members are ignored.
type Filter struct {
	Page       int
	Limit      int
	UserID     *string
	Action     *string
	EntityType *string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// Repository defines persistence operations on activity log entries.
type Repository interface {
	// Create appends an audit entry.
	Create(ctx context.Context, log *models.ActivityLog) error

	// List returns a page of entries matching the filter, newest first,
	// with the acting user's email joined in.
	List(ctx context.Context, f Filter) ([]*models.ActivityLog, error)

	// Count returns the number of entries matching the filter.
	Count(ctx context.Context, f Filter) (int, error)
}

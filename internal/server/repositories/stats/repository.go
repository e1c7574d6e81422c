// Package stats declares the read-only repository behind the admin
// dashboard's system-wide counters.
package stats

import (
	"context"

	"github.com/dsavelev/foliotrack/internal/server/models"
)

// Repository exposes system-wide aggregate counters.
type Repository interface {
	// SystemStats returns headline counts over all non-deleted rows.
	SystemStats(ctx context.Context) (*models.SystemStats, error)
}

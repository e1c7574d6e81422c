package services

import (
	"context"
	"database/sql"

	"github.com/dsavelev/foliotrack/internal/logging"
	"github.com/dsavelev/foliotrack/internal/server/models"
	"github.com/dsavelev/foliotrack/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ActivityLogService appends audit-trail entries. Logging is best-effort:
// a failed write is reported to the logger and never fails the caller's
// operation.
type ActivityLogService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	logger logging.Logger
}

func NewActivityLogService(db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger) *ActivityLogService {
	return &ActivityLogService{db: db, rm: rm, logger: logger}
}

// Log records an action on an entity. userID may be nil for anonymous
// actions; empty details are stored as NULL.
func (s *ActivityLogService) Log(ctx context.Context, userID *string, action, entityType, entityID, details string) {
	entry := &models.ActivityLog{
		ID:         uuid.NewString(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}
	if details != "" {
		entry.Details = &details
	}

	if err := s.rm.ActivityLogs(s.db).Create(ctx, entry); err != nil {
		s.logger.Warn(ctx, "activity log write failed", "action", action, "entity_type", entityType, "error", err)
	}
}

// List returns a page of audit entries with the matching total count.
func (s *ActivityLogService) List(ctx context.Context, f ActivityLogFilter) ([]*models.ActivityLog, int, error) {
	repo := s.rm.ActivityLogs(s.db)

	rf := f.normalize()
	logs, err := repo.List(ctx, rf)
	if err != nil {
		return nil, 0, err
	}
	total, err := repo.Count(ctx, rf)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

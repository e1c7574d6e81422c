package stats

import (
	"context"
	"fmt"

	"github.com/dsavelev/foliotrack/internal/dbx"
	"github.com/dsavelev/foliotrack/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SystemStats(ctx context.Context) (*models.SystemStats, error) {
	query := `SELECT
	            (SELECT COUNT(*) FROM users WHERE deleted_at IS NULL),
	            (SELECT COUNT(*) FROM users WHERE deleted_at IS NULL AND is_active),
	            (SELECT COUNT(*) FROM investments WHERE deleted_at IS NULL),
	            (SELECT COALESCE(SUM(current_value), 0) FROM investments WHERE deleted_at IS NULL),
	            (SELECT COUNT(*) FROM transactions WHERE status = 'completed')`

	s := &models.SystemStats{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.TotalUsers, &s.ActiveUsers, &s.TotalInvestments,
		&s.TotalInvestmentValue, &s.CompletedTransactions)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

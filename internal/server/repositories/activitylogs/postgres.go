package activitylogs

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

func (r *PostgresRepository) Create(ctx context.Context, log *models.ActivityLog) error {
	query := `INSERT INTO activity_logs (id, user_id, action, entity_type, entity_id, details, ip_address, user_agent)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		log.ID, log.UserID, log.Action, log.EntityType, log.EntityID,
		log.Details, log.IPAddress, log.UserAgent)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.ActivityLog, error) {
	query := `SELECT al.id, al.user_id, al.action, al.entity_type, al.entity_id,
	                 al.details, al.ip_address, al.user_agent, al.created_at,
	                 u.email AS user_email
	          FROM activity_logs al
	          LEFT JOIN users u ON al.user_id = u.id
	          WHERE ($1::uuid IS NULL OR al.user_id = $1)
	            AND ($2::text IS NULL OR al.action = $2)
	            AND ($3::text IS NULL OR al.entity_type = $3)
	            AND ($4::timestamptz IS NULL OR al.created_at >= $4)
	            AND ($5::timestamptz IS NULL OR al.created_at <= $5)
	          ORDER BY al.created_at DESC
	          OFFSET $6 LIMIT $7`

	page := f.Page
	if page < 1 {
		page = 1
	}

	rows, err := r.db.QueryContext(ctx, query,
		f.UserID, f.Action, f.EntityType, f.DateFrom, f.DateTo,
		(page-1)*f.Limit, f.Limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var logs []*models.ActivityLog
	for rows.Next() {
		l := &models.ActivityLog{}
		err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.EntityType, &l.EntityID,
			&l.Details, &l.IPAddress, &l.UserAgent, &l.CreatedAt, &l.UserEmail)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return logs, nil
}

func (r *PostgresRepository) Count(ctx context.Context, f Filter) (int, error) {
	query := `SELECT COUNT(*) FROM activity_logs
	          WHERE ($1::uuid IS NULL OR user_id = $1)
	            AND ($2::text IS NULL OR action = $2)
	            AND ($3::text IS NULL OR entity_type = $3)
	            AND ($4::timestamptz IS NULL OR created_at >= $4)
	            AND ($5::timestamptz IS NULL OR created_at <= $5)`

	var count int
	err := r.db.QueryRowContext(ctx, query,
		f.UserID, f.Action, f.EntityType, f.DateFrom, f.DateTo).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

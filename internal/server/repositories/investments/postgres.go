package investments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dsavelev/foliotrack/internal/common"
	"github.com/dsavelev/foliotrack/internal/dbx"
	"github.com/dsavelev/foliotrack/internal/server/models"
)

const investmentColumns = `id, user_id, name, type, amount, current_value, purchase_date, status, description, symbol, created_at, updated_at, deleted_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanInvestment(row interface{ Scan(...any) error }) (*models.Investment, error) {
	inv := &models.Investment{}
	err := row.Scan(&inv.ID, &inv.UserID, &inv.Name, &inv.Type, &inv.Amount,
		&inv.CurrentValue, &inv.PurchaseDate, &inv.Status, &inv.Description,
		&inv.Symbol, &inv.CreatedAt, &inv.UpdatedAt, &inv.DeletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return inv, nil
}

func (r *PostgresRepository) Create(ctx context.Context, inv *models.Investment) (*models.Investment, error) {
	query := `INSERT INTO investments (id, user_id, name, type, amount, current_value, purchase_date, status, description, symbol)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING ` + investmentColumns

	row := r.db.QueryRowContext(ctx, query,
		inv.ID, inv.UserID, inv.Name, inv.Type, inv.Amount, inv.CurrentValue,
		inv.PurchaseDate, inv.Status, inv.Description, inv.Symbol)
	return scanInvestment(row)
}

func (r *PostgresRepository) GetByIDAndUserID(ctx context.Context, id, userID string) (*models.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments
	          WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`

	return scanInvestment(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *PostgresRepository) Update(ctx context.Context, inv *models.Investment) (*models.Investment, error) {
	query := `UPDATE investments
	          SET name = $2, type = $3, amount = $4, current_value = $5,
	              purchase_date = $6, status = $7, description = $8, symbol = $9,
	              updated_at = now()
	          WHERE id = $1 AND deleted_at IS NULL
	          RETURNING ` + investmentColumns

	row := r.db.QueryRowContext(ctx, query,
		inv.ID, inv.Name, inv.Type, inv.Amount, inv.CurrentValue,
		inv.PurchaseDate, inv.Status, inv.Description, inv.Symbol)
	return scanInvestment(row)
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE investments SET deleted_at = now(), updated_at = now()
	          WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) ListActiveForUser(ctx context.Context, userID string) ([]*models.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments
	          WHERE user_id = $1 AND status = 'active' AND deleted_at IS NULL
	          ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return collectInvestments(rows)
}

func (r *PostgresRepository) List(ctx context.Context, userID string, f Filter) ([]*models.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments
	          WHERE user_id = $1 AND deleted_at IS NULL
	            AND ($2::text IS NULL OR name ILIKE $2 OR symbol ILIKE $2)
	            AND ($3::text IS NULL OR type = $3)
	            AND ($4::text IS NULL OR status = $4)
	          ORDER BY ` + orderByClause(f.SortBy, f.SortOrder) + `
	          OFFSET $5 LIMIT $6`

	page := f.Page
	if page < 1 {
		page = 1
	}

	rows, err := r.db.QueryContext(ctx, query,
		userID, likeOrNil(f.Search), textOrNil(f.Type), textOrNil(f.Status),
		(page-1)*f.Limit, f.Limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return collectInvestments(rows)
}

func (r *PostgresRepository) Count(ctx context.Context, userID string, f Filter) (int, error) {
	query := `SELECT COUNT(*) FROM investments
	          WHERE user_id = $1 AND deleted_at IS NULL
	            AND ($2::text IS NULL OR name ILIKE $2 OR symbol ILIKE $2)
	            AND ($3::text IS NULL OR type = $3)
	            AND ($4::text IS NULL OR status = $4)`

	var count int
	err := r.db.QueryRowContext(ctx, query,
		userID, likeOrNil(f.Search), textOrNil(f.Type), textOrNil(f.Status)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func collectInvestments(rows *sql.Rows) ([]*models.Investment, error) {
	var invs []*models.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return invs, nil
}

// orderByClause whitelists sortable columns; anything unknown falls back to
// created_at. Never interpolates caller input directly.
func orderByClause(sortBy, sortOrder string) string {
	column := "created_at"
	switch strings.ToLower(sortBy) {
	case "name":
		column = "name"
	case "type":
		column = "type"
	case "amount":
		column = "amount"
	case "currentvalue":
		column = "current_value"
	case "purchasedate":
		column = "purchase_date"
	case "gainloss":
		column = "(current_value - amount)"
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}

func likeOrNil(search string) *string {
	if search == "" {
		return nil
	}
	p := "%" + search + "%"
	return &p
}

func textOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

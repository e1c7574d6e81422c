package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dsavelev/foliotrack/internal/common"
	"github.com/dsavelev/foliotrack/internal/dbx"
	"github.com/dsavelev/foliotrack/internal/server/models"
)

const transactionColumns = `t.id, t.investment_id, t.type, t.quantity, t.price, t.amount, COALESCE(t.fees, 0), t.date, t.status, t.notes, t.created_at, t.updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanTransaction(row interface{ Scan(...any) error }) (*models.Transaction, error) {
	tx := &models.Transaction{}
	err := row.Scan(&tx.ID, &tx.InvestmentID, &tx.Type, &tx.Quantity, &tx.Price,
		&tx.Amount, &tx.Fees, &tx.Date, &tx.Status, &tx.Notes, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tx, nil
}

func (r *PostgresRepository) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	query := `INSERT INTO transactions AS t (id, investment_id, type, quantity, price, amount, fees, date, status, notes)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING ` + transactionColumns

	row := r.db.QueryRowContext(ctx, query,
		tx.ID, tx.InvestmentID, tx.Type, tx.Quantity, tx.Price, tx.Amount,
		tx.Fees, tx.Date, tx.Status, tx.Notes)
	return scanTransaction(row)
}

func (r *PostgresRepository) GetByIDForUser(ctx context.Context, id, userID string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions t
	          JOIN investments i ON t.investment_id = i.id
	          WHERE t.id = $1 AND i.user_id = $2 AND i.deleted_at IS NULL`

	return scanTransaction(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *PostgresRepository) Update(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	query := `UPDATE transactions AS t
	          SET type = $2, quantity = $3, price = $4, amount = $5, fees = $6,
	              date = $7, status = $8, notes = $9, updated_at = now()
	          WHERE id = $1
	          RETURNING ` + transactionColumns

	row := r.db.QueryRowContext(ctx, query,
		tx.ID, tx.Type, tx.Quantity, tx.Price, tx.Amount, tx.Fees,
		tx.Date, tx.Status, tx.Notes)
	return scanTransaction(row)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM transactions WHERE id = $1`

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

func (r *PostgresRepository) ListForUserInDateRange(ctx context.Context, userID string, from, to time.Time) ([]models.CashFlow, error) {
	query := `SELECT t.date, t.amount FROM transactions t
	          JOIN investments i ON t.investment_id = i.id
	          WHERE i.user_id = $1 AND i.deleted_at IS NULL
	            AND t.date >= $2 AND t.date < $3
	          ORDER BY t.date`

	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var flows []models.CashFlow
	for rows.Next() {
		var f models.CashFlow
		if err := rows.Scan(&f.Date, &f.Amount); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		flows = append(flows, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return flows, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, f Filter) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions t
	          JOIN investments i ON t.investment_id = i.id
	          WHERE i.user_id = $1 AND i.deleted_at IS NULL
	            AND ($2::text IS NULL OR t.type = $2)
	            AND ($3::text IS NULL OR t.status = $3)
	            AND ($4::uuid IS NULL OR t.investment_id = $4)
	            AND ($5::timestamptz IS NULL OR t.date >= $5)
	            AND ($6::timestamptz IS NULL OR t.date <= $6)
	          ORDER BY t.date DESC
	          OFFSET $7 LIMIT $8`

	page := f.Page
	if page < 1 {
		page = 1
	}

	rows, err := r.db.QueryContext(ctx, query,
		userID, textOrNil(f.Type), textOrNil(f.Status), textOrNil(f.InvestmentID),
		f.DateFrom, f.DateTo, (page-1)*f.Limit, f.Limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (r *PostgresRepository) Count(ctx context.Context, userID string, f Filter) (int, error) {
	query := `SELECT COUNT(*) FROM transactions t
	          JOIN investments i ON t.investment_id = i.id
	          WHERE i.user_id = $1 AND i.deleted_at IS NULL
	            AND ($2::text IS NULL OR t.type = $2)
	            AND ($3::text IS NULL OR t.status = $3)
	            AND ($4::uuid IS NULL OR t.investment_id = $4)
	            AND ($5::timestamptz IS NULL OR t.date >= $5)
	            AND ($6::timestamptz IS NULL OR t.date <= $6)`

	var count int
	err := r.db.QueryRowContext(ctx, query,
		userID, textOrNil(f.Type), textOrNil(f.Status), textOrNil(f.InvestmentID),
		f.DateFrom, f.DateTo).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) ListByInvestment(ctx context.Context, investmentID, userID string) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions t
	          JOIN investments i ON t.investment_id = i.id
	          WHERE t.investment_id = $1 AND i.user_id = $2 AND i.deleted_at IS NULL
	          ORDER BY t.date DESC`

	rows, err := r.db.QueryContext(ctx, query, investmentID, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func collectTransactions(rows *sql.Rows) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return txs, nil
}

func textOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dsavelev/foliotrack/internal/dbx"
	"github.com/dsavelev/foliotrack/internal/server/models"
	"github.com/dsavelev/foliotrack/internal/server/repositories/repomanager"
	"github.com/dsavelev/foliotrack/internal/server/repositories/transactions"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionInput carries the mutable fields of a transaction. Amount is
// derived, never accepted from the caller.
type TransactionInput struct {
	InvestmentID string
	Type         string
	Quantity     decimal.Decimal
	Price        decimal.Decimal
	Fees         decimal.Decimal
	Date         time.Time
	Status       string
	Notes        *string
}

// TransactionFilter is the user-facing listing filter.
type TransactionFilter struct {
	Page         int
	Limit        int
	Type         string
	Status       string
	InvestmentID string
	DateFrom     *time.Time
	DateTo       *time.Time
}

func (f TransactionFilter) normalize() transactions.Filter {
	page, limit := clampPage(f.Page, f.Limit)
	return transactions.Filter{
		Page:         page,
		Limit:        limit,
		Type:         f.Type,
		Status:       f.Status,
		InvestmentID: f.InvestmentID,
		DateFrom:     f.DateFrom,
		DateTo:       f.DateTo,
	}
}

// TransactionService owns the transaction lifecycle. A create both inserts
// the row and adjusts the parent investment's current value, in one database
// transaction so the two can never diverge.
type TransactionService struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	activity *ActivityLogService
}

func NewTransactionService(db *sql.DB, rm repomanager.RepositoryManager, activity *ActivityLogService) *TransactionService {
	return &TransactionService{db: db, rm: rm, activity: activity}
}

// Create inserts a transaction against an owned investment. The total is
// always quantity×price+fees; buys add the total to the investment's current
// value, sells subtract it, dividends leave it untouched.
func (s *TransactionService) Create(ctx context.Context, userID string, in TransactionInput) (*models.Transaction, error) {
	status := in.Status
	if status == "" {
		status = models.TransactionStatusCompleted
	}

	var created *models.Transaction
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		inv, err := s.rm.Investments(tx).GetByIDAndUserID(ctx, in.InvestmentID, userID)
		if err != nil {
			return err
		}

		amount := in.Quantity.Mul(in.Price).Add(in.Fees)
		created, err = s.rm.Transactions(tx).Create(ctx, &models.Transaction{
			ID:           uuid.NewString(),
			InvestmentID: inv.ID,
			Type:         in.Type,
			Quantity:     in.Quantity,
			Price:        in.Price,
			Amount:       amount,
			Fees:         in.Fees,
			Date:         in.Date,
			Status:       status,
			Notes:        in.Notes,
		})
		if err != nil {
			return err
		}

		switch in.Type {
		case models.TransactionTypeBuy:
			inv.CurrentValue = inv.CurrentValue.Add(amount)
		case models.TransactionTypeSell:
			inv.CurrentValue = inv.CurrentValue.Sub(amount)
		default:
			return nil
		}
		_, err = s.rm.Investments(tx).Update(ctx, inv)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, &userID, "create", "transaction", created.ID, "Transaction recorded: "+created.Type)
	return created, nil
}

func (s *TransactionService) Get(ctx context.Context, id, userID string) (*models.Transaction, error) {
	return s.rm.Transactions(s.db).GetByIDForUser(ctx, id, userID)
}

// Update patches a transaction's own fields and recomputes the total. It
// does not re-adjust the parent investment's value; only creates move it.
func (s *TransactionService) Update(ctx context.Context, id, userID string, in TransactionInput) (*models.Transaction, error) {
	repo := s.rm.Transactions(s.db)

	txn, err := repo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	txn.Type = in.Type
	txn.Quantity = in.Quantity
	txn.Price = in.Price
	txn.Fees = in.Fees
	txn.Amount = in.Quantity.Mul(in.Price).Add(in.Fees)
	txn.Date = in.Date
	if in.Status != "" {
		txn.Status = in.Status
	}
	txn.Notes = in.Notes

	updated, err := repo.Update(ctx, txn)
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, &userID, "update", "transaction", updated.ID, "Transaction updated")
	return updated, nil
}

func (s *TransactionService) Delete(ctx context.Context, id, userID string) error {
	repo := s.rm.Transactions(s.db)

	txn, err := repo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, txn.ID); err != nil {
		return err
	}

	s.activity.Log(ctx, &userID, "delete", "transaction", txn.ID, "Transaction deleted")
	return nil
}

// List returns a page of the user's transactions with the total match count.
func (s *TransactionService) List(ctx context.Context, userID string, f TransactionFilter) ([]*models.Transaction, int, error) {
	repo := s.rm.Transactions(s.db)

	rf := f.normalize()
	items, err := repo.List(ctx, userID, rf)
	if err != nil {
		return nil, 0, err
	}
	total, err := repo.Count(ctx, userID, rf)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListByInvestment returns all transactions of one owned investment.
func (s *TransactionService) ListByInvestment(ctx context.Context, investmentID, userID string) ([]*models.Transaction, error) {
	return s.rm.Transactions(s.db).ListByInvestment(ctx, investmentID, userID)
}

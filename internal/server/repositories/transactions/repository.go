// Package transactions declares the repository contract for investment
// transactions.
package transactions

import (
	"context"
	"time"

	"github.com/dsavelev/foliotrack/internal/server/models"
)

// Filter narrows List/Count results. Empty strings and nil times are ignored.
type Filter struct {
	Page         int
	Limit        int
	Type         string
	Status       string
	InvestmentID string
	DateFrom     *time.Time
	DateTo       *time.Time
}

// Repository defines persistence operations on transactions. Ownership runs
// through the parent investment: every read is scoped by the investment
// owner's user id.
type Repository interface {
	// Create inserts a new transaction.
	Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)

	// GetByIDForUser returns the transaction with the given id if its parent
	// investment belongs to userID, otherwise common.ErrorNotFound.
	GetByIDForUser(ctx context.Context, id, userID string) (*models.Transaction, error)

	// Update persists all mutable fields.
	Update(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)

	// Delete removes the transaction.
	Delete(ctx context.Context, id string) error

	// ListForUserInDateRange returns the dates and amounts of the user's
	// transactions with from <= date < to. This is the trend report's input.
	ListForUserInDateRange(ctx context.Context, userID string, from, to time.Time) ([]models.CashFlow, error)

	// List returns a page of the user's transactions matching the filter,
	// newest first.
	List(ctx context.Context, userID string, f Filter) ([]*models.Transaction, error)

	// Count returns the number of the user's transactions matching the filter.
	Count(ctx context.Context, userID string, f Filter) (int, error)

	// ListByInvestment returns all transactions of one owned investment,
	// newest first.
	ListByInvestment(ctx context.Context, investmentID, userID string) ([]*models.Transaction, error)
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type and status values.
const (
	TransactionTypeBuy      = "buy"
	TransactionTypeSell     = "sell"
	TransactionTypeDividend = "dividend"

	TransactionStatusCompleted = "completed"
	TransactionStatusPending   = "pending"
)

// Transaction is a movement on an investment. Amount is always
// quantity×price+fees, recomputed on every write.
type Transaction struct {
	ID           string          `json:"id"`
	InvestmentID string          `json:"investmentId"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Amount       decimal.Decimal `json:"amount"`
	Fees         decimal.Decimal `json:"fees"`
	Date         time.Time       `json:"date"`
	Status       string          `json:"status"`
	Notes        *string         `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// CashFlow is the typed row shape the trend report reads: one transaction's
// date and amount, nothing else.
type CashFlow struct {
	Date   time.Time
	Amount decimal.Decimal
}

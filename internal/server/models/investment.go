package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment status values.
const (
	InvestmentStatusActive = "active"
	InvestmentStatusSold   = "sold"
)

// Investment is an owned portfolio position. Amount is the invested sum,
// CurrentValue the present valuation; reports derive gain/loss from the two.
type Investment struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	Status       string          `json:"status"`
	Description  *string         `json:"description,omitempty"`
	Symbol       *string         `json:"symbol,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	DeletedAt    *time.Time      `json:"-"`
}

// GainLoss is currentValue − amount.
func (i *Investment) GainLoss() decimal.Decimal {
	return i.CurrentValue.Sub(i.Amount)
}

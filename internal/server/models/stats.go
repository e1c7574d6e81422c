package models

import "github.com/shopspring/decimal"

// SystemStats is the admin dashboard headline block.
type SystemStats struct {
	TotalUsers            int             `json:"totalUsers"`
	ActiveUsers           int             `json:"activeUsers"`
	TotalInvestments      int             `json:"totalInvestments"`
	TotalInvestmentValue  decimal.Decimal `json:"totalInvestmentValue"`
	CompletedTransactions int             `json:"completedTransactions"`
}

// Package seed populates a fresh database with a deterministic fixture set:
// one admin account and, optionally, a demo user with positions and
// transactions. Every id is pinned so repeated runs and test environments
// produce identical data.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dsavelev/foliotrack/internal/common"
	"github.com/dsavelev/foliotrack/internal/logging"
	"github.com/dsavelev/foliotrack/internal/server/auth"
	"github.com/dsavelev/foliotrack/internal/server/models"
	"github.com/dsavelev/foliotrack/internal/server/repositories/repomanager"
	"github.com/shopspring/decimal"
)

const (
	adminID    = "5f0c6a91-0000-4000-8000-000000000001"
	adminEmail = "admin@portfolio.com"

	demoUserID  = "5f0c6a91-0000-4000-8000-000000000002"
	demoEmail   = "demo@portfolio.com"
	demoInvest1 = "5f0c6a91-0000-4000-8000-000000000101"
	demoInvest2 = "5f0c6a91-0000-4000-8000-000000000102"
	demoInvest3 = "5f0c6a91-0000-4000-8000-000000000103"
	demoTx1     = "5f0c6a91-0000-4000-8000-000000000201"
	demoTx2     = "5f0c6a91-0000-4000-8000-000000000202"
)

// Run creates the admin account if it does not exist yet and, when demo is
// true, a demo user with a small portfolio. Existing accounts are left
// untouched, so Run is safe to call on every startup.
func Run(ctx context.Context, db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger, demo bool) error {
	if err := ensureAdmin(ctx, db, rm, logger); err != nil {
		return err
	}
	if demo {
		return ensureDemoData(ctx, db, rm, logger)
	}
	return nil
}

func ensureAdmin(ctx context.Context, db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger) error {
	repo := rm.Users(db)

	_, err := repo.GetByEmail(ctx, adminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	hash, err := auth.HashPassword("Admin123!")
	if err != nil {
		return err
	}
	_, err = repo.Create(ctx, &models.User{
		ID:            adminID,
		Email:         adminEmail,
		PasswordHash:  hash,
		FirstName:     "Portfolio",
		LastName:      "Admin",
		Role:          models.RoleAdmin,
		IsActive:      true,
		EmailVerified: true,
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "seeded admin account", "email", adminEmail)
	return nil
}

func ensureDemoData(ctx context.Context, db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger) error {
	usersRepo := rm.Users(db)

	if _, err := usersRepo.GetByEmail(ctx, demoEmail); err == nil {
		return nil
	} else if !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	hash, err := auth.HashPassword("Demo123!")
	if err != nil {
		return err
	}
	demoUser, err := usersRepo.Create(ctx, &models.User{
		ID:            demoUserID,
		Email:         demoEmail,
		PasswordHash:  hash,
		FirstName:     "Demo",
		LastName:      "Investor",
		Role:          models.RoleUser,
		IsActive:      true,
		EmailVerified: true,
	})
	if err != nil {
		return err
	}

	invRepo := rm.Investments(db)
	notes := "seed data"
	positions := []*models.Investment{
		{
			ID: demoInvest1, UserID: demoUser.ID, Name: "Global Equity ETF", Type: "stocks",
			Amount: decimal.NewFromInt(10000), CurrentValue: decimal.NewFromInt(11800),
			PurchaseDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Status:       models.InvestmentStatusActive, Description: &notes,
		},
		{
			ID: demoInvest2, UserID: demoUser.ID, Name: "Government Bonds", Type: "bonds",
			Amount: decimal.NewFromInt(5000), CurrentValue: decimal.NewFromInt(5150),
			PurchaseDate: time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC),
			Status:       models.InvestmentStatusActive, Description: &notes,
		},
		{
			ID: demoInvest3, UserID: demoUser.ID, Name: "Tech Growth Fund", Type: "stocks",
			Amount: decimal.NewFromInt(4000), CurrentValue: decimal.NewFromInt(3600),
			PurchaseDate: time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
			Status:       models.InvestmentStatusActive, Description: &notes,
		},
	}
	for _, inv := range positions {
		if _, err := invRepo.Create(ctx, inv); err != nil {
			return err
		}
	}

	txRepo := rm.Transactions(db)
	txs := []*models.Transaction{
		{
			ID: demoTx1, InvestmentID: demoInvest1, Type: models.TransactionTypeBuy,
			Quantity: decimal.NewFromInt(100), Price: decimal.NewFromInt(100),
			Amount: decimal.NewFromInt(10000), Fees: decimal.Zero,
			Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Status: models.TransactionStatusCompleted,
		},
		{
			ID: demoTx2, InvestmentID: demoInvest2, Type: models.TransactionTypeBuy,
			Quantity: decimal.NewFromInt(50), Price: decimal.NewFromInt(100),
			Amount: decimal.NewFromInt(5000), Fees: decimal.Zero,
			Date: time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC), Status: models.TransactionStatusCompleted,
		},
	}
	for _, tx := range txs {
		if _, err := txRepo.Create(ctx, tx); err != nil {
			return err
		}
	}

	logger.Info(ctx, "seeded demo portfolio", "email", demoEmail)
	return nil
}

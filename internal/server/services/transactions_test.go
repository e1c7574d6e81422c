package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dsavelev/foliotrack/internal/common"
	"github.com/dsavelev/foliotrack/internal/server/models"
	"github.com/shopspring/decimal"
)

func TestTransactionCreate_BuyAdjustsInvestmentValue(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	inv := position("inv1", 1000, 1000)
	inv.UserID = "u1"
	rm.invs.items[inv.ID] = inv

	s := NewTransactionService(db, rm, newTestActivityService(db, rm))

	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := s.Create(context.Background(), "u1", TransactionInput{
		InvestmentID: "inv1",
		Type:         models.TransactionTypeBuy,
		Quantity:     decimal.NewFromInt(10),
		Price:        decimal.NewFromInt(25),
		Fees:         decimal.NewFromInt(5),
		Date:         time.Now(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.Amount.Equal(decimal.NewFromInt(255)) {
		t.Fatalf("amount must be quantity*price+fees=255, got %s", created.Amount)
	}
	if got := rm.invs.items["inv1"].CurrentValue; !got.Equal(decimal.NewFromInt(1255)) {
		t.Fatalf("buy must add the total to current value: want 1255, got %s", got)
	}
	if created.Status != models.TransactionStatusCompleted {
		t.Fatalf("default status: want completed, got %q", created.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestTransactionCreate_SellSubtractsDividendKeeps(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	inv := position("inv1", 1000, 1000)
	inv.UserID = "u1"
	rm.invs.items[inv.ID] = inv

	s := NewTransactionService(db, rm, newTestActivityService(db, rm))

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := s.Create(context.Background(), "u1", TransactionInput{
		InvestmentID: "inv1",
		Type:         models.TransactionTypeSell,
		Quantity:     decimal.NewFromInt(4),
		Price:        decimal.NewFromInt(50),
		Date:         time.Now(),
	})
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if got := rm.invs.items["inv1"].CurrentValue; !got.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("sell must subtract: want 800, got %s", got)
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = s.Create(context.Background(), "u1", TransactionInput{
		InvestmentID: "inv1",
		Type:         models.TransactionTypeDividend,
		Quantity:     decimal.NewFromInt(1),
		Price:        decimal.NewFromInt(30),
		Date:         time.Now(),
	})
	if err != nil {
		t.Fatalf("dividend: %v", err)
	}
	if got := rm.invs.items["inv1"].CurrentValue; !got.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("dividend must not move current value: want 800, got %s", got)
	}
}

func TestTransactionCreate_ForeignInvestmentIsNotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	inv := position("inv1", 1000, 1000)
	inv.UserID = "owner"
	rm.invs.items[inv.ID] = inv

	s := NewTransactionService(db, rm, newTestActivityService(db, rm))

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := s.Create(context.Background(), "intruder", TransactionInput{
		InvestmentID: "inv1",
		Type:         models.TransactionTypeBuy,
		Quantity:     decimal.NewFromInt(1),
		Price:        decimal.NewFromInt(1),
		Date:         time.Now(),
	})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("foreign investment must look absent, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestTransactionUpdate_RecomputesAmount(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	rm.txs.items["t1"] = &models.Transaction{
		ID: "t1", InvestmentID: "inv1", Type: models.TransactionTypeBuy,
		Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(10),
		Amount: decimal.NewFromInt(10), Status: models.TransactionStatusCompleted,
	}

	s := NewTransactionService(db, rm, newTestActivityService(db, rm))

	updated, err := s.Update(context.Background(), "t1", "u1", TransactionInput{
		Type:     models.TransactionTypeBuy,
		Quantity: decimal.NewFromInt(3),
		Price:    decimal.NewFromInt(7),
		Fees:     decimal.NewFromInt(1),
		Date:     time.Now(),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Amount.Equal(decimal.NewFromInt(22)) {
		t.Fatalf("amount must be recomputed to 22, got %s", updated.Amount)
	}
}

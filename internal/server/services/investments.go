package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dsavelev/foliotrack/internal/server/models"
	"github.com/dsavelev/foliotrack/internal/server/repositories/investments"
	"github.com/dsavelev/foliotrack/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvestmentInput carries the mutable fields of a position.
type InvestmentInput struct {
	Name         string
	Type         string
	Amount       decimal.Decimal
	CurrentValue decimal.Decimal
	PurchaseDate time.Time
	Status       string
	Description  *string
	Symbol       *string
}

// InvestmentFilter is the user-facing listing filter.
type InvestmentFilter struct {
	Page      int
	Limit     int
	Search    string
	Type      string
	Status    string
	SortBy    string
	SortOrder string
}

func (f InvestmentFilter) normalize() investments.Filter {
	page, limit := clampPage(f.Page, f.Limit)
	return investments.Filter{
		Page:      page,
		Limit:     limit,
		Search:    f.Search,
		Type:      f.Type,
		Status:    f.Status,
		SortBy:    f.SortBy,
		SortOrder: f.SortOrder,
	}
}

// InvestmentService owns the position CRUD lifecycle. Every read and write
// is scoped to the calling user; a position owned by someone else surfaces
// as not found.
type InvestmentService struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	activity *ActivityLogService
}

func NewInvestmentService(db *sql.DB, rm repomanager.RepositoryManager, activity *ActivityLogService) *InvestmentService {
	return &InvestmentService{db: db, rm: rm, activity: activity}
}

func (s *InvestmentService) Create(ctx context.Context, userID string, in InvestmentInput) (*models.Investment, error) {
	status := in.Status
	if status == "" {
		status = models.InvestmentStatusActive
	}

	inv, err := s.rm.Investments(s.db).Create(ctx, &models.Investment{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         in.Name,
		Type:         in.Type,
		Amount:       in.Amount,
		CurrentValue: in.CurrentValue,
		PurchaseDate: in.PurchaseDate,
		Status:       status,
		Description:  in.Description,
		Symbol:       in.Symbol,
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, &userID, "create", "investment", inv.ID, "Investment created: "+inv.Name)
	return inv, nil
}

func (s *InvestmentService) Get(ctx context.Context, id, userID string) (*models.Investment, error) {
	return s.rm.Investments(s.db).GetByIDAndUserID(ctx, id, userID)
}

func (s *InvestmentService) Update(ctx context.Context, id, userID string, in InvestmentInput) (*models.Investment, error) {
	repo := s.rm.Investments(s.db)

	inv, err := repo.GetByIDAndUserID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	inv.Name = in.Name
	inv.Type = in.Type
	inv.Amount = in.Amount
	inv.CurrentValue = in.CurrentValue
	inv.PurchaseDate = in.PurchaseDate
	if in.Status != "" {
		inv.Status = in.Status
	}
	inv.Description = in.Description
	inv.Symbol = in.Symbol

	updated, err := repo.Update(ctx, inv)
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, &userID, "update", "investment", updated.ID, "Investment updated: "+updated.Name)
	return updated, nil
}

func (s *InvestmentService) Delete(ctx context.Context, id, userID string) error {
	repo := s.rm.Investments(s.db)

	inv, err := repo.GetByIDAndUserID(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := repo.SoftDelete(ctx, inv.ID); err != nil {
		return err
	}

	s.activity.Log(ctx, &userID, "delete", "investment", inv.ID, "Investment deleted: "+inv.Name)
	return nil
}

// List returns a page of the user's positions with the total match count.
func (s *InvestmentService) List(ctx context.Context, userID string, f InvestmentFilter) ([]*models.Investment, int, error) {
	repo := s.rm.Investments(s.db)

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

package services

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/dsavelev/foliotrack/internal/server/models"
	"github.com/dsavelev/foliotrack/internal/server/repositories/repomanager"
	"github.com/shopspring/decimal"
)

// Defaults applied when a caller passes a non-positive window or limit.
const (
	defaultTrendMonths   = 12
	defaultTopPerformers = 5
)

var oneHundred = decimal.NewFromInt(100)

// InvestmentHighlight is the best/worst entry of a performance summary.
type InvestmentHighlight struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	GainLoss decimal.Decimal `json:"gainLoss"`
}

// PerformanceSummary aggregates a user's active positions.
type PerformanceSummary struct {
	TotalValue              decimal.Decimal      `json:"totalValue"`
	TotalInvested           decimal.Decimal      `json:"totalInvested"`
	TotalGainLoss           decimal.Decimal      `json:"totalGainLoss"`
	TotalGainLossPercentage decimal.Decimal      `json:"totalGainLossPercentage"`
	InvestmentCount         int                  `json:"investmentCount"`
	BestInvestment          *InvestmentHighlight `json:"bestInvestment"`
	WorstInvestment         *InvestmentHighlight `json:"worstInvestment"`
}

// DistributionSlice is one type-group's share of the portfolio value.
type DistributionSlice struct {
	Type       string          `json:"type"`
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"`
	Count      int             `json:"count"`
}

// TrendPoint is one calendar month's summed transaction amount.
type TrendPoint struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// TopPerformer is one row of the top-performers report.
type TopPerformer struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Type               string          `json:"type"`
	Amount             decimal.Decimal `json:"amount"`
	CurrentValue       decimal.Decimal `json:"currentValue"`
	GainLoss           decimal.Decimal `json:"gainLoss"`
	GainLossPercentage decimal.Decimal `json:"gainLossPercentage"`
}

// YearOverYear compares portfolio value bought in the current calendar year
// against the previous one.
type YearOverYear struct {
	CurrentYear       int             `json:"currentYear"`
	PreviousYear      int             `json:"previousYear"`
	CurrentYearValue  decimal.Decimal `json:"currentYearValue"`
	PreviousYearValue decimal.Decimal `json:"previousYearValue"`
	Change            decimal.Decimal `json:"change"`
	ChangePercentage  decimal.Decimal `json:"changePercentage"`
}

// ReportService computes read-only portfolio statistics. Repositories hand
// back typed rows; all arithmetic happens here in pure reducers so the math
// is testable without a database.
type ReportService struct {
	db  *sql.DB
	rm  repomanager.RepositoryManager
	now func() time.Time
}

func NewReportService(db *sql.DB, rm repomanager.RepositoryManager) *ReportService {
	return &ReportService{db: db, rm: rm, now: time.Now}
}

func (s *ReportService) Performance(ctx context.Context, userID string) (*PerformanceSummary, error) {
	investments, err := s.rm.Investments(s.db).ListActiveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return reducePerformance(investments), nil
}

func (s *ReportService) Distribution(ctx context.Context, userID string) ([]DistributionSlice, error) {
	investments, err := s.rm.Investments(s.db).ListActiveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return reduceDistribution(investments), nil
}

// Trends sums transaction amounts per calendar month over the trailing
// window (default twelve months). Months without transactions are omitted,
// not zero-filled.
func (s *ReportService) Trends(ctx context.Context, userID string, months int) ([]TrendPoint, error) {
	if months <= 0 {
		months = defaultTrendMonths
	}
	to := s.now()
	from := to.AddDate(0, -months, 0)

	flows, err := s.rm.Transactions(s.db).ListForUserInDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return reduceTrends(flows), nil
}

func (s *ReportService) TopPerformers(ctx context.Context, userID string, limit int) ([]TopPerformer, error) {
	if limit <= 0 {
		limit = defaultTopPerformers
	}
	investments, err := s.rm.Investments(s.db).ListActiveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return reduceTopPerformers(investments, limit), nil
}

func (s *ReportService) YearOverYear(ctx context.Context, userID string) (*YearOverYear, error) {
	investments, err := s.rm.Investments(s.db).ListActiveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return reduceYearOverYear(investments, s.now().Year()), nil
}

// reducePerformance folds active positions into the summary. Percentage is
// gain over invested ×100, zero when nothing is invested. Best and worst are
// nil for an empty portfolio.
func reducePerformance(investments []*models.Investment) *PerformanceSummary {
	summary := &PerformanceSummary{InvestmentCount: len(investments)}

	var best, worst *models.Investment
	for _, inv := range investments {
		summary.TotalValue = summary.TotalValue.Add(inv.CurrentValue)
		summary.TotalInvested = summary.TotalInvested.Add(inv.Amount)
		if best == nil || inv.GainLoss().GreaterThan(best.GainLoss()) {
			best = inv
		}
		if worst == nil || inv.GainLoss().LessThan(worst.GainLoss()) {
			worst = inv
		}
	}
	summary.TotalGainLoss = summary.TotalValue.Sub(summary.TotalInvested)
	if !summary.TotalInvested.IsZero() {
		summary.TotalGainLossPercentage = summary.TotalGainLoss.Div(summary.TotalInvested).Mul(oneHundred)
	}
	summary.BestInvestment = highlight(best)
	summary.WorstInvestment = highlight(worst)
	return summary
}

func highlight(inv *models.Investment) *InvestmentHighlight {
	if inv == nil {
		return nil
	}
	return &InvestmentHighlight{ID: inv.ID, Name: inv.Name, Type: inv.Type, GainLoss: inv.GainLoss()}
}

// reduceDistribution groups positions by type and shares out the grand
// total. Every percentage is zero when the grand total is zero. Groups come
// back sorted by value descending for stable output.
func reduceDistribution(investments []*models.Investment) []DistributionSlice {
	byType := map[string]*DistributionSlice{}
	var order []string
	var grandTotal decimal.Decimal

	for _, inv := range investments {
		slice, ok := byType[inv.Type]
		if !ok {
			slice = &DistributionSlice{Type: inv.Type}
			byType[inv.Type] = slice
			order = append(order, inv.Type)
		}
		slice.Value = slice.Value.Add(inv.CurrentValue)
		slice.Count++
		grandTotal = grandTotal.Add(inv.CurrentValue)
	}

	slices := make([]DistributionSlice, 0, len(order))
	for _, t := range order {
		slice := *byType[t]
		if !grandTotal.IsZero() {
			slice.Percentage = slice.Value.Div(grandTotal).Mul(oneHundred)
		}
		slices = append(slices, slice)
	}
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Value.GreaterThan(slices[j].Value)
	})
	return slices
}

// reduceTrends buckets cash flows by "YYYY-MM" month key, chronologically.
func reduceTrends(flows []models.CashFlow) []TrendPoint {
	byMonth := map[string]decimal.Decimal{}
	for _, f := range flows {
		key := f.Date.Format("2006-01")
		byMonth[key] = byMonth[key].Add(f.Amount)
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	points := make([]TrendPoint, 0, len(months))
	for _, m := range months {
		points = append(points, TrendPoint{Month: m, Amount: byMonth[m]})
	}
	return points
}

// reduceTopPerformers sorts by absolute gain/loss descending and truncates.
// Ranking is by the absolute figure, not the percentage.
func reduceTopPerformers(investments []*models.Investment, n int) []TopPerformer {
	sorted := make([]*models.Investment, len(investments))
	copy(sorted, investments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GainLoss().GreaterThan(sorted[j].GainLoss())
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	performers := make([]TopPerformer, 0, len(sorted))
	for _, inv := range sorted {
		p := TopPerformer{
			ID:           inv.ID,
			Name:         inv.Name,
			Type:         inv.Type,
			Amount:       inv.Amount,
			CurrentValue: inv.CurrentValue,
			GainLoss:     inv.GainLoss(),
		}
		if !inv.Amount.IsZero() {
			p.GainLossPercentage = p.GainLoss.Div(inv.Amount).Mul(oneHundred)
		}
		performers = append(performers, p)
	}
	return performers
}

// reduceYearOverYear partitions current value by purchase year. The change
// percentage guards division by zero: a zero previous year yields zero.
func reduceYearOverYear(investments []*models.Investment, currentYear int) *YearOverYear {
	yoy := &YearOverYear{CurrentYear: currentYear, PreviousYear: currentYear - 1}

	for _, inv := range investments {
		switch inv.PurchaseDate.Year() {
		case currentYear:
			yoy.CurrentYearValue = yoy.CurrentYearValue.Add(inv.CurrentValue)
		case currentYear - 1:
			yoy.PreviousYearValue = yoy.PreviousYearValue.Add(inv.CurrentValue)
		}
	}

	yoy.Change = yoy.CurrentYearValue.Sub(yoy.PreviousYearValue)
	if !yoy.PreviousYearValue.IsZero() {
		yoy.ChangePercentage = yoy.Change.Div(yoy.PreviousYearValue).Mul(oneHundred)
	}
	return yoy
}

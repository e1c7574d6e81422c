package httpapi

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dsavelev/foliotrack/internal/server/models"
	"github.com/dsavelev/foliotrack/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Format validation happens before any service call, so a bad format is
// rejected regardless of portfolio state.
func TestExport_InvalidFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := testServer()
	r := s.Router()
	bearer := tokenFor(t, testConfig(), models.RoleUser)

	cases := []struct {
		name, path string
	}{
		{"investment xml", "/api/investments/i1/export?format=xml"},
		{"investment no format", "/api/investments/i1/export"},
		{"reports pdf", "/api/reports/export?format=pdf"},
		{"reports no format", "/api/reports/export"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, tc.path, bearer)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("want 400, got %d: %s", w.Code, w.Body)
			}
		})
	}
}

func TestInvestmentCSV(t *testing.T) {
	inv := &models.Investment{
		ID:           "i1",
		Name:         "Index Fund",
		Type:         "stocks",
		Amount:       decimal.NewFromInt(1000),
		CurrentValue: decimal.NewFromInt(1250),
		PurchaseDate: time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC),
		Status:       models.InvestmentStatusActive,
	}

	lines := strings.Split(strings.TrimSpace(string(investmentCSV(inv))), "\n")
	if len(lines) != 2 {
		t.Fatalf("want header plus one row, got %d lines", len(lines))
	}
	if lines[0] != "Id,Name,Type,Amount,CurrentValue,PurchaseDate,Status" {
		t.Fatalf("header: got %q", lines[0])
	}
	if lines[1] != "i1,Index Fund,stocks,1000,1250,2025-04-09,active" {
		t.Fatalf("row: got %q", lines[1])
	}
}

func TestReportsCSV(t *testing.T) {
	p := &services.PerformanceSummary{
		TotalValue:              decimal.NewFromInt(330),
		TotalInvested:           decimal.NewFromInt(300),
		TotalGainLoss:           decimal.NewFromInt(30),
		TotalGainLossPercentage: decimal.NewFromInt(10),
	}
	dist := []services.DistributionSlice{
		{Type: "stocks", Value: decimal.NewFromInt(330)},
	}
	trends := []services.TrendPoint{
		{Month: "2026-03", Amount: decimal.NewFromInt(150)},
	}

	out := string(reportsCSV(p, dist, trends))
	for _, want := range []string{
		"Section,Key,Value",
		"performance,totalValue,330",
		"performance,totalGainLoss,30",
		"distribution,stocks,330",
		"trends,2026-03,150",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("csv missing %q:\n%s", want, out)
		}
	}
}

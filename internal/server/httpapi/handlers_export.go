package httpapi

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"

	"github.com/dsavelev/foliotrack/internal/server/models"
	"github.com/dsavelev/foliotrack/internal/server/services"
	"github.com/gin-gonic/gin"
)

// handleExportInvestment serves one owned investment as a downloadable csv
// or json file.
func (s *Server) handleExportInvestment(c *gin.Context) {
	format := strings.ToLower(c.Query("format"))
	if format != "csv" && format != "json" {
		fail(c, http.StatusBadRequest, "invalid format, use 'csv' or 'json'")
		return
	}

	inv, err := s.investments.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		s.failWith(c, err)
		return
	}

	if format == "json" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", inv.Name+".json"))
		c.JSON(http.StatusOK, inv)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", inv.Name+".csv"))
	c.Data(http.StatusOK, "text/csv", investmentCSV(inv))
}

// handleExportReports bundles performance, distribution, and trends into one
// downloadable csv or json file.
func (s *Server) handleExportReports(c *gin.Context) {
	format := strings.ToLower(c.Query("format"))
	if format != "csv" && format != "json" {
		fail(c, http.StatusBadRequest, "invalid format, use 'csv' or 'json'")
		return
	}

	ctx := c.Request.Context()
	userID := currentUserID(c)

	performance, err := s.reports.Performance(ctx, userID)
	if err != nil {
		s.failWith(c, err)
		return
	}
	distribution, err := s.reports.Distribution(ctx, userID)
	if err != nil {
		s.failWith(c, err)
		return
	}
	trends, err := s.reports.Trends(ctx, userID, 0)
	if err != nil {
		s.failWith(c, err)
		return
	}

	if format == "json" {
		c.Header("Content-Disposition", `attachment; filename="reports.json"`)
		c.JSON(http.StatusOK, gin.H{
			"performance":  performance,
			"distribution": distribution,
			"trends":       trends,
		})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="reports.csv"`)
	c.Data(http.StatusOK, "text/csv", reportsCSV(performance, distribution, trends))
}

func investmentCSV(inv *models.Investment) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Id", "Name", "Type", "Amount", "CurrentValue", "PurchaseDate", "Status"})
	_ = w.Write([]string{
		inv.ID, inv.Name, inv.Type,
		inv.Amount.String(), inv.CurrentValue.String(),
		inv.PurchaseDate.Format("2006-01-02"), inv.Status,
	})
	w.Flush()
	return buf.Bytes()
}

func reportsCSV(p *services.PerformanceSummary, dist []services.DistributionSlice, trends []services.TrendPoint) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Section", "Key", "Value"})
	_ = w.Write([]string{"performance", "totalValue", p.TotalValue.String()})
	_ = w.Write([]string{"performance", "totalInvested", p.TotalInvested.String()})
	_ = w.Write([]string{"performance", "totalGainLoss", p.TotalGainLoss.String()})
	_ = w.Write([]string{"performance", "totalGainLossPercentage", p.TotalGainLossPercentage.String()})
	for _, d := range dist {
		_ = w.Write([]string{"distribution", d.Type, d.Value.String()})
	}
	for _, t := range trends {
		_ = w.Write([]string{"trends", t.Month, t.Amount.String()})
	}
	w.Flush()
	return buf.Bytes()
}

package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dsavelev/foliotrack/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type investmentRequest struct {
	Name         string          `json:"name" binding:"required"`
	Type         string          `json:"type" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	PurchaseDate time.Time       `json:"purchaseDate" binding:"required"`
	Status       string          `json:"status"`
	Description  *string         `json:"description"`
	Symbol       *string         `json:"symbol"`
}

func (r investmentRequest) toInput() services.InvestmentInput {
	return services.InvestmentInput{
		Name:         r.Name,
		Type:         r.Type,
		Amount:       r.Amount,
		CurrentValue: r.CurrentValue,
		PurchaseDate: r.PurchaseDate,
		Status:       r.Status,
		Description:  r.Description,
		Symbol:       r.Symbol,
	}
}

func (s *Server) handleCreateInvestment(c *gin.Context) {
	var req investmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	inv, err := s.investments.Create(c.Request.Context(), currentUserID(c), req.toInput())
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusCreated, inv)
}

func (s *Server) handleGetInvestment(c *gin.Context) {
	inv, err := s.investments.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusOK, inv)
}

func (s *Server) handleUpdateInvestment(c *gin.Context) {
	var req investmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	inv, err := s.investments.Update(c.Request.Context(), c.Param("id"), currentUserID(c), req.toInput())
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusOK, inv)
}

func (s *Server) handleDeleteInvestment(c *gin.Context) {
	if err := s.investments.Delete(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		s.failWith(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "investment deleted")
}

func (s *Server) handleListInvestments(c *gin.Context) {
	f := services.InvestmentFilter{
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 10),
		Search:    c.Query("search"),
		Type:      c.Query("type"),
		Status:    c.Query("status"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	items, total, err := s.investments.List(c.Request.Context(), currentUserID(c), f)
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusOK, page{Items: items, Total: total, Page: f.Page, Limit: f.Limit})
}

func (s *Server) handleListInvestmentTransactions(c *gin.Context) {
	items, err := s.transactions.ListByInvestment(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

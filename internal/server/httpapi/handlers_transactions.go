package httpapi

import (
	"net/http"
	"time"

	"github.com/dsavelev/foliotrack/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type transactionRequest struct {
	InvestmentID string          `json:"investmentId" binding:"required"`
	Type         string          `json:"type" binding:"required,oneof=buy sell dividend"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	Fees         decimal.Decimal `json:"fees"`
	Date         time.Time       `json:"date" binding:"required"`
	Status       string          `json:"status"`
	Notes        *string         `json:"notes"`
}

func (r transactionRequest) toInput() services.TransactionInput {
	return services.TransactionInput{
		InvestmentID: r.InvestmentID,
		Type:         r.Type,
		Quantity:     r.Quantity,
		Price:        r.Price,
		Fees:         r.Fees,
		Date:         r.Date,
		Status:       r.Status,
		Notes:        r.Notes,
	}
}

func (s *Server) handleCreateTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	txn, err := s.transactions.Create(c.Request.Context(), currentUserID(c), req.toInput())
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusCreated, txn)
}

func (s *Server) handleGetTransaction(c *gin.Context) {
	txn, err := s.transactions.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusOK, txn)
}

func (s *Server) handleUpdateTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	txn, err := s.transactions.Update(c.Request.Context(), c.Param("id"), currentUserID(c), req.toInput())
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusOK, txn)
}

func (s *Server) handleDeleteTransaction(c *gin.Context) {
	if err := s.transactions.Delete(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		s.failWith(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "transaction deleted")
}

func (s *Server) handleListTransactions(c *gin.Context) {
	f := services.TransactionFilter{
		Page:         queryInt(c, "page", 1),
		Limit:        queryInt(c, "limit", 10),
		Type:         c.Query("type"),
		Status:       c.Query("status"),
		InvestmentID: c.Query("investmentId"),
		DateFrom:     queryTime(c, "dateFrom"),
		DateTo:       queryTime(c, "dateTo"),
	}

	items, total, err := s.transactions.List(c.Request.Context(), currentUserID(c), f)
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusOK, page{Items: items, Total: total, Page: f.Page, Limit: f.Limit})
}

func queryTime(c *gin.Context, key string) *time.Time {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		if t, err = time.Parse("2006-01-02", v); err != nil {
			return nil
		}
	}
	return &t
}

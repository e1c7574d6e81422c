package httpapi

import (
	"errors"
	"net/http"

	"github.com/dsavelev/foliotrack/internal/common"
	"github.com/gin-gonic/gin"
)

// envelope is the uniform response shape of every endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// page wraps a list payload with pagination metadata.
type page struct {
	Items any `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: true, Message: message})
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, envelope{Success: false, Message: message})
}

// failWith translates a service error to a status code. Unexpected errors are
// logged with full detail; the client sees the cause text only in development.
func (s *Server) failWith(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrEmailAlreadyExists),
		errors.Is(err, common.ErrInvalidResetToken),
		errors.Is(err, common.ErrPasswordMismatch):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		fail(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrorNotFound):
		fail(c, http.StatusNotFound, "not found")
	default:
		s.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		msg := "internal server error"
		if s.cfg.IsDevelopment() {
			msg = err.Error()
		}
		fail(c, http.StatusInternalServerError, msg)
	}
}

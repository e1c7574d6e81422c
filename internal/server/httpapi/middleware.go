package httpapi

import (
	"net/http"
	"strings"

	"github.com/dsavelev/foliotrack/internal/server/auth"
	"github.com/dsavelev/foliotrack/internal/server/models"
	"github.com/gin-gonic/gin"
)

// Context keys populated by the authentication middleware.
const (
	ctxUserID = "userID"
	ctxEmail  = "email"
	ctxRole   = "role"
)

// authenticate requires a valid bearer access token and stores its identity
// claims on the request context.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		claims, err := auth.ValidateAccessToken(
			strings.TrimPrefix(header, "Bearer "),
			[]byte(s.cfg.JWTSecret), s.cfg.JWTIssuer, s.cfg.JWTAudience,
		)
		if err != nil {
			fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		c.Set(ctxUserID, claims.Subject)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// requireAdmin gates admin routes. Non-admins get 401, the same as
// unauthenticated callers.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRole) != models.RoleAdmin {
			fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

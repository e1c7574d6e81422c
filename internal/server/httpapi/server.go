// Package httpapi is the REST boundary: gin routing, bearer authentication,
// request binding, and translation of service errors to the response
// envelope. No business logic lives here.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dsavelev/foliotrack/internal/logging"
	"github.com/dsavelev/foliotrack/internal/server/config"
	"github.com/dsavelev/foliotrack/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server holds the wired services and builds the HTTP router.
type Server struct {
	cfg    *config.Config
	logger logging.Logger
	// ping checks storage reachability for the health endpoint; nil skips
	// the check.
	ping func(ctx context.Context) error

	auth         *services.AuthService
	investments  *services.InvestmentService
	transactions *services.TransactionService
	reports      *services.ReportService
	admin        *services.AdminService
}

func NewServer(
	cfg *config.Config,
	logger logging.Logger,
	ping func(ctx context.Context) error,
	authSvc *services.AuthService,
	investments *services.InvestmentService,
	transactions *services.TransactionService,
	reports *services.ReportService,
	admin *services.AdminService,
) *Server {
	return &Server{
		cfg:          cfg,
		logger:       logger,
		ping:         ping,
		auth:         authSvc,
		investments:  investments,
		transactions: transactions,
		reports:      reports,
		admin:        admin,
	}
}

// Router builds the gin engine with CORS, recovery, and all routes.
func (s *Server) Router() *gin.Engine {
	if !s.cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	// cors.New panics on an empty origin list; an unset ALLOWED_ORIGINS
	// falls back to the permissive default instead of killing startup.
	if len(s.cfg.AllowedOrigins) == 0 {
		r.Use(cors.Default())
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")

	pub := api.Group("/auth")
	{
		pub.POST("/register", s.handleRegister)
		pub.POST("/login", s.handleLogin)
		pub.POST("/refresh", s.handleRefresh)
		pub.POST("/logout", s.handleLogout)
		pub.POST("/forgot-password", s.handleForgotPassword)
		pub.POST("/reset-password", s.handleResetPassword)
	}

	priv := api.Group("")
	priv.Use(s.authenticate())
	{
		priv.GET("/auth/profile", s.handleProfile)
		priv.PUT("/auth/profile", s.handleUpdateProfile)
		priv.POST("/auth/change-password", s.handleChangePassword)

		priv.GET("/investments", s.handleListInvestments)
		priv.POST("/investments", s.handleCreateInvestment)
		priv.GET("/investments/:id", s.handleGetInvestment)
		priv.PUT("/investments/:id", s.handleUpdateInvestment)
		priv.DELETE("/investments/:id", s.handleDeleteInvestment)
		priv.GET("/investments/:id/transactions", s.handleListInvestmentTransactions)
		priv.GET("/investments/:id/export", s.handleExportInvestment)

		priv.GET("/transactions", s.handleListTransactions)
		priv.POST("/transactions", s.handleCreateTransaction)
		priv.GET("/transactions/:id", s.handleGetTransaction)
		priv.PUT("/transactions/:id", s.handleUpdateTransaction)
		priv.DELETE("/transactions/:id", s.handleDeleteTransaction)

		priv.GET("/reports/performance", s.handlePerformance)
		priv.GET("/reports/distribution", s.handleDistribution)
		priv.GET("/reports/trends", s.handleTrends)
		priv.GET("/reports/top-performers", s.handleTopPerformers)
		priv.GET("/reports/year-over-year", s.handleYearOverYear)
		priv.GET("/reports/export", s.handleExportReports)
	}

	adm := api.Group("/admin")
	adm.Use(s.authenticate(), s.requireAdmin())
	{
		adm.GET("/users", s.handleAdminListUsers)
		adm.POST("/users", s.handleAdminCreateUser)
		adm.GET("/users/:id", s.handleAdminGetUser)
		adm.PUT("/users/:id", s.handleAdminUpdateUser)
		adm.PUT("/users/:id/activate", s.handleAdminActivateUser)
		adm.DELETE("/users/:id", s.handleAdminDeleteUser)
		adm.GET("/stats", s.handleAdminStats)
		adm.GET("/logs", s.handleAdminLogs)
	}

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.ping != nil {
		if err := s.ping(c.Request.Context()); err != nil {
			fail(c, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	respond(c, http.StatusOK, gin.H{"status": "ok"})
}

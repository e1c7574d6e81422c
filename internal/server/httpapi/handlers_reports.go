package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handlePerformance(c *gin.Context) {
	sum, err := s.reports.Performance(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusOK, sum)
}

func (s *Server) handleDistribution(c *gin.Context) {
	slices, err := s.reports.Distribution(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusOK, slices)
}

func (s *Server) handleTrends(c *gin.Context) {
	points, err := s.reports.Trends(c.Request.Context(), currentUserID(c), queryInt(c, "months", 12))
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusOK, points)
}

func (s *Server) handleTopPerformers(c *gin.Context) {
	top, err := s.reports.TopPerformers(c.Request.Context(), currentUserID(c), queryInt(c, "limit", 5))
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusOK, top)
}

func (s *Server) handleYearOverYear(c *gin.Context) {
	yoy, err := s.reports.YearOverYear(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusOK, yoy)
}

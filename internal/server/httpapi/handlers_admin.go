package httpapi

import (
	"net/http"

	"github.com/dsavelev/foliotrack/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleAdminListUsers(c *gin.Context) {
	f := services.UserFilter{
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
		Search: c.Query("search"),
		Role:   c.Query("role"),
	}
	if v := c.Query("isActive"); v != "" {
		active := v == "true"
		f.IsActive = &active
	}

	items, total, err := s.admin.ListUsers(c.Request.Context(), f)
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusOK, page{Items: items, Total: total, Page: f.Page, Limit: f.Limit})
}

func (s *Server) handleAdminGetUser(c *gin.Context) {
	user, err := s.admin.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}

type adminCreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role" binding:"omitempty,oneof=user admin"`
	IsActive  *bool  `json:"isActive"`
}

func (s *Server) handleAdminCreateUser(c *gin.Context) {
	var req adminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.admin.CreateUser(c.Request.Context(), currentUserID(c), services.AdminUserInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		IsActive:  req.IsActive,
	})
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusCreated, user)
}

type adminUpdateUserRequest struct {
	Email     string `json:"email" binding:"omitempty,email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role" binding:"omitempty,oneof=user admin"`
	IsActive  *bool  `json:"isActive"`
}

func (s *Server) handleAdminUpdateUser(c *gin.Context) {
	var req adminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.admin.UpdateUser(c.Request.Context(), currentUserID(c), c.Param("id"), services.AdminUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		IsActive:  req.IsActive,
	})
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}

type activateUserRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

func (s *Server) handleAdminActivateUser(c *gin.Context) {
	var req activateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.admin.SetUserActive(c.Request.Context(), currentUserID(c), c.Param("id"), *req.IsActive)
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}

func (s *Server) handleAdminDeleteUser(c *gin.Context) {
	if err := s.admin.DeleteUser(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		s.failWith(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "user deleted")
}

func (s *Server) handleAdminStats(c *gin.Context) {
	stats, err := s.admin.SystemStats(c.Request.Context())
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusOK, stats)
}

func (s *Server) handleAdminLogs(c *gin.Context) {
	f := services.ActivityLogFilter{
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 10),
		UserID:     c.Query("userId"),
		Action:     c.Query("action"),
		EntityType: c.Query("entityType"),
		DateFrom:   queryTime(c, "dateFrom"),
		DateTo:     queryTime(c, "dateTo"),
	}

	items, total, err := s.admin.Logs(c.Request.Context(), f)
	if err != nil {
		s.failWith(c, err)
		return
	}
	respond(c, http.StatusOK, page{Items: items, Total: total, Page: f.Page, Limit: f.Limit})
}

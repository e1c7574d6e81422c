package services

import (
	"time"

	"github.com/dsavelev/foliotrack/internal/server/repositories/activitylogs"
	"github.com/dsavelev/foliotrack/internal/server/repositories/users"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// UserFilter is the admin user-listing filter.
type UserFilter struct {
	Page     int
	Limit    int
	Search   string
	Role     string
	IsActive *bool
}

func (f UserFilter) normalize() users.Filter {
	page, limit := clampPage(f.Page, f.Limit)
	uf := users.Filter{Page: page, Limit: limit, Search: f.Search, IsActive: f.IsActive}
	if f.Role != "" {
		role := f.Role
		uf.Role = &role
	}
	return uf
}

// ActivityLogFilter is the admin audit-trail filter.
type ActivityLogFilter struct {
	Page       int
	Limit      int
	UserID     string
	Action     string
	EntityType string
	DateFrom   *time.Time
	DateTo     *time.Time
}

func (f ActivityLogFilter) normalize() activitylogs.Filter {
	page, limit := clampPage(f.Page, f.Limit)
	af := activitylogs.Filter{Page: page, Limit: limit, DateFrom: f.DateFrom, DateTo: f.DateTo}
	if f.UserID != "" {
		v := f.UserID
		af.UserID = &v
	}
	if f.Action != "" {
		v := f.Action
		af.Action = &v
	}
	if f.EntityType != "" {
		v := f.EntityType
		af.EntityType = &v
	}
	return af
}

package models

import "time"

// ActivityLog is an audit-trail entry. UserID is nil for anonymous actions.
// UserEmail is populated on reads via a join and never written.
type ActivityLog struct {
	ID         string    `json:"id"`
	UserID     *string   `json:"userId,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Details    *string   `json:"details,omitempty"`
	IPAddress  *string   `json:"ipAddress,omitempty"`
	UserAgent  *string   `json:"userAgent,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UserEmail  *string   `json:"userEmail,omitempty"`
}

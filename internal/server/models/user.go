package models

import "time"

// Role values stored in users.role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account. A non-nil DeletedAt means the row is
// soft-deleted and must be excluded from normal reads. Email uniqueness is
// enforced among non-deleted rows only (partial unique index).
type User struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Role          string     `json:"role"`
	IsActive      bool       `json:"isActive"`
	EmailVerified bool       `json:"emailVerified"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	DeletedAt     *time.Time `json:"-"`
}

// FullName is used as the display-name claim in access tokens.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dsavelev/foliotrack/internal/common"
	"github.com/dsavelev/foliotrack/internal/dbx"
	"github.com/dsavelev/foliotrack/internal/server/auth"
	"github.com/dsavelev/foliotrack/internal/server/models"
	"github.com/dsavelev/foliotrack/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AdminUserInput carries the fields an administrator may set on a user.
type AdminUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
	IsActive  *bool
}

// AdminService covers user administration, the audit trail, and the system
// dashboard. All callers have already passed the admin check at the HTTP
// boundary.
type AdminService struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	activity *ActivityLogService
}

func NewAdminService(db *sql.DB, rm repomanager.RepositoryManager, activity *ActivityLogService) *AdminService {
	return &AdminService{db: db, rm: rm, activity: activity}
}

// ListUsers returns a page of users with the total match count.
func (s *AdminService) ListUsers(ctx context.Context, f UserFilter) ([]*models.User, int, error) {
	repo := s.rm.Users(s.db)

	rf := f.normalize()
	items, err := repo.List(ctx, rf)
	if err != nil {
		return nil, 0, err
	}
	total, err := repo.Count(ctx, rf)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *AdminService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.rm.Users(s.db).GetByID(ctx, id)
}

// CreateUser creates an account with an admin-chosen role.
func (s *AdminService) CreateUser(ctx context.Context, adminID string, in AdminUserInput) (*models.User, error) {
	repo := s.rm.Users(s.db)

	if _, err := repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, common.ErrEmailAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	user, err := repo.Create(ctx, &models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		IsActive:     active,
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, &adminID, "admin_create", "user", user.ID, "User created by admin: "+user.Email)
	return user, nil
}

// UpdateUser patches profile fields, role, and the active flag. Changing the
// email to one held by another active account is a conflict. Deactivation
// revokes all of the user's refresh tokens so open sessions end at the next
// refresh.
func (s *AdminService) UpdateUser(ctx context.Context, adminID, id string, in AdminUserInput) (*models.User, error) {
	repo := s.rm.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != "" && in.Email != user.Email {
		if other, err := repo.GetByEmail(ctx, in.Email); err == nil && other.ID != user.ID {
			return nil, common.ErrEmailAlreadyExists
		} else if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("error checking email: %w", err)
		}
		user.Email = in.Email
	}
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Role != "" {
		user.Role = in.Role
	}

	deactivated := false
	if in.IsActive != nil && *in.IsActive != user.IsActive {
		user.IsActive = *in.IsActive
		deactivated = !user.IsActive
	}

	var updated *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var txErr error
		updated, txErr = s.rm.Users(tx).Update(ctx, user)
		if txErr != nil {
			return txErr
		}
		if deactivated {
			return s.rm.RefreshTokens(tx).DeleteAllForUser(ctx, user.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, &adminID, "admin_update", "user", updated.ID, "User updated by admin: "+updated.Email)
	return updated, nil
}

// SetUserActive flips the account's active flag. Deactivation also revokes
// every refresh token of the user, in the same transaction, so open sessions
// end at the next refresh.
func (s *AdminService) SetUserActive(ctx context.Context, adminID, id string, active bool) (*models.User, error) {
	usersRepo := s.rm.Users(s.db)

	if _, err := usersRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Users(tx).SetActive(ctx, id, active); err != nil {
			return err
		}
		if !active {
			return s.rm.RefreshTokens(tx).DeleteAllForUser(ctx, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user, err := usersRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	verb := "deactivated"
	if active {
		verb = "activated"
	}
	s.activity.Log(ctx, &adminID, "admin_activate", "user", user.ID, "User "+verb+": "+user.Email)
	return user, nil
}

// DeleteUser soft-deletes the account and revokes its refresh tokens in one
// transaction.
func (s *AdminService) DeleteUser(ctx context.Context, adminID, id string) error {
	user, err := s.rm.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Users(tx).SoftDelete(ctx, user.ID); err != nil {
			return err
		}
		return s.rm.RefreshTokens(tx).DeleteAllForUser(ctx, user.ID)
	})
	if err != nil {
		return err
	}

	s.activity.Log(ctx, &adminID, "admin_delete", "user", user.ID, "User deleted by admin: "+user.Email)
	return nil
}

// SystemStats returns the dashboard counters.
func (s *AdminService) SystemStats(ctx context.Context) (*models.SystemStats, error) {
	return s.rm.Stats(s.db).SystemStats(ctx)
}

// Logs returns a page of the audit trail.
func (s *AdminService) Logs(ctx context.Context, f ActivityLogFilter) ([]*models.ActivityLog, int, error) {
	return s.activity.List(ctx, f)
}

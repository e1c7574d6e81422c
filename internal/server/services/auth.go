// Package services contains the server-side business logic: the session
// workflow, the report aggregation pipeline, investment/transaction CRUD,
// and administration.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dsavelev/foliotrack/internal/common"
	"github.com/dsavelev/foliotrack/internal/dbx"
	"github.com/dsavelev/foliotrack/internal/server/auth"
	"github.com/dsavelev/foliotrack/internal/server/config"
	"github.com/dsavelev/foliotrack/internal/server/models"
	"github.com/dsavelev/foliotrack/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// resetTokenValidity is the lifetime of a password reset token.
const resetTokenValidity = time.Hour

// AuthResult bundles the authenticated user with a fresh token pair.
type AuthResult struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

// RegisterInput is the data needed to create an account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// ProfileUpdateInput patches profile fields; empty strings leave the field
// unchanged.
type ProfileUpdateInput struct {
	Email     string
	FirstName string
	LastName  string
}

// AuthService drives the per-user session lifecycle: register, login,
// refresh-with-rotation, logout, and the password flows. Token signing is
// delegated to the auth package; token persistence to the repositories.
type AuthService struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	activity *ActivityLogService

	jwtSecret       []byte
	issuer          string
	audience        string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewAuthService(db *sql.DB, rm repomanager.RepositoryManager, activity *ActivityLogService, cfg *config.Config) *AuthService {
	return &AuthService{
		db:              db,
		rm:              rm,
		activity:        activity,
		jwtSecret:       []byte(cfg.JWTSecret),
		issuer:          cfg.JWTIssuer,
		audience:        cfg.JWTAudience,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// Register creates a user with role "user" and returns it with a token pair.
// An active account with the same email yields common.ErrEmailAlreadyExists.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	usersRepo := s.rm.Users(s.db)

	if _, err := usersRepo.GetByEmail(ctx, in.Email); err == nil {
		return nil, common.ErrEmailAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user, err := usersRepo.Create(ctx, &models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         models.RoleUser,
		IsActive:     true,
		// Set after email verification, which is out of band.
		EmailVerified: false,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	access, refresh, err := s.generateTokenPair(ctx, user, s.db)
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, &user.ID, "register", "user", user.ID, "User registered: "+user.Email)

	return &AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// Login verifies credentials and mints a fresh token pair. An absent user,
// an inactive user, and a wrong password are indistinguishable: all return
// common.ErrorUnauthorized with no further detail. Outstanding refresh
// tokens are untouched — concurrent sessions are allowed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.rm.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if !user.IsActive || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	access, refresh, err := s.generateTokenPair(ctx, user, s.db)
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, &user.ID, "login", "user", user.ID, "User logged in: "+user.Email)

	return &AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a refresh token for a new pair. Tokens are single-use:
// the presented token is deleted and the replacement persisted in one
// transaction. Absent or expired tokens, and absent or inactive owners, all
// come back as common.ErrorUnauthorized.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	token, err := s.rm.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	user, err := s.rm.Users(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if !user.IsActive {
		return nil, common.ErrorUnauthorized
	}

	var access, refresh string
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		access, refresh, genErr = s.generateTokenPair(ctx, user, tx)
		return genErr
	})
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// Logout revokes the given refresh token. Revoking an unknown token is a
// successful no-op.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.rm.RefreshTokens(s.db).Delete(ctx, refreshToken)
}

// ForgotPassword starts the reset flow. It reports success whether or not
// the email is registered, so callers cannot probe for accounts. When the
// user exists, a single-use reset token is persisted; delivery (email) is
// out of band.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.rm.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return common.ErrorInternal
	}

	token, err := auth.GenerateRefreshToken()
	if err != nil {
		return common.ErrorInternal
	}

	err = s.rm.ResetTokens(s.db).Create(ctx, &models.PasswordResetToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenValidity),
	})
	if err != nil {
		return fmt.Errorf("error storing reset token: %w", err)
	}

	s.activity.Log(ctx, &user.ID, "forgot_password", "user", user.ID, "Password reset requested")
	return nil
}

// ResetPassword consumes a reset token: it must match exactly, be unexpired,
// and be unused. On success the password is rehashed, the token marked used,
// and every outstanding refresh token of the user revoked — all in one
// transaction.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	reset, err := s.rm.ResetTokens(s.db).Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidResetToken
		}
		return fmt.Errorf("error searching reset token: %w", err)
	}
	if reset.Used || reset.ExpiresAt.Before(time.Now()) {
		return common.ErrInvalidResetToken
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return common.ErrorInternal
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Users(tx).UpdatePassword(ctx, reset.UserID, hash); err != nil {
			return err
		}
		if err := s.rm.ResetTokens(tx).MarkUsed(ctx, reset.ID); err != nil {
			return err
		}
		return s.rm.RefreshTokens(tx).DeleteAllForUser(ctx, reset.UserID)
	})
	if err != nil {
		return err
	}

	s.activity.Log(ctx, &reset.UserID, "reset_password", "user", reset.UserID, "Password reset completed")
	return nil
}

// Profile returns the caller's own user record.
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.rm.Users(s.db).GetByID(ctx, userID)
}

// UpdateProfile patches the caller's name and email.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdateInput) (*models.User, error) {
	usersRepo := s.rm.Users(s.db)

	user, err := usersRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != "" {
		user.Email = in.Email
	}
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}

	return usersRepo.Update(ctx, user)
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, newPassword string) error {
	usersRepo := s.rm.Users(s.db)

	user, err := usersRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, current) {
		return common.ErrPasswordMismatch
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return common.ErrorInternal
	}
	return usersRepo.UpdatePassword(ctx, userID, hash)
}

// generateTokenPair mints an access token and persists a refresh token
// through the given handle, which may be a transaction.
func (s *AuthService) generateTokenPair(ctx context.Context, user *models.User, db dbx.DBTX) (string, string, error) {
	access, err := auth.GenerateAccessToken(user, s.jwtSecret, s.issuer, s.audience, s.accessTokenTTL)
	if err != nil {
		return "", "", common.ErrorInternal
	}

	refresh, err := auth.GenerateRefreshToken()
	if err != nil {
		return "", "", common.ErrorInternal
	}

	if err := s.rm.RefreshTokens(db).Create(ctx, user.ID, refresh, s.refreshTokenTTL); err != nil {
		return "", "", common.ErrorInternal
	}
	return access, refresh, nil
}

package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dsavelev/foliotrack/internal/common"
	"github.com/dsavelev/foliotrack/internal/server/models"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func userRows(u *models.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "first_name", "last_name", "role",
		"is_active", "email_verified", "created_at", "updated_at", "deleted_at",
	}).AddRow(u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role,
		u.IsActive, u.EmailVerified, u.CreatedAt, u.UpdatedAt, u.DeletedAt)
}

func sampleUser() *models.User {
	return &models.User{
		ID:        "u-1",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Doe",
		Role:      models.RoleUser,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	u := sampleUser()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users`).
		WithArgs(u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.IsActive, u.EmailVerified).
		WillReturnRows(userRows(u))

	got, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	require.Equal(t, "u-1", got.ID)
	require.Equal(t, "alice@example.com", got.Email)
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	u := sampleUser()
	mock.ExpectQuery(`(?s)SELECT\s+.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s+AND\s+deleted_at\s+IS\s+NULL`).
		WithArgs(u.Email).
		WillReturnRows(userRows(u))

	got, err := repo.GetByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+.*FROM\s+users\s+WHERE\s+email`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+.*FROM\s+users\s+WHERE\s+id`).
		WithArgs("u-1").
		WillReturnError(errors.New("db down"))

	_, err := repo.GetByID(context.Background(), "u-1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "db error")
}

func TestSoftDelete_MissingRowIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE\s+users\s+SET\s+deleted_at`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SoftDelete(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSetActive_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE\s+users\s+SET\s+is_active`).
		WithArgs("u-1", false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetActive(context.Background(), "u-1", false))
}

func TestList_AppliesFilter(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	role := models.RoleAdmin
	active := true
	u := sampleUser()
	u.Role = models.RoleAdmin

	mock.ExpectQuery(`(?s)SELECT\s+.*FROM\s+users\s+WHERE\s+deleted_at\s+IS\s+NULL`).
		WithArgs("%ali%", "admin", true, 0, 10).
		WillReturnRows(userRows(u))

	got, err := repo.List(context.Background(), Filter{
		Page: 1, Limit: 10, Search: "ali", Role: &role, IsActive: &active,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, models.RoleAdmin, got[0].Role)
}

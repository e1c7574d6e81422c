package investments

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dsavelev/foliotrack/internal/common"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func investmentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "name", "type", "amount", "current_value",
		"purchase_date", "status", "description", "symbol",
		"created_at", "updated_at", "deleted_at",
	})
}

func TestGetByIDAndUserID_ScopesToOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// Ownership is part of the WHERE clause: a foreign row is no rows.
	mock.ExpectQuery(`(?s)SELECT\s+.*FROM\s+investments\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s+AND\s+deleted_at\s+IS\s+NULL`).
		WithArgs("inv-1", "intruder").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByIDAndUserID(context.Background(), "inv-1", "intruder")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListActiveForUser_FiltersStatusAndDeleted(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := investmentRows().
		AddRow("inv-1", "u-1", "ETF", "stocks", "100", "150",
			time.Now(), "active", nil, nil, time.Now(), time.Now(), nil)
	mock.ExpectQuery(`(?s)SELECT\s+.*FROM\s+investments\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+status\s*=\s*'active'\s+AND\s+deleted_at\s+IS\s+NULL`).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.ListActiveForUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "ETF", got[0].Name)
}

func TestSoftDelete_MissingRowIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE\s+investments\s+SET\s+deleted_at\s*=\s*now\(\)`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SoftDelete(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList_AppliesFiltersAndPaging(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+.*FROM\s+investments\s+WHERE\s+user_id\s*=\s*\$1`).
		WithArgs("u-1", "%etf%", "stocks", nil, 10, 10).
		WillReturnRows(investmentRows())

	_, err := repo.List(context.Background(), "u-1", Filter{
		Page: 2, Limit: 10, Search: "etf", Type: "stocks",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderByClause_Whitelist(t *testing.T) {
	cases := []struct {
		sortBy, sortOrder, want string
	}{
		{"gainloss", "asc", "(current_value - amount) ASC"},
		{"currentvalue", "desc", "current_value DESC"},
		{"name", "", "name DESC"},
		{"; DROP TABLE investments", "asc", "created_at ASC"},
		{"", "", "created_at DESC"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, orderByClause(tc.sortBy, tc.sortOrder))
	}
}

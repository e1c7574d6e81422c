package repomanager

import (
	"context"
	"database/sql"

	"github.com/dsavelev/foliotrack/internal/dbx"
	"github.com/dsavelev/foliotrack/internal/server/migrations"
	"github.com/dsavelev/foliotrack/internal/server/repositories/activitylogs"
	"github.com/dsavelev/foliotrack/internal/server/repositories/investments"
	"github.com/dsavelev/foliotrack/internal/server/repositories/refreshtokens"
	"github.com/dsavelev/foliotrack/internal/server/repositories/resettokens"
	"github.com/dsavelev/foliotrack/internal/server/repositories/stats"
	"github.com/dsavelev/foliotrack/internal/server/repositories/transactions"
	"github.com/dsavelev/foliotrack/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) ResetTokens(db dbx.DBTX) resettokens.Repository {
	return resettokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Investments(db dbx.DBTX) investments.Repository {
	return investments.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Transactions(db dbx.DBTX) transactions.Repository {
	return transactions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) ActivityLogs(db dbx.DBTX) activitylogs.Repository {
	return activitylogs.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Stats(db dbx.DBTX) stats.Repository {
	return stats.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Package repomanager hands out entity repositories bound to a database
// handle — either *sql.DB or a transaction — so services can run multi-step
// operations atomically through dbx.WithTx.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dsavelev/foliotrack/internal/dbx"
	"github.com/dsavelev/foliotrack/internal/server/repositories/activitylogs"
	"github.com/dsavelev/foliotrack/internal/server/repositories/investments"
	"github.com/dsavelev/foliotrack/internal/server/repositories/refreshtokens"
	"github.com/dsavelev/foliotrack/internal/server/repositories/resettokens"
	"github.com/dsavelev/foliotrack/internal/server/repositories/stats"
	"github.com/dsavelev/foliotrack/internal/server/repositories/transactions"
	"github.com/dsavelev/foliotrack/internal/server/repositories/users"
)

// RepositoryManager creates repositories bound to the given DBTX and runs
// schema migrations.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	ResetTokens(db dbx.DBTX) resettokens.Repository
	Investments(db dbx.DBTX) investments.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	ActivityLogs(db dbx.DBTX) activitylogs.Repository
	Stats(db dbx.DBTX) stats.Repository
}

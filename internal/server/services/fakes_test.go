package services

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dsavelev/foliotrack/internal/common"
	"github.com/dsavelev/foliotrack/internal/dbx"
	"github.com/dsavelev/foliotrack/internal/logging"
	"github.com/dsavelev/foliotrack/internal/server/models"
	activitylogsrepo "github.com/dsavelev/foliotrack/internal/server/repositories/activitylogs"
	investmentsrepo "github.com/dsavelev/foliotrack/internal/server/repositories/investments"
	refreshtokensrepo "github.com/dsavelev/foliotrack/internal/server/repositories/refreshtokens"
	"github.com/dsavelev/foliotrack/internal/server/repositories/repomanager"
	resettokensrepo "github.com/dsavelev/foliotrack/internal/server/repositories/resettokens"
	statsrepo "github.com/dsavelev/foliotrack/internal/server/repositories/stats"
	transactionsrepo "github.com/dsavelev/foliotrack/internal/server/repositories/transactions"
	usersrepo "github.com/dsavelev/foliotrack/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// --- in-memory fakes; stateful where the flow under test needs it ---

type memUsersRepo struct {
	users map[string]*models.User // by id

	createErr error
	updateErr error
}

func newMemUsersRepo(users ...*models.User) *memUsersRepo {
	m := &memUsersRepo{users: map[string]*models.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	cp := *u
	m.users[u.ID] = &cp
	return &cp, nil
}

func (m *memUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok && u.DeletedAt == nil {
		cp := *u
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (m *memUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email && u.DeletedAt == nil {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memUsersRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	if _, ok := m.users[u.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	m.users[u.ID] = &cp
	return &cp, nil
}

func (m *memUsersRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	u, ok := m.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memUsersRepo) SetActive(ctx context.Context, id string, active bool) error {
	u, ok := m.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.IsActive = active
	return nil
}

func (m *memUsersRepo) SoftDelete(ctx context.Context, id string) error {
	u, ok := m.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

func (m *memUsersRepo) List(ctx context.Context, f usersrepo.Filter) ([]*models.User, error) {
	var out []*models.User
	for _, u := range m.users {
		if u.DeletedAt == nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUsersRepo) Count(ctx context.Context, f usersrepo.Filter) (int, error) {
	list, _ := m.List(ctx, f)
	return len(list), nil
}

type memRefreshRepo struct {
	tokens map[string]*models.RefreshToken // by token string

	createErr error
	delErr    error
}

func newMemRefreshRepo() *memRefreshRepo {
	return &memRefreshRepo{tokens: map[string]*models.RefreshToken{}}
}

func (m *memRefreshRepo) Create(ctx context.Context, userID, token string, validity time.Duration) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, ExpiresAt: time.Now().Add(validity)}
	return nil
}

func (m *memRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := m.tokens[token]
	if !ok || !rt.ExpiresAt.After(time.Now()) {
		return nil, common.ErrorNotFound
	}
	cp := *rt
	return &cp, nil
}

func (m *memRefreshRepo) Delete(ctx context.Context, token string) error {
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.tokens, token)
	return nil
}

func (m *memRefreshRepo) DeleteAllForUser(ctx context.Context, userID string) error {
	for k, rt := range m.tokens {
		if rt.UserID == userID {
			delete(m.tokens, k)
		}
	}
	return nil
}

func (m *memRefreshRepo) countForUser(userID string) int {
	n := 0
	for _, rt := range m.tokens {
		if rt.UserID == userID {
			n++
		}
	}
	return n
}

type memResetRepo struct {
	tokens map[string]*models.PasswordResetToken // by token string
}

func newMemResetRepo() *memResetRepo {
	return &memResetRepo{tokens: map[string]*models.PasswordResetToken{}}
}

func (m *memResetRepo) Create(ctx context.Context, t *models.PasswordResetToken) error {
	cp := *t
	m.tokens[t.Token] = &cp
	return nil
}

func (m *memResetRepo) Find(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	if t, ok := m.tokens[token]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (m *memResetRepo) MarkUsed(ctx context.Context, id string) error {
	for _, t := range m.tokens {
		if t.ID == id {
			t.Used = true
			return nil
		}
	}
	return common.ErrorNotFound
}

type memInvestmentsRepo struct {
	items map[string]*models.Investment // by id

	activeOut []*models.Investment
	activeErr error
}

func newMemInvestmentsRepo(items ...*models.Investment) *memInvestmentsRepo {
	m := &memInvestmentsRepo{items: map[string]*models.Investment{}}
	for _, inv := range items {
		m.items[inv.ID] = inv
	}
	return m
}

func (m *memInvestmentsRepo) Create(ctx context.Context, inv *models.Investment) (*models.Investment, error) {
	cp := *inv
	m.items[inv.ID] = &cp
	return &cp, nil
}

func (m *memInvestmentsRepo) GetByIDAndUserID(ctx context.Context, id, userID string) (*models.Investment, error) {
	inv, ok := m.items[id]
	if !ok || inv.UserID != userID || inv.DeletedAt != nil {
		return nil, common.ErrorNotFound
	}
	cp := *inv
	return &cp, nil
}

func (m *memInvestmentsRepo) Update(ctx context.Context, inv *models.Investment) (*models.Investment, error) {
	if _, ok := m.items[inv.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	cp := *inv
	m.items[inv.ID] = &cp
	return &cp, nil
}

func (m *memInvestmentsRepo) SoftDelete(ctx context.Context, id string) error {
	inv, ok := m.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	now := time.Now()
	inv.DeletedAt = &now
	return nil
}

func (m *memInvestmentsRepo) ListActiveForUser(ctx context.Context, userID string) ([]*models.Investment, error) {
	if m.activeErr != nil {
		return nil, m.activeErr
	}
	return m.activeOut, nil
}

func (m *memInvestmentsRepo) List(ctx context.Context, userID string, f investmentsrepo.Filter) ([]*models.Investment, error) {
	var out []*models.Investment
	for _, inv := range m.items {
		if inv.UserID == userID && inv.DeletedAt == nil {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *memInvestmentsRepo) Count(ctx context.Context, userID string, f investmentsrepo.Filter) (int, error) {
	list, _ := m.List(ctx, userID, f)
	return len(list), nil
}

type memTransactionsRepo struct {
	items map[string]*models.Transaction // by id

	flows    []models.CashFlow
	flowsErr error
}

func newMemTransactionsRepo() *memTransactionsRepo {
	return &memTransactionsRepo{items: map[string]*models.Transaction{}}
}

func (m *memTransactionsRepo) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	cp := *tx
	m.items[tx.ID] = &cp
	return &cp, nil
}

func (m *memTransactionsRepo) GetByIDForUser(ctx context.Context, id, userID string) (*models.Transaction, error) {
	if tx, ok := m.items[id]; ok {
		cp := *tx
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (m *memTransactionsRepo) Update(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if _, ok := m.items[tx.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	cp := *tx
	m.items[tx.ID] = &cp
	return &cp, nil
}

func (m *memTransactionsRepo) Delete(ctx context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memTransactionsRepo) ListForUserInDateRange(ctx context.Context, userID string, from, to time.Time) ([]models.CashFlow, error) {
	if m.flowsErr != nil {
		return nil, m.flowsErr
	}
	return m.flows, nil
}

func (m *memTransactionsRepo) List(ctx context.Context, userID string, f transactionsrepo.Filter) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for _, tx := range m.items {
		out = append(out, tx)
	}
	return out, nil
}

func (m *memTransactionsRepo) Count(ctx context.Context, userID string, f transactionsrepo.Filter) (int, error) {
	return len(m.items), nil
}

func (m *memTransactionsRepo) ListByInvestment(ctx context.Context, investmentID, userID string) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for _, tx := range m.items {
		if tx.InvestmentID == investmentID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type memActivityRepo struct {
	entries []*models.ActivityLog
}

func (m *memActivityRepo) Create(ctx context.Context, log *models.ActivityLog) error {
	m.entries = append(m.entries, log)
	return nil
}

func (m *memActivityRepo) List(ctx context.Context, f activitylogsrepo.Filter) ([]*models.ActivityLog, error) {
	return m.entries, nil
}

func (m *memActivityRepo) Count(ctx context.Context, f activitylogsrepo.Filter) (int, error) {
	return len(m.entries), nil
}

type fakeStatsRepo struct {
	out *models.SystemStats
}

func (f *fakeStatsRepo) SystemStats(ctx context.Context) (*models.SystemStats, error) {
	return f.out, nil
}

type fakeRepoManager struct {
	users    *memUsersRepo
	refresh  *memRefreshRepo
	reset    *memResetRepo
	invs     *memInvestmentsRepo
	txs      *memTransactionsRepo
	activity *memActivityRepo
	stats    *fakeStatsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:    newMemUsersRepo(),
		refresh:  newMemRefreshRepo(),
		reset:    newMemResetRepo(),
		invs:     newMemInvestmentsRepo(),
		txs:      newMemTransactionsRepo(),
		activity: &memActivityRepo{},
		stats:    &fakeStatsRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.users }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.refresh
}
func (m *fakeRepoManager) ResetTokens(db dbx.DBTX) resettokensrepo.Repository { return m.reset }
func (m *fakeRepoManager) Investments(db dbx.DBTX) investmentsrepo.Repository { return m.invs }
func (m *fakeRepoManager) Transactions(db dbx.DBTX) transactionsrepo.Repository {
	return m.txs
}
func (m *fakeRepoManager) ActivityLogs(db dbx.DBTX) activitylogsrepo.Repository {
	return m.activity
}
func (m *fakeRepoManager) Stats(db dbx.DBTX) statsrepo.Repository { return m.stats }

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

func newTestActivityService(db *sql.DB, rm repomanager.RepositoryManager) *ActivityLogService {
	return NewActivityLogService(db, rm, logging.NewSlogLogger(slog.Default()))
}

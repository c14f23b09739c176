package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/client"
	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/store"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	mu sync.Mutex

	AuthErr    error
	SignUpErr  error
	PingErr    error
	SyncErr    error
	Profile    *models.UserProfile
	ProfileErr error

	AuthCalls   int
	SignUpCalls int
	SyncCalls   int
	LogoutCalls int

	LastUser     string
	LastPassword string
	LastEmail    string
	LastSnapshot []models.Expense
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) SignUp(ctx context.Context, username, password, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignUpCalls++
	f.LastUser, f.LastPassword, f.LastEmail = username, password, email
	return f.SignUpErr
}

func (f *fakeClient) Authenticate(ctx context.Context, username, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AuthCalls++
	f.LastUser, f.LastPassword = username, password
	return f.AuthErr
}

func (f *fakeClient) UserProfile(ctx context.Context) (*models.UserProfile, error) {
	return f.Profile, f.ProfileErr
}

func (f *fakeClient) SyncExpenses(ctx context.Context, snapshot []models.Expense) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SyncCalls++
	f.LastSnapshot = snapshot
	return f.SyncErr
}

func (f *fakeClient) Logout() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LogoutCalls++
}

var t0 = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()
	db, err := store.OpenDB(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return store.New(db, logging.Nop(), opts...)
}

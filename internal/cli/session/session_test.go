package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microshop-platform/shopctl/internal/cli/client"
	"github.com/microshop-platform/shopctl/internal/models"
)

// memSessionStore is an in-memory session record store for testing.
type memSessionStore struct {
	records map[string]models.StoredSession
	loadErr error
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{records: make(map[string]models.StoredSession)}
}

func (m *memSessionStore) SaveSession(storeURL string, record models.StoredSession) error {
	m.records[storeURL] = record
	return nil
}

func (m *memSessionStore) LoadSession(storeURL string) (models.StoredSession, bool, error) {
	if m.loadErr != nil {
		return models.StoredSession{}, false, m.loadErr
	}
	record, ok := m.records[storeURL]
	return record, ok, nil
}

func (m *memSessionStore) ClearSession(storeURL string) error {
	delete(m.records, storeURL)
	return nil
}

// stubGateway simulates the auth surface of the API client.
type stubGateway struct {
	token      string
	user       models.User
	loginErr   error
	tokenValid bool
	loginCalls int
}

func (g *stubGateway) Login(ctx context.Context, email, password string) (*client.LoginResponse, error) {
	g.loginCalls++
	if g.loginErr != nil {
		return nil, g.loginErr
	}
	return &client.LoginResponse{Token: g.token, User: g.user}, nil
}

func (g *stubGateway) ValidateToken(ctx context.Context, token string) bool {
	return g.tokenValid
}

const testStore = "https://shop.example.com"

func testUser(role models.Role) models.User {
	return models.User{ID: 1, Name: "Ana", Email: "a@b.com", Role: role}
}

func TestInitialize_NoStoredRecord(t *testing.T) {
	store := newMemSessionStore()
	mgr := NewManager(testStore, store, &stubGateway{})

	require.True(t, mgr.Snapshot().Loading)
	mgr.Initialize(context.Background())

	assert.False(t, mgr.Snapshot().Loading)
	assert.False(t, mgr.IsAuthenticated())
}

func TestInitialize_ValidStoredRecord(t *testing.T) {
	store := newMemSessionStore()
	user := testUser(models.RoleCustomer)
	require.NoError(t, store.SaveSession(testStore, models.StoredSession{Token: "t1", User: user}))

	mgr := NewManager(testStore, store, &stubGateway{tokenValid: true})
	mgr.Initialize(context.Background())

	assert.True(t, mgr.IsAuthenticated())
	got, ok := mgr.User()
	require.True(t, ok)
	assert.Equal(t, user, got)
	assert.Equal(t, "t1", mgr.Token())
}

func TestInitialize_InvalidToken_ErasesRecord(t *testing.T) {
	store := newMemSessionStore()
	require.NoError(t, store.SaveSession(testStore, models.StoredSession{Token: "stale", User: testUser(models.RoleCustomer)}))

	mgr := NewManager(testStore, store, &stubGateway{tokenValid: false})
	mgr.Initialize(context.Background())

	assert.False(t, mgr.IsAuthenticated())
	_, found, err := store.LoadSession(testStore)
	require.NoError(t, err)
	assert.False(t, found, "stored record should be erased after failed validation")
}

func TestInitialize_StoreReadError_ResolvesUnauthenticated(t *testing.T) {
	store := newMemSessionStore()
	store.loadErr = errors.New("keyring unavailable")

	mgr := NewManager(testStore, store, &stubGateway{tokenValid: true})
	mgr.Initialize(context.Background())

	assert.False(t, mgr.Snapshot().Loading)
	assert.False(t, mgr.IsAuthenticated())
}

func TestLogin_Success_PopulatesMemoryAndStore(t *testing.T) {
	store := newMemSessionStore()
	gw := &stubGateway{token: "t1", user: models.User{ID: 1, Role: models.RoleCustomer}}
	mgr := NewManager(testStore, store, gw)
	mgr.Initialize(context.Background())

	require.NoError(t, mgr.Login(context.Background(), "a@b.com", "secret"))

	assert.True(t, mgr.IsAuthenticated())
	assert.True(t, mgr.HasRole(models.RoleCustomer))

	record, found, err := store.LoadSession(testStore)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "t1", record.Token)
	assert.Equal(t, int64(1), record.User.ID)
}

func TestLogin_WithoutInitialize_SettlesLoading(t *testing.T) {
	store := newMemSessionStore()
	gw := &stubGateway{token: "t1", user: testUser(models.RoleCustomer)}
	mgr := NewManager(testStore, store, gw)

	require.NoError(t, mgr.Login(context.Background(), "a@b.com", "secret"))

	snap := mgr.Snapshot()
	assert.False(t, snap.Loading, "a signed-in session is not initializing")
	assert.True(t, snap.Authenticated)
}

func TestLogin_Failure_LeavesSessionUntouched(t *testing.T) {
	store := newMemSessionStore()
	user := testUser(models.RoleCustomer)
	require.NoError(t, store.SaveSession(testStore, models.StoredSession{Token: "t1", User: user}))

	gw := &stubGateway{tokenValid: true}
	mgr := NewManager(testStore, store, gw)
	mgr.Initialize(context.Background())
	require.True(t, mgr.IsAuthenticated())

	gw.loginErr = &client.APIError{Kind: client.ErrInvalidCredentials, Message: "bad creds"}
	err := mgr.Login(context.Background(), "a@b.com", "wrong")

	require.Error(t, err)
	assert.Equal(t, "bad creds", err.Error())
	assert.ErrorIs(t, err, client.ErrInvalidCredentials)

	// Prior session survives a failed login attempt.
	assert.True(t, mgr.IsAuthenticated())
	assert.Equal(t, "t1", mgr.Token())
}

func TestLogout_AlwaysClears(t *testing.T) {
	tests := []struct {
		name          string
		authenticated bool
	}{
		{"after sign-in", true},
		{"already signed out", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemSessionStore()
			gw := &stubGateway{token: "t1", user: testUser(models.RoleAdmin)}
			mgr := NewManager(testStore, store, gw)
			mgr.Initialize(context.Background())

			if tt.authenticated {
				require.NoError(t, mgr.Login(context.Background(), "a@b.com", "secret"))
			}

			mgr.Logout()

			assert.False(t, mgr.IsAuthenticated())
			assert.Empty(t, mgr.Token())
			_, found, err := store.LoadSession(testStore)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestHasRole(t *testing.T) {
	tests := []struct {
		name     string
		signedIn bool
		role     models.Role
		check    models.Role
		want     bool
	}{
		{"admin has admin", true, models.RoleAdmin, models.RoleAdmin, true},
		{"customer is not admin", true, models.RoleCustomer, models.RoleAdmin, false},
		{"seller has seller", true, models.RoleSeller, models.RoleSeller, true},
		{"unauthenticated has no role", false, "", models.RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemSessionStore()
			gw := &stubGateway{token: "t1", user: testUser(tt.role)}
			mgr := NewManager(testStore, store, gw)
			mgr.Initialize(context.Background())

			if tt.signedIn {
				require.NoError(t, mgr.Login(context.Background(), "a@b.com", "secret"))
			}

			assert.Equal(t, tt.want, mgr.HasRole(tt.check))
		})
	}
}

func TestIsAdmin(t *testing.T) {
	store := newMemSessionStore()
	gw := &stubGateway{token: "t1", user: testUser(models.RoleAdmin)}
	mgr := NewManager(testStore, store, gw)
	mgr.Initialize(context.Background())
	require.NoError(t, mgr.Login(context.Background(), "a@b.com", "secret"))

	assert.True(t, mgr.IsAdmin())

	mgr.Logout()
	assert.False(t, mgr.IsAdmin())
}

func TestSnapshot_ReflectsState(t *testing.T) {
	store := newMemSessionStore()
	gw := &stubGateway{token: "t1", user: testUser(models.RoleSeller)}
	mgr := NewManager(testStore, store, gw)

	snap := mgr.Snapshot()
	assert.True(t, snap.Loading)
	assert.False(t, snap.Authenticated)

	mgr.Initialize(context.Background())
	require.NoError(t, mgr.Login(context.Background(), "a@b.com", "secret"))

	snap = mgr.Snapshot()
	assert.False(t, snap.Loading)
	assert.True(t, snap.Authenticated)
	assert.Equal(t, models.RoleSeller, snap.Role)
}

func ExampleManager_Login() {
	store := newMemSessionStore()
	gw := &stubGateway{token: "t1", user: models.User{ID: 1, Name: "Ana", Role: models.RoleCustomer}}
	mgr := NewManager("https://shop.example.com", store, gw)
	mgr.Initialize(context.Background())

	if err := mgr.Login(context.Background(), "a@b.com", "secret"); err == nil {
		fmt.Println(mgr.HasRole(models.RoleCustomer))
	}
	// Output: true
}

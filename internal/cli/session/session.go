// Package session owns the single source of truth for "who is signed in,
// with what token, and what role" for the lifetime of a shopctl run.
package session

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/microshop-platform/shopctl/internal/cli/auth"
	"github.com/microshop-platform/shopctl/internal/cli/client"
	"github.com/microshop-platform/shopctl/internal/models"
)

// Gateway is the authentication surface of the API client that the manager
// depends on. Satisfied by *client.Client; tests substitute a stub.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*client.LoginResponse, error)
	ValidateToken(ctx context.Context, token string) bool
}

// Snapshot is an immutable view of the session for access decisions.
type Snapshot struct {
	Loading       bool
	Authenticated bool
	Role          models.Role
}

// Manager holds the in-memory session for one storefront and keeps it in
// lockstep with the durable record. Only Initialize, Login and Logout mutate
// the token/user pair; both fields are always set or cleared together.
//
// Commands run sequentially, so the manager takes no lock. Two overlapping
// Login calls would race and the later response would win; nothing in the
// CLI triggers that.
type Manager struct {
	storeURL string
	store    auth.SessionStore
	gateway  Gateway

	token   string
	user    models.User
	loading bool
}

// NewManager creates a session manager for the given storefront. The session
// starts empty with loading set until Initialize completes.
func NewManager(storeURL string, store auth.SessionStore, gateway Gateway) *Manager {
	return &Manager{
		storeURL: storeURL,
		store:    store,
		gateway:  gateway,
		loading:  true,
	}
}

// Initialize restores the session from the durable record, revalidating the
// stored token against the API. It never fails outwardly: any problem (absent
// record, rejected token, unreachable API) resolves to "not authenticated"
// and erases the stored record, so startup can't show an error state. The
// distinct causes are only logged.
func (m *Manager) Initialize(ctx context.Context) {
	defer func() { m.loading = false }()

	record, found, err := m.store.LoadSession(m.storeURL)
	if err != nil {
		log.Debug().Err(err).Msg("Failed to read stored session, discarding it")
		_ = m.store.ClearSession(m.storeURL)
		return
	}
	if !found {
		return
	}

	if !m.gateway.ValidateToken(ctx, record.Token) {
		log.Debug().Str("email", record.User.Email).Msg("Stored token no longer valid, signing out")
		_ = m.store.ClearSession(m.storeURL)
		return
	}

	m.token = record.Token
	m.user = record.User
}

// Login exchanges credentials for a session and persists it. On failure the
// in-memory session is left exactly as it was and the error carries the
// human-readable reason from the API.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.gateway.Login(ctx, email, password)
	if err != nil {
		return err
	}

	record := models.StoredSession{Token: resp.Token, User: resp.User}
	if err := m.store.SaveSession(m.storeURL, record); err != nil {
		return err
	}

	m.token = resp.Token
	m.user = resp.User
	// A fresh login settles the session even when Initialize never ran.
	m.loading = false
	return nil
}

// Logout erases the durable record and the in-memory session unconditionally.
// It never fails; a store that can't be cleared is only logged.
func (m *Manager) Logout() {
	if err := m.store.ClearSession(m.storeURL); err != nil {
		log.Warn().Err(err).Msg("Failed to clear stored session")
	}
	m.token = ""
	m.user = models.User{}
}

// IsAuthenticated reports whether a token and user are both present.
func (m *Manager) IsAuthenticated() bool {
	return m.token != "" && m.user != (models.User{})
}

// HasRole reports whether an authenticated user carries the given role.
func (m *Manager) HasRole(role models.Role) bool {
	return m.IsAuthenticated() && m.user.Role == role
}

// IsAdmin reports whether the current user is an administrator.
func (m *Manager) IsAdmin() bool {
	return m.HasRole(models.RoleAdmin)
}

// User returns the cached user record, if authenticated.
func (m *Manager) User() (models.User, bool) {
	if !m.IsAuthenticated() {
		return models.User{}, false
	}
	return m.user, true
}

// Token returns the current bearer token, empty when unauthenticated.
func (m *Manager) Token() string {
	return m.token
}

// Snapshot returns the current session view for access decisions.
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{
		Loading:       m.loading,
		Authenticated: m.IsAuthenticated(),
		Role:          m.user.Role,
	}
}

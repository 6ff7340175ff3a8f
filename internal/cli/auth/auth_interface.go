package auth

import "github.com/microshop-platform/shopctl/internal/models"

// SessionStore defines the interface for durable session record storage.
// This allows us to mock the keyring in tests.
type SessionStore interface {
	SaveSession(storeURL string, record models.StoredSession) error
	LoadSession(storeURL string) (models.StoredSession, bool, error)
	ClearSession(storeURL string) error
}

// defaultSessionStore implements SessionStore using the OS keyring.
type defaultSessionStore struct{}

var Default SessionStore = &defaultSessionStore{}

func (d *defaultSessionStore) SaveSession(storeURL string, record models.StoredSession) error {
	return SaveSession(storeURL, record)
}

func (d *defaultSessionStore) LoadSession(storeURL string) (models.StoredSession, bool, error) {
	return LoadSession(storeURL)
}

func (d *defaultSessionStore) ClearSession(storeURL string) error {
	return ClearSession(storeURL)
}

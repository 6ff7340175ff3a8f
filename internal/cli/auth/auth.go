package auth

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/microshop-platform/shopctl/internal/models"
)

const (
	service = "shopctl"

	tokenKey = "token"
	userKey  = "user"
)

// keyFor scopes the two fixed record keys per storefront host, so sessions
// against different stores don't clobber each other.
func keyFor(storeURL, name string) string {
	return fmt.Sprintf("%s-%s", name, storeURL)
}

// SaveSession persists the token/user pair in the OS keychain/credential
// manager. Both entries are written together; a failure on the second entry
// rolls back the first so a partial record is never left behind.
func SaveSession(storeURL string, record models.StoredSession) error {
	userData, err := json.Marshal(record.User)
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}

	if err := keyring.Set(service, keyFor(storeURL, tokenKey), record.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	if err := keyring.Set(service, keyFor(storeURL, userKey), string(userData)); err != nil {
		_ = keyring.Delete(service, keyFor(storeURL, tokenKey))
		return fmt.Errorf("failed to save user record: %w", err)
	}
	return nil
}

// LoadSession retrieves the stored token/user pair. The boolean is false when
// no record exists; a half-written record counts as absent.
func LoadSession(storeURL string) (models.StoredSession, bool, error) {
	var record models.StoredSession

	token, err := keyring.Get(service, keyFor(storeURL, tokenKey))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return record, false, nil
		}
		return record, false, fmt.Errorf("failed to load token: %w", err)
	}

	userData, err := keyring.Get(service, keyFor(storeURL, userKey))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return record, false, nil
		}
		return record, false, fmt.Errorf("failed to load user record: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(userData), &user); err != nil {
		return record, false, fmt.Errorf("failed to decode user record: %w", err)
	}

	record.Token = token
	record.User = user
	return record, true, nil
}

// ClearSession removes the stored token/user pair. Clearing an absent record
// is not an error.
func ClearSession(storeURL string) error {
	if err := keyring.Delete(service, keyFor(storeURL, tokenKey)); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	if err := keyring.Delete(service, keyFor(storeURL, userKey)); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete user record: %w", err)
	}
	return nil
}

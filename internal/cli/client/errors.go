package client

import "errors"

// Failure classes the Microshop API can produce. Callers match with errors.Is;
// the message shown to the user comes from the wrapping APIError.
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrRegistration         = errors.New("registration rejected")
	ErrAuthorizationExpired = errors.New("authorization expired")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrNotFound             = errors.New("not found")
	ErrNetwork              = errors.New("network error")
)

// APIError is a normalized API failure: a failure class plus the
// human-readable reason, taken from the response body when the API supplied
// one and a generic fallback otherwise.
type APIError struct {
	Kind    error
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

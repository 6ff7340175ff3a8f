package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/microshop-platform/shopctl/internal/models"
)

// LoginResponse is what the API returns on a successful credential exchange.
type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// RegisterRequest is the payload for creating a new account. Role is optional;
// the API defaults to CUSTOMER.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role,omitempty"`
}

// Login exchanges credentials for a bearer token and the account record.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	reqBody := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{
		Email:    email,
		Password: password,
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", "", reqBody)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, netError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(ErrInvalidCredentials, resp, "could not sign in. Check your credentials")
	}

	var loginResp LoginResponse
	if err := decode(resp, &loginResp); err != nil {
		return nil, err
	}

	return &loginResp, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, reqBody RegisterRequest) (*models.User, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/users", "", reqBody)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, netError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, apiError(ErrRegistration, resp, "could not register the account. Try again")
	}

	var user models.User
	if err := decode(resp, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// ValidateToken reports whether the stored token is still accepted by the API.
// It probes a protected endpoint and treats any failure (401, network error,
// malformed response) as invalid; the caller cannot distinguish "expired" from
// "could not confirm" and must not need to. Never returns an error.
func (c *Client) ValidateToken(ctx context.Context, token string) bool {
	err := c.probeToken(ctx, token)
	if err == nil {
		return true
	}
	if errors.Is(err, ErrAuthorizationExpired) {
		log.Debug().Msg("Stored token no longer accepted by the API")
	} else {
		log.Debug().Err(err).Msg("Token validation probe failed")
	}
	return false
}

// probeToken performs the actual probe. The deployed API has no token
// introspection endpoint, so an authenticated GET /users stands in: a 200
// means the token is still honored. A 401 comes back as
// ErrAuthorizationExpired so the caller can tell "confirmed invalid" from
// "could not confirm".
func (c *Client) probeToken(ctx context.Context, token string) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/users", token, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return netError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return apiError(ErrAuthorizationExpired, resp, "authorization expired. Sign in again")
	default:
		return apiError(ErrNetwork, resp, "could not confirm the stored session")
	}
}

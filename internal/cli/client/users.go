package client

import (
	"context"
	"net/http"

	"github.com/microshop-platform/shopctl/internal/models"
)

// ListUsers returns all registered accounts. Requires a valid bearer token;
// the admin area is the only consumer.
func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/users", token, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, netError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, apiError(ErrUnauthorized, resp, "not authorized. Sign in again")
	case resp.StatusCode != http.StatusOK:
		return nil, apiError(ErrNetwork, resp, "could not load users. Try again")
	}

	var users []models.User
	if err := decode(resp, &users); err != nil {
		return nil, err
	}

	return users, nil
}

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/microshop-platform/shopctl/internal/models"
)

// ProductInput is the payload for creating or updating a catalog entry.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
}

// ListProducts returns the full catalog. The endpoint is public.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/products", "", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, netError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(ErrNetwork, resp, "could not load the catalog. Try again")
	}

	var products []models.Product
	if err := decode(resp, &products); err != nil {
		return nil, err
	}

	return products, nil
}

// GetProduct returns a single catalog entry by id.
func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), "", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, netError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apiError(ErrNotFound, resp, "product not found")
	case resp.StatusCode != http.StatusOK:
		return nil, apiError(ErrNetwork, resp, "could not load the product. Try again")
	}

	var product models.Product
	if err := decode(resp, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// SearchProducts returns catalog entries in the given category.
func (c *Client) SearchProducts(ctx context.Context, category string) ([]models.Product, error) {
	path := fmt.Sprintf("/products/search?category=%s", url.QueryEscape(category))
	req, err := c.newRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, netError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(ErrNetwork, resp, "could not search the catalog. Try again")
	}

	var products []models.Product
	if err := decode(resp, &products); err != nil {
		return nil, err
	}

	return products, nil
}

// CreateProduct adds a new catalog entry. Requires a valid bearer token.
func (c *Client) CreateProduct(ctx context.Context, token string, input ProductInput) (*models.Product, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/products", token, input)
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
	case resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK:
		return nil, apiError(ErrNetwork, resp, "could not create the product. Try again")
	}

	var product models.Product
	if err := decode(resp, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// UpdateProduct replaces an existing catalog entry. Requires a valid bearer token.
func (c *Client) UpdateProduct(ctx context.Context, token string, id int64, input ProductInput) (*models.Product, error) {
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), token, input)
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
	case resp.StatusCode == http.StatusNotFound:
		return nil, apiError(ErrNotFound, resp, "product not found")
	case resp.StatusCode != http.StatusOK:
		return nil, apiError(ErrNetwork, resp, "could not update the product. Try again")
	}

	var product models.Product
	if err := decode(resp, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// DeleteProduct removes a catalog entry. Requires a valid bearer token.
func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), token, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return netError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return apiError(ErrUnauthorized, resp, "not authorized. Sign in again")
	case resp.StatusCode == http.StatusNotFound:
		return apiError(ErrNotFound, resp, "product not found")
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent:
		return apiError(ErrNetwork, resp, "could not delete the product. Try again")
	}

	return nil
}

package commands

import (
	"context"
	"fmt"

	"github.com/microshop-platform/shopctl/internal/cli/client"
	"github.com/microshop-platform/shopctl/internal/cli/config"
	"github.com/microshop-platform/shopctl/internal/models"
)

func testStore() *config.Store {
	return &config.Store{URL: "http://shop.test", Alias: "test-store"}
}

// memSessionStore is an in-memory stand-in for the OS keyring.
type memSessionStore struct {
	records map[string]models.StoredSession
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{records: make(map[string]models.StoredSession)}
}

func (m *memSessionStore) SaveSession(storeURL string, record models.StoredSession) error {
	m.records[storeURL] = record
	return nil
}

func (m *memSessionStore) LoadSession(storeURL string) (models.StoredSession, bool, error) {
	record, ok := m.records[storeURL]
	return record, ok, nil
}

func (m *memSessionStore) ClearSession(storeURL string) error {
	delete(m.records, storeURL)
	return nil
}

// fakeAPI simulates the storefront API without network access.
type fakeAPI struct {
	loginResp  *client.LoginResponse
	loginErr   error
	tokenValid bool

	registered   *models.User
	registerErr  error
	lastRegister client.RegisterRequest

	products   []models.Product
	productErr error
	users      []models.User

	lastToken string
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*client.LoginResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func (f *fakeAPI) ValidateToken(ctx context.Context, token string) bool {
	return f.tokenValid
}

func (f *fakeAPI) Register(ctx context.Context, req client.RegisterRequest) (*models.User, error) {
	f.lastRegister = req
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registered, nil
}

func (f *fakeAPI) ListProducts(ctx context.Context) ([]models.Product, error) {
	return f.products, f.productErr
}

func (f *fakeAPI) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, &client.APIError{Kind: client.ErrNotFound, Message: "product not found"}
}

func (f *fakeAPI) SearchProducts(ctx context.Context, category string) ([]models.Product, error) {
	var matched []models.Product
	for _, p := range f.products {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched, f.productErr
}

func (f *fakeAPI) CreateProduct(ctx context.Context, token string, input client.ProductInput) (*models.Product, error) {
	f.lastToken = token
	p := models.Product{
		ID:       int64(len(f.products) + 1),
		Name:     input.Name,
		Price:    input.Price,
		Stock:    input.Stock,
		Category: input.Category,
	}
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeAPI) UpdateProduct(ctx context.Context, token string, id int64, input client.ProductInput) (*models.Product, error) {
	f.lastToken = token
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].Name = input.Name
			f.products[i].Price = input.Price
			f.products[i].Stock = input.Stock
			f.products[i].Category = input.Category
			return &f.products[i], nil
		}
	}
	return nil, &client.APIError{Kind: client.ErrNotFound, Message: "product not found"}
}

func (f *fakeAPI) DeleteProduct(ctx context.Context, token string, id int64) error {
	f.lastToken = token
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return &client.APIError{Kind: client.ErrNotFound, Message: "product not found"}
}

func (f *fakeAPI) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	f.lastToken = token
	if !f.tokenValid {
		return nil, &client.APIError{Kind: client.ErrUnauthorized, Message: "not authorized"}
	}
	return f.users, nil
}

// signedInStore returns a session store pre-populated with a valid session.
func signedInStore(role models.Role) *memSessionStore {
	store := newMemSessionStore()
	store.records[testStore().URL] = models.StoredSession{
		Token: "t1",
		User:  models.User{ID: 1, Name: "Ana", Email: "a@b.com", Role: role},
	}
	return store
}

var errNoPrompt = fmt.Errorf("password prompt should not be used in tests")

func noPrompt() (string, error) {
	return "", errNoPrompt
}

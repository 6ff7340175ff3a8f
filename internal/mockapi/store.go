package mockapi

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/microshop-platform/shopctl/internal/models"
)

// Store holds the mock accounts and catalog in memory. All state is lost on
// restart; that's the point of a dev stand-in.
type Store struct {
	mu            sync.RWMutex
	users         map[int64]*account
	products      map[int64]models.Product
	nextUserID    int64
	nextProductID int64
}

type account struct {
	models.User
	passwordHash []byte
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[int64]*account),
		products: make(map[int64]models.Product),
	}
}

// CreateUser registers an account with a bcrypt-hashed password. Role defaults
// to CUSTOMER like the real user service.
func (s *Store) CreateUser(name, email, password string, role models.Role) (models.User, error) {
	if role == "" {
		role = models.RoleCustomer
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return models.User{}, fmt.Errorf("email %s is already registered", email)
		}
	}

	s.nextUserID++
	user := models.User{
		ID:        s.nextUserID,
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	s.users[user.ID] = &account{User: user, passwordHash: hash}

	return user, nil
}

// Authenticate verifies credentials and returns the matching account.
func (s *Store) Authenticate(email, password string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) == nil {
				return u.User, true
			}
			return models.User{}, false
		}
	}
	return models.User{}, false
}

// GetUser returns an account by id.
func (s *Store) GetUser(id int64) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, false
	}
	return u.User, true
}

// ListUsers returns all accounts ordered by id.
func (s *Store) ListUsers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u.User)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// CreateProduct adds a catalog entry.
func (s *Store) CreateProduct(input ProductInput) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextProductID++
	product := models.Product{
		ID:          s.nextProductID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
		CreatedAt:   time.Now().UTC(),
	}
	s.products[product.ID] = product
	return product
}

// GetProduct returns a catalog entry by id.
func (s *Store) GetProduct(id int64) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	return p, ok
}

// ListProducts returns the catalog ordered by id.
func (s *Store) ListProducts() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}

// SearchProducts returns catalog entries matching the category,
// case-insensitively.
func (s *Store) SearchProducts(category string) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Product
	for _, p := range s.products {
		if strings.EqualFold(p.Category, category) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched
}

// UpdateProduct replaces a catalog entry, keeping id and creation time.
func (s *Store) UpdateProduct(id int64, input ProductInput) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return models.Product{}, false
	}

	p.Name = input.Name
	p.Description = input.Description
	p.Price = input.Price
	p.Stock = input.Stock
	p.Category = input.Category
	s.products[id] = p
	return p, true
}

// DeleteProduct removes a catalog entry.
func (s *Store) DeleteProduct(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return false
	}
	delete(s.products, id)
	return true
}

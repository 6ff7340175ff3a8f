package mockapi

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/microshop-platform/shopctl/internal/models"
)

// Seed describes the accounts and catalog the mock server starts with.
type Seed struct {
	Users    []SeedUser    `yaml:"users"`
	Products []SeedProduct `yaml:"products"`
}

// SeedUser is an account created at startup.
type SeedUser struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// SeedProduct is a catalog entry created at startup.
type SeedProduct struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	Stock       int     `yaml:"stock"`
	Category    string  `yaml:"category"`
}

// DefaultSeed is what the server starts with when no seed file is given: one
// admin account and a small browsable catalog.
func DefaultSeed() *Seed {
	return &Seed{
		Users: []SeedUser{
			{Name: "Admin", Email: "admin@microshop.local", Password: "admin123", Role: "ADMIN"},
		},
		Products: []SeedProduct{
			{Name: "Mechanical Keyboard", Description: "Tactile switches, TKL layout", Price: 89.99, Stock: 12, Category: "electronics"},
			{Name: "Ceramic Mug", Description: "350ml, dishwasher safe", Price: 9.50, Stock: 40, Category: "kitchen"},
			{Name: "Desk Lamp", Description: "Adjustable arm, warm light", Price: 34.90, Stock: 7, Category: "home"},
		},
	}
}

// LoadSeedFile reads a YAML seed definition.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return &seed, nil
}

// Apply loads the seed into the store.
func (s *Store) Apply(seed *Seed) error {
	for _, u := range seed.Users {
		role := models.Role(u.Role)
		if u.Role != "" && !role.Valid() {
			return fmt.Errorf("seed user %s has unknown role %q", u.Email, u.Role)
		}
		if _, err := s.CreateUser(u.Name, u.Email, u.Password, role); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
	}

	for _, p := range seed.Products {
		s.CreateProduct(ProductInput{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Stock:       p.Stock,
			Category:    p.Category,
		})
	}

	return nil
}

package models

import "time"

// Role is the authorization level carried on a user account.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
	RoleSeller   Role = "SELLER"
)

// Valid reports whether r is a role the user service issues.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer, RoleSeller:
		return true
	}
	return false
}

// User represents a Microshop account as returned by the user service.
// The storefront only ever holds a cached copy; the remote API owns the record.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Product represents a catalog entry from the product service.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

// StoredSession is the durable token/user pair that survives between runs.
// Invariant: both fields are present or the record does not exist at all.
type StoredSession struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

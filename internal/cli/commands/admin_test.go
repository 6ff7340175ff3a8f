package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microshop-platform/shopctl/internal/cli/client"
	"github.com/microshop-platform/shopctl/internal/models"
)

func TestRunUsers_AsAdmin(t *testing.T) {
	api := &fakeAPI{
		tokenValid: true,
		users: []models.User{
			{ID: 1, Name: "Ana", Email: "a@b.com", Role: models.RoleAdmin, CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 2, Name: "Carlos", Email: "c@b.com", Role: models.RoleCustomer},
		},
	}
	var out bytes.Buffer

	err := runUsers("",
		WithStore(testStore()),
		WithAPIClient(api),
		WithSessionStore(signedInStore(models.RoleAdmin)),
		WithOutput(&out),
	)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Ana")
	assert.Contains(t, out.String(), "Carlos")
	assert.Contains(t, out.String(), "2025-03-01")
	assert.Equal(t, "t1", api.lastToken)
}

func TestRunUsers_CustomerIsDenied(t *testing.T) {
	// Authenticated but under-privileged: an authorization failure, not an
	// authentication one.
	err := runUsers("",
		WithStore(testStore()),
		WithAPIClient(&fakeAPI{tokenValid: true}),
		WithSessionStore(signedInStore(models.RoleCustomer)),
		WithOutput(&bytes.Buffer{}),
	)
	require.Error(t, err)
	assert.ErrorContains(t, err, "administrator access")
}

func TestRunUsers_SignedOutIsRedirectedToLogin(t *testing.T) {
	err := runUsers("",
		WithStore(testStore()),
		WithAPIClient(&fakeAPI{}),
		WithSessionStore(newMemSessionStore()),
		WithOutput(&bytes.Buffer{}),
	)
	require.Error(t, err)
	assert.ErrorContains(t, err, "not signed in")
}

func TestRunUsers_StaleTokenErasesSession(t *testing.T) {
	sessions := signedInStore(models.RoleAdmin)

	err := runUsers("",
		WithStore(testStore()),
		WithAPIClient(&fakeAPI{tokenValid: false}),
		WithSessionStore(sessions),
		WithOutput(&bytes.Buffer{}),
	)
	require.Error(t, err)
	assert.ErrorContains(t, err, "not signed in")

	_, found, _ := sessions.LoadSession(testStore().URL)
	assert.False(t, found, "stale record should be erased during initialization")
}

func TestRunProductCreate_AsAdmin(t *testing.T) {
	api := &fakeAPI{tokenValid: true}
	var out bytes.Buffer

	err := runProductCreate(client.ProductInput{
		Name:     "Desk Lamp",
		Price:    34.9,
		Stock:    5,
		Category: "home",
	}, "",
		WithStore(testStore()),
		WithAPIClient(api),
		WithSessionStore(signedInStore(models.RoleAdmin)),
		WithOutput(&out),
	)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "✓ Created product 1 (Desk Lamp)")
	assert.Equal(t, "t1", api.lastToken)
	require.Len(t, api.products, 1)
	assert.Equal(t, "home", api.products[0].Category)
}

func TestRunProductCreate_SellerIsDenied(t *testing.T) {
	api := &fakeAPI{tokenValid: true}

	err := runProductCreate(client.ProductInput{Name: "X", Price: 1, Category: "misc"}, "",
		WithStore(testStore()),
		WithAPIClient(api),
		WithSessionStore(signedInStore(models.RoleSeller)),
		WithOutput(&bytes.Buffer{}),
	)
	require.Error(t, err)
	assert.ErrorContains(t, err, "administrator access")
	assert.Empty(t, api.products, "denied command must not reach the API")
}

func TestRunProductUpdate_AsAdmin(t *testing.T) {
	api := &fakeAPI{
		tokenValid: true,
		products:   []models.Product{{ID: 3, Name: "Old Name", Price: 10, Category: "misc"}},
	}
	var out bytes.Buffer

	err := runProductUpdate(3, client.ProductInput{Name: "New Name", Price: 12, Stock: 2, Category: "misc"}, "",
		WithStore(testStore()),
		WithAPIClient(api),
		WithSessionStore(signedInStore(models.RoleAdmin)),
		WithOutput(&out),
	)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "✓ Updated product 3 (New Name)")
	assert.Equal(t, "New Name", api.products[0].Name)
}

func TestRunProductDelete_AsAdmin(t *testing.T) {
	api := &fakeAPI{
		tokenValid: true,
		products:   []models.Product{{ID: 3, Name: "Doomed", Price: 10, Category: "misc"}},
	}
	var out bytes.Buffer

	err := runProductDelete(3, "",
		WithStore(testStore()),
		WithAPIClient(api),
		WithSessionStore(signedInStore(models.RoleAdmin)),
		WithOutput(&out),
	)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "✓ Deleted product 3")
	assert.Empty(t, api.products)
}

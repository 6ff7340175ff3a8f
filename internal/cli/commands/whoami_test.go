package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microshop-platform/shopctl/internal/models"
)

func TestRunWhoami_SignedIn(t *testing.T) {
	var out bytes.Buffer

	err := runWhoami("",
		WithStore(testStore()),
		WithAPIClient(&fakeAPI{tokenValid: true}),
		WithSessionStore(signedInStore(models.RoleCustomer)),
		WithOutput(&out),
	)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Name:  Ana")
	assert.Contains(t, out.String(), "Email: a@b.com")
	assert.Contains(t, out.String(), "Role:  CUSTOMER")
}

func TestRunWhoami_SignedOut(t *testing.T) {
	err := runWhoami("",
		WithStore(testStore()),
		WithAPIClient(&fakeAPI{}),
		WithSessionStore(newMemSessionStore()),
		WithOutput(&bytes.Buffer{}),
	)
	require.Error(t, err)
	assert.ErrorContains(t, err, "not signed in")
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	got, ok := tokenExpiry(signed)
	require.True(t, ok)
	assert.Equal(t, exp.Format("2006-01-02 15:04 MST"), got)
}

func TestTokenExpiry_OpaqueToken(t *testing.T) {
	_, ok := tokenExpiry("not-a-jwt")
	assert.False(t, ok)

	// A JWT without an exp claim has nothing to display either.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, ok = tokenExpiry(signed)
	assert.False(t, ok)
}

package storeselect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microshop-platform/shopctl/internal/cli/config"
	"github.com/microshop-platform/shopctl/internal/cli/userconfig"
)

// isolateUserConfig redirects ~/.config/shopctl to a throwaway directory so
// tests never touch the real selected-store file.
func isolateUserConfig(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func twoStoreConfig() *config.Config {
	return &config.Config{
		Stores: []config.Store{
			{URL: "https://shop.example.com", Alias: "production"},
			{URL: "https://staging.example.com", Alias: "staging"},
		},
	}
}

func TestResolveStore_AliasFlagWins(t *testing.T) {
	isolateUserConfig(t)
	require.NoError(t, userconfig.SetSelectedStore("https://staging.example.com"))

	store, err := ResolveStore(twoStoreConfig(), "production")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com", store.URL)
}

func TestResolveStore_UnknownAlias(t *testing.T) {
	isolateUserConfig(t)

	_, err := ResolveStore(twoStoreConfig(), "nope")
	require.Error(t, err)
}

func TestResolveStore_SelectedStore(t *testing.T) {
	isolateUserConfig(t)
	require.NoError(t, userconfig.SetSelectedStore("https://staging.example.com"))

	store, err := ResolveStore(twoStoreConfig(), "")
	require.NoError(t, err)
	assert.Equal(t, "staging", store.Alias)
}

func TestResolveStore_StaleSelectionFallsThrough(t *testing.T) {
	isolateUserConfig(t)
	require.NoError(t, userconfig.SetSelectedStore("https://gone.example.com"))

	cfg := &config.Config{Stores: []config.Store{{URL: "https://shop.example.com", Alias: "production"}}}
	store, err := ResolveStore(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "production", store.Alias)

	// The stale selection is replaced by the resolved store.
	selected, err := userconfig.GetSelectedStore()
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com", selected)
}

func TestResolveStore_SingleStoreIsDefault(t *testing.T) {
	isolateUserConfig(t)

	cfg := &config.Config{Stores: []config.Store{{URL: "https://shop.example.com", Alias: "production"}}}
	store, err := ResolveStore(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com", store.URL)

	// The choice is persisted so later commands skip resolution prompts.
	selected, err := userconfig.GetSelectedStore()
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com", selected)
}

func TestGetStoreByURLOrAlias(t *testing.T) {
	cfg := twoStoreConfig()

	byURL, err := GetStoreByURLOrAlias(cfg, "https://staging.example.com")
	require.NoError(t, err)
	assert.Equal(t, "staging", byURL.Alias)

	byAlias, err := GetStoreByURLOrAlias(cfg, "production")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com", byAlias.URL)

	_, err = GetStoreByURLOrAlias(cfg, "missing")
	require.Error(t, err)
}

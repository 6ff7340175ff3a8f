package storeselect

import (
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/microshop-platform/shopctl/internal/cli/config"
	"github.com/microshop-platform/shopctl/internal/cli/userconfig"
)

// ResolveStore determines which storefront to use based on the following priority:
// 1. If storeAlias flag is provided, use that store
// 2. If user has a selected store in their local config, use that
// 3. If only one store in project config, use that
// 4. Otherwise, prompt user to select a store interactively
func ResolveStore(projectConfig *config.Config, storeAlias string) (*config.Store, error) {
	// Priority 1: Use store alias if provided
	if storeAlias != "" {
		store, err := projectConfig.GetStoreByAlias(storeAlias)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	// Priority 2: Use selected store from user config
	selectedURL, err := userconfig.GetSelectedStore()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if selectedURL != "" {
		// Find store by URL in project config
		store, err := getStoreByURL(projectConfig, selectedURL)
		if err != nil {
			// Selected store no longer exists in project config, clear it and continue
			_ = userconfig.SetSelectedStore("")
		} else {
			return store, nil
		}
	}

	// Priority 3: If only one store, use the default automatically
	if len(projectConfig.Stores) == 1 {
		store, err := projectConfig.GetDefaultStore()
		if err != nil {
			return nil, err
		}
		// Save it as the selected store
		if err := userconfig.SetSelectedStore(store.URL); err != nil {
			// Don't fail if we can't save, just continue
			fmt.Printf("Warning: failed to save selected store: %v\n", err)
		}
		return store, nil
	}

	// Priority 4: Prompt user to select a store
	store, err := PromptStoreSelection(projectConfig)
	if err != nil {
		return nil, err
	}

	// Save the selected store
	if err := userconfig.SetSelectedStore(store.URL); err != nil {
		// Don't fail if we can't save, just continue
		fmt.Printf("Warning: failed to save selected store: %v\n", err)
	}

	return store, nil
}

// PromptStoreSelection shows an interactive prompt for the user to select a storefront
func PromptStoreSelection(projectConfig *config.Config) (*config.Store, error) {
	if len(projectConfig.Stores) == 0 {
		return nil, fmt.Errorf("no stores configured in %s", config.ConfigFileName)
	}

	// Create display labels for each store
	type storeOption struct {
		Label string
		Store *config.Store
	}

	options := make([]storeOption, len(projectConfig.Stores))
	for i := range projectConfig.Stores {
		store := &projectConfig.Stores[i]
		label := fmt.Sprintf("%s (%s)", store.Alias, store.URL)
		options[i] = storeOption{
			Label: label,
			Store: store,
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	prompt := promptui.Select{
		Label:     "Select a storefront",
		Items:     options,
		Templates: templates,
		Size:      10,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("store selection cancelled: %w", err)
	}

	return options[index].Store, nil
}

// getStoreByURL finds a store in the config by its URL
func getStoreByURL(cfg *config.Config, storeURL string) (*config.Store, error) {
	for i := range cfg.Stores {
		if cfg.Stores[i].URL == storeURL {
			return &cfg.Stores[i], nil
		}
	}
	return nil, fmt.Errorf("store with URL '%s' not found in project config", storeURL)
}

// GetStoreByURLOrAlias finds a store by URL or alias
func GetStoreByURLOrAlias(cfg *config.Config, urlOrAlias string) (*config.Store, error) {
	// First try by URL
	for i := range cfg.Stores {
		if cfg.Stores[i].URL == urlOrAlias {
			return &cfg.Stores[i], nil
		}
	}

	// Then try by alias
	for i := range cfg.Stores {
		if cfg.Stores[i].Alias == urlOrAlias {
			return &cfg.Stores[i], nil
		}
	}

	return nil, fmt.Errorf("store with URL or alias '%s' not found", urlOrAlias)
}

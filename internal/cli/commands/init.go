package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/microshop-platform/shopctl/internal/cli/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <store-url>",
		Short: "Add a storefront to the project configuration",
		Args:  cobra.ExactArgs(1),
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	storeURL := args[0]

	if err := (&config.Store{URL: storeURL}).Validate(); err != nil {
		return err
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	var cfg *config.Config
	isNewConfig := false

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		// Load existing config
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		fmt.Printf("Found existing %s\n", config.ConfigFileName)
	} else {
		// Create new config
		cfg = &config.Config{
			Stores: []config.Store{},
		}
		isNewConfig = true
	}

	// Check if store already exists
	for _, store := range cfg.Stores {
		if store.URL == storeURL {
			fmt.Printf("Store %s already exists in %s\n", storeURL, config.ConfigFileName)
			return nil
		}
	}

	// Add new store
	alias := "production"
	if len(cfg.Stores) > 0 {
		alias = fmt.Sprintf("store-%d", len(cfg.Stores)+1)
	}

	cfg.Stores = append(cfg.Stores, config.Store{
		URL:   storeURL,
		Alias: alias,
	})

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	if isNewConfig {
		fmt.Printf("✓ Created ./%s with store %s (%s)\n", config.ConfigFileName, storeURL, alias)
	} else {
		fmt.Printf("✓ Added store %s (%s) to ./%s\n", storeURL, alias, config.ConfigFileName)
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'shopctl products' to browse the catalog")
	fmt.Println("  2. Run 'shopctl login' to sign in")

	return nil
}

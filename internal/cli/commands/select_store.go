package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/microshop-platform/shopctl/internal/cli/config"
	"github.com/microshop-platform/shopctl/internal/cli/storeselect"
	"github.com/microshop-platform/shopctl/internal/cli/userconfig"
)

// NewSelectStoreCmd creates the select-store command
func NewSelectStoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select-store [url-or-alias]",
		Short: "Choose which storefront subsequent commands talk to",
		Long: `Choose which storefront subsequent commands talk to.

If no param is provided, an interactive prompt will be shown.

Examples:
  $ shopctl select-store                          # Interactive selection
  $ shopctl select-store https://shop.example.com # Select by URL
  $ shopctl select-store production               # Select by alias`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var urlOrAlias string
			if len(args) > 0 {
				urlOrAlias = args[0]
			}
			return runSelectStore(urlOrAlias)
		},
	}
}

func runSelectStore(urlOrAlias string) error {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return fmt.Errorf("failed to load config: %w\nRun 'shopctl init' to create a configuration file", err)
	}

	var store *config.Store

	if urlOrAlias != "" {
		store, err = storeselect.GetStoreByURLOrAlias(cfg, urlOrAlias)
		if err != nil {
			return err
		}
	} else {
		store, err = storeselect.PromptStoreSelection(cfg)
		if err != nil {
			return err
		}
	}

	if err := userconfig.SetSelectedStore(store.URL); err != nil {
		return fmt.Errorf("failed to save selected store: %w", err)
	}

	fmt.Printf("✓ Selected %s (%s)\n", store.Alias, store.URL)
	return nil
}

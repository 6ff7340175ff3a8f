package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/microshop-platform/shopctl/internal/cli/update"
)

// NewUpdateCmd creates the update command
func NewUpdateCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update the shopctl CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, version)
		},
	}
}

func runUpdate(cmd *cobra.Command, currentVersion string) error {
	if err := update.NewUpdater().SelfUpdate(cmd.Context(), currentVersion); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	return nil
}

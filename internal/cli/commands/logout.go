package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	var storeAlias string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(storeAlias)
		},
	}

	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias (uses selected store if not specified)")

	return cmd
}

// runLogout is total: it clears whatever session exists, signed in or not.
func runLogout(storeAlias string, opts ...Option) error {
	r, err := newRuntime(storeAlias, opts...)
	if err != nil {
		return err
	}

	mgr := r.sessionManager()
	mgr.Logout()

	fmt.Fprintf(r.out, "✓ Signed out of %s\n", r.store.Alias)
	return nil
}

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password, storeAlias string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to a storefront",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(email, password, storeAlias)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set SHOPCTL_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set SHOPCTL_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias (uses selected store if not specified)")

	return cmd
}

func runLogin(email, password, storeAlias string, opts ...Option) error {
	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("SHOPCTL_EMAIL")
	}
	if password == "" {
		password = os.Getenv("SHOPCTL_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or SHOPCTL_EMAIL env var)")
	}

	r, err := newRuntime(storeAlias, opts...)
	if err != nil {
		return err
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		password, err = r.readPassword()
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(r.out, "Signing in to %s (%s)...\n", r.store.Alias, r.store.URL)

	mgr := r.sessionManager()
	if err := mgr.Login(context.Background(), email, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	user, _ := mgr.User()
	fmt.Fprintln(r.out, "✓ Signed in!")
	fmt.Fprintf(r.out, "  User: %s (%s)\n", user.Name, user.Email)
	fmt.Fprintf(r.out, "  Role: %s\n", user.Role)

	return nil
}

package commands

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command (the profile view)
func NewWhoamiCmd() *cobra.Command {
	var storeAlias string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(storeAlias)
		},
	}

	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias (uses selected store if not specified)")

	return cmd
}

func runWhoami(storeAlias string, opts ...Option) error {
	r, err := newRuntime(storeAlias, opts...)
	if err != nil {
		return err
	}

	mgr, err := r.requireAccess(context.Background(), "/profile")
	if err != nil {
		return err
	}

	user, _ := mgr.User()
	fmt.Fprintf(r.out, "Signed in to %s (%s)\n\n", r.store.Alias, r.store.URL)
	fmt.Fprintf(r.out, "  Name:  %s\n", user.Name)
	fmt.Fprintf(r.out, "  Email: %s\n", user.Email)
	fmt.Fprintf(r.out, "  Role:  %s\n", user.Role)
	if !user.CreatedAt.IsZero() {
		fmt.Fprintf(r.out, "  Since: %s\n", user.CreatedAt.Format("2006-01-02"))
	}

	if expiry, ok := tokenExpiry(mgr.Token()); ok {
		fmt.Fprintf(r.out, "\nSession expires: %s\n", expiry)
	}

	return nil
}

// tokenExpiry extracts the exp claim from the bearer token for display. The
// signature is not checked here; the API is the authority on validity.
func tokenExpiry(token string) (string, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return "", false
	}
	return exp.Format("2006-01-02 15:04 MST"), true
}

package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/microshop-platform/shopctl/internal/cli/client"
	"github.com/microshop-platform/shopctl/internal/models"
)

var validate = validator.New()

// registerInput carries the form fields with the same client-side checks the
// storefront applies before calling the API.
type registerInput struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	Role            string `validate:"omitempty,oneof=ADMIN CUSTOMER SELLER"`
}

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var input registerInput
	var storeAlias string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new storefront account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(input, storeAlias)
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&input.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&input.Password, "password", "", "Password (at least 6 characters)")
	cmd.Flags().StringVar(&input.ConfirmPassword, "confirm-password", "", "Password confirmation")
	cmd.Flags().StringVar(&input.Role, "role", "", "Account role (defaults to CUSTOMER)")
	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias (uses selected store if not specified)")

	return cmd
}

func runRegister(input registerInput, storeAlias string, opts ...Option) error {
	if err := validate.Struct(input); err != nil {
		return registerValidationError(err)
	}

	r, err := newRuntime(storeAlias, opts...)
	if err != nil {
		return err
	}

	user, err := r.api.Register(context.Background(), client.RegisterRequest{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     models.Role(input.Role),
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Fprintln(r.out, "✓ Account created!")
	fmt.Fprintf(r.out, "  User: %s (%s)\n", user.Name, user.Email)
	fmt.Fprintf(r.out, "  Role: %s\n", user.Role)
	fmt.Fprintln(r.out, "\nRun 'shopctl login' to sign in.")

	return nil
}

// registerValidationError turns validator diagnostics into the messages the
// registration form shows.
func registerValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	switch fe := verrs[0]; fe.Field() {
	case "Name":
		return fmt.Errorf("name is required")
	case "Email":
		return fmt.Errorf("a valid email address is required")
	case "Password":
		if fe.Tag() == "min" {
			return fmt.Errorf("password must be at least 6 characters")
		}
		return fmt.Errorf("password is required")
	case "ConfirmPassword":
		if fe.Tag() == "eqfield" {
			return fmt.Errorf("passwords do not match")
		}
		return fmt.Errorf("password confirmation is required")
	case "Role":
		return fmt.Errorf("role must be one of ADMIN, CUSTOMER, SELLER")
	}
	return err
}

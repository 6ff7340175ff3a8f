package commands

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/microshop-platform/shopctl/internal/cli/client"
)

// The admin commands mirror the storefront's admin area: product management
// and the user overview. Access is enforced through the same route guard that
// gates the corresponding views.

func productFlags(cmd *cobra.Command, input *client.ProductInput) {
	cmd.Flags().StringVar(&input.Name, "name", "", "Product name")
	cmd.Flags().StringVar(&input.Description, "description", "", "Product description")
	cmd.Flags().Float64Var(&input.Price, "price", 0, "Price")
	cmd.Flags().IntVar(&input.Stock, "stock", 0, "Units in stock")
	cmd.Flags().StringVar(&input.Category, "category", "", "Category")
}

// NewProductCreateCmd creates the product-create command
func NewProductCreateCmd() *cobra.Command {
	var input client.ProductInput
	var storeAlias string

	cmd := &cobra.Command{
		Use:   "product-create",
		Short: "Add a product to the catalog (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductCreate(input, storeAlias)
		},
	}

	productFlags(cmd, &input)
	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias (uses selected store if not specified)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("price")
	cmd.MarkFlagRequired("category")

	return cmd
}

func runProductCreate(input client.ProductInput, storeAlias string, opts ...Option) error {
	r, err := newRuntime(storeAlias, opts...)
	if err != nil {
		return err
	}

	ctx := context.Background()
	mgr, err := r.requireAccess(ctx, "/admin/products")
	if err != nil {
		return err
	}

	p, err := r.api.CreateProduct(ctx, mgr.Token(), input)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "✓ Created product %d (%s)\n", p.ID, p.Name)
	return nil
}

// NewProductUpdateCmd creates the product-update command
func NewProductUpdateCmd() *cobra.Command {
	var input client.ProductInput
	var storeAlias string

	cmd := &cobra.Command{
		Use:   "product-update <id>",
		Short: "Update a catalog product (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("product id must be a number, got %q", args[0])
			}
			return runProductUpdate(id, input, storeAlias)
		},
	}

	productFlags(cmd, &input)
	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias (uses selected store if not specified)")

	return cmd
}

func runProductUpdate(id int64, input client.ProductInput, storeAlias string, opts ...Option) error {
	r, err := newRuntime(storeAlias, opts...)
	if err != nil {
		return err
	}

	ctx := context.Background()
	mgr, err := r.requireAccess(ctx, "/admin/products")
	if err != nil {
		return err
	}

	p, err := r.api.UpdateProduct(ctx, mgr.Token(), id, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "✓ Updated product %d (%s)\n", p.ID, p.Name)
	return nil
}

// NewProductDeleteCmd creates the product-delete command
func NewProductDeleteCmd() *cobra.Command {
	var storeAlias string

	cmd := &cobra.Command{
		Use:   "product-delete <id>",
		Short: "Remove a catalog product (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("product id must be a number, got %q", args[0])
			}
			return runProductDelete(id, storeAlias)
		},
	}

	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias (uses selected store if not specified)")

	return cmd
}

func runProductDelete(id int64, storeAlias string, opts ...Option) error {
	r, err := newRuntime(storeAlias, opts...)
	if err != nil {
		return err
	}

	ctx := context.Background()
	mgr, err := r.requireAccess(ctx, "/admin/products")
	if err != nil {
		return err
	}

	if err := r.api.DeleteProduct(ctx, mgr.Token(), id); err != nil {
		return err
	}

	fmt.Fprintf(r.out, "✓ Deleted product %d\n", id)
	return nil
}

// NewUsersCmd creates the users command (the admin user overview)
func NewUsersCmd() *cobra.Command {
	var storeAlias string

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List registered accounts (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsers(storeAlias)
		},
	}

	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias (uses selected store if not specified)")

	return cmd
}

func runUsers(storeAlias string, opts ...Option) error {
	r, err := newRuntime(storeAlias, opts...)
	if err != nil {
		return err
	}

	ctx := context.Background()
	mgr, err := r.requireAccess(ctx, "/admin")
	if err != nil {
		return err
	}

	users, err := r.api.ListUsers(ctx, mgr.Token())
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Fprintln(r.out, "No accounts registered yet.")
		return nil
	}

	fmt.Fprintf(r.out, "Accounts on %s (%s):\n\n", r.store.Alias, r.store.URL)

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tCREATED")
	fmt.Fprintln(w, "──\t────\t─────\t────\t───────")

	for _, u := range users {
		created := ""
		if !u.CreatedAt.IsZero() {
			created = u.CreatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, created)
	}

	w.Flush()

	return nil
}

package commands

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/microshop-platform/shopctl/internal/models"
)

// NewProductsCmd creates the products command (catalog listing and search)
func NewProductsCmd() *cobra.Command {
	var category, storeAlias string

	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"ls"},
		Short:   "Browse the product catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProducts(category, storeAlias)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only show products in this category")
	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias (uses selected store if not specified)")

	return cmd
}

func runProducts(category, storeAlias string, opts ...Option) error {
	r, err := newRuntime(storeAlias, opts...)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var products []models.Product
	if category != "" {
		products, err = r.api.SearchProducts(ctx, category)
	} else {
		products, err = r.api.ListProducts(ctx)
	}
	if err != nil {
		return err
	}

	if len(products) == 0 {
		if category != "" {
			fmt.Fprintf(r.out, "No products found in category %q.\n", category)
		} else {
			fmt.Fprintln(r.out, "The catalog is empty.")
		}
		return nil
	}

	fmt.Fprintf(r.out, "Products on %s (%s):\n\n", r.store.Alias, r.store.URL)

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	fmt.Fprintln(w, "──\t────\t────────\t─────\t─────")

	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%d\n", p.ID, p.Name, p.Category, p.Price, p.Stock)
	}

	w.Flush()

	return nil
}

// NewProductCmd creates the product detail command
func NewProductCmd() *cobra.Command {
	var storeAlias string

	cmd := &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("product id must be a number, got %q", args[0])
			}
			return runProduct(id, storeAlias)
		},
	}

	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias (uses selected store if not specified)")

	return cmd
}

func runProduct(id int64, storeAlias string, opts ...Option) error {
	r, err := newRuntime(storeAlias, opts...)
	if err != nil {
		return err
	}

	p, err := r.api.GetProduct(context.Background(), id)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "%s\n\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(r.out, "  %s\n\n", p.Description)
	}
	fmt.Fprintf(r.out, "  Price:    %.2f\n", p.Price)
	fmt.Fprintf(r.out, "  Stock:    %d\n", p.Stock)
	fmt.Fprintf(r.out, "  Category: %s\n", p.Category)

	return nil
}

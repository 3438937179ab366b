package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"retail-records/internal/domain"
	"retail-records/internal/filter"
	"retail-records/internal/importer"
	productsvc "retail-records/internal/service/product"
)

var productHeader = []string{"ID", "Название", "Цена"}

// NewProductsCommand groups the product list, form and CSV commands.
func NewProductsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Manage products",
	}
	cmd.AddCommand(
		newProductsListCommand(opts),
		newProductsAddCommand(opts),
		newProductsEditCommand(opts),
		newProductsDeleteCommand(opts),
		newImportCommand(opts, importer.Products),
		newExportCommand(opts, importer.Products),
	)
	return cmd
}

func productRows(rows []domain.Product) [][]string {
	out := make([][]string, 0, len(rows))
	for _, p := range rows {
		out = append(out, []string{strconv.FormatInt(p.ID, 10), p.Name, domain.FormatPrice(p.Price)})
	}
	return out
}

func newProductsListCommand(opts *RootOptions) *cobra.Command {
	var (
		name, minPrice, maxPrice string
		sort                     string
		desc                     bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally filtered by name and price range",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			rows, err := a.products.List(cmd.Context())
			if err != nil {
				return err
			}
			rows = filter.Products(rows, filter.ProductFilter{
				Name:     name,
				MinPrice: filter.ParseBound(minPrice),
				MaxPrice: filter.ParseBound(maxPrice),
			})
			if err := a.sorter.Products(rows, sort, desc); err != nil {
				return WrapExitError(ExitCommandError, "sort", err)
			}
			return opts.out.Table(rows, productHeader, productRows(rows))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "substring of the product name")
	cmd.Flags().StringVar(&minPrice, "min-price", "", "lowest price, inclusive")
	cmd.Flags().StringVar(&maxPrice, "max-price", "", "highest price, inclusive")
	cmd.Flags().StringVar(&sort, "sort", "id", fmt.Sprintf("sort column %v", filter.ProductColumns))
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

func newProductsAddCommand(opts *RootOptions) *cobra.Command {
	var name, price string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := productsvc.ParsePrice(price)
			if err != nil {
				return err
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			p, err := a.products.Create(cmd.Context(), productsvc.Input{Name: name, Price: v})
			if err != nil {
				return err
			}
			return opts.out.Success(p, "Товар добавлен: "+p.String())
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "product name (required)")
	cmd.Flags().StringVar(&price, "price", "", "price, a positive number such as 199.99 (required)")
	return cmd
}

func newProductsEditCommand(opts *RootOptions) *cobra.Command {
	var name, price string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a product; omitted fields keep their current value",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			current, err := a.products.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			in := productsvc.Input{Name: current.Name, Price: current.Price}
			if cmd.Flags().Changed("name") {
				in.Name = name
			}
			if cmd.Flags().Changed("price") {
				if in.Price, err = productsvc.ParsePrice(price); err != nil {
					return err
				}
			}

			p, err := a.products.Update(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return opts.out.Success(p, "Товар обновлён: "+p.String())
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&price, "price", "", "price, a positive number")
	return cmd
}

func newProductsDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product together with every order of it",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.products.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return opts.out.Success(map[string]int64{"deleted": id}, fmt.Sprintf("Товар %d удалён", id))
		},
	}
}

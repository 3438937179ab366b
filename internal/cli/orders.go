package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"retail-records/internal/domain"
	"retail-records/internal/filter"
	"retail-records/internal/importer"
	ordersvc "retail-records/internal/service/order"
)

var orderHeader = []string{"ID", "Клиент", "Телефон", "Товар", "Цена", "Дата"}

// NewOrdersCommand groups the order list, form and CSV commands.
func NewOrdersCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		Short:   "Manage orders",
	}
	cmd.AddCommand(
		newOrdersListCommand(opts),
		newOrdersAddCommand(opts),
		newOrdersEditCommand(opts),
		newOrdersDeleteCommand(opts),
		newImportCommand(opts, importer.Orders),
		newExportCommand(opts, importer.Orders),
	)
	return cmd
}

func orderRows(rows []domain.OrderView) [][]string {
	out := make([][]string, 0, len(rows))
	for _, v := range rows {
		out = append(out, []string{
			strconv.FormatInt(v.ID, 10),
			v.CustomerName,
			v.CustomerPhone,
			v.ProductName,
			domain.FormatPrice(v.ProductPrice),
			v.Date,
		})
	}
	return out
}

func newOrdersListCommand(opts *RootOptions) *cobra.Command {
	var (
		f    filter.OrderFilter
		sort string
		desc bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders with their customer and product",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			rows, err := a.orders.ListViews(cmd.Context())
			if err != nil {
				return err
			}
			rows = filter.Orders(rows, f)
			if err := a.sorter.Orders(rows, sort, desc); err != nil {
				return WrapExitError(ExitCommandError, "sort", err)
			}
			return opts.out.Table(rows, orderHeader, orderRows(rows))
		},
	}
	cmd.Flags().StringVar(&f.Customer, "customer", "", "substring of the customer name or phone")
	cmd.Flags().StringVar(&f.Product, "product", "", "substring of the product name")
	cmd.Flags().StringVar(&f.DateFrom, "from", "", "earliest date YYYY-MM-DD, inclusive")
	cmd.Flags().StringVar(&f.DateTo, "to", "", "latest date YYYY-MM-DD, inclusive")
	cmd.Flags().StringVar(&sort, "sort", "id", fmt.Sprintf("sort column %v", filter.OrderColumns))
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

func bindOrderFlags(cmd *cobra.Command, in *ordersvc.Input) {
	cmd.Flags().Int64Var(&in.CustomerID, "customer-id", 0, "customer id (required)")
	cmd.Flags().Int64Var(&in.ProductID, "product-id", 0, "product id (required)")
	cmd.Flags().StringVar(&in.Date, "date", "", "order date YYYY-MM-DD (default today)")
}

func newOrdersAddCommand(opts *RootOptions) *cobra.Command {
	var in ordersvc.Input
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an order",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("date") {
				in.Date = opts.now().Format(domain.DateLayout)
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			o, err := a.orders.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return opts.out.Success(o, "Заказ добавлен: "+o.String())
		},
	}
	bindOrderFlags(cmd, &in)
	return cmd
}

func newOrdersEditCommand(opts *RootOptions) *cobra.Command {
	var in ordersvc.Input
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an order; omitted fields keep their current value",
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

			current, err := a.orders.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("customer-id") {
				in.CustomerID = current.CustomerID
			}
			if !flags.Changed("product-id") {
				in.ProductID = current.ProductID
			}
			if !flags.Changed("date") {
				in.Date = current.Date
			}

			o, err := a.orders.Update(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return opts.out.Success(o, "Заказ обновлён: "+o.String())
		},
	}
	bindOrderFlags(cmd, &in)
	return cmd
}

func newOrdersDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an order",
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

			if err := a.orders.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return opts.out.Success(map[string]int64{"deleted": id}, fmt.Sprintf("Заказ %d удалён", id))
		},
	}
}

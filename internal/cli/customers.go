package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"retail-records/internal/domain"
	"retail-records/internal/filter"
	"retail-records/internal/importer"
	customersvc "retail-records/internal/service/customer"
)

var customerHeader = []string{"ID", "ФИО", "Телефон", "Email", "Адрес"}

// NewCustomersCommand groups the customer list, form and CSV commands.
func NewCustomersCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer"},
		Short:   "Manage customers",
	}
	cmd.AddCommand(
		newCustomersListCommand(opts),
		newCustomersAddCommand(opts),
		newCustomersEditCommand(opts),
		newCustomersDeleteCommand(opts),
		newImportCommand(opts, importer.Customers),
		newExportCommand(opts, importer.Customers),
	)
	return cmd
}

func newCustomersListCommand(opts *RootOptions) *cobra.Command {
	var (
		f    filter.CustomerFilter
		sort string
		desc bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers, optionally filtered and sorted",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			rows, err := a.customers.List(cmd.Context())
			if err != nil {
				return err
			}
			rows = filter.Customers(rows, f)
			if err := a.sorter.Customers(rows, sort, desc); err != nil {
				return WrapExitError(ExitCommandError, "sort", err)
			}
			return opts.out.Table(rows, customerHeader, customerRows(rows))
		},
	}
	cmd.Flags().StringVar(&f.Name, "name", "", "substring of the full name")
	cmd.Flags().StringVar(&f.Phone, "phone", "", "substring of the phone")
	cmd.Flags().StringVar(&f.Email, "email", "", "substring of the email")
	cmd.Flags().StringVar(&sort, "sort", "id", fmt.Sprintf("sort column %v", filter.CustomerColumns))
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

func bindCustomerFlags(cmd *cobra.Command, in *customersvc.Input) {
	cmd.Flags().StringVar(&in.Name, "name", "", "full name (required)")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone")
	cmd.Flags().StringVar(&in.Email, "email", "", "email in the form name@domain.tld")
	cmd.Flags().StringVar(&in.Address, "address", "", "postal address")
}

func newCustomersAddCommand(opts *RootOptions) *cobra.Command {
	var in customersvc.Input
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a customer",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			c, err := a.customers.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return opts.out.Success(c, "Клиент добавлен: "+c.String())
		},
	}
	bindCustomerFlags(cmd, &in)
	return cmd
}

func newCustomersEditCommand(opts *RootOptions) *cobra.Command {
	var in customersvc.Input
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a customer; omitted fields keep their current value",
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

			current, err := a.customers.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("name") {
				in.Name = current.Name
			}
			if !flags.Changed("phone") {
				in.Phone = current.Phone
			}
			if !flags.Changed("email") {
				in.Email = current.Email
			}
			if !flags.Changed("address") {
				in.Address = current.Address
			}

			c, err := a.customers.Update(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return opts.out.Success(c, "Клиент обновлён: "+c.String())
		},
	}
	bindCustomerFlags(cmd, &in)
	return cmd
}

func newCustomersDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a customer together with their orders",
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

			if err := a.customers.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return opts.out.Success(map[string]int64{"deleted": id}, fmt.Sprintf("Клиент %d удалён", id))
		},
	}
}

func customerRows(rows []domain.Customer) [][]string {
	out := make([][]string, 0, len(rows))
	for _, c := range rows {
		out = append(out, []string{strconv.FormatInt(c.ID, 10), c.Name, c.Phone, c.Email, c.Address})
	}
	return out
}

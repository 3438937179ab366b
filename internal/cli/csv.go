package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"retail-records/internal/exporter"
	"retail-records/internal/importer"
)

type transferResult struct {
	Kind string `json:"kind"`
	File string `json:"file"`
	Rows int    `json:"rows"`
}

func newImportCommand(opts *RootOptions, kind importer.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: fmt.Sprintf("Import %s from CSV (the first line is a header)", kind),
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return WrapExitError(ExitFailure, "Ошибка импорта", err)
			}
			defer f.Close()

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			imp := importer.NewCSVImporter(kind, f, importer.Writers{
				Customers: a.customerRepo,
				Products:  a.productRepo,
				Orders:    a.orderRepo,
			})
			n, err := imp.Run(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, fmt.Sprintf("Ошибка импорта (загружено строк: %d)", n), err)
			}
			return opts.out.Success(transferResult{Kind: string(kind), File: path, Rows: n},
				fmt.Sprintf("Данные успешно импортированы: %d", n))
		},
	}
}

func newExportCommand(opts *RootOptions, kind importer.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.csv>",
		Short: fmt.Sprintf("Export %s to CSV", kind),
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			f, err := os.Create(path)
			if err != nil {
				return WrapExitError(ExitFailure, "Ошибка экспорта", err)
			}
			n, err := export(cmd, a, kind, f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return WrapExitError(ExitFailure, "Ошибка экспорта", err)
			}
			return opts.out.Success(transferResult{Kind: string(kind), File: path, Rows: n},
				fmt.Sprintf("Данные успешно экспортированы: %d", n))
		},
	}
}

func export(cmd *cobra.Command, a *app, kind importer.Kind, w io.Writer) (int, error) {
	ctx := cmd.Context()
	switch kind {
	case importer.Customers:
		return exporter.Customers(ctx, w, a.customers)
	case importer.Products:
		return exporter.Products(ctx, w, a.products)
	case importer.Orders:
		return exporter.Orders(ctx, w, a.orders)
	}
	return 0, fmt.Errorf("unknown export kind %q", kind)
}

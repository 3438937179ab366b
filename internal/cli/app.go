package cli

import (
	"github.com/spf13/cobra"

	"retail-records/internal/db"
	"retail-records/internal/filter"
	"retail-records/internal/migrate"
	"retail-records/internal/report"
	"retail-records/internal/report/plot"
	custrepo "retail-records/internal/repository/customer"
	orderrepo "retail-records/internal/repository/order"
	productrepo "retail-records/internal/repository/product"
	customersvc "retail-records/internal/service/customer"
	ordersvc "retail-records/internal/service/order"
	productsvc "retail-records/internal/service/product"
)

// app is the wired object graph behind one command invocation.
type app struct {
	h *db.Handle

	customerRepo custrepo.Repository
	productRepo  productrepo.Repository
	orderRepo    orderrepo.Repository

	customers *customersvc.Service
	products  *productsvc.Service
	orders    *ordersvc.Service

	sorter  *filter.Sorter
	reports *report.Builder
}

// openApp opens the configured store, bootstraps its schema and wires
// repositories and services on top of it.
func openApp(cmd *cobra.Command, opts *RootOptions) (*app, error) {
	ctx := cmd.Context()
	logger := opts.logger(cmd)
	cfg := opts.Config

	h, err := db.Open(ctx, cfg.DBDriver, cfg.DBConnString, logger)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "open store", err)
	}
	if err := migrate.Apply(ctx, h); err != nil {
		h.Close()
		return nil, WrapExitError(ExitFailure, "bootstrap schema", err)
	}

	a := &app{
		h:            h,
		customerRepo: custrepo.NewSQL(h, logger),
		productRepo:  productrepo.NewSQL(h, logger),
		orderRepo:    orderrepo.NewSQL(h, logger),
		sorter:       filter.NewSorter(cfg.Locale),
	}
	a.customers = customersvc.New(a.customerRepo)
	a.products = productsvc.New(a.productRepo)
	a.orders = ordersvc.New(a.orderRepo, a.customerRepo, a.productRepo)
	a.reports = report.New(h, plot.New(),
		report.WithClock(opts.now),
		report.WithDir(cfg.ReportDir),
		report.WithWindow(cfg.ReportWindowDays),
		report.WithLogger(logger),
	)
	return a, nil
}

func (a *app) close() {
	a.h.Close()
}

package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"retail-records/internal/config"
)

// RootOptions holds global flags and the environment shared by all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	Config config.Config
	// Now is the clock used for default order dates and report names.
	Now func() time.Time

	out *OutputFormatter
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

func (o *RootOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// logger writes diagnostics to stderr in verbose mode and discards them
// otherwise.
func (o *RootOptions) logger(cmd *cobra.Command) *log.Logger {
	if !o.Verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(cmd.ErrOrStderr(), "[retail] ", log.LstdFlags|log.LUTC|log.Lshortfile)
}

// NewRootCommand creates the root command of the retail records CLI.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retail",
		Short: "Customers, products and orders of a small shop",
		Long: `Maintain customers, products and orders in a local store, filter and
sort them, move them in and out as CSV, and render sales charts.

The store is created on first use (store.db in the working directory unless
RETAIL_DB_DSN says otherwise). Run without a command to see an overview.`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			opts.out = &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverview(cmd, opts)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	cmd.AddCommand(NewCustomersCommand(opts))
	cmd.AddCommand(NewProductsCommand(opts))
	cmd.AddCommand(NewOrdersCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))

	return cmd
}

// Run executes the CLI with args and returns the process exit code. Every
// failure is reported once, in the selected format.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, cfg config.Config) int {
	opts := &RootOptions{Config: cfg, Format: "text"}
	return run(ctx, opts, args, stdout, stderr)
}

func run(ctx context.Context, opts *RootOptions, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	out := opts.out
	if out == nil {
		format := opts.Format
		if !slices.Contains(ValidFormats, format) {
			format = "text"
		}
		out = &OutputFormatter{Format: format, Writer: stdout, ErrWriter: stderr, Verbose: opts.Verbose}
	}
	code, message, exit := classify(err)
	var details any
	if opts.Verbose {
		details = err.Error()
	}
	_ = out.Error(code, message, details)
	return exit
}

func runOverview(cmd *cobra.Command, opts *RootOptions) error {
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	customers, err := a.customers.List(ctx)
	if err != nil {
		return err
	}
	products, err := a.products.List(ctx)
	if err != nil {
		return err
	}
	orders, err := a.orders.ListViews(ctx)
	if err != nil {
		return err
	}

	counts := map[string]int{"customers": len(customers), "products": len(products), "orders": len(orders)}
	if opts.Format == "json" {
		return opts.out.Success(counts, "")
	}
	if err := opts.out.Table(counts, []string{"Раздел", "Записей"}, [][]string{
		{"Клиенты", strconv.Itoa(len(customers))},
		{"Товары", strconv.Itoa(len(products))},
		{"Заказы", strconv.Itoa(len(orders))},
	}); err != nil {
		return err
	}
	return cmd.Help()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid id %q", s))
	}
	return id, nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return WrapExitError(ExitCommandError, "invalid arguments", err)
		}
		return nil
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return WrapExitError(ExitCommandError, "invalid arguments", err)
	}
	return nil
}

package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"retail-records/internal/domain"
	"retail-records/internal/report"
)

// NoDataMessage is shown instead of an artifact when a report has no rows.
const NoDataMessage = "Нет данных для отчета"

type reportResult struct {
	Report  string `json:"report"`
	File    string `json:"file,omitempty"`
	Message string `json:"message"`
}

// NewReportCommand groups the chart reports.
func NewReportCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render sales charts as PNG files",
	}
	cmd.AddCommand(
		newReportRunCommand(opts, "top-products", "Bar chart of the ten most ordered products",
			report.KindTopProducts, "Топ товаров", (*report.Builder).TopProducts),
		newReportRunCommand(opts, "dynamics", "Line chart of daily orders over the recent window",
			report.KindOrdersDynamics, "Динамика заказов", (*report.Builder).OrderDynamics),
	)
	return cmd
}

func newReportRunCommand(opts *RootOptions, use, short, kind, title string, build func(*report.Builder, context.Context) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			path, err := build(a.reports, cmd.Context())
			if errors.Is(err, domain.ErrNoData) {
				return opts.out.Success(reportResult{Report: kind, Message: NoDataMessage}, NoDataMessage)
			}
			if err != nil {
				return WrapExitError(ExitFailure, "Ошибка генерации отчета", err)
			}
			msg := "Отчет '" + title + "' сохранен в файл: " + path
			return opts.out.Success(reportResult{Report: kind, File: path, Message: msg}, msg)
		},
	}
}

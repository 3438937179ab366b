// Package report aggregates orders into the two fixed reports and hands
// the series to a Renderer that writes the image artifact.
package report

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"retail-records/internal/db"
	"retail-records/internal/domain"
)

const (
	KindTopProducts    = "top_products"
	KindOrdersDynamics = "orders_dynamics"

	topLimit = 10
)

// BarChart is a categorical series with one bar per label.
type BarChart struct {
	Title  string
	XLabel string
	YLabel string
	Labels []string
	Values []float64
}

// LineChart is a time series drawn with point markers.
type LineChart struct {
	Title  string
	XLabel string
	YLabel string
	Times  []time.Time
	Values []float64
}

// Renderer writes a chart to path. The format follows the path extension.
type Renderer interface {
	Bar(path string, c BarChart) error
	Line(path string, c LineChart) error
}

// Builder runs the report queries against a store.
type Builder struct {
	h        *db.Handle
	renderer Renderer
	now      func() time.Time
	dir      string
	window   int
	logger   *log.Logger
}

type Option func(*Builder)

// WithClock overrides the time source used for the dynamics window and
// artifact names.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithDir sets the directory artifacts are written into.
func WithDir(dir string) Option {
	return func(b *Builder) { b.dir = dir }
}

// WithWindow sets the trailing window of the dynamics report in days.
func WithWindow(days int) Option {
	return func(b *Builder) {
		if days > 0 {
			b.window = days
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

func New(h *db.Handle, r Renderer, opts ...Option) *Builder {
	b := &Builder{
		h:        h,
		renderer: r,
		now:      time.Now,
		dir:      ".",
		window:   30,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FileName returns the artifact name for kind generated at t.
func FileName(kind string, t time.Time) string {
	return fmt.Sprintf("%s_%s.png", kind, t.Format("20060102_1504"))
}

// TopProductsData returns up to ten product names with their order counts,
// most ordered first. Ties are broken by name.
func (b *Builder) TopProductsData(ctx context.Context) ([]domain.ProductSales, error) {
	const q = `
SELECT products.name, COUNT(orders.id) AS order_count
FROM orders
JOIN products ON products.id = orders.product_id
GROUP BY products.name
ORDER BY order_count DESC, products.name ASC
LIMIT ?
`
	rows, err := b.h.QueryContext(ctx, q, topLimit)
	if err != nil {
		b.logger.Printf("report: top products error=%v", err)
		return nil, domain.Storage("report top products", err)
	}
	defer rows.Close()

	out := make([]domain.ProductSales, 0, topLimit)
	for rows.Next() {
		var s domain.ProductSales
		if err := rows.Scan(&s.Name, &s.Count); err != nil {
			b.logger.Printf("report: top products scan error=%v", err)
			return nil, domain.Storage("report top products", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("report top products", err)
	}
	return out, nil
}

// Cutoff returns the first date included in the dynamics window.
func (b *Builder) Cutoff() string {
	return b.now().AddDate(0, 0, -b.window).Format(domain.DateLayout)
}

// OrderDynamicsData returns per-day order counts for dates on or after the
// window cutoff, oldest first.
func (b *Builder) OrderDynamicsData(ctx context.Context) ([]domain.DailyOrders, error) {
	const q = `
SELECT date, COUNT(id) AS order_count
FROM orders
WHERE date >= ?
GROUP BY date
ORDER BY date
`
	rows, err := b.h.QueryContext(ctx, q, b.Cutoff())
	if err != nil {
		b.logger.Printf("report: dynamics error=%v", err)
		return nil, domain.Storage("report dynamics", err)
	}
	defer rows.Close()

	out := make([]domain.DailyOrders, 0)
	for rows.Next() {
		var d domain.DailyOrders
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			b.logger.Printf("report: dynamics scan error=%v", err)
			return nil, domain.Storage("report dynamics", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("report dynamics", err)
	}
	return out, nil
}

// TopProducts renders the top products bar chart and returns the artifact
// path, or domain.ErrNoData when there are no orders.
func (b *Builder) TopProducts(ctx context.Context) (string, error) {
	data, err := b.TopProductsData(ctx)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", domain.ErrNoData
	}

	chart := BarChart{
		Title:  fmt.Sprintf("Топ %d товаров по количеству заказов", topLimit),
		XLabel: "Товар",
		YLabel: "Количество заказов",
	}
	for _, s := range data {
		chart.Labels = append(chart.Labels, s.Name)
		chart.Values = append(chart.Values, float64(s.Count))
	}

	path := filepath.Join(b.dir, FileName(KindTopProducts, b.now()))
	if err := b.renderer.Bar(path, chart); err != nil {
		b.logger.Printf("report: render %s error=%v", path, err)
		return "", fmt.Errorf("render top products: %w", err)
	}
	b.logger.Printf("report: top products rows=%d path=%s", len(data), path)
	return path, nil
}

// OrderDynamics renders the daily order line chart and returns the artifact
// path, or domain.ErrNoData when the window holds no orders.
func (b *Builder) OrderDynamics(ctx context.Context) (string, error) {
	data, err := b.OrderDynamicsData(ctx)
	if err != nil {
		return "", err
	}

	chart := LineChart{
		Title:  fmt.Sprintf("Динамика заказов за последние %d дней", b.window),
		XLabel: "Дата",
		YLabel: "Количество заказов",
	}
	for _, d := range data {
		t, err := time.Parse(domain.DateLayout, d.Date)
		if err != nil {
			b.logger.Printf("report: dynamics skip date=%q error=%v", d.Date, err)
			continue
		}
		chart.Times = append(chart.Times, t)
		chart.Values = append(chart.Values, float64(d.Count))
	}
	if len(chart.Times) == 0 {
		return "", domain.ErrNoData
	}

	path := filepath.Join(b.dir, FileName(KindOrdersDynamics, b.now()))
	if err := b.renderer.Line(path, chart); err != nil {
		b.logger.Printf("report: render %s error=%v", path, err)
		return "", fmt.Errorf("render order dynamics: %w", err)
	}
	b.logger.Printf("report: dynamics rows=%d path=%s", len(chart.Times), path)
	return path, nil
}

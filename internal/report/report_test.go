package report

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail-records/internal/db"
	"retail-records/internal/domain"
	"retail-records/internal/migrate"
)

type recordingRenderer struct {
	paths []string
	bars  []BarChart
	lines []LineChart
	err   error
}

func (r *recordingRenderer) Bar(path string, c BarChart) error {
	r.paths = append(r.paths, path)
	r.bars = append(r.bars, c)
	return r.err
}

func (r *recordingRenderer) Line(path string, c LineChart) error {
	r.paths = append(r.paths, path)
	r.lines = append(r.lines, c)
	return r.err
}

var fixedNow = time.Date(2023, 10, 31, 14, 5, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func openStore(t *testing.T) *db.Handle {
	t.Helper()
	ctx := context.Background()
	h, err := db.Open(ctx, "sqlite3", filepath.Join(t.TempDir(), "store.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	require.NoError(t, migrate.Apply(ctx, h))
	return h
}

func exec(t *testing.T, h *db.Handle, q string, args ...any) {
	t.Helper()
	_, _, err := h.RunStatement(context.Background(), q, args...)
	require.NoError(t, err)
}

func seedOrders(t *testing.T, h *db.Handle, orders [][2]any) {
	t.Helper()
	exec(t, h, `INSERT INTO customers (name) VALUES ('Иван')`)
	for _, o := range orders {
		exec(t, h, `INSERT INTO orders (customer_id, product_id, date) VALUES (1, ?, ?)`, o[0], o[1])
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "top_products_20231031_1405.png", FileName(KindTopProducts, fixedNow))
	assert.Equal(t, "orders_dynamics_20231031_1405.png", FileName(KindOrdersDynamics, fixedNow))
}

func TestTopProducts(t *testing.T) {
	h := openStore(t)
	exec(t, h, `INSERT INTO products (name, price) VALUES ('Ноутбук', 50000), ('Смартфон', 30000)`)
	seedOrders(t, h, [][2]any{{1, "2023-10-01"}, {2, "2023-10-02"}, {1, "2023-10-03"}})

	dir := t.TempDir()
	rr := &recordingRenderer{}
	b := New(h, rr, WithClock(clock), WithDir(dir))

	data, err := b.TopProductsData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.ProductSales{{Name: "Ноутбук", Count: 2}, {Name: "Смартфон", Count: 1}}, data)

	path, err := b.TopProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "top_products_20231031_1405.png"), path)
	require.Len(t, rr.bars, 1)
	assert.Equal(t, []string{"Ноутбук", "Смартфон"}, rr.bars[0].Labels)
	assert.Equal(t, []float64{2, 1}, rr.bars[0].Values)
	assert.Equal(t, "Топ 10 товаров по количеству заказов", rr.bars[0].Title)
}

func TestTopProductsLimitAndTies(t *testing.T) {
	h := openStore(t)
	exec(t, h, `INSERT INTO customers (name) VALUES ('Иван')`)
	names := []string{"Л", "К", "Й", "И", "З", "Ж", "Е", "Д", "Г", "В", "Б", "А"}
	for i, n := range names {
		exec(t, h, `INSERT INTO products (name, price) VALUES (?, 1)`, n)
		exec(t, h, `INSERT INTO orders (customer_id, product_id, date) VALUES (1, ?, '2023-10-01')`, i+1)
	}
	exec(t, h, `INSERT INTO orders (customer_id, product_id, date) VALUES (1, 1, '2023-10-02')`)

	data, err := New(h, &recordingRenderer{}).TopProductsData(context.Background())
	require.NoError(t, err)
	require.Len(t, data, 10)
	assert.Equal(t, domain.ProductSales{Name: "Л", Count: 2}, data[0])
	assert.Equal(t, "А", data[1].Name)
	assert.Equal(t, "Б", data[2].Name)
}

func TestTopProductsGroupsByName(t *testing.T) {
	h := openStore(t)
	exec(t, h, `INSERT INTO products (name, price) VALUES ('Мышь', 500), ('Мышь', 700)`)
	seedOrders(t, h, [][2]any{{1, "2023-10-01"}, {2, "2023-10-02"}})

	data, err := New(h, &recordingRenderer{}).TopProductsData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.ProductSales{{Name: "Мышь", Count: 2}}, data)
}

func TestTopProductsNoData(t *testing.T) {
	rr := &recordingRenderer{}
	_, err := New(openStore(t), rr).TopProducts(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoData)
	assert.Empty(t, rr.paths)
}

func TestOrderDynamicsWindow(t *testing.T) {
	h := openStore(t)
	exec(t, h, `INSERT INTO products (name, price) VALUES ('Ноутбук', 50000)`)
	seedOrders(t, h, [][2]any{
		{1, "2023-09-30"},
		{1, "2023-10-01"},
		{1, "2023-10-01"},
		{1, "2023-10-20"},
	})

	rr := &recordingRenderer{}
	b := New(h, rr, WithClock(clock), WithDir("reports"))
	assert.Equal(t, "2023-10-01", b.Cutoff())

	data, err := b.OrderDynamicsData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.DailyOrders{{Date: "2023-10-01", Count: 2}, {Date: "2023-10-20", Count: 1}}, data)

	path, err := b.OrderDynamics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("reports", "orders_dynamics_20231031_1405.png"), path)
	require.Len(t, rr.lines, 1)
	assert.Equal(t, "Динамика заказов за последние 30 дней", rr.lines[0].Title)
	assert.Equal(t, []float64{2, 1}, rr.lines[0].Values)
	assert.Equal(t, time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC), rr.lines[0].Times[0])
}

func TestOrderDynamicsNoDataInWindow(t *testing.T) {
	h := openStore(t)
	exec(t, h, `INSERT INTO products (name, price) VALUES ('Ноутбук', 50000)`)
	seedOrders(t, h, [][2]any{{1, "2022-01-01"}})

	_, err := New(h, &recordingRenderer{}, WithClock(clock)).OrderDynamics(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestOrderDynamicsCustomWindow(t *testing.T) {
	h := openStore(t)
	b := New(h, &recordingRenderer{}, WithClock(clock), WithWindow(7))
	assert.Equal(t, "2023-10-24", b.Cutoff())

	b = New(h, &recordingRenderer{}, WithClock(clock), WithWindow(0))
	assert.Equal(t, "2023-10-01", b.Cutoff())
}

func TestRenderFailure(t *testing.T) {
	h := openStore(t)
	exec(t, h, `INSERT INTO products (name, price) VALUES ('Ноутбук', 50000)`)
	seedOrders(t, h, [][2]any{{1, "2023-10-20"}})

	rr := &recordingRenderer{err: errors.New("disk full")}
	_, err := New(h, rr, WithClock(clock)).OrderDynamics(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoData)
}

package exporter

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail-records/internal/db"
	"retail-records/internal/domain"
	"retail-records/internal/importer"
	"retail-records/internal/migrate"
	custrepo "retail-records/internal/repository/customer"
)

type customerList []domain.Customer

func (l customerList) List(context.Context) ([]domain.Customer, error) { return l, nil }

type productList []domain.Product

func (l productList) List(context.Context) ([]domain.Product, error) { return l, nil }

type orderList []domain.Order

func (l orderList) List(context.Context) ([]domain.Order, error) { return l, nil }

type failingSource struct{}

func (failingSource) List(context.Context) ([]domain.Customer, error) {
	return nil, &domain.StorageError{Op: "customer list", Err: errors.New("disk I/O error")}
}

func TestCustomersOmitsIdentity(t *testing.T) {
	var buf bytes.Buffer
	n, err := Customers(context.Background(), &buf, customerList{
		{ID: 7, Name: "Иван Иванов", Phone: "+79161234567", Email: "ivanov@example.com", Address: "Москва, ул. Ленина, 1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "ФИО,Телефон,Email,Адрес\nИван Иванов,+79161234567,ivanov@example.com,\"Москва, ул. Ленина, 1\"\n", buf.String())
}

func TestProducts(t *testing.T) {
	var buf bytes.Buffer
	_, err := Products(context.Background(), &buf, productList{{ID: 1, Name: "Ноутбук", Price: 50000}, {ID: 2, Name: "Мышь", Price: 990.5}})
	require.NoError(t, err)
	assert.Equal(t, "Название,Цена\nНоутбук,50000\nМышь,990.5\n", buf.String())
}

func TestOrdersAreRawTriples(t *testing.T) {
	var buf bytes.Buffer
	_, err := Orders(context.Background(), &buf, orderList{{ID: 1001, CustomerID: 1, ProductID: 101, Date: "2023-10-15"}})
	require.NoError(t, err)
	assert.Equal(t, "ID клиента,ID товара,Дата заказа\n1,101,2023-10-15\n", buf.String())
}

func TestEmptyExportWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	n, err := Products(context.Background(), &buf, productList{})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "Название,Цена\n", buf.String())
}

func TestSourceErrorPropagates(t *testing.T) {
	var buf bytes.Buffer
	_, err := Customers(context.Background(), &buf, failingSource{})
	var se *domain.StorageError
	assert.True(t, errors.As(err, &se))
	assert.Empty(t, buf.String())
}

func TestCustomerRoundTrip(t *testing.T) {
	ctx := context.Background()
	open := func() custrepo.Repository {
		h, err := db.Open(ctx, "sqlite3", filepath.Join(t.TempDir(), "store.db"), nil)
		require.NoError(t, err)
		t.Cleanup(func() { h.Close() })
		require.NoError(t, migrate.Apply(ctx, h))
		return custrepo.NewSQL(h, nil)
	}

	src := open()
	for _, c := range []domain.Customer{
		{Name: "Иван Иванов", Phone: "+79161234567", Email: "ivanov@example.com", Address: "Москва, ул. Ленина, 1"},
		{Name: "Пётр \"Петя\" Петров"},
	} {
		_, err := src.Add(ctx, c)
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	_, err := Customers(ctx, &buf, src)
	require.NoError(t, err)

	dst := open()
	n, err := importer.NewCSVImporter(importer.Customers, &buf, importer.Writers{Customers: dst}).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	before, err := src.List(ctx)
	require.NoError(t, err)
	after, err := dst.List(ctx)
	require.NoError(t, err)

	strip := func(rows []domain.Customer) []domain.Customer {
		out := make([]domain.Customer, len(rows))
		for i, c := range rows {
			c.ID = 0
			out[i] = c
		}
		return out
	}
	assert.ElementsMatch(t, strip(before), strip(after))
}

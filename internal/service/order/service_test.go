package order

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail-records/internal/db"
	"retail-records/internal/domain"
	"retail-records/internal/migrate"
	custrepo "retail-records/internal/repository/customer"
	orderrepo "retail-records/internal/repository/order"
	productrepo "retail-records/internal/repository/product"
)

type stack struct {
	svc       *Service
	customers custrepo.Repository
	products  productrepo.Repository
}

func newStack(t *testing.T) stack {
	t.Helper()
	ctx := context.Background()
	h, err := db.Open(ctx, "sqlite3", filepath.Join(t.TempDir(), "store.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	require.NoError(t, migrate.Apply(ctx, h))

	customers := custrepo.NewSQL(h, nil)
	products := productrepo.NewSQL(h, nil)
	return stack{
		svc:       New(orderrepo.NewSQL(h, nil), customers, products),
		customers: customers,
		products:  products,
	}
}

func TestCreateResolvesReferences(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)

	cid, err := s.customers.Add(ctx, domain.Customer{Name: "Иван Иванов"})
	require.NoError(t, err)
	pid, err := s.products.Add(ctx, domain.Product{Name: "Ноутбук", Price: 50000})
	require.NoError(t, err)

	o, err := s.svc.Create(ctx, Input{CustomerID: cid, ProductID: pid, Date: " 2023-10-15 "})
	require.NoError(t, err)
	assert.Equal(t, "2023-10-15", o.Date)

	views, err := s.svc.ListViews(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Ноутбук", views[0].ProductName)

	_, err = s.svc.Create(ctx, Input{CustomerID: cid + 10, ProductID: pid, Date: "2023-10-15"})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "customerId", ve.Field)

	_, err = s.svc.Create(ctx, Input{CustomerID: cid, ProductID: pid + 10, Date: "2023-10-15"})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "productId", ve.Field)

	list, err := s.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateRejectsBadDate(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)

	cid, err := s.customers.Add(ctx, domain.Customer{Name: "Иван"})
	require.NoError(t, err)
	pid, err := s.products.Add(ctx, domain.Product{Name: "Мышь", Price: 990})
	require.NoError(t, err)

	_, err = s.svc.Create(ctx, Input{CustomerID: cid, ProductID: pid, Date: "15.10.2023"})
	assert.ErrorAs(t, err, new(*domain.ValidationError))
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)

	cid, err := s.customers.Add(ctx, domain.Customer{Name: "Иван"})
	require.NoError(t, err)
	pid, err := s.products.Add(ctx, domain.Product{Name: "Мышь", Price: 990})
	require.NoError(t, err)

	o, err := s.svc.Create(ctx, Input{CustomerID: cid, ProductID: pid, Date: "2023-10-15"})
	require.NoError(t, err)

	_, err = s.svc.Update(ctx, o.ID, Input{CustomerID: cid, ProductID: pid, Date: "2023-11-01"})
	require.NoError(t, err)
	got, err := s.svc.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "2023-11-01", got.Date)

	_, err = s.svc.Update(ctx, o.ID+1, Input{CustomerID: cid, ProductID: pid, Date: "2023-11-01"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.svc.Delete(ctx, o.ID))
	_, err = s.svc.Get(ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package order

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"retail-records/internal/db"
	"retail-records/internal/domain"
	"retail-records/internal/migrate"
	"retail-records/internal/repository/customer"
	"retail-records/internal/repository/product"
)

type fixture struct {
	h         *db.Handle
	customers customer.Repository
	products  product.Repository
	orders    Repository
}

func newFixture(ctx context.Context, t *testing.T) fixture {
	t.Helper()
	h, err := db.Open(ctx, "sqlite3", filepath.Join(t.TempDir(), "store.db"), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	if err := migrate.Apply(ctx, h); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return fixture{
		h:         h,
		customers: customer.NewSQL(h, nil),
		products:  product.NewSQL(h, nil),
		orders:    NewSQL(h, nil),
	}
}

func (f fixture) mustCustomer(ctx context.Context, t *testing.T, name, phone string) int64 {
	t.Helper()
	id, err := f.customers.Add(ctx, domain.Customer{Name: name, Phone: phone})
	if err != nil {
		t.Fatalf("add customer: %v", err)
	}
	return id
}

func (f fixture) mustProduct(ctx context.Context, t *testing.T, name string, price float64) int64 {
	t.Helper()
	id, err := f.products.Add(ctx, domain.Product{Name: name, Price: price})
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	return id
}

func TestSQL_AddAndListViews(t *testing.T) {
	ctx := context.Background()
	f := newFixture(ctx, t)

	cid := f.mustCustomer(ctx, t, "Иван Иванов", "+79161234567")
	pid := f.mustProduct(ctx, t, "Ноутбук", 50000)

	oid, err := f.orders.Add(ctx, domain.Order{CustomerID: cid, ProductID: pid, Date: "2023-10-15"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	views, err := f.orders.ListViews(ctx)
	if err != nil {
		t.Fatalf("ListViews: %v", err)
	}
	want := domain.OrderView{ID: oid, CustomerName: "Иван Иванов", CustomerPhone: "+79161234567", ProductName: "Ноутбук", ProductPrice: 50000, Date: "2023-10-15"}
	if len(views) != 1 || views[0] != want {
		t.Fatalf("unexpected views %+v", views)
	}

	raw, err := f.orders.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(raw) != 1 || raw[0] != (domain.Order{ID: oid, CustomerID: cid, ProductID: pid, Date: "2023-10-15"}) {
		t.Fatalf("unexpected raw orders %+v", raw)
	}
}

func TestSQL_DeleteCustomerCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(ctx, t)

	c1 := f.mustCustomer(ctx, t, "Иван", "")
	c2 := f.mustCustomer(ctx, t, "Пётр", "")
	pid := f.mustProduct(ctx, t, "Мышь", 990)

	for _, cid := range []int64{c1, c1, c2} {
		if _, err := f.orders.Add(ctx, domain.Order{CustomerID: cid, ProductID: pid, Date: "2023-10-15"}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	if err := f.customers.Delete(ctx, c1); err != nil {
		t.Fatalf("delete customer: %v", err)
	}

	raw, err := f.orders.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(raw) != 1 || raw[0].CustomerID != c2 {
		t.Fatalf("expected only the other customer's order, got %+v", raw)
	}
}

func TestSQL_DeleteProductCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(ctx, t)

	cid := f.mustCustomer(ctx, t, "Иван", "")
	pid := f.mustProduct(ctx, t, "Мышь", 990)
	if _, err := f.orders.Add(ctx, domain.Order{CustomerID: cid, ProductID: pid, Date: "2023-10-15"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := f.products.Delete(ctx, pid); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	views, err := f.orders.ListViews(ctx)
	if err != nil {
		t.Fatalf("ListViews: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected no orders, got %+v", views)
	}
}

func TestSQL_AddRejectsDanglingReference(t *testing.T) {
	ctx := context.Background()
	f := newFixture(ctx, t)

	_, err := f.orders.Add(ctx, domain.Order{CustomerID: 7, ProductID: 8, Date: "2023-10-15"})
	var se *domain.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}

func TestSQL_UpdateAndGet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(ctx, t)

	cid := f.mustCustomer(ctx, t, "Иван", "")
	p1 := f.mustProduct(ctx, t, "Мышь", 990)
	p2 := f.mustProduct(ctx, t, "Клавиатура", 2500)

	oid, err := f.orders.Add(ctx, domain.Order{CustomerID: cid, ProductID: p1, Date: "2023-10-15"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := f.orders.Update(ctx, domain.Order{ID: oid, CustomerID: cid, ProductID: p2, Date: "2023-10-16"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := f.orders.GetByID(ctx, oid)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ProductID != p2 || got.Date != "2023-10-16" {
		t.Fatalf("unexpected order %+v", got)
	}

	err = f.orders.Update(ctx, domain.Order{ID: 999, CustomerID: cid, ProductID: p2, Date: "2023-10-16"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

package order

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log"

	"retail-records/internal/db"
	"retail-records/internal/domain"
)

type sqlRepo struct {
	h      *db.Handle
	logger *log.Logger
}

// NewSQL returns a Repository backed by the store behind h.
func NewSQL(h *db.Handle, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &sqlRepo{h: h, logger: logger}
}

func (r *sqlRepo) Add(ctx context.Context, o domain.Order) (int64, error) {
	const q = `
INSERT INTO orders (customer_id, product_id, date)
VALUES (?, ?, ?)
RETURNING id
`
	var id int64
	if err := r.h.QueryRowContext(ctx, q, o.CustomerID, o.ProductID, o.Date).Scan(&id); err != nil {
		r.logger.Printf("order repo: add customer_id=%d product_id=%d error=%v", o.CustomerID, o.ProductID, err)
		return 0, domain.Storage("order add", err)
	}
	r.logger.Printf("order repo: add id=%d", id)
	return id, nil
}

func (r *sqlRepo) Update(ctx context.Context, o domain.Order) error {
	const q = `
UPDATE orders
SET customer_id = ?, product_id = ?, date = ?
WHERE id = ?
`
	res, err := r.h.ExecContext(ctx, q, o.CustomerID, o.ProductID, o.Date, o.ID)
	if err != nil {
		r.logger.Printf("order repo: update id=%d error=%v", o.ID, err)
		return domain.Storage("order update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Storage("order update", err)
	}
	if n == 0 {
		r.logger.Printf("order repo: update id=%d rows=0", o.ID)
		return domain.ErrNotFound
	}
	return nil
}

func (r *sqlRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM orders WHERE id = ?`
	res, err := r.h.ExecContext(ctx, q, id)
	if err != nil {
		r.logger.Printf("order repo: delete id=%d error=%v", id, err)
		return domain.Storage("order delete", err)
	}
	n, _ := res.RowsAffected()
	r.logger.Printf("order repo: delete id=%d rows=%d", id, n)
	return nil
}

func (r *sqlRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	const q = `SELECT id, customer_id, product_id, date FROM orders WHERE id = ?`
	var o domain.Order
	if err := r.h.QueryRowContext(ctx, q, id).Scan(&o.ID, &o.CustomerID, &o.ProductID, &o.Date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%d error=%v", id, err)
		return nil, domain.Storage("order get", err)
	}
	return &o, nil
}

func (r *sqlRepo) List(ctx context.Context) ([]domain.Order, error) {
	const q = `SELECT id, customer_id, product_id, date FROM orders ORDER BY id`
	rows, err := r.h.QueryContext(ctx, q)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, domain.Storage("order list", err)
	}
	defer rows.Close()

	out := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.ProductID, &o.Date); err != nil {
			r.logger.Printf("order repo: list scan error=%v", err)
			return nil, domain.Storage("order list", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("order list", err)
	}
	return out, nil
}

func (r *sqlRepo) ListViews(ctx context.Context) ([]domain.OrderView, error) {
	const q = `
SELECT orders.id, customers.name, COALESCE(customers.phone, ''),
       products.name, COALESCE(products.price, 0), orders.date
FROM orders
JOIN customers ON orders.customer_id = customers.id
JOIN products ON orders.product_id = products.id
ORDER BY orders.id
`
	rows, err := r.h.QueryContext(ctx, q)
	if err != nil {
		r.logger.Printf("order repo: list views error=%v", err)
		return nil, domain.Storage("order list views", err)
	}
	defer rows.Close()

	out := make([]domain.OrderView, 0)
	for rows.Next() {
		var v domain.OrderView
		if err := rows.Scan(&v.ID, &v.CustomerName, &v.CustomerPhone, &v.ProductName, &v.ProductPrice, &v.Date); err != nil {
			r.logger.Printf("order repo: list views scan error=%v", err)
			return nil, domain.Storage("order list views", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("order list views", err)
	}
	return out, nil
}

package product

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

func (r *sqlRepo) Add(ctx context.Context, p domain.Product) (int64, error) {
	const q = `INSERT INTO products (name, price) VALUES (?, ?) RETURNING id`
	var id int64
	if err := r.h.QueryRowContext(ctx, q, p.Name, p.Price).Scan(&id); err != nil {
		r.logger.Printf("product repo: add name=%q error=%v", p.Name, err)
		return 0, domain.Storage("product add", err)
	}
	r.logger.Printf("product repo: add id=%d", id)
	return id, nil
}

func (r *sqlRepo) Update(ctx context.Context, p domain.Product) error {
	const q = `UPDATE products SET name = ?, price = ? WHERE id = ?`
	res, err := r.h.ExecContext(ctx, q, p.Name, p.Price, p.ID)
	if err != nil {
		r.logger.Printf("product repo: update id=%d error=%v", p.ID, err)
		return domain.Storage("product update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Storage("product update", err)
	}
	if n == 0 {
		r.logger.Printf("product repo: update id=%d rows=0", p.ID)
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the product; orders referencing it go with it.
func (r *sqlRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM products WHERE id = ?`
	res, err := r.h.ExecContext(ctx, q, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%d error=%v", id, err)
		return domain.Storage("product delete", err)
	}
	n, _ := res.RowsAffected()
	r.logger.Printf("product repo: delete id=%d rows=%d", id, n)
	return nil
}

func (r *sqlRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `SELECT id, name, COALESCE(price, 0) FROM products WHERE id = ?`
	var p domain.Product
	if err := r.h.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &p.Price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%d error=%v", id, err)
		return nil, domain.Storage("product get", err)
	}
	return &p, nil
}

func (r *sqlRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `SELECT id, name, COALESCE(price, 0) FROM products ORDER BY id`
	rows, err := r.h.QueryContext(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, domain.Storage("product list", err)
	}
	defer rows.Close()

	out := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			r.logger.Printf("product repo: list scan error=%v", err)
			return nil, domain.Storage("product list", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("product list", err)
	}
	return out, nil
}

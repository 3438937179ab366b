package customer

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

func (r *sqlRepo) Add(ctx context.Context, c domain.Customer) (int64, error) {
	const q = `
INSERT INTO customers (name, phone, email, address)
VALUES (?, ?, ?, ?)
RETURNING id
`
	var id int64
	if err := r.h.QueryRowContext(ctx, q, c.Name, c.Phone, c.Email, c.Address).Scan(&id); err != nil {
		r.logger.Printf("customer repo: add name=%q error=%v", c.Name, err)
		return 0, domain.Storage("customer add", err)
	}
	r.logger.Printf("customer repo: add id=%d", id)
	return id, nil
}

func (r *sqlRepo) Update(ctx context.Context, c domain.Customer) error {
	const q = `
UPDATE customers
SET name = ?, phone = ?, email = ?, address = ?
WHERE id = ?
`
	res, err := r.h.ExecContext(ctx, q, c.Name, c.Phone, c.Email, c.Address, c.ID)
	if err != nil {
		r.logger.Printf("customer repo: update id=%d error=%v", c.ID, err)
		return domain.Storage("customer update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		r.logger.Printf("customer repo: update id=%d rows error=%v", c.ID, err)
		return domain.Storage("customer update", err)
	}
	if n == 0 {
		r.logger.Printf("customer repo: update id=%d rows=0", c.ID)
		return domain.ErrNotFound
	}
	return nil
}

func (r *sqlRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM customers WHERE id = ?`
	res, err := r.h.ExecContext(ctx, q, id)
	if err != nil {
		r.logger.Printf("customer repo: delete id=%d error=%v", id, err)
		return domain.Storage("customer delete", err)
	}
	n, _ := res.RowsAffected()
	r.logger.Printf("customer repo: delete id=%d rows=%d", id, n)
	return nil
}

func (r *sqlRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	const q = `
SELECT id, name, COALESCE(phone, ''), COALESCE(email, ''), COALESCE(address, '')
FROM customers
WHERE id = ?
`
	var c domain.Customer
	err := r.h.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: get id=%d error=%v", id, err)
		return nil, domain.Storage("customer get", err)
	}
	return &c, nil
}

func (r *sqlRepo) List(ctx context.Context) ([]domain.Customer, error) {
	const q = `
SELECT id, name, COALESCE(phone, ''), COALESCE(email, ''), COALESCE(address, '')
FROM customers
ORDER BY id
`
	rows, err := r.h.QueryContext(ctx, q)
	if err != nil {
		r.logger.Printf("customer repo: list error=%v", err)
		return nil, domain.Storage("customer list", err)
	}
	defer rows.Close()

	out := make([]domain.Customer, 0)
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address); err != nil {
			r.logger.Printf("customer repo: list scan error=%v", err)
			return nil, domain.Storage("customer list", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("customer repo: list rows error=%v", err)
		return nil, domain.Storage("customer list", err)
	}
	return out, nil
}

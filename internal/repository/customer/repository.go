package customer

import (
	"context"

	"retail-records/internal/domain"
)

// Repository persists and fetches customers.
type Repository interface {
	Add(ctx context.Context, c domain.Customer) (int64, error)
	Update(ctx context.Context, c domain.Customer) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
}

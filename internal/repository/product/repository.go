package product

import (
	"context"

	"retail-records/internal/domain"
)

// Repository persists and fetches products.
type Repository interface {
	Add(ctx context.Context, p domain.Product) (int64, error)
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}

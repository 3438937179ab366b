package order

import (
	"context"

	"retail-records/internal/domain"
)

// Repository persists and fetches orders.
type Repository interface {
	Add(ctx context.Context, o domain.Order) (int64, error)
	Update(ctx context.Context, o domain.Order) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// List returns raw orders including any whose references are gone.
	List(ctx context.Context) ([]domain.Order, error)
	// ListViews returns orders joined with their customer and product.
	ListViews(ctx context.Context) ([]domain.OrderView, error)
}

package order

import (
	"context"
	"errors"
	"strings"

	"retail-records/internal/domain"
	custrepo "retail-records/internal/repository/customer"
	orderrepo "retail-records/internal/repository/order"
	productrepo "retail-records/internal/repository/product"
	"retail-records/internal/validation"
)

// Service validates order input and checks that the referenced customer
// and product exist at write time.
type Service struct {
	orders    orderrepo.Repository
	customers custrepo.Repository
	products  productrepo.Repository
}

func New(orders orderrepo.Repository, customers custrepo.Repository, products productrepo.Repository) *Service {
	return &Service{orders: orders, customers: customers, products: products}
}

// Input captures the user-editable order fields.
type Input struct {
	CustomerID int64  `json:"customerId"`
	ProductID  int64  `json:"productId"`
	Date       string `json:"date"`
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Order, error) {
	o, err := s.prepare(ctx, 0, in)
	if err != nil {
		return nil, err
	}
	id, err := s.orders.Add(ctx, o)
	if err != nil {
		return nil, err
	}
	o.ID = id
	return &o, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Order, error) {
	o, err := s.prepare(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Service) prepare(ctx context.Context, id int64, in Input) (domain.Order, error) {
	o := domain.Order{ID: id, CustomerID: in.CustomerID, ProductID: in.ProductID, Date: strings.TrimSpace(in.Date)}
	if err := validation.Order(o); err != nil {
		return o, err
	}
	if _, err := s.customers.GetByID(ctx, o.CustomerID); err != nil {
		return o, unresolved("customerId", err)
	}
	if _, err := s.products.GetByID(ctx, o.ProductID); err != nil {
		return o, unresolved("productId", err)
	}
	return o, nil
}

func unresolved(field string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewValidationError(field, "Выберите клиента и товар")
	}
	return err
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.orders.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// List returns raw orders, as used by export.
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// ListViews returns the display projection of every order whose customer
// and product still exist.
func (s *Service) ListViews(ctx context.Context) ([]domain.OrderView, error) {
	return s.orders.ListViews(ctx)
}

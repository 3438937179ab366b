package product

import (
	"context"
	"math"
	"strconv"
	"strings"

	"retail-records/internal/domain"
	productrepo "retail-records/internal/repository/product"
	"retail-records/internal/validation"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Input captures the user-editable product fields.
type Input struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ParsePrice turns user text into a price. It does not check the sign; that
// is left to validation so both failures read the same way to the user.
func ParsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.NewValidationError("price", "Некорректная цена. Введите число (например: 199.99)")
	}
	return v, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Product, error) {
	p := domain.Product{Name: strings.TrimSpace(in.Name), Price: in.Price}
	if err := validation.Product(p); err != nil {
		return nil, err
	}
	id, err := s.repo.Add(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return &p, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Product, error) {
	p := domain.Product{ID: id, Name: strings.TrimSpace(in.Name), Price: in.Price}
	if err := validation.Product(p); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the product and every order that references it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

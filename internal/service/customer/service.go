package customer

import (
	"context"
	"strings"

	"retail-records/internal/domain"
	custrepo "retail-records/internal/repository/customer"
	"retail-records/internal/validation"
)

// Service validates customer input before it reaches the repository.
type Service struct {
	repo custrepo.Repository
}

func New(repo custrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Input captures the user-editable customer fields.
type Input struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (in Input) record(id int64) domain.Customer {
	return domain.Customer{
		ID:      id,
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Email:   strings.TrimSpace(in.Email),
		Address: strings.TrimSpace(in.Address),
	}
}

// Create validates in and stores a new customer.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Customer, error) {
	c := in.record(0)
	if err := validation.Customer(c); err != nil {
		return nil, err
	}
	id, err := s.repo.Add(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return &c, nil
}

// Update overwrites every field of customer id.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Customer, error) {
	c := in.record(id)
	if err := validation.Customer(c); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes the customer and, through the store, all of their orders.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.List(ctx)
}

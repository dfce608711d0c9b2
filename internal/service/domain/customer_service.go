package domain

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cinerama/cinerama/internal/model"
	"github.com/cinerama/cinerama/internal/repository"
	"github.com/cinerama/cinerama/internal/service"
)

type CustomerService interface {
	Create(customer *model.Customer) error
	Update(id uint, updated *model.Customer) (*model.Customer, error)
	Delete(id uint) bool
	GetByID(id uint) (*model.Customer, error)
	GetByEmail(email string) (*model.Customer, error)
	ListAll() []*model.Customer
}

type customerService struct {
	repo   repository.CustomerRepo
	logger *zap.Logger
}

var _ CustomerService = (*customerService)(nil)

func NewCustomerService(repo repository.CustomerRepo, logger *zap.Logger) *customerService {
	return &customerService{repo: repo, logger: logger}
}

func (s *customerService) Create(customer *model.Customer) error {
	if err := s.validate(customer); err != nil {
		return err
	}
	if _, err := s.repo.GetByEmail(customer.Email); err == nil {
		return fmt.Errorf("%w: email %q", service.ErrDuplicate, customer.Email)
	}
	s.repo.Create(customer)
	s.logger.Info("customer created", zap.Uint("customerId", customer.ID))
	return nil
}

func (s *customerService) Update(id uint, updated *model.Customer) (*model.Customer, error) {
	customer, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(updated); err != nil {
		return nil, err
	}
	if existing, err := s.repo.GetByEmail(updated.Email); err == nil && existing.ID != id {
		return nil, fmt.Errorf("%w: email %q", service.ErrDuplicate, updated.Email)
	}
	customer.Name = updated.Name
	customer.Email = updated.Email
	customer.Phone = updated.Phone
	return customer, nil
}

func (s *customerService) Delete(id uint) bool {
	return s.repo.Delete(id)
}

func (s *customerService) GetByID(id uint) (*model.Customer, error) {
	customer, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %d", service.ErrNotFound, id)
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) GetByEmail(email string) (*model.Customer, error) {
	customer, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %q", service.ErrNotFound, email)
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) ListAll() []*model.Customer {
	return s.repo.ListAll()
}

func (s *customerService) validate(customer *model.Customer) error {
	if customer.Name == "" {
		return fmt.Errorf("%w: name is required", service.ErrValidation)
	}
	if customer.Email == "" || !strings.Contains(customer.Email, "@") {
		return fmt.Errorf("%w: a valid email is required", service.ErrValidation)
	}
	return nil
}

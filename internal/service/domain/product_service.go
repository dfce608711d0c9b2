package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cinerama/cinerama/internal/model"
	"github.com/cinerama/cinerama/internal/repository"
	"github.com/cinerama/cinerama/internal/service"
)

type ProductService interface {
	Create(product *model.Product) error
	Update(id uint, updated *model.Product) (*model.Product, error)
	Delete(id uint) bool
	GetByID(id uint) (*model.Product, error)
	GetByName(name string) (*model.Product, error)
	ListAll() []*model.Product
	ListActive() []*model.Product
	ListByCategory(category model.ProductCategory) []*model.Product
	ListInStock() []*model.Product
	ListByPriceRange(min, max decimal.Decimal) []*model.Product

	Restock(id uint, quantity int) (*model.Product, error)
	SetStock(id uint, stock int) (*model.Product, error)
}

type productService struct {
	repo   repository.ProductRepo
	logger *zap.Logger
}

var _ ProductService = (*productService)(nil)

func NewProductService(repo repository.ProductRepo, logger *zap.Logger) *productService {
	return &productService{repo: repo, logger: logger}
}

func (s *productService) Create(product *model.Product) error {
	if err := s.validate(product); err != nil {
		return err
	}
	if _, err := s.repo.GetByName(product.Name); err == nil {
		return fmt.Errorf("%w: product name %q", service.ErrDuplicate, product.Name)
	}
	s.repo.Create(product)
	s.logger.Info("product created",
		zap.Uint("productId", product.ID),
		zap.String("name", product.Name),
		zap.Int("stock", product.Stock))
	return nil
}

func (s *productService) Update(id uint, updated *model.Product) (*model.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(updated); err != nil {
		return nil, err
	}
	if existing, err := s.repo.GetByName(updated.Name); err == nil && existing.ID != id {
		return nil, fmt.Errorf("%w: product name %q", service.ErrDuplicate, updated.Name)
	}
	product.Name = updated.Name
	product.Description = updated.Description
	product.Category = updated.Category
	product.Price = updated.Price
	product.Stock = updated.Stock
	product.Active = updated.Active
	product.ImageURL = updated.ImageURL
	return product, nil
}

func (s *productService) Delete(id uint) bool {
	return s.repo.Delete(id)
}

func (s *productService) GetByID(id uint) (*model.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %d", service.ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) GetByName(name string) (*model.Product, error) {
	product, err := s.repo.GetByName(name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %q", service.ErrNotFound, name)
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListAll() []*model.Product {
	return s.repo.ListAll()
}

func (s *productService) ListActive() []*model.Product {
	active := make([]*model.Product, 0)
	for _, product := range s.repo.ListAll() {
		if product.Active {
			active = append(active, product)
		}
	}
	return active
}

func (s *productService) ListByCategory(category model.ProductCategory) []*model.Product {
	matched := make([]*model.Product, 0)
	for _, product := range s.repo.ListAll() {
		if product.Category == category {
			matched = append(matched, product)
		}
	}
	return matched
}

func (s *productService) ListInStock() []*model.Product {
	stocked := make([]*model.Product, 0)
	for _, product := range s.repo.ListAll() {
		if product.HasStock() {
			stocked = append(stocked, product)
		}
	}
	return stocked
}

func (s *productService) ListByPriceRange(min, max decimal.Decimal) []*model.Product {
	matched := make([]*model.Product, 0)
	for _, product := range s.repo.ListAll() {
		if product.Price.Cmp(min) >= 0 && product.Price.Cmp(max) <= 0 {
			matched = append(matched, product)
		}
	}
	return matched
}

func (s *productService) Restock(id uint, quantity int) (*model.Product, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: restock quantity must be greater than 0", service.ErrValidation)
	}
	if !s.repo.IncreaseStock(id, quantity) {
		return nil, fmt.Errorf("%w: product %d", service.ErrNotFound, id)
	}
	s.logger.Info("product restocked", zap.Uint("productId", id), zap.Int("quantity", quantity))
	return s.repo.GetByID(id)
}

func (s *productService) SetStock(id uint, stock int) (*model.Product, error) {
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", service.ErrValidation)
	}
	if !s.repo.SetStock(id, stock) {
		return nil, fmt.Errorf("%w: product %d", service.ErrNotFound, id)
	}
	return s.repo.GetByID(id)
}

func (s *productService) validate(product *model.Product) error {
	if product.Name == "" {
		return fmt.Errorf("%w: name is required", service.ErrValidation)
	}
	switch product.Category {
	case model.CategoryPopcorn, model.CategoryDrinks, model.CategoryChocolate,
		model.CategoryCandy, model.CategoryCombos:
	default:
		return fmt.Errorf("%w: unknown category %q", service.ErrValidation, product.Category)
	}
	if product.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", service.ErrValidation)
	}
	if product.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", service.ErrValidation)
	}
	return nil
}

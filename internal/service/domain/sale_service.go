package domain

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cinerama/cinerama/internal/model"
	"github.com/cinerama/cinerama/internal/mq"
	"github.com/cinerama/cinerama/internal/repository"
	"github.com/cinerama/cinerama/internal/service"
)

// SaleService builds up concession sales line by line and commits product
// stock only when a sale completes. An open sale never holds stock.
type SaleService interface {
	Create(customerID *uint, paymentMethod string) (*model.ProductSale, error)
	GetByID(id uint) (*model.ProductSale, error)
	ListAll() []*model.ProductSale
	ListByCustomer(customerID uint) []*model.ProductSale
	ListByDate(date string) []*model.ProductSale
	ListCompleted() []*model.ProductSale
	ListPending() []*model.ProductSale

	AddLine(saleID, productID uint, quantity int) (*model.ProductSale, error)
	RemoveLine(saleID, productID uint) (*model.ProductSale, error)
	SetLineQuantity(saleID, productID uint, quantity int) (*model.ProductSale, error)
	Complete(saleID uint) (*model.ProductSale, error)
}

type saleService struct {
	mu       sync.Mutex
	repo     repository.SaleRepo
	products repository.ProductRepo
	custRepo repository.CustomerRepo
	events   *mq.Publisher
	logger   *zap.Logger
}

var _ SaleService = (*saleService)(nil)

func NewSaleService(
	repo repository.SaleRepo,
	products repository.ProductRepo,
	custRepo repository.CustomerRepo,
	events *mq.Publisher,
	logger *zap.Logger,
) *saleService {
	return &saleService{
		repo:     repo,
		products: products,
		custRepo: custRepo,
		events:   events,
		logger:   logger,
	}
}

type saleCompletedEvent struct {
	SaleID     uint            `json:"sale_id"`
	Total      decimal.Decimal `json:"total"`
	Items      int             `json:"items"`
	CustomerID *uint           `json:"customer_id,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func (s *saleService) Create(customerID *uint, paymentMethod string) (*model.ProductSale, error) {
	switch model.PaymentMethod(paymentMethod) {
	case model.MethodCreditCard, model.MethodDebitCard, model.MethodAppYape,
		model.MethodAppPlin, model.MethodCash:
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", service.ErrValidation, paymentMethod)
	}
	if customerID != nil {
		if _, err := s.custRepo.GetByID(*customerID); err != nil {
			return nil, fmt.Errorf("%w: customer %d", service.ErrNotFound, *customerID)
		}
	}
	sale := s.repo.Create(customerID, paymentMethod)
	s.logger.Info("sale opened", zap.Uint("saleId", sale.ID))
	return sale, nil
}

func (s *saleService) GetByID(id uint) (*model.ProductSale, error) {
	return s.getByID(id)
}

func (s *saleService) getByID(id uint) (*model.ProductSale, error) {
	sale, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: sale %d", service.ErrNotFound, id)
	}
	return sale, nil
}

func (s *saleService) ListAll() []*model.ProductSale {
	return s.repo.ListAll()
}

func (s *saleService) ListByCustomer(customerID uint) []*model.ProductSale {
	return s.repo.ListByCustomer(customerID)
}

// ListByDate matches sales by the calendar date of their timestamp, in the
// server's local zone.
func (s *saleService) ListByDate(date string) []*model.ProductSale {
	matched := make([]*model.ProductSale, 0)
	for _, sale := range s.repo.ListAll() {
		if sale.SoldAt.Format("2006-01-02") == date {
			matched = append(matched, sale)
		}
	}
	return matched
}

func (s *saleService) ListCompleted() []*model.ProductSale {
	return s.listByCompletion(true)
}

func (s *saleService) ListPending() []*model.ProductSale {
	return s.listByCompletion(false)
}

func (s *saleService) listByCompletion(completed bool) []*model.ProductSale {
	matched := make([]*model.ProductSale, 0)
	for _, sale := range s.repo.ListAll() {
		if sale.Completed == completed {
			matched = append(matched, sale)
		}
	}
	return matched
}

// AddLine accumulates quantity on the existing line for the product, or
// appends a new line at the product's current price. Stock is checked
// against the projected line quantity but not yet reduced.
func (s *saleService) AddLine(saleID, productID uint, quantity int) (*model.ProductSale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, err := s.openSale(saleID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than 0", service.ErrValidation)
	}
	product, err := s.products.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("%w: product %d", service.ErrNotFound, productID)
	}
	if !product.Active {
		return nil, fmt.Errorf("%w: product %q is not for sale", service.ErrValidation, product.Name)
	}
	projected := quantity
	if line := sale.LineFor(productID); line != nil {
		projected += line.Quantity
	}
	if product.Stock < projected {
		return nil, fmt.Errorf("%w: %s", service.ErrInsufficientStock, product.Name)
	}
	sale.AddLine(product, quantity)
	return sale, nil
}

func (s *saleService) RemoveLine(saleID, productID uint) (*model.ProductSale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, err := s.openSale(saleID)
	if err != nil {
		return nil, err
	}
	sale.RemoveLine(productID)
	return sale, nil
}

// SetLineQuantity overwrites a line's quantity. Zero or negative removes
// the line.
func (s *saleService) SetLineQuantity(saleID, productID uint, quantity int) (*model.ProductSale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, err := s.openSale(saleID)
	if err != nil {
		return nil, err
	}
	if quantity > 0 {
		product, err := s.products.GetByID(productID)
		if err != nil {
			return nil, fmt.Errorf("%w: product %d", service.ErrNotFound, productID)
		}
		if product.Stock < quantity {
			return nil, fmt.Errorf("%w: %s", service.ErrInsufficientStock, product.Name)
		}
	}
	sale.SetLineQuantity(productID, quantity)
	return sale, nil
}

// Complete commits stock for every line in one shot and freezes the sale.
// The commit validates all lines before decrementing any stock, so a
// depleted product fails the whole sale with nothing changed.
func (s *saleService) Complete(saleID uint) (*model.ProductSale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, err := s.openSale(saleID)
	if err != nil {
		return nil, err
	}
	if len(sale.Lines) == 0 {
		return nil, fmt.Errorf("%w: sale %d", service.ErrEmptySale, saleID)
	}
	if err := s.products.CommitStock(sale.Lines); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", service.ErrNotFound, err)
		}
		return nil, err
	}
	sale.Complete()

	s.logger.Info("sale completed",
		zap.Uint("saleId", sale.ID),
		zap.String("total", sale.Total.String()),
		zap.Int("items", sale.TotalQuantity()))
	err = s.events.Publish(mq.SaleEventsQueue, saleCompletedEvent{
		SaleID:     sale.ID,
		Total:      sale.Total,
		Items:      sale.TotalQuantity(),
		CustomerID: sale.CustomerID,
		OccurredAt: time.Now(),
	})
	if err != nil {
		s.logger.Warn("failed to publish sale event", zap.Uint("saleId", sale.ID), zap.Error(err))
	}
	return sale, nil
}

func (s *saleService) openSale(id uint) (*model.ProductSale, error) {
	sale, err := s.getByID(id)
	if err != nil {
		return nil, err
	}
	if sale.Completed {
		return nil, fmt.Errorf("%w: sale %d", service.ErrSaleCompleted, id)
	}
	return sale, nil
}

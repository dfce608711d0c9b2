package repository

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cinerama/cinerama/internal/model"
)

type SaleRepo interface {
	Create(customerID *uint, paymentMethod string) *model.ProductSale
	GetByID(id uint) (*model.ProductSale, error)
	ListAll() []*model.ProductSale
	ListByCustomer(customerID uint) []*model.ProductSale
}

type saleRepoMemory struct {
	mu    sync.RWMutex
	byID  map[uint]*model.ProductSale
	idSeq atomic.Uint64
}

var _ SaleRepo = (*saleRepoMemory)(nil)

func NewSaleRepoMemory() *saleRepoMemory {
	return &saleRepoMemory{
		byID: make(map[uint]*model.ProductSale),
	}
}

func (r *saleRepoMemory) Create(customerID *uint, paymentMethod string) *model.ProductSale {
	sale := model.NewProductSale(uint(r.idSeq.Add(1)), customerID, paymentMethod)
	r.mu.Lock()
	r.byID[sale.ID] = sale
	r.mu.Unlock()
	return sale
}

func (r *saleRepoMemory) GetByID(id uint) (*model.ProductSale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sale, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sale, nil
}

func (r *saleRepoMemory) ListAll() []*model.ProductSale {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*model.ProductSale) bool { return true })
}

func (r *saleRepoMemory) ListByCustomer(customerID uint) []*model.ProductSale {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(s *model.ProductSale) bool {
		return s.CustomerID != nil && *s.CustomerID == customerID
	})
}

// collect must be called with the lock held.
func (r *saleRepoMemory) collect(keep func(*model.ProductSale) bool) []*model.ProductSale {
	sales := make([]*model.ProductSale, 0)
	for _, s := range r.byID {
		if keep(s) {
			sales = append(sales, s)
		}
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].ID < sales[j].ID })
	return sales
}

package repository

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cinerama/cinerama/internal/model"
)

type ProductRepo interface {
	Create(product *model.Product)
	GetByID(id uint) (*model.Product, error)
	GetByName(name string) (*model.Product, error)
	ListAll() []*model.Product
	Delete(id uint) bool

	// Stock mutations are check-then-act under the repo lock.
	SetStock(id uint, stock int) bool
	IncreaseStock(id uint, quantity int) bool
	DecreaseStock(id uint, quantity int) error
	CommitStock(lines []model.SaleLine) error
}

type productRepoMemory struct {
	mu    sync.RWMutex
	byID  map[uint]*model.Product
	idSeq atomic.Uint64
}

var _ ProductRepo = (*productRepoMemory)(nil)

func NewProductRepoMemory() *productRepoMemory {
	return &productRepoMemory{
		byID: make(map[uint]*model.Product),
	}
}

func (r *productRepoMemory) Create(product *model.Product) {
	product.ID = uint(r.idSeq.Add(1))
	r.mu.Lock()
	r.byID[product.ID] = product
	r.mu.Unlock()
}

func (r *productRepoMemory) GetByID(id uint) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return product, nil
}

func (r *productRepoMemory) GetByName(name string) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, product := range r.byID {
		if strings.EqualFold(product.Name, name) {
			return product, nil
		}
	}
	return nil, ErrNotFound
}

func (r *productRepoMemory) ListAll() []*model.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	products := make([]*model.Product, 0, len(r.byID))
	for _, product := range r.byID {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}

func (r *productRepoMemory) Delete(id uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	return true
}

func (r *productRepoMemory) SetStock(id uint, stock int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.byID[id]
	if !ok {
		return false
	}
	product.Stock = stock
	return true
}

func (r *productRepoMemory) IncreaseStock(id uint, quantity int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.byID[id]
	if !ok {
		return false
	}
	product.IncreaseStock(quantity)
	return true
}

func (r *productRepoMemory) DecreaseStock(id uint, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if !product.ReduceStock(quantity) {
		return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
	}
	return nil
}

// CommitStock validates every line before decrementing any stock, so a
// failed commit leaves all products untouched.
func (r *productRepoMemory) CommitStock(lines []model.SaleLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, line := range lines {
		product, ok := r.byID[line.ProductID]
		if !ok {
			return fmt.Errorf("%w: product %d", ErrNotFound, line.ProductID)
		}
		if product.Stock < line.Quantity {
			return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
		}
	}
	for _, line := range lines {
		r.byID[line.ProductID].Stock -= line.Quantity
	}
	return nil
}

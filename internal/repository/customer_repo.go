package repository

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cinerama/cinerama/internal/model"
)

type CustomerRepo interface {
	Create(customer *model.Customer)
	GetByID(id uint) (*model.Customer, error)
	GetByEmail(email string) (*model.Customer, error)
	ListAll() []*model.Customer
	Delete(id uint) bool
}

type customerRepoMemory struct {
	mu    sync.RWMutex
	byID  map[uint]*model.Customer
	idSeq atomic.Uint64
}

var _ CustomerRepo = (*customerRepoMemory)(nil)

func NewCustomerRepoMemory() *customerRepoMemory {
	return &customerRepoMemory{
		byID: make(map[uint]*model.Customer),
	}
}

func (r *customerRepoMemory) Create(customer *model.Customer) {
	customer.ID = uint(r.idSeq.Add(1))
	r.mu.Lock()
	r.byID[customer.ID] = customer
	r.mu.Unlock()
}

func (r *customerRepoMemory) GetByID(id uint) (*model.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customer, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return customer, nil
}

func (r *customerRepoMemory) GetByEmail(email string) (*model.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, customer := range r.byID {
		if strings.EqualFold(customer.Email, email) {
			return customer, nil
		}
	}
	return nil, ErrNotFound
}

func (r *customerRepoMemory) ListAll() []*model.Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customers := make([]*model.Customer, 0, len(r.byID))
	for _, customer := range r.byID {
		customers = append(customers, customer)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	return customers
}

func (r *customerRepoMemory) Delete(id uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	return true
}

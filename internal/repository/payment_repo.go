package repository

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cinerama/cinerama/internal/model"
)

type PaymentRepo interface {
	Create(payment *model.Payment)
	GetByID(id uint) (*model.Payment, error)
	GetByReference(reference string) (*model.Payment, error)
	ListAll() []*model.Payment
	ListByCustomer(customerID uint) []*model.Payment
	ListByState(state model.PaymentState) []*model.Payment
}

type paymentRepoMemory struct {
	mu    sync.RWMutex
	byID  map[uint]*model.Payment
	idSeq atomic.Uint64
}

var _ PaymentRepo = (*paymentRepoMemory)(nil)

func NewPaymentRepoMemory() *paymentRepoMemory {
	return &paymentRepoMemory{
		byID: make(map[uint]*model.Payment),
	}
}

func (r *paymentRepoMemory) Create(payment *model.Payment) {
	payment.ID = uint(r.idSeq.Add(1))
	r.mu.Lock()
	r.byID[payment.ID] = payment
	r.mu.Unlock()
}

func (r *paymentRepoMemory) GetByID(id uint) (*model.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payment, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return payment, nil
}

func (r *paymentRepoMemory) GetByReference(reference string) (*model.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, payment := range r.byID {
		if payment.Reference == reference {
			return payment, nil
		}
	}
	return nil, ErrNotFound
}

func (r *paymentRepoMemory) ListAll() []*model.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*model.Payment) bool { return true })
}

func (r *paymentRepoMemory) ListByCustomer(customerID uint) []*model.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p *model.Payment) bool { return p.CustomerID == customerID })
}

func (r *paymentRepoMemory) ListByState(state model.PaymentState) []*model.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p *model.Payment) bool { return p.State == state })
}

// collect must be called with the lock held.
func (r *paymentRepoMemory) collect(keep func(*model.Payment) bool) []*model.Payment {
	payments := make([]*model.Payment, 0)
	for _, p := range r.byID {
		if keep(p) {
			payments = append(payments, p)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	return payments
}

package repository

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/cinerama/cinerama/internal/model"
)

type TicketRepo interface {
	Create(ticket *model.Ticket)
	GetByID(id uint) (*model.Ticket, error)
	ListAll() []*model.Ticket
	ListByCustomer(customerID uint) []*model.Ticket
	ListByShowtime(showtimeID uint) []*model.Ticket
	ListByState(state model.TicketState) []*model.Ticket
	ListValid() []*model.Ticket
	Delete(id uint) bool

	// SeatOccupied reports whether a valid ticket other than excludeID
	// holds the (showtime, seat) pair. Pass excludeID 0 to consider all.
	SeatOccupied(showtimeID uint, seat string, excludeID uint) bool
	OccupiedSeats(showtimeID uint) []string

	RevenueForShowtime(showtimeID uint) decimal.Decimal
	SoldCountForShowtime(showtimeID uint) int
}

type ticketRepoMemory struct {
	mu    sync.RWMutex
	byID  map[uint]*model.Ticket
	idSeq atomic.Uint64
}

var _ TicketRepo = (*ticketRepoMemory)(nil)

func NewTicketRepoMemory() *ticketRepoMemory {
	return &ticketRepoMemory{
		byID: make(map[uint]*model.Ticket),
	}
}

func (r *ticketRepoMemory) Create(ticket *model.Ticket) {
	ticket.ID = uint(r.idSeq.Add(1))
	r.mu.Lock()
	r.byID[ticket.ID] = ticket
	r.mu.Unlock()
}

func (r *ticketRepoMemory) GetByID(id uint) (*model.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ticket, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ticket, nil
}

func (r *ticketRepoMemory) ListAll() []*model.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*model.Ticket) bool { return true })
}

func (r *ticketRepoMemory) ListByCustomer(customerID uint) []*model.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(t *model.Ticket) bool { return t.CustomerID == customerID })
}

func (r *ticketRepoMemory) ListByShowtime(showtimeID uint) []*model.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(t *model.Ticket) bool { return t.ShowtimeID == showtimeID })
}

func (r *ticketRepoMemory) ListByState(state model.TicketState) []*model.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(t *model.Ticket) bool { return t.State == state })
}

func (r *ticketRepoMemory) ListValid() []*model.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(t *model.Ticket) bool { return t.IsValid() })
}

// collect must be called with the lock held.
func (r *ticketRepoMemory) collect(keep func(*model.Ticket) bool) []*model.Ticket {
	tickets := make([]*model.Ticket, 0)
	for _, t := range r.byID {
		if keep(t) {
			tickets = append(tickets, t)
		}
	}
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].ID < tickets[j].ID })
	return tickets
}

func (r *ticketRepoMemory) Delete(id uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	return true
}

func (r *ticketRepoMemory) SeatOccupied(showtimeID uint, seat string, excludeID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.byID {
		if t.ID != excludeID && t.ShowtimeID == showtimeID && t.Seat == seat && t.IsValid() {
			return true
		}
	}
	return false
}

func (r *ticketRepoMemory) OccupiedSeats(showtimeID uint) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seats := make([]string, 0)
	for _, t := range r.byID {
		if t.ShowtimeID == showtimeID && t.IsValid() {
			seats = append(seats, t.Seat)
		}
	}
	sort.Strings(seats)
	return seats
}

// RevenueForShowtime sums the price of PAID tickets only.
func (r *ticketRepoMemory) RevenueForShowtime(showtimeID uint) decimal.Decimal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := decimal.Zero
	for _, t := range r.byID {
		if t.ShowtimeID == showtimeID && t.State == model.TicketPaid {
			total = total.Add(t.Price)
		}
	}
	return total
}

func (r *ticketRepoMemory) SoldCountForShowtime(showtimeID uint) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, t := range r.byID {
		if t.ShowtimeID == showtimeID && t.State == model.TicketPaid {
			n++
		}
	}
	return n
}

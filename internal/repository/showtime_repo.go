package repository

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cinerama/cinerama/internal/model"
)

type ShowtimeRepo interface {
	Create(showtime *model.Showtime)
	GetByID(id uint) (*model.Showtime, error)
	ListAll() []*model.Showtime
	ListByMovie(movieID uint) []*model.Showtime
	ListByRoom(roomID uint) []*model.Showtime
	ListByDate(date string) []*model.Showtime
	Delete(id uint) bool

	// Seat accounting. Both operations are check-then-act under the repo
	// lock so concurrent callers can never drive the counter out of range.
	ReserveSeat(id uint) bool
	ReleaseSeat(id uint) bool
	HasAvailability(id uint) bool
	SeatsAvailable(id uint) (int, bool)
}

type showtimeRepoMemory struct {
	mu    sync.RWMutex
	byID  map[uint]*model.Showtime
	idSeq atomic.Uint64
}

var _ ShowtimeRepo = (*showtimeRepoMemory)(nil)

func NewShowtimeRepoMemory() *showtimeRepoMemory {
	return &showtimeRepoMemory{
		byID: make(map[uint]*model.Showtime),
	}
}

func (r *showtimeRepoMemory) Create(showtime *model.Showtime) {
	showtime.ID = uint(r.idSeq.Add(1))
	r.mu.Lock()
	r.byID[showtime.ID] = showtime
	r.mu.Unlock()
}

func (r *showtimeRepoMemory) GetByID(id uint) (*model.Showtime, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	showtime, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return showtime, nil
}

func (r *showtimeRepoMemory) ListAll() []*model.Showtime {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*model.Showtime) bool { return true })
}

func (r *showtimeRepoMemory) ListByMovie(movieID uint) []*model.Showtime {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(s *model.Showtime) bool { return s.MovieID == movieID })
}

func (r *showtimeRepoMemory) ListByRoom(roomID uint) []*model.Showtime {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(s *model.Showtime) bool { return s.RoomID == roomID })
}

func (r *showtimeRepoMemory) ListByDate(date string) []*model.Showtime {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(s *model.Showtime) bool { return s.Date == date })
}

// collect must be called with the lock held.
func (r *showtimeRepoMemory) collect(keep func(*model.Showtime) bool) []*model.Showtime {
	showtimes := make([]*model.Showtime, 0)
	for _, s := range r.byID {
		if keep(s) {
			showtimes = append(showtimes, s)
		}
	}
	sort.Slice(showtimes, func(i, j int) bool { return showtimes[i].ID < showtimes[j].ID })
	return showtimes
}

func (r *showtimeRepoMemory) Delete(id uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	return true
}

func (r *showtimeRepoMemory) ReserveSeat(id uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	showtime, ok := r.byID[id]
	if !ok {
		return false
	}
	return showtime.ReserveSeat()
}

func (r *showtimeRepoMemory) ReleaseSeat(id uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	showtime, ok := r.byID[id]
	if !ok {
		return false
	}
	showtime.ReleaseSeat()
	return true
}

func (r *showtimeRepoMemory) HasAvailability(id uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	showtime, ok := r.byID[id]
	return ok && showtime.HasAvailability()
}

func (r *showtimeRepoMemory) SeatsAvailable(id uint) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	showtime, ok := r.byID[id]
	if !ok {
		return 0, false
	}
	return showtime.SeatsAvailable, true
}

package repository

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cinerama/cinerama/internal/model"
)

type MovieRepo interface {
	Create(movie *model.Movie)
	GetByID(id uint) (*model.Movie, error)
	GetByTitle(title string) (*model.Movie, error)
	ListAll() []*model.Movie
	Delete(id uint) bool
}

type movieRepoMemory struct {
	mu    sync.RWMutex
	byID  map[uint]*model.Movie
	idSeq atomic.Uint64
}

var _ MovieRepo = (*movieRepoMemory)(nil)

func NewMovieRepoMemory() *movieRepoMemory {
	return &movieRepoMemory{
		byID: make(map[uint]*model.Movie),
	}
}

func (r *movieRepoMemory) Create(movie *model.Movie) {
	movie.ID = uint(r.idSeq.Add(1))
	r.mu.Lock()
	r.byID[movie.ID] = movie
	r.mu.Unlock()
}

func (r *movieRepoMemory) GetByID(id uint) (*model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	movie, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return movie, nil
}

// GetByTitle matches case-insensitively; titles are unique under that rule.
func (r *movieRepoMemory) GetByTitle(title string) (*model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, movie := range r.byID {
		if strings.EqualFold(movie.Title, title) {
			return movie, nil
		}
	}
	return nil, ErrNotFound
}

func (r *movieRepoMemory) ListAll() []*model.Movie {
	r.mu.RLock()
	defer r.mu.RUnlock()
	movies := make([]*model.Movie, 0, len(r.byID))
	for _, movie := range r.byID {
		movies = append(movies, movie)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
	return movies
}

func (r *movieRepoMemory) Delete(id uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	return true
}

package repository

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cinerama/cinerama/internal/model"
)

type RoomRepo interface {
	Create(room *model.Room)
	GetByID(id uint) (*model.Room, error)
	GetByName(name string) (*model.Room, error)
	ListAll() []*model.Room
	Delete(id uint) bool
}

type roomRepoMemory struct {
	mu    sync.RWMutex
	byID  map[uint]*model.Room
	idSeq atomic.Uint64
}

var _ RoomRepo = (*roomRepoMemory)(nil)

func NewRoomRepoMemory() *roomRepoMemory {
	return &roomRepoMemory{
		byID: make(map[uint]*model.Room),
	}
}

func (r *roomRepoMemory) Create(room *model.Room) {
	room.ID = uint(r.idSeq.Add(1))
	r.mu.Lock()
	r.byID[room.ID] = room
	r.mu.Unlock()
}

func (r *roomRepoMemory) GetByID(id uint) (*model.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return room, nil
}

func (r *roomRepoMemory) GetByName(name string) (*model.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, room := range r.byID {
		if strings.EqualFold(room.Name, name) {
			return room, nil
		}
	}
	return nil, ErrNotFound
}

func (r *roomRepoMemory) ListAll() []*model.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rooms := make([]*model.Room, 0, len(r.byID))
	for _, room := range r.byID {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms
}

func (r *roomRepoMemory) Delete(id uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	return true
}

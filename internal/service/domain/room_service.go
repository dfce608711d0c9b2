package domain

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cinerama/cinerama/internal/model"
	"github.com/cinerama/cinerama/internal/repository"
	"github.com/cinerama/cinerama/internal/service"
)

type RoomService interface {
	Create(room *model.Room) error
	Update(id uint, updated *model.Room) (*model.Room, error)
	Delete(id uint) bool
	GetByID(id uint) (*model.Room, error)
	GetByName(name string) (*model.Room, error)
	ListAll() []*model.Room
	ListActive() []*model.Room
}

type roomService struct {
	repo   repository.RoomRepo
	logger *zap.Logger
}

var _ RoomService = (*roomService)(nil)

func NewRoomService(repo repository.RoomRepo, logger *zap.Logger) *roomService {
	return &roomService{repo: repo, logger: logger}
}

func (s *roomService) Create(room *model.Room) error {
	if err := s.validate(room); err != nil {
		return err
	}
	if _, err := s.repo.GetByName(room.Name); err == nil {
		return fmt.Errorf("%w: room name %q", service.ErrDuplicate, room.Name)
	}
	s.repo.Create(room)
	s.logger.Info("room created", zap.Uint("roomId", room.ID), zap.String("name", room.Name))
	return nil
}

func (s *roomService) Update(id uint, updated *model.Room) (*model.Room, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(updated); err != nil {
		return nil, err
	}
	if existing, err := s.repo.GetByName(updated.Name); err == nil && existing.ID != id {
		return nil, fmt.Errorf("%w: room name %q", service.ErrDuplicate, updated.Name)
	}
	room.Name = updated.Name
	room.Description = updated.Description
	room.Capacity = updated.Capacity
	room.Type = updated.Type
	room.Active = updated.Active
	return room, nil
}

func (s *roomService) Delete(id uint) bool {
	return s.repo.Delete(id)
}

func (s *roomService) GetByID(id uint) (*model.Room, error) {
	room, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: room %d", service.ErrNotFound, id)
		}
		return nil, err
	}
	return room, nil
}

func (s *roomService) GetByName(name string) (*model.Room, error) {
	room, err := s.repo.GetByName(name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: room %q", service.ErrNotFound, name)
		}
		return nil, err
	}
	return room, nil
}

func (s *roomService) ListAll() []*model.Room {
	return s.repo.ListAll()
}

func (s *roomService) ListActive() []*model.Room {
	active := make([]*model.Room, 0)
	for _, room := range s.repo.ListAll() {
		if room.Active {
			active = append(active, room)
		}
	}
	return active
}

func (s *roomService) validate(room *model.Room) error {
	if room.Name == "" {
		return fmt.Errorf("%w: name is required", service.ErrValidation)
	}
	if room.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be greater than 0", service.ErrValidation)
	}
	switch room.Type {
	case model.RoomTypeStandard, model.RoomTypeTwoD:
	default:
		return fmt.Errorf("%w: unknown room type %q", service.ErrValidation, room.Type)
	}
	return nil
}

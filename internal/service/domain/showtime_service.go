package domain

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cinerama/cinerama/internal/cache"
	"github.com/cinerama/cinerama/internal/model"
	"github.com/cinerama/cinerama/internal/repository"
	"github.com/cinerama/cinerama/internal/service"
)

// scheduleConflictWindow is the minimum spacing between two showtimes in
// the same room on the same date.
const scheduleConflictWindow = 7200 // seconds

// ShowtimeService owns the seat-capacity invariant: SeatsAvailable stays
// within [0, SeatsTotal] across any sequence of reserve/release calls.
type ShowtimeService interface {
	Create(showtime *model.Showtime) error
	Update(id uint, updated *model.Showtime) (*model.Showtime, error)
	Delete(id uint) bool
	GetByID(id uint) (*model.Showtime, error)
	ListAll() []*model.Showtime
	ListByMovie(movieID uint) []*model.Showtime
	ListByRoom(roomID uint) []*model.Showtime
	ListByDate(date string) []*model.Showtime
	ListByDateAndRoom(date string, roomID uint) []*model.Showtime
	ListAvailable() []*model.Showtime

	ReserveSeat(id uint) bool
	ReleaseSeat(id uint) bool
	HasAvailability(id uint) bool
}

type showtimeService struct {
	repo      repository.ShowtimeRepo
	movieRepo repository.MovieRepo
	roomRepo  repository.RoomRepo
	cache     *cache.RedisCache
	logger    *zap.Logger
}

var _ ShowtimeService = (*showtimeService)(nil)

func NewShowtimeService(
	repo repository.ShowtimeRepo,
	movieRepo repository.MovieRepo,
	roomRepo repository.RoomRepo,
	cache *cache.RedisCache,
	logger *zap.Logger,
) *showtimeService {
	return &showtimeService{
		repo:      repo,
		movieRepo: movieRepo,
		roomRepo:  roomRepo,
		cache:     cache,
		logger:    logger,
	}
}

func (s *showtimeService) Create(showtime *model.Showtime) error {
	if err := s.validate(showtime); err != nil {
		return err
	}
	if err := s.checkScheduleConflict(showtime, 0); err != nil {
		return err
	}
	s.repo.Create(showtime)
	s.logger.Info("showtime created",
		zap.Uint("showtimeId", showtime.ID),
		zap.Uint("roomId", showtime.RoomID),
		zap.Int("seatsTotal", showtime.SeatsTotal))
	s.mirrorSeats(showtime.ID)
	return nil
}

func (s *showtimeService) Update(id uint, updated *model.Showtime) (*model.Showtime, error) {
	showtime, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: showtime %d", service.ErrNotFound, id)
	}
	if err := s.validate(updated); err != nil {
		return nil, err
	}
	if err := s.checkScheduleConflict(updated, id); err != nil {
		return nil, err
	}
	showtime.MovieID = updated.MovieID
	showtime.RoomID = updated.RoomID
	showtime.Date = updated.Date
	showtime.Time = updated.Time
	showtime.SeatsAvailable = updated.SeatsAvailable
	showtime.SeatsTotal = updated.SeatsTotal
	s.mirrorSeats(id)
	return showtime, nil
}

func (s *showtimeService) Delete(id uint) bool {
	return s.repo.Delete(id)
}

func (s *showtimeService) GetByID(id uint) (*model.Showtime, error) {
	showtime, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: showtime %d", service.ErrNotFound, id)
		}
		return nil, err
	}
	return showtime, nil
}

func (s *showtimeService) ListAll() []*model.Showtime {
	return s.repo.ListAll()
}

func (s *showtimeService) ListByMovie(movieID uint) []*model.Showtime {
	return s.repo.ListByMovie(movieID)
}

func (s *showtimeService) ListByRoom(roomID uint) []*model.Showtime {
	return s.repo.ListByRoom(roomID)
}

func (s *showtimeService) ListByDate(date string) []*model.Showtime {
	return s.repo.ListByDate(date)
}

func (s *showtimeService) ListByDateAndRoom(date string, roomID uint) []*model.Showtime {
	matched := make([]*model.Showtime, 0)
	for _, showtime := range s.repo.ListByRoom(roomID) {
		if showtime.Date == date {
			matched = append(matched, showtime)
		}
	}
	return matched
}

func (s *showtimeService) ListAvailable() []*model.Showtime {
	available := make([]*model.Showtime, 0)
	for _, showtime := range s.repo.ListAll() {
		if showtime.HasAvailability() {
			available = append(available, showtime)
		}
	}
	return available
}

// ReserveSeat decrements the available-seat counter. It fails silently
// when the showtime is missing or sold out; no other side effects.
func (s *showtimeService) ReserveSeat(id uint) bool {
	ok := s.repo.ReserveSeat(id)
	if ok {
		s.mirrorSeats(id)
	}
	return ok
}

// ReleaseSeat returns a seat to the pool, clamped at capacity. It reports
// true whenever the showtime exists, even if the clamp fired.
func (s *showtimeService) ReleaseSeat(id uint) bool {
	ok := s.repo.ReleaseSeat(id)
	if ok {
		s.mirrorSeats(id)
	}
	return ok
}

func (s *showtimeService) HasAvailability(id uint) bool {
	return s.repo.HasAvailability(id)
}

func (s *showtimeService) validate(showtime *model.Showtime) error {
	if _, err := s.movieRepo.GetByID(showtime.MovieID); err != nil {
		return fmt.Errorf("%w: movie %d", service.ErrNotFound, showtime.MovieID)
	}
	if _, err := s.roomRepo.GetByID(showtime.RoomID); err != nil {
		return fmt.Errorf("%w: room %d", service.ErrNotFound, showtime.RoomID)
	}
	if showtime.Date == "" {
		return fmt.Errorf("%w: date is required", service.ErrValidation)
	}
	date, err := time.ParseInLocation("2006-01-02", showtime.Date, time.Local)
	if err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", service.ErrValidation)
	}
	today := time.Now()
	todayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.Local)
	if date.Before(todayStart) {
		return fmt.Errorf("%w: date must not be in the past", service.ErrValidation)
	}
	if showtime.Time == "" {
		return fmt.Errorf("%w: time is required", service.ErrValidation)
	}
	if _, err := secondsOfDay(showtime.Time); err != nil {
		return fmt.Errorf("%w: time must be HH:MM", service.ErrValidation)
	}
	if showtime.SeatsTotal <= 0 {
		return fmt.Errorf("%w: seats total must be greater than 0", service.ErrValidation)
	}
	if showtime.SeatsAvailable < 0 || showtime.SeatsAvailable > showtime.SeatsTotal {
		return fmt.Errorf("%w: seats available must be between 0 and seats total", service.ErrValidation)
	}
	return nil
}

// checkScheduleConflict rejects a showtime starting within the conflict
// window of another showtime in the same room on the same date.
func (s *showtimeService) checkScheduleConflict(showtime *model.Showtime, excludeID uint) error {
	start, err := secondsOfDay(showtime.Time)
	if err != nil {
		return fmt.Errorf("%w: time must be HH:MM", service.ErrValidation)
	}
	for _, other := range s.repo.ListByRoom(showtime.RoomID) {
		if other.ID == excludeID || other.Date != showtime.Date {
			continue
		}
		otherStart, err := secondsOfDay(other.Time)
		if err != nil {
			continue
		}
		diff := start - otherStart
		if diff < 0 {
			diff = -diff
		}
		if diff < scheduleConflictWindow {
			return fmt.Errorf("%w: room %d at %s %s", service.ErrScheduleConflict,
				showtime.RoomID, other.Date, other.Time)
		}
	}
	return nil
}

// mirrorSeats publishes the remaining-seat counter to the cache so
// external consumers can poll it without hitting the API. Best effort.
func (s *showtimeService) mirrorSeats(id uint) {
	if s.cache == nil {
		return
	}
	seats, ok := s.repo.SeatsAvailable(id)
	if !ok {
		return
	}
	if err := s.cache.SetSeatsRemaining(id, seats); err != nil {
		s.logger.Warn("failed to mirror seat availability",
			zap.Uint("showtimeId", id), zap.Error(err))
	}
}

func secondsOfDay(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, err
	}
	return t.Hour()*3600 + t.Minute()*60, nil
}

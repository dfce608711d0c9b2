package domain

import (
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cinerama/cinerama/internal/model"
	"github.com/cinerama/cinerama/internal/mq"
	"github.com/cinerama/cinerama/internal/repository"
	"github.com/cinerama/cinerama/internal/service"
)

// seatPattern matches seat labels like A1 or K12: one row letter followed
// by the seat number.
var seatPattern = regexp.MustCompile(`^[A-Z]\d+$`)

// TicketService keeps ticket state and showtime seat counters in lockstep:
// every transition into or out of a seat-holding state moves the counter
// in the same critical section.
type TicketService interface {
	Create(ticket *model.Ticket) error
	Update(id uint, updated *model.Ticket) (*model.Ticket, error)
	Delete(id uint) (bool, error)
	GetByID(id uint) (*model.Ticket, error)
	ListAll() []*model.Ticket
	ListByCustomer(customerID uint) []*model.Ticket
	ListByShowtime(showtimeID uint) []*model.Ticket
	ListByState(state model.TicketState) []*model.Ticket
	ListValid() []*model.Ticket
	OccupiedSeats(showtimeID uint) []string
	SeatOccupied(showtimeID uint, seat string) bool
	RevenueForShowtime(showtimeID uint) decimal.Decimal
	SoldCountForShowtime(showtimeID uint) int

	Pay(id uint) (bool, error)
	PayBatch(ids []uint) error
	Cancel(id uint) (bool, error)
	MarkUsed(id uint) (bool, error)
}

type ticketService struct {
	mu        sync.Mutex
	repo      repository.TicketRepo
	showtimes ShowtimeService
	movieRepo repository.MovieRepo
	custRepo  repository.CustomerRepo
	events    *mq.Publisher
	logger    *zap.Logger
}

var _ TicketService = (*ticketService)(nil)

func NewTicketService(
	repo repository.TicketRepo,
	showtimes ShowtimeService,
	movieRepo repository.MovieRepo,
	custRepo repository.CustomerRepo,
	events *mq.Publisher,
	logger *zap.Logger,
) *ticketService {
	return &ticketService{
		repo:      repo,
		showtimes: showtimes,
		movieRepo: movieRepo,
		custRepo:  custRepo,
		events:    events,
		logger:    logger,
	}
}

type ticketEvent struct {
	Type       string            `json:"type"`
	TicketID   uint              `json:"ticket_id"`
	ShowtimeID uint              `json:"showtime_id"`
	Seat       string            `json:"seat"`
	State      model.TicketState `json:"state"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Create reserves a seat: the availability counter is decremented and the
// (showtime, seat) pair is claimed before the ticket becomes visible.
// State defaults to RESERVED when unset; a non-seat-holding state
// (CANCELLED, USED) skips the inventory gates.
func (s *ticketService) Create(ticket *model.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !seatPattern.MatchString(ticket.Seat) {
		return fmt.Errorf("%w: seat must be a row letter followed by a number", service.ErrValidation)
	}
	if ticket.State == "" {
		ticket.State = model.TicketReserved
	}
	switch ticket.State {
	case model.TicketReserved, model.TicketPaid, model.TicketCancelled, model.TicketUsed:
	default:
		return fmt.Errorf("%w: unknown ticket state %q", service.ErrValidation, ticket.State)
	}
	showtime, err := s.showtimes.GetByID(ticket.ShowtimeID)
	if err != nil {
		return err
	}
	if _, err := s.custRepo.GetByID(ticket.CustomerID); err != nil {
		return fmt.Errorf("%w: customer %d", service.ErrNotFound, ticket.CustomerID)
	}
	if ticket.Price.IsZero() {
		if movie, err := s.movieRepo.GetByID(showtime.MovieID); err == nil {
			ticket.Price = movie.Price
		}
	}
	if !ticket.Price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than 0", service.ErrValidation)
	}
	if ticket.IsValid() {
		if s.repo.SeatOccupied(ticket.ShowtimeID, ticket.Seat, 0) {
			return fmt.Errorf("%w: seat %s", service.ErrSeatTaken, ticket.Seat)
		}
		if !s.showtimes.ReserveSeat(ticket.ShowtimeID) {
			return fmt.Errorf("%w: showtime %d", service.ErrNoSeatsAvailable, ticket.ShowtimeID)
		}
	}
	ticket.PurchasedAt = time.Now()
	s.repo.Create(ticket)

	s.logger.Info("ticket reserved",
		zap.Uint("ticketId", ticket.ID),
		zap.Uint("showtimeId", ticket.ShowtimeID),
		zap.String("seat", ticket.Seat))
	s.publish("ticket.reserved", ticket)
	return nil
}

// Update applies an administrative edit, including direct state changes.
// Seat accounting follows the edit: moving to another showtime reserves
// the new seat before the old one is released, so a full target showtime
// leaves both untouched.
func (s *ticketService) Update(id uint, updated *model.Ticket) (*model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.getByID(id)
	if err != nil {
		return nil, err
	}
	if !seatPattern.MatchString(updated.Seat) {
		return nil, fmt.Errorf("%w: seat must be a row letter followed by a number", service.ErrValidation)
	}
	switch updated.State {
	case model.TicketReserved, model.TicketPaid, model.TicketCancelled, model.TicketUsed:
	default:
		return nil, fmt.Errorf("%w: unknown ticket state %q", service.ErrValidation, updated.State)
	}
	if _, err := s.showtimes.GetByID(updated.ShowtimeID); err != nil {
		return nil, err
	}
	if _, err := s.custRepo.GetByID(updated.CustomerID); err != nil {
		return nil, fmt.Errorf("%w: customer %d", service.ErrNotFound, updated.CustomerID)
	}
	if !updated.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be greater than 0", service.ErrValidation)
	}

	wasValid := ticket.IsValid()
	willBeValid := updated.State == model.TicketReserved || updated.State == model.TicketPaid
	if willBeValid && s.repo.SeatOccupied(updated.ShowtimeID, updated.Seat, id) {
		return nil, fmt.Errorf("%w: seat %s", service.ErrSeatTaken, updated.Seat)
	}

	switch {
	case willBeValid && (!wasValid || updated.ShowtimeID != ticket.ShowtimeID):
		if !s.showtimes.ReserveSeat(updated.ShowtimeID) {
			return nil, fmt.Errorf("%w: showtime %d", service.ErrNoSeatsAvailable, updated.ShowtimeID)
		}
		if wasValid {
			s.showtimes.ReleaseSeat(ticket.ShowtimeID)
		}
	case wasValid && !willBeValid:
		s.showtimes.ReleaseSeat(ticket.ShowtimeID)
	}

	ticket.ShowtimeID = updated.ShowtimeID
	ticket.Seat = updated.Seat
	ticket.Price = updated.Price
	ticket.State = updated.State
	ticket.CustomerID = updated.CustomerID
	s.publish("ticket.updated", ticket)
	return ticket, nil
}

// Delete removes the ticket record; a seat-holding ticket gives its seat
// back first.
func (s *ticketService) Delete(id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.getByID(id)
	if err != nil {
		return false, err
	}
	if ticket.IsValid() {
		s.showtimes.ReleaseSeat(ticket.ShowtimeID)
	}
	return s.repo.Delete(id), nil
}

func (s *ticketService) GetByID(id uint) (*model.Ticket, error) {
	return s.getByID(id)
}

func (s *ticketService) getByID(id uint) (*model.Ticket, error) {
	ticket, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: ticket %d", service.ErrNotFound, id)
	}
	return ticket, nil
}

func (s *ticketService) ListAll() []*model.Ticket {
	return s.repo.ListAll()
}

func (s *ticketService) ListByCustomer(customerID uint) []*model.Ticket {
	return s.repo.ListByCustomer(customerID)
}

func (s *ticketService) ListByShowtime(showtimeID uint) []*model.Ticket {
	return s.repo.ListByShowtime(showtimeID)
}

func (s *ticketService) ListByState(state model.TicketState) []*model.Ticket {
	return s.repo.ListByState(state)
}

func (s *ticketService) ListValid() []*model.Ticket {
	return s.repo.ListValid()
}

func (s *ticketService) OccupiedSeats(showtimeID uint) []string {
	return s.repo.OccupiedSeats(showtimeID)
}

func (s *ticketService) SeatOccupied(showtimeID uint, seat string) bool {
	return s.repo.SeatOccupied(showtimeID, seat, 0)
}

func (s *ticketService) RevenueForShowtime(showtimeID uint) decimal.Decimal {
	return s.repo.RevenueForShowtime(showtimeID)
}

func (s *ticketService) SoldCountForShowtime(showtimeID uint) int {
	return s.repo.SoldCountForShowtime(showtimeID)
}

// Pay moves RESERVED to PAID. Any other starting state is a no-op and
// reports false.
func (s *ticketService) Pay(id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.getByID(id)
	if err != nil {
		return false, err
	}
	if ticket.State != model.TicketReserved {
		return false, nil
	}
	ticket.State = model.TicketPaid
	s.logger.Info("ticket paid", zap.Uint("ticketId", id))
	s.publish("ticket.paid", ticket)
	return true, nil
}

// PayBatch pays several tickets as one unit: every ticket must be
// RESERVED or nothing transitions.
func (s *ticketService) PayBatch(ids []uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets := make([]*model.Ticket, 0, len(ids))
	for _, id := range ids {
		ticket, err := s.getByID(id)
		if err != nil {
			return err
		}
		if ticket.State != model.TicketReserved {
			return fmt.Errorf("%w: ticket %d is not awaiting payment", service.ErrValidation, id)
		}
		tickets = append(tickets, ticket)
	}
	for _, ticket := range tickets {
		ticket.State = model.TicketPaid
		s.publish("ticket.paid", ticket)
	}
	s.logger.Info("tickets paid", zap.Int("count", len(tickets)))
	return nil
}

// Cancel releases the seat for RESERVED and PAID tickets. Cancelling a
// CANCELLED or USED ticket is a no-op and reports false.
func (s *ticketService) Cancel(id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.getByID(id)
	if err != nil {
		return false, err
	}
	if !ticket.CanCancel() {
		return false, nil
	}
	ticket.State = model.TicketCancelled
	s.showtimes.ReleaseSeat(ticket.ShowtimeID)
	s.logger.Info("ticket cancelled",
		zap.Uint("ticketId", id),
		zap.Uint("showtimeId", ticket.ShowtimeID))
	s.publish("ticket.cancelled", ticket)
	return true, nil
}

// MarkUsed admits a PAID ticket at the door. The seat stays consumed.
func (s *ticketService) MarkUsed(id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.getByID(id)
	if err != nil {
		return false, err
	}
	if ticket.State != model.TicketPaid {
		return false, nil
	}
	ticket.State = model.TicketUsed
	s.logger.Info("ticket used", zap.Uint("ticketId", id))
	s.publish("ticket.used", ticket)
	return true, nil
}

func (s *ticketService) publish(eventType string, ticket *model.Ticket) {
	err := s.events.Publish(mq.TicketEventsQueue, ticketEvent{
		Type:       eventType,
		TicketID:   ticket.ID,
		ShowtimeID: ticket.ShowtimeID,
		Seat:       ticket.Seat,
		State:      ticket.State,
		OccurredAt: time.Now(),
	})
	if err != nil {
		s.logger.Warn("failed to publish ticket event",
			zap.String("type", eventType), zap.Uint("ticketId", ticket.ID), zap.Error(err))
	}
}

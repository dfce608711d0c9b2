package domain

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cinerama/cinerama/internal/model"
	"github.com/cinerama/cinerama/internal/service"
)

func TestTicketLifecycle(t *testing.T) {
	f := newFixture(t)
	movie := f.movie(t, "Dune", "12.50")
	room := f.room(t, "Sala 1", 120)
	customer := f.customer(t, "Ana", "ana@example.com")
	showtime := f.showtime(t, movie.ID, room.ID, 120)

	t1 := &model.Ticket{ShowtimeID: showtime.ID, Seat: "A1", CustomerID: customer.ID}
	if err := f.tickets.Create(t1); err != nil {
		t.Fatalf("failed to create ticket: %v", err)
	}
	if t1.State != model.TicketReserved {
		t.Fatalf("expected RESERVED, got %s", t1.State)
	}
	if !t1.Price.Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("expected the movie price on the ticket, got %s", t1.Price)
	}
	if showtime.SeatsAvailable != 119 {
		t.Fatalf("expected 119 seats available, got %d", showtime.SeatsAvailable)
	}

	t2 := &model.Ticket{ShowtimeID: showtime.ID, Seat: "A1", CustomerID: customer.ID}
	err := f.tickets.Create(t2)
	if !errors.Is(err, service.ErrSeatTaken) {
		t.Fatalf("expected ErrSeatTaken, got %v", err)
	}
	if showtime.SeatsAvailable != 119 {
		t.Fatalf("failed create changed the counter: %d", showtime.SeatsAvailable)
	}

	paid, err := f.tickets.Pay(t1.ID)
	if err != nil || !paid {
		t.Fatalf("expected pay to succeed, got paid=%v err=%v", paid, err)
	}
	if t1.State != model.TicketPaid {
		t.Fatalf("expected PAID, got %s", t1.State)
	}
	if showtime.SeatsAvailable != 119 {
		t.Fatalf("pay changed the counter: %d", showtime.SeatsAvailable)
	}

	used, err := f.tickets.MarkUsed(t1.ID)
	if err != nil || !used {
		t.Fatalf("expected mark used to succeed, got used=%v err=%v", used, err)
	}
	if t1.State != model.TicketUsed {
		t.Fatalf("expected USED, got %s", t1.State)
	}

	cancelled, err := f.tickets.Cancel(t1.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled {
		t.Fatal("expected cancel of a used ticket to be a no-op")
	}
	if t1.State != model.TicketUsed {
		t.Fatalf("cancel changed a used ticket to %s", t1.State)
	}
}

func TestTicketCancelRestoresSeat(t *testing.T) {
	f := newFixture(t)
	movie := f.movie(t, "Dune", "12.50")
	room := f.room(t, "Sala 1", 120)
	customer := f.customer(t, "Ana", "ana@example.com")
	showtime := f.showtime(t, movie.ID, room.ID, 10)

	ticket := &model.Ticket{ShowtimeID: showtime.ID, Seat: "B4", CustomerID: customer.ID}
	if err := f.tickets.Create(ticket); err != nil {
		t.Fatalf("failed to create ticket: %v", err)
	}
	if _, err := f.tickets.Pay(ticket.ID); err != nil {
		t.Fatalf("failed to pay: %v", err)
	}

	cancelled, err := f.tickets.Cancel(ticket.ID)
	if err != nil || !cancelled {
		t.Fatalf("expected cancel to succeed, got cancelled=%v err=%v", cancelled, err)
	}
	if ticket.State != model.TicketCancelled {
		t.Fatalf("expected CANCELLED, got %s", ticket.State)
	}
	if showtime.SeatsAvailable != 10 {
		t.Fatalf("expected the seat back, got %d available", showtime.SeatsAvailable)
	}

	again, err := f.tickets.Cancel(ticket.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again {
		t.Fatal("expected second cancel to be a no-op")
	}
	if showtime.SeatsAvailable != 10 {
		t.Fatalf("second cancel double-incremented: %d", showtime.SeatsAvailable)
	}

	// the seat is free for someone else now
	retry := &model.Ticket{ShowtimeID: showtime.ID, Seat: "B4", CustomerID: customer.ID}
	if err := f.tickets.Create(retry); err != nil {
		t.Fatalf("expected the freed seat to be bookable: %v", err)
	}
}

func TestTicketCreateSoldOut(t *testing.T) {
	f := newFixture(t)
	movie := f.movie(t, "Dune", "12.50")
	room := f.room(t, "Sala 2", 1)
	customer := f.customer(t, "Ana", "ana@example.com")
	showtime := f.showtime(t, movie.ID, room.ID, 1)

	first := &model.Ticket{ShowtimeID: showtime.ID, Seat: "A1", CustomerID: customer.ID}
	if err := f.tickets.Create(first); err != nil {
		t.Fatalf("failed to create first ticket: %v", err)
	}

	second := &model.Ticket{ShowtimeID: showtime.ID, Seat: "A2", CustomerID: customer.ID}
	err := f.tickets.Create(second)
	if !errors.Is(err, service.ErrNoSeatsAvailable) {
		t.Fatalf("expected ErrNoSeatsAvailable, got %v", err)
	}
	if showtime.SeatsAvailable != 0 {
		t.Fatalf("failed create changed the counter: %d", showtime.SeatsAvailable)
	}
}

func TestTicketCreateRejectsBadSeat(t *testing.T) {
	f := newFixture(t)
	movie := f.movie(t, "Dune", "12.50")
	room := f.room(t, "Sala 1", 120)
	customer := f.customer(t, "Ana", "ana@example.com")
	showtime := f.showtime(t, movie.ID, room.ID, 120)

	for _, seat := range []string{"", "1A", "a1", "AA", "A1B"} {
		ticket := &model.Ticket{ShowtimeID: showtime.ID, Seat: seat, CustomerID: customer.ID}
		if err := f.tickets.Create(ticket); !errors.Is(err, service.ErrValidation) {
			t.Errorf("seat %q: expected ErrValidation, got %v", seat, err)
		}
	}
	if showtime.SeatsAvailable != 120 {
		t.Fatalf("rejected creates changed the counter: %d", showtime.SeatsAvailable)
	}
}

func TestTicketConcurrentSameSeat(t *testing.T) {
	f := newFixture(t)
	movie := f.movie(t, "Dune", "12.50")
	room := f.room(t, "Sala 1", 120)
	customer := f.customer(t, "Ana", "ana@example.com")
	showtime := f.showtime(t, movie.ID, room.ID, 120)

	const workers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticket := &model.Ticket{ShowtimeID: showtime.ID, Seat: "H7", CustomerID: customer.ID}
			if err := f.tickets.Create(ticket); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 {
		t.Fatalf("expected exactly one winner for the seat, got %d", succeeded)
	}
	if showtime.SeatsAvailable != 119 {
		t.Fatalf("expected 119 seats available, got %d", showtime.SeatsAvailable)
	}
}

func TestTicketMoveToFullShowtimeFails(t *testing.T) {
	f := newFixture(t)
	movie := f.movie(t, "Dune", "12.50")
	roomA := f.room(t, "Sala 1", 120)
	roomB := f.room(t, "Sala 2", 1)
	customer := f.customer(t, "Ana", "ana@example.com")
	source := f.showtime(t, movie.ID, roomA.ID, 10)
	target := f.showtime(t, movie.ID, roomB.ID, 1)

	blocker := &model.Ticket{ShowtimeID: target.ID, Seat: "A1", CustomerID: customer.ID}
	if err := f.tickets.Create(blocker); err != nil {
		t.Fatalf("failed to fill target showtime: %v", err)
	}

	ticket := &model.Ticket{ShowtimeID: source.ID, Seat: "C3", CustomerID: customer.ID}
	if err := f.tickets.Create(ticket); err != nil {
		t.Fatalf("failed to create ticket: %v", err)
	}

	_, err := f.tickets.Update(ticket.ID, &model.Ticket{
		ShowtimeID: target.ID,
		Seat:       "A2",
		Price:      ticket.Price,
		State:      model.TicketReserved,
		CustomerID: customer.ID,
	})
	if !errors.Is(err, service.ErrNoSeatsAvailable) {
		t.Fatalf("expected ErrNoSeatsAvailable, got %v", err)
	}
	// both counters untouched, ticket still on the source showtime
	if source.SeatsAvailable != 9 {
		t.Fatalf("source counter changed: %d", source.SeatsAvailable)
	}
	if target.SeatsAvailable != 0 {
		t.Fatalf("target counter changed: %d", target.SeatsAvailable)
	}
	if ticket.ShowtimeID != source.ID {
		t.Fatalf("ticket moved despite the failure")
	}
}

func TestTicketMoveBetweenShowtimes(t *testing.T) {
	f := newFixture(t)
	movie := f.movie(t, "Dune", "12.50")
	roomA := f.room(t, "Sala 1", 120)
	roomB := f.room(t, "Sala 2", 80)
	customer := f.customer(t, "Ana", "ana@example.com")
	source := f.showtime(t, movie.ID, roomA.ID, 10)
	target := f.showtime(t, movie.ID, roomB.ID, 10)

	ticket := &model.Ticket{ShowtimeID: source.ID, Seat: "C3", CustomerID: customer.ID}
	if err := f.tickets.Create(ticket); err != nil {
		t.Fatalf("failed to create ticket: %v", err)
	}

	moved, err := f.tickets.Update(ticket.ID, &model.Ticket{
		ShowtimeID: target.ID,
		Seat:       "D4",
		Price:      ticket.Price,
		State:      model.TicketReserved,
		CustomerID: customer.ID,
	})
	if err != nil {
		t.Fatalf("failed to move ticket: %v", err)
	}
	if moved.ShowtimeID != target.ID || moved.Seat != "D4" {
		t.Fatalf("unexpected ticket after move: %+v", moved)
	}
	if source.SeatsAvailable != 10 {
		t.Fatalf("expected the source seat released, got %d", source.SeatsAvailable)
	}
	if target.SeatsAvailable != 9 {
		t.Fatalf("expected the target seat taken, got %d", target.SeatsAvailable)
	}
}

func TestTicketShowtimeStats(t *testing.T) {
	f := newFixture(t)
	movie := f.movie(t, "Dune", "12.50")
	room := f.room(t, "Sala 1", 120)
	customer := f.customer(t, "Ana", "ana@example.com")
	showtime := f.showtime(t, movie.ID, room.ID, 120)

	seats := []string{"A1", "A2", "A3"}
	tickets := make([]*model.Ticket, 0, len(seats))
	for _, seat := range seats {
		ticket := &model.Ticket{ShowtimeID: showtime.ID, Seat: seat, CustomerID: customer.ID}
		if err := f.tickets.Create(ticket); err != nil {
			t.Fatalf("failed to create ticket %s: %v", seat, err)
		}
		tickets = append(tickets, ticket)
	}
	// pay two of the three
	for _, ticket := range tickets[:2] {
		if _, err := f.tickets.Pay(ticket.ID); err != nil {
			t.Fatalf("failed to pay: %v", err)
		}
	}

	if got := f.tickets.SoldCountForShowtime(showtime.ID); got != 2 {
		t.Fatalf("expected 2 sold tickets, got %d", got)
	}
	revenue := f.tickets.RevenueForShowtime(showtime.ID)
	if !revenue.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("expected revenue 25.00, got %s", revenue)
	}
	if got := len(f.tickets.ListValid()); got != 3 {
		t.Fatalf("expected 3 valid tickets, got %d", got)
	}
	if !f.tickets.SeatOccupied(showtime.ID, "A1") {
		t.Fatal("expected A1 to be occupied")
	}
	if f.tickets.SeatOccupied(showtime.ID, "Z9") {
		t.Fatal("expected Z9 to be free")
	}

	occupied := f.tickets.OccupiedSeats(showtime.ID)
	if len(occupied) != 3 || occupied[0] != "A1" || occupied[2] != "A3" {
		t.Fatalf("unexpected occupied seats: %v", occupied)
	}
}

func TestTicketDeleteReleasesSeat(t *testing.T) {
	f := newFixture(t)
	movie := f.movie(t, "Dune", "12.50")
	room := f.room(t, "Sala 1", 120)
	customer := f.customer(t, "Ana", "ana@example.com")
	showtime := f.showtime(t, movie.ID, room.ID, 5)

	ticket := &model.Ticket{ShowtimeID: showtime.ID, Seat: "E5", CustomerID: customer.ID}
	if err := f.tickets.Create(ticket); err != nil {
		t.Fatalf("failed to create ticket: %v", err)
	}
	deleted, err := f.tickets.Delete(ticket.ID)
	if err != nil || !deleted {
		t.Fatalf("expected delete to succeed, got deleted=%v err=%v", deleted, err)
	}
	if showtime.SeatsAvailable != 5 {
		t.Fatalf("expected the seat back after delete, got %d", showtime.SeatsAvailable)
	}
}

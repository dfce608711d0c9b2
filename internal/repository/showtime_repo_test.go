package repository

import (
	"sync"
	"testing"

	"github.com/cinerama/cinerama/internal/model"
)

func TestShowtimeRepoReserveSeat(t *testing.T) {
	repo := NewShowtimeRepoMemory()
	showtime := &model.Showtime{SeatsTotal: 1, SeatsAvailable: 1}
	repo.Create(showtime)

	if !repo.ReserveSeat(showtime.ID) {
		t.Fatal("expected reserve to succeed")
	}
	if repo.ReserveSeat(showtime.ID) {
		t.Fatal("expected reserve on empty showtime to fail")
	}
	if repo.ReserveSeat(999) {
		t.Fatal("expected reserve on unknown showtime to fail")
	}
}

func TestShowtimeRepoConcurrentReserve(t *testing.T) {
	repo := NewShowtimeRepoMemory()
	showtime := &model.Showtime{SeatsTotal: 50, SeatsAvailable: 50}
	repo.Create(showtime)

	const workers = 200
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if repo.ReserveSeat(showtime.ID) {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 50 {
		t.Fatalf("expected exactly 50 successful reservations, got %d", succeeded)
	}
	seats, ok := repo.SeatsAvailable(showtime.ID)
	if !ok || seats != 0 {
		t.Fatalf("expected 0 seats available, got %d", seats)
	}
}

func TestShowtimeRepoReleaseClamps(t *testing.T) {
	repo := NewShowtimeRepoMemory()
	showtime := &model.Showtime{SeatsTotal: 2, SeatsAvailable: 2}
	repo.Create(showtime)

	if !repo.ReleaseSeat(showtime.ID) {
		t.Fatal("expected release on existing showtime to report true")
	}
	seats, _ := repo.SeatsAvailable(showtime.ID)
	if seats != 2 {
		t.Fatalf("release pushed counter past capacity: %d", seats)
	}
	if repo.ReleaseSeat(999) {
		t.Fatal("expected release on unknown showtime to report false")
	}
}

package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cinerama/cinerama/internal/model"
	"github.com/cinerama/cinerama/internal/repository"
)

// fixture wires the full service graph against in-memory repositories,
// with no cache and no broker.
type fixture struct {
	movieRepo    repository.MovieRepo
	roomRepo     repository.RoomRepo
	customerRepo repository.CustomerRepo
	productRepo  repository.ProductRepo

	movies    MovieService
	showtimes ShowtimeService
	tickets   TicketService
	products  ProductService
	sales     SaleService
	payments  PaymentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()

	movieRepo := repository.NewMovieRepoMemory()
	roomRepo := repository.NewRoomRepoMemory()
	customerRepo := repository.NewCustomerRepoMemory()
	showtimeRepo := repository.NewShowtimeRepoMemory()
	ticketRepo := repository.NewTicketRepoMemory()
	productRepo := repository.NewProductRepoMemory()
	saleRepo := repository.NewSaleRepoMemory()
	paymentRepo := repository.NewPaymentRepoMemory()

	movies := NewMovieService(movieRepo, logger)
	showtimes := NewShowtimeService(showtimeRepo, movieRepo, roomRepo, nil, logger)
	tickets := NewTicketService(ticketRepo, showtimes, movieRepo, customerRepo, nil, logger)
	products := NewProductService(productRepo, logger)
	sales := NewSaleService(saleRepo, productRepo, customerRepo, nil, logger)
	payments := NewPaymentService(paymentRepo, tickets, sales, nil, logger)

	return &fixture{
		movieRepo:    movieRepo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		movies:       movies,
		showtimes:    showtimes,
		tickets:      tickets,
		products:     products,
		sales:        sales,
		payments:     payments,
	}
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func (f *fixture) movie(t *testing.T, title, price string) *model.Movie {
	t.Helper()
	movie := &model.Movie{
		Title:       title,
		Genre:       "Drama",
		DurationMin: 120,
		Price:       decimal.RequireFromString(price),
	}
	f.movieRepo.Create(movie)
	return movie
}

func (f *fixture) room(t *testing.T, name string, capacity int) *model.Room {
	t.Helper()
	room := &model.Room{
		Name:     name,
		Capacity: capacity,
		Type:     model.RoomTypeStandard,
		Active:   true,
	}
	f.roomRepo.Create(room)
	return room
}

func (f *fixture) customer(t *testing.T, name, email string) *model.Customer {
	t.Helper()
	customer := &model.Customer{Name: name, Email: email}
	f.customerRepo.Create(customer)
	return customer
}

func (f *fixture) showtime(t *testing.T, movieID, roomID uint, seats int) *model.Showtime {
	t.Helper()
	showtime := &model.Showtime{
		MovieID:        movieID,
		RoomID:         roomID,
		Date:           futureDate(7),
		Time:           "19:30",
		SeatsAvailable: seats,
		SeatsTotal:     seats,
	}
	if err := f.showtimes.Create(showtime); err != nil {
		t.Fatalf("failed to create showtime: %v", err)
	}
	return showtime
}

func (f *fixture) product(t *testing.T, name, price string, stock int) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:     name,
		Category: model.CategoryPopcorn,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		Active:   true,
	}
	f.productRepo.Create(product)
	return product
}

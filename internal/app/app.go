package app

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/cinerama/cinerama/config"
	"github.com/cinerama/cinerama/internal/cache"
	"github.com/cinerama/cinerama/internal/mq"
	"github.com/cinerama/cinerama/internal/repository"
	"github.com/cinerama/cinerama/internal/service/domain"
)

// App wires repositories, services and the optional cache and broker
// collaborators. Cache and MQConn may be nil; everything domain-side
// still works without them.
type App struct {
	Config *config.Config

	Cache     *cache.RedisCache
	Logger    *zap.Logger
	MQConn    *amqp.Connection
	Publisher *mq.Publisher

	MovieRepo    repository.MovieRepo
	RoomRepo     repository.RoomRepo
	CustomerRepo repository.CustomerRepo
	ShowtimeRepo repository.ShowtimeRepo
	TicketRepo   repository.TicketRepo
	ProductRepo  repository.ProductRepo
	SaleRepo     repository.SaleRepo
	PaymentRepo  repository.PaymentRepo

	MovieService    domain.MovieService
	RoomService     domain.RoomService
	CustomerService domain.CustomerService
	ShowtimeService domain.ShowtimeService
	TicketService   domain.TicketService
	ProductService  domain.ProductService
	SaleService     domain.SaleService
	PaymentService  domain.PaymentService
}

func New(config *config.Config, cache *cache.RedisCache, mqConn *amqp.Connection, publisher *mq.Publisher, logger *zap.Logger) *App {
	movieRepo := repository.NewMovieRepoMemory()
	roomRepo := repository.NewRoomRepoMemory()
	customerRepo := repository.NewCustomerRepoMemory()
	showtimeRepo := repository.NewShowtimeRepoMemory()
	ticketRepo := repository.NewTicketRepoMemory()
	productRepo := repository.NewProductRepoMemory()
	saleRepo := repository.NewSaleRepoMemory()
	paymentRepo := repository.NewPaymentRepoMemory()

	movieService := domain.NewMovieService(movieRepo, logger)
	roomService := domain.NewRoomService(roomRepo, logger)
	customerService := domain.NewCustomerService(customerRepo, logger)
	showtimeService := domain.NewShowtimeService(showtimeRepo, movieRepo, roomRepo, cache, logger)
	ticketService := domain.NewTicketService(ticketRepo, showtimeService, movieRepo, customerRepo, publisher, logger)
	productService := domain.NewProductService(productRepo, logger)
	saleService := domain.NewSaleService(saleRepo, productRepo, customerRepo, publisher, logger)
	paymentService := domain.NewPaymentService(paymentRepo, ticketService, saleService, publisher, logger)

	return &App{
		Config:    config,
		Cache:     cache,
		Logger:    logger,
		MQConn:    mqConn,
		Publisher: publisher,

		MovieRepo:    movieRepo,
		RoomRepo:     roomRepo,
		CustomerRepo: customerRepo,
		ShowtimeRepo: showtimeRepo,
		TicketRepo:   ticketRepo,
		ProductRepo:  productRepo,
		SaleRepo:     saleRepo,
		PaymentRepo:  paymentRepo,

		MovieService:    movieService,
		RoomService:     roomService,
		CustomerService: customerService,
		ShowtimeService: showtimeService,
		TicketService:   ticketService,
		ProductService:  productService,
		SaleService:     saleService,
		PaymentService:  paymentService,
	}
}

func (app *App) Init() error {
	if app.Cache != nil {
		showtimeSeats := make(map[uint]int)
		for _, showtime := range app.ShowtimeService.ListAll() {
			showtimeSeats[showtime.ID] = showtime.SeatsAvailable
		}
		if err := app.Cache.Init(showtimeSeats); err != nil {
			return err
		}
	}
	if app.MQConn != nil {
		if err := mq.InitQueues(app.MQConn); err != nil {
			return err
		}
	}
	return nil
}

func (app *App) Close() {
	if app.Publisher != nil {
		app.Publisher.Close()
	}
	if app.MQConn != nil {
		app.MQConn.Close()
	}
	if app.Cache != nil {
		app.Cache.Close()
	}
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cinerama/cinerama/internal/app"
)

// RegisterRoutes mounts every resource under /api/v1.
func RegisterRoutes(r *gin.Engine, app *app.App) {
	v1 := r.Group("/api/v1")

	movies := NewMovieHandler(app)
	v1.POST("/movies", movies.HandleCreate)
	v1.GET("/movies", movies.HandleList)
	v1.GET("/movies/:id", movies.HandleGet)
	v1.PUT("/movies/:id", movies.HandleUpdate)
	v1.DELETE("/movies/:id", movies.HandleDelete)

	rooms := NewRoomHandler(app)
	v1.POST("/rooms", rooms.HandleCreate)
	v1.GET("/rooms", rooms.HandleList)
	v1.GET("/rooms/active", rooms.HandleListActive)
	v1.GET("/rooms/:id", rooms.HandleGet)
	v1.PUT("/rooms/:id", rooms.HandleUpdate)
	v1.DELETE("/rooms/:id", rooms.HandleDelete)

	customers := NewCustomerHandler(app)
	v1.POST("/customers", customers.HandleCreate)
	v1.GET("/customers", customers.HandleList)
	v1.GET("/customers/:id", customers.HandleGet)
	v1.PUT("/customers/:id", customers.HandleUpdate)
	v1.DELETE("/customers/:id", customers.HandleDelete)

	products := NewProductHandler(app)
	v1.POST("/products", products.HandleCreate)
	v1.GET("/products", products.HandleList)
	v1.GET("/products/active", products.HandleListActive)
	v1.GET("/products/:id", products.HandleGet)
	v1.PUT("/products/:id", products.HandleUpdate)
	v1.DELETE("/products/:id", products.HandleDelete)
	v1.POST("/products/:id/restock", products.HandleRestock)
	v1.PUT("/products/:id/stock", products.HandleSetStock)

	showtimes := NewShowtimeHandler(app)
	v1.POST("/showtimes", showtimes.HandleCreate)
	v1.GET("/showtimes", showtimes.HandleList)
	v1.GET("/showtimes/available", showtimes.HandleListAvailable)
	v1.GET("/showtimes/:id", showtimes.HandleGet)
	v1.GET("/showtimes/:id/seats", showtimes.HandleSeats)
	v1.PUT("/showtimes/:id", showtimes.HandleUpdate)
	v1.DELETE("/showtimes/:id", showtimes.HandleDelete)

	tickets := NewTicketHandler(app)
	v1.GET("/showtimes/:id/stats", tickets.HandleShowtimeStats)
	v1.POST("/tickets", tickets.HandleCreate)
	v1.GET("/tickets", tickets.HandleList)
	v1.GET("/tickets/:id", tickets.HandleGet)
	v1.PUT("/tickets/:id", tickets.HandleUpdate)
	v1.DELETE("/tickets/:id", tickets.HandleDelete)
	v1.POST("/tickets/:id/pay", tickets.HandlePay)
	v1.POST("/tickets/:id/cancel", tickets.HandleCancel)
	v1.POST("/tickets/:id/use", tickets.HandleUse)

	sales := NewSaleHandler(app)
	v1.POST("/sales", sales.HandleCreate)
	v1.GET("/sales", sales.HandleList)
	v1.GET("/sales/:id", sales.HandleGet)
	v1.POST("/sales/:id/lines", sales.HandleAddLine)
	v1.PUT("/sales/:id/lines/:productId", sales.HandleSetLineQuantity)
	v1.DELETE("/sales/:id/lines/:productId", sales.HandleRemoveLine)
	v1.POST("/sales/:id/complete", sales.HandleComplete)

	payments := NewPaymentHandler(app)
	v1.POST("/payments/ticket/:id", payments.HandlePayTicket)
	v1.POST("/payments/tickets", payments.HandlePayTicketBatch)
	v1.POST("/payments/sale/:id", payments.HandlePaySale)
	v1.GET("/payments", payments.HandleList)
	v1.GET("/payments/summary", payments.HandleDailySummary)
	v1.GET("/payments/:id", payments.HandleGet)
	v1.GET("/payments/reference/:reference", payments.HandleGetByReference)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/cinerama/cinerama/internal/app"
	"github.com/cinerama/cinerama/internal/model"
)

type TicketHandler struct {
	app *app.App
}

func NewTicketHandler(app *app.App) *TicketHandler {
	return &TicketHandler{app: app}
}

func (h *TicketHandler) HandleCreate(ctx *gin.Context) {
	var req TicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return
	}
	ticket := &model.Ticket{
		ShowtimeID: req.ShowtimeID,
		Seat:       req.Seat,
		Price:      req.Price,
		State:      req.State,
		CustomerID: req.CustomerID,
	}
	if err := h.app.TicketService.Create(ticket); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(201, ticket)
}

func (h *TicketHandler) HandleList(ctx *gin.Context) {
	if customerID, ok := queryID(ctx, "customer_id"); ok {
		ctx.JSON(200, h.app.TicketService.ListByCustomer(customerID))
		return
	}
	if showtimeID, ok := queryID(ctx, "showtime_id"); ok {
		ctx.JSON(200, h.app.TicketService.ListByShowtime(showtimeID))
		return
	}
	if state := ctx.Query("state"); state != "" {
		ctx.JSON(200, h.app.TicketService.ListByState(model.TicketState(state)))
		return
	}
	if ctx.Query("valid") == "true" {
		ctx.JSON(200, h.app.TicketService.ListValid())
		return
	}
	ctx.JSON(200, h.app.TicketService.ListAll())
}

// HandleShowtimeStats reports the box-office view of one showtime: paid
// ticket count and revenue.
func (h *TicketHandler) HandleShowtimeStats(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if _, err := h.app.ShowtimeService.GetByID(id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, gin.H{
		"showtime_id": id,
		"sold_count":  h.app.TicketService.SoldCountForShowtime(id),
		"revenue":     h.app.TicketService.RevenueForShowtime(id),
	})
}

func (h *TicketHandler) HandleGet(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	ticket, err := h.app.TicketService.GetByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, ticket)
}

func (h *TicketHandler) HandleUpdate(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req TicketUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return
	}
	updated := &model.Ticket{
		ShowtimeID: req.ShowtimeID,
		Seat:       req.Seat,
		Price:      req.Price,
		State:      req.State,
		CustomerID: req.CustomerID,
	}
	ticket, err := h.app.TicketService.Update(id, updated)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, ticket)
}

func (h *TicketHandler) HandleDelete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	deleted, err := h.app.TicketService.Delete(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !deleted {
		ctx.JSON(404, gin.H{"error": "Not found"})
		return
	}
	ctx.JSON(200, gin.H{"message": "Ticket deleted"})
}

func (h *TicketHandler) HandlePay(ctx *gin.Context) {
	h.transition(ctx, h.app.TicketService.Pay, "Ticket paid", "Ticket is not awaiting payment")
}

func (h *TicketHandler) HandleCancel(ctx *gin.Context) {
	h.transition(ctx, h.app.TicketService.Cancel, "Ticket cancelled", "Ticket cannot be cancelled")
}

func (h *TicketHandler) HandleUse(ctx *gin.Context) {
	h.transition(ctx, h.app.TicketService.MarkUsed, "Ticket used", "Only paid tickets can be used")
}

func (h *TicketHandler) transition(ctx *gin.Context, fn func(uint) (bool, error), okMsg, failMsg string) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	changed, err := fn(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !changed {
		ctx.JSON(409, gin.H{"error": "Conflict", "detail": failMsg})
		return
	}
	ticket, err := h.app.TicketService.GetByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, gin.H{"message": okMsg, "ticket": ticket})
}

type TicketRequest struct {
	ShowtimeID uint            `json:"showtime_id"`
	Seat       string          `json:"seat"`
	Price      decimal.Decimal `json:"price"`
	// State defaults to RESERVED when omitted.
	State      model.TicketState `json:"state"`
	CustomerID uint              `json:"customer_id"`
}

type TicketUpdateRequest struct {
	ShowtimeID uint              `json:"showtime_id"`
	Seat       string            `json:"seat"`
	Price      decimal.Decimal   `json:"price"`
	State      model.TicketState `json:"state"`
	CustomerID uint              `json:"customer_id"`
}

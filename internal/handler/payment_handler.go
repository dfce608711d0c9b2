package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cinerama/cinerama/internal/app"
	"github.com/cinerama/cinerama/internal/model"
	"github.com/cinerama/cinerama/internal/service/domain"
)

type PaymentHandler struct {
	app *app.App
}

func NewPaymentHandler(app *app.App) *PaymentHandler {
	return &PaymentHandler{app: app}
}

func (h *PaymentHandler) HandlePayTicket(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	req, ok := h.bindPayment(ctx)
	if !ok {
		return
	}
	payment, err := h.app.PaymentService.PayTicket(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(201, payment)
}

func (h *PaymentHandler) HandlePaySale(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	req, ok := h.bindPayment(ctx)
	if !ok {
		return
	}
	payment, err := h.app.PaymentService.PaySale(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(201, payment)
}

// HandlePayTicketBatch charges several tickets as one payment.
func (h *PaymentHandler) HandlePayTicketBatch(ctx *gin.Context) {
	var req BatchPaymentBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return
	}
	payment, err := h.app.PaymentService.PayTickets(req.TicketIDs, domain.PaymentRequest{
		Method:      req.Method,
		CardNumber:  req.CardNumber,
		ReceiptType: req.ReceiptType,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(201, payment)
}

// HandleDailySummary reports the completed payments and total takings for
// one calendar date.
func (h *PaymentHandler) HandleDailySummary(ctx *gin.Context) {
	date := ctx.Query("date")
	if date == "" {
		ctx.JSON(400, gin.H{"error": "Invalid request", "detail": "date query parameter is required"})
		return
	}
	payments := h.app.PaymentService.ListByDate(date)
	ctx.JSON(200, gin.H{
		"date":     date,
		"count":    len(payments),
		"total":    h.app.PaymentService.TotalCompletedForDate(date),
		"payments": payments,
	})
}

func (h *PaymentHandler) HandleList(ctx *gin.Context) {
	if customerID, ok := queryID(ctx, "customer_id"); ok {
		ctx.JSON(200, h.app.PaymentService.ListByCustomer(customerID))
		return
	}
	if state := ctx.Query("state"); state != "" {
		ctx.JSON(200, h.app.PaymentService.ListByState(model.PaymentState(state)))
		return
	}
	ctx.JSON(200, h.app.PaymentService.ListAll())
}

func (h *PaymentHandler) HandleGet(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	payment, err := h.app.PaymentService.GetByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, payment)
}

func (h *PaymentHandler) HandleGetByReference(ctx *gin.Context) {
	reference := ctx.Param("reference")
	payment, err := h.app.PaymentService.GetByReference(reference)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, payment)
}

func (h *PaymentHandler) bindPayment(ctx *gin.Context) (domain.PaymentRequest, bool) {
	var req PaymentBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return domain.PaymentRequest{}, false
	}
	return domain.PaymentRequest{
		Method:      req.Method,
		CardNumber:  req.CardNumber,
		ReceiptType: req.ReceiptType,
	}, true
}

type PaymentBody struct {
	Method      model.PaymentMethod `json:"method"`
	CardNumber  string              `json:"card_number"`
	ReceiptType model.ReceiptType   `json:"receipt_type"`
}

type BatchPaymentBody struct {
	TicketIDs   []uint              `json:"ticket_ids"`
	Method      model.PaymentMethod `json:"method"`
	CardNumber  string              `json:"card_number"`
	ReceiptType model.ReceiptType   `json:"receipt_type"`
}

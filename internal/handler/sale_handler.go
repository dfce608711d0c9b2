package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cinerama/cinerama/internal/app"
)

type SaleHandler struct {
	app *app.App
}

func NewSaleHandler(app *app.App) *SaleHandler {
	return &SaleHandler{app: app}
}

func (h *SaleHandler) HandleCreate(ctx *gin.Context) {
	var req SaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return
	}
	sale, err := h.app.SaleService.Create(req.CustomerID, req.PaymentMethod)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(201, sale)
}

func (h *SaleHandler) HandleList(ctx *gin.Context) {
	if customerID, ok := queryID(ctx, "customer_id"); ok {
		ctx.JSON(200, h.app.SaleService.ListByCustomer(customerID))
		return
	}
	if date := ctx.Query("date"); date != "" {
		ctx.JSON(200, h.app.SaleService.ListByDate(date))
		return
	}
	switch ctx.Query("completed") {
	case "true":
		ctx.JSON(200, h.app.SaleService.ListCompleted())
		return
	case "false":
		ctx.JSON(200, h.app.SaleService.ListPending())
		return
	}
	ctx.JSON(200, h.app.SaleService.ListAll())
}

func (h *SaleHandler) HandleGet(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	sale, err := h.app.SaleService.GetByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, sale)
}

func (h *SaleHandler) HandleAddLine(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req SaleLineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return
	}
	sale, err := h.app.SaleService.AddLine(id, req.ProductID, req.Quantity)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, sale)
}

func (h *SaleHandler) HandleSetLineQuantity(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	productID, ok := parseID(ctx, "productId")
	if !ok {
		return
	}
	var req SetQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return
	}
	sale, err := h.app.SaleService.SetLineQuantity(id, productID, req.Quantity)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, sale)
}

func (h *SaleHandler) HandleRemoveLine(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	productID, ok := parseID(ctx, "productId")
	if !ok {
		return
	}
	sale, err := h.app.SaleService.RemoveLine(id, productID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, sale)
}

func (h *SaleHandler) HandleComplete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	sale, err := h.app.SaleService.Complete(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, gin.H{"message": "Sale completed", "sale": sale})
}

type SaleRequest struct {
	CustomerID    *uint  `json:"customer_id"`
	PaymentMethod string `json:"payment_method"`
}

type SaleLineRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/cinerama/cinerama/internal/app"
	"github.com/cinerama/cinerama/internal/model"
)

type ProductHandler struct {
	app *app.App
}

func NewProductHandler(app *app.App) *ProductHandler {
	return &ProductHandler{app: app}
}

func (h *ProductHandler) HandleCreate(ctx *gin.Context) {
	var req ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return
	}
	product := req.toModel()
	if err := h.app.ProductService.Create(product); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(201, product)
}

func (h *ProductHandler) HandleList(ctx *gin.Context) {
	if category := ctx.Query("category"); category != "" {
		ctx.JSON(200, h.app.ProductService.ListByCategory(model.ProductCategory(category)))
		return
	}
	if ctx.Query("in_stock") == "true" {
		ctx.JSON(200, h.app.ProductService.ListInStock())
		return
	}
	minRaw, maxRaw := ctx.Query("min_price"), ctx.Query("max_price")
	if minRaw != "" && maxRaw != "" {
		min, errMin := decimal.NewFromString(minRaw)
		max, errMax := decimal.NewFromString(maxRaw)
		if errMin != nil || errMax != nil {
			ctx.JSON(400, gin.H{"error": "Invalid request", "detail": "min_price and max_price must be decimal numbers"})
			return
		}
		ctx.JSON(200, h.app.ProductService.ListByPriceRange(min, max))
		return
	}
	ctx.JSON(200, h.app.ProductService.ListAll())
}

func (h *ProductHandler) HandleListActive(ctx *gin.Context) {
	ctx.JSON(200, h.app.ProductService.ListActive())
}

func (h *ProductHandler) HandleGet(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	product, err := h.app.ProductService.GetByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, product)
}

func (h *ProductHandler) HandleUpdate(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return
	}
	product, err := h.app.ProductService.Update(id, req.toModel())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, product)
}

func (h *ProductHandler) HandleDelete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if !h.app.ProductService.Delete(id) {
		ctx.JSON(404, gin.H{"error": "Not found"})
		return
	}
	ctx.JSON(200, gin.H{"message": "Product deleted"})
}

func (h *ProductHandler) HandleRestock(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req RestockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return
	}
	product, err := h.app.ProductService.Restock(id, req.Quantity)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, product)
}

func (h *ProductHandler) HandleSetStock(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req SetStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return
	}
	product, err := h.app.ProductService.SetStock(id, req.Stock)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, product)
}

type ProductRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Category    model.ProductCategory `json:"category"`
	Price       decimal.Decimal       `json:"price"`
	Stock       int                   `json:"stock"`
	Active      bool                  `json:"active"`
	ImageURL    string                `json:"image_url"`
}

func (r *ProductRequest) toModel() *model.Product {
	return &model.Product{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Price:       r.Price,
		Stock:       r.Stock,
		Active:      r.Active,
		ImageURL:    r.ImageURL,
	}
}

type RestockRequest struct {
	Quantity int `json:"quantity"`
}

type SetStockRequest struct {
	Stock int `json:"stock"`
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cinerama/cinerama/internal/app"
	"github.com/cinerama/cinerama/internal/model"
)

type CustomerHandler struct {
	app *app.App
}

func NewCustomerHandler(app *app.App) *CustomerHandler {
	return &CustomerHandler{app: app}
}

func (h *CustomerHandler) HandleCreate(ctx *gin.Context) {
	var req CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return
	}
	customer := req.toModel()
	if err := h.app.CustomerService.Create(customer); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(201, customer)
}

func (h *CustomerHandler) HandleList(ctx *gin.Context) {
	if email := ctx.Query("email"); email != "" {
		customer, err := h.app.CustomerService.GetByEmail(email)
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(200, []*model.Customer{customer})
		return
	}
	ctx.JSON(200, h.app.CustomerService.ListAll())
}

func (h *CustomerHandler) HandleGet(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	customer, err := h.app.CustomerService.GetByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, customer)
}

func (h *CustomerHandler) HandleUpdate(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return
	}
	customer, err := h.app.CustomerService.Update(id, req.toModel())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, customer)
}

func (h *CustomerHandler) HandleDelete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if !h.app.CustomerService.Delete(id) {
		ctx.JSON(404, gin.H{"error": "Not found"})
		return
	}
	ctx.JSON(200, gin.H{"message": "Customer deleted"})
}

type CustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r *CustomerRequest) toModel() *model.Customer {
	return &model.Customer{
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
	}
}

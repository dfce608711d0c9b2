package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cinerama/cinerama/internal/app"
	"github.com/cinerama/cinerama/internal/model"
)

type RoomHandler struct {
	app *app.App
}

func NewRoomHandler(app *app.App) *RoomHandler {
	return &RoomHandler{app: app}
}

func (h *RoomHandler) HandleCreate(ctx *gin.Context) {
	var req RoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return
	}
	room := req.toModel()
	if err := h.app.RoomService.Create(room); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(201, room)
}

func (h *RoomHandler) HandleList(ctx *gin.Context) {
	ctx.JSON(200, h.app.RoomService.ListAll())
}

func (h *RoomHandler) HandleListActive(ctx *gin.Context) {
	ctx.JSON(200, h.app.RoomService.ListActive())
}

func (h *RoomHandler) HandleGet(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	room, err := h.app.RoomService.GetByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, room)
}

func (h *RoomHandler) HandleUpdate(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req RoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return
	}
	room, err := h.app.RoomService.Update(id, req.toModel())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, room)
}

func (h *RoomHandler) HandleDelete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if !h.app.RoomService.Delete(id) {
		ctx.JSON(404, gin.H{"error": "Not found"})
		return
	}
	ctx.JSON(200, gin.H{"message": "Room deleted"})
}

type RoomRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Capacity    int            `json:"capacity"`
	Type        model.RoomType `json:"type"`
	Active      bool           `json:"active"`
}

func (r *RoomRequest) toModel() *model.Room {
	return &model.Room{
		Name:        r.Name,
		Description: r.Description,
		Capacity:    r.Capacity,
		Type:        r.Type,
		Active:      r.Active,
	}
}

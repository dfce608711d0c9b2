package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cinerama/cinerama/internal/app"
	"github.com/cinerama/cinerama/internal/model"
)

type ShowtimeHandler struct {
	app *app.App
}

func NewShowtimeHandler(app *app.App) *ShowtimeHandler {
	return &ShowtimeHandler{app: app}
}

func (h *ShowtimeHandler) HandleCreate(ctx *gin.Context) {
	var req ShowtimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return
	}
	showtime := req.toModel()
	if err := h.app.ShowtimeService.Create(showtime); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(201, showtime)
}

func (h *ShowtimeHandler) HandleList(ctx *gin.Context) {
	if date := ctx.Query("date"); date != "" {
		if roomID, ok := queryID(ctx, "room_id"); ok {
			ctx.JSON(200, h.app.ShowtimeService.ListByDateAndRoom(date, roomID))
			return
		}
	}
	if movieID, ok := queryID(ctx, "movie_id"); ok {
		ctx.JSON(200, h.app.ShowtimeService.ListByMovie(movieID))
		return
	}
	if roomID, ok := queryID(ctx, "room_id"); ok {
		ctx.JSON(200, h.app.ShowtimeService.ListByRoom(roomID))
		return
	}
	if date := ctx.Query("date"); date != "" {
		ctx.JSON(200, h.app.ShowtimeService.ListByDate(date))
		return
	}
	ctx.JSON(200, h.app.ShowtimeService.ListAll())
}

func (h *ShowtimeHandler) HandleListAvailable(ctx *gin.Context) {
	ctx.JSON(200, h.app.ShowtimeService.ListAvailable())
}

func (h *ShowtimeHandler) HandleGet(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	showtime, err := h.app.ShowtimeService.GetByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, showtime)
}

// HandleSeats reports the seat map of a showtime: the occupied labels and
// the free-seat counter.
func (h *ShowtimeHandler) HandleSeats(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	showtime, err := h.app.ShowtimeService.GetByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, gin.H{
		"showtime_id":     showtime.ID,
		"seats_total":     showtime.SeatsTotal,
		"seats_available": showtime.SeatsAvailable,
		"occupancy_pct":   showtime.Occupancy(),
		"occupied_seats":  h.app.TicketService.OccupiedSeats(id),
	})
}

func (h *ShowtimeHandler) HandleUpdate(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req ShowtimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return
	}
	showtime, err := h.app.ShowtimeService.Update(id, req.toModel())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, showtime)
}

func (h *ShowtimeHandler) HandleDelete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if !h.app.ShowtimeService.Delete(id) {
		ctx.JSON(404, gin.H{"error": "Not found"})
		return
	}
	ctx.JSON(200, gin.H{"message": "Showtime deleted"})
}

type ShowtimeRequest struct {
	MovieID uint   `json:"movie_id"`
	RoomID  uint   `json:"room_id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	// SeatsAvailable defaults to SeatsTotal when omitted.
	SeatsAvailable *int `json:"seats_available"`
	SeatsTotal     int  `json:"seats_total"`
}

func (r *ShowtimeRequest) toModel() *model.Showtime {
	available := r.SeatsTotal
	if r.SeatsAvailable != nil {
		available = *r.SeatsAvailable
	}
	return &model.Showtime{
		MovieID:        r.MovieID,
		RoomID:         r.RoomID,
		Date:           r.Date,
		Time:           r.Time,
		SeatsAvailable: available,
		SeatsTotal:     r.SeatsTotal,
	}
}

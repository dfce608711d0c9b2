package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/cinerama/cinerama/internal/app"
	"github.com/cinerama/cinerama/internal/model"
)

type MovieHandler struct {
	app *app.App
}

func NewMovieHandler(app *app.App) *MovieHandler {
	return &MovieHandler{app: app}
}

func (h *MovieHandler) HandleCreate(ctx *gin.Context) {
	var req MovieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return
	}
	movie := req.toModel()
	if err := h.app.MovieService.Create(movie); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(201, movie)
}

func (h *MovieHandler) HandleList(ctx *gin.Context) {
	if title := ctx.Query("title"); title != "" {
		movie, err := h.app.MovieService.GetByTitle(title)
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(200, []*model.Movie{movie})
		return
	}
	if genre := ctx.Query("genre"); genre != "" {
		ctx.JSON(200, h.app.MovieService.ListByGenre(genre))
		return
	}
	if query := ctx.Query("q"); query != "" {
		ctx.JSON(200, h.app.MovieService.SearchByTitle(query))
		return
	}
	ctx.JSON(200, h.app.MovieService.ListAll())
}

func (h *MovieHandler) HandleGet(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	movie, err := h.app.MovieService.GetByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, movie)
}

func (h *MovieHandler) HandleUpdate(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req MovieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid request format", "detail": err.Error()})
		return
	}
	movie, err := h.app.MovieService.Update(id, req.toModel())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(200, movie)
}

func (h *MovieHandler) HandleDelete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if !h.app.MovieService.Delete(id) {
		ctx.JSON(404, gin.H{"error": "Not found"})
		return
	}
	ctx.JSON(200, gin.H{"message": "Movie deleted"})
}

type MovieRequest struct {
	Title       string          `json:"title"`
	Genre       string          `json:"genre"`
	DurationMin int             `json:"duration_min"`
	Rating      string          `json:"rating"`
	Synopsis    string          `json:"synopsis"`
	Price       decimal.Decimal `json:"price"`
}

func (r *MovieRequest) toModel() *model.Movie {
	return &model.Movie{
		Title:       r.Title,
		Genre:       r.Genre,
		DurationMin: r.DurationMin,
		Rating:      r.Rating,
		Synopsis:    r.Synopsis,
		Price:       r.Price,
	}
}

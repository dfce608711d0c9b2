package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cinerama/cinerama/internal/service"
)

// respondError maps business errors to transport status codes. Anything
// unmatched is a 500.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(404, gin.H{"error": "Not found", "detail": err.Error()})
	case errors.Is(err, service.ErrSeatTaken),
		errors.Is(err, service.ErrNoSeatsAvailable),
		errors.Is(err, service.ErrScheduleConflict),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrSaleCompleted),
		errors.Is(err, service.ErrEmptySale),
		errors.Is(err, service.ErrDuplicate):
		ctx.JSON(409, gin.H{"error": "Conflict", "detail": err.Error()})
	case errors.Is(err, service.ErrValidation):
		ctx.JSON(400, gin.H{"error": "Invalid request", "detail": err.Error()})
	default:
		ctx.JSON(500, gin.H{"error": "Internal server error"})
	}
}

// queryID reads an optional uint query parameter; ok is false when the
// parameter is absent or malformed.
func queryID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// parseID reads a uint path parameter, writing a 400 itself on failure.
func parseID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		ctx.JSON(400, gin.H{"error": "Invalid request", "detail": name + " must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}

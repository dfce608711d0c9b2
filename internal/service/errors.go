// Package service defines the business errors shared by the domain
// services. Handlers match these with errors.Is to choose a transport
// status; the wrapped message names the violated rule.
package service

import (
	"errors"

	"github.com/cinerama/cinerama/internal/repository"
)

var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("validation failed")

	ErrSeatTaken        = errors.New("seat already taken for this showtime")
	ErrNoSeatsAvailable = errors.New("no seats available for this showtime")
	ErrScheduleConflict = errors.New("another showtime is scheduled in this room around that time")

	// ErrInsufficientStock aliases the repository sentinel so a failed
	// stock commit and a failed availability check match the same way.
	ErrInsufficientStock = repository.ErrInsufficientStock

	ErrSaleCompleted = errors.New("sale is already completed")
	ErrEmptySale     = errors.New("sale has no line items")

	ErrDuplicate = errors.New("duplicate value for a unique field")
)

// Package repository holds the in-memory stores that own all process state.
// Sentinel errors defined here let services distinguish failure modes
// without inspecting messages.
package repository

import "errors"

// ErrNotFound is returned when no record exists for the given identity.
var ErrNotFound = errors.New("record not found")

// ErrInsufficientStock is returned by stock mutations when a product does
// not have enough units to cover the requested quantity.
var ErrInsufficientStock = errors.New("insufficient stock")

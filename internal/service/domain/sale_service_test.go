package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cinerama/cinerama/internal/model"
	"github.com/cinerama/cinerama/internal/service"
)

func TestSaleListFilters(t *testing.T) {
	f := newFixture(t)
	popcorn := f.product(t, "Popcorn XL", "5.00", 10)
	today := time.Now().Format("2006-01-02")

	open, err := f.sales.Create(nil, string(model.MethodCash))
	if err != nil {
		t.Fatalf("failed to open sale: %v", err)
	}
	done, err := f.sales.Create(nil, string(model.MethodCash))
	if err != nil {
		t.Fatalf("failed to open sale: %v", err)
	}
	if _, err := f.sales.AddLine(done.ID, popcorn.ID, 1); err != nil {
		t.Fatalf("failed to add line: %v", err)
	}
	if _, err := f.sales.Complete(done.ID); err != nil {
		t.Fatalf("failed to complete sale: %v", err)
	}

	if got := f.sales.ListByDate(today); len(got) != 2 {
		t.Fatalf("expected 2 sales today, got %d", len(got))
	}
	completed := f.sales.ListCompleted()
	if len(completed) != 1 || completed[0].ID != done.ID {
		t.Fatalf("completed filter returned %d sales", len(completed))
	}
	pending := f.sales.ListPending()
	if len(pending) != 1 || pending[0].ID != open.ID {
		t.Fatalf("pending filter returned %d sales", len(pending))
	}
}

func TestSaleAccumulatesAndCommitsStock(t *testing.T) {
	f := newFixture(t)
	popcorn := f.product(t, "Popcorn XL", "5.00", 10)

	sale, err := f.sales.Create(nil, string(model.MethodCash))
	if err != nil {
		t.Fatalf("failed to open sale: %v", err)
	}

	sale, err = f.sales.AddLine(sale.ID, popcorn.ID, 3)
	if err != nil {
		t.Fatalf("failed to add line: %v", err)
	}
	if !sale.Total.Equal(decimal.RequireFromString("15.00")) {
		t.Fatalf("expected total 15.00, got %s", sale.Total)
	}

	sale, err = f.sales.AddLine(sale.ID, popcorn.ID, 4)
	if err != nil {
		t.Fatalf("failed to add second line: %v", err)
	}
	if len(sale.Lines) != 1 {
		t.Fatalf("expected a single accumulated line, got %d", len(sale.Lines))
	}
	if sale.Lines[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", sale.Lines[0].Quantity)
	}
	if !sale.Total.Equal(decimal.RequireFromString("35.00")) {
		t.Fatalf("expected total 35.00, got %s", sale.Total)
	}
	if popcorn.Stock != 10 {
		t.Fatalf("open sale touched stock: %d", popcorn.Stock)
	}

	sale, err = f.sales.Complete(sale.ID)
	if err != nil {
		t.Fatalf("failed to complete sale: %v", err)
	}
	if !sale.Completed {
		t.Fatal("expected sale to be completed")
	}
	if popcorn.Stock != 3 {
		t.Fatalf("expected stock 3 after completion, got %d", popcorn.Stock)
	}

	if _, err := f.sales.Complete(sale.ID); !errors.Is(err, service.ErrSaleCompleted) {
		t.Fatalf("expected ErrSaleCompleted on double completion, got %v", err)
	}
	if popcorn.Stock != 3 {
		t.Fatalf("double completion touched stock: %d", popcorn.Stock)
	}
}

func TestSaleCompleteFailsAtomically(t *testing.T) {
	f := newFixture(t)
	popcorn := f.product(t, "Popcorn XL", "5.00", 10)
	soda := f.product(t, "Soda", "3.00", 5)

	sale, err := f.sales.Create(nil, string(model.MethodCash))
	if err != nil {
		t.Fatalf("failed to open sale: %v", err)
	}
	if _, err := f.sales.AddLine(sale.ID, popcorn.ID, 4); err != nil {
		t.Fatalf("failed to add popcorn: %v", err)
	}
	if _, err := f.sales.AddLine(sale.ID, soda.ID, 5); err != nil {
		t.Fatalf("failed to add soda: %v", err)
	}

	// drain the soda behind the sale's back
	if _, err := f.products.SetStock(soda.ID, 2); err != nil {
		t.Fatalf("failed to set stock: %v", err)
	}

	_, err = f.sales.Complete(sale.ID)
	if !errors.Is(err, service.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if sale.Completed {
		t.Fatal("failed completion marked the sale completed")
	}
	if popcorn.Stock != 10 || soda.Stock != 2 {
		t.Fatalf("failed completion touched stock: popcorn=%d soda=%d", popcorn.Stock, soda.Stock)
	}
}

func TestSaleCompleteEmpty(t *testing.T) {
	f := newFixture(t)
	sale, err := f.sales.Create(nil, string(model.MethodCash))
	if err != nil {
		t.Fatalf("failed to open sale: %v", err)
	}
	if _, err := f.sales.Complete(sale.ID); !errors.Is(err, service.ErrEmptySale) {
		t.Fatalf("expected ErrEmptySale, got %v", err)
	}
}

func TestSaleAddLineChecksStock(t *testing.T) {
	f := newFixture(t)
	soda := f.product(t, "Soda", "3.00", 2)

	sale, err := f.sales.Create(nil, string(model.MethodCash))
	if err != nil {
		t.Fatalf("failed to open sale: %v", err)
	}
	if _, err := f.sales.AddLine(sale.ID, soda.ID, 2); err != nil {
		t.Fatalf("failed to add within stock: %v", err)
	}
	if _, err := f.sales.AddLine(sale.ID, soda.ID, 1); !errors.Is(err, service.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock for the accumulated quantity, got %v", err)
	}
}

func TestSaleRejectsMutationsAfterCompletion(t *testing.T) {
	f := newFixture(t)
	popcorn := f.product(t, "Popcorn XL", "5.00", 10)

	sale, err := f.sales.Create(nil, string(model.MethodCash))
	if err != nil {
		t.Fatalf("failed to open sale: %v", err)
	}
	if _, err := f.sales.AddLine(sale.ID, popcorn.ID, 1); err != nil {
		t.Fatalf("failed to add line: %v", err)
	}
	if _, err := f.sales.Complete(sale.ID); err != nil {
		t.Fatalf("failed to complete sale: %v", err)
	}

	if _, err := f.sales.AddLine(sale.ID, popcorn.ID, 1); !errors.Is(err, service.ErrSaleCompleted) {
		t.Fatalf("expected ErrSaleCompleted on add, got %v", err)
	}
	if _, err := f.sales.RemoveLine(sale.ID, popcorn.ID); !errors.Is(err, service.ErrSaleCompleted) {
		t.Fatalf("expected ErrSaleCompleted on remove, got %v", err)
	}
	if _, err := f.sales.SetLineQuantity(sale.ID, popcorn.ID, 2); !errors.Is(err, service.ErrSaleCompleted) {
		t.Fatalf("expected ErrSaleCompleted on set quantity, got %v", err)
	}
}

func TestSaleCreateValidation(t *testing.T) {
	f := newFixture(t)
	if _, err := f.sales.Create(nil, "BARTER"); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown method, got %v", err)
	}
	unknown := uint(42)
	if _, err := f.sales.Create(&unknown, string(model.MethodCash)); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown customer, got %v", err)
	}
}

func TestSaleInactiveProduct(t *testing.T) {
	f := newFixture(t)
	retired := f.product(t, "Old Combo", "9.00", 10)
	retired.Active = false

	sale, err := f.sales.Create(nil, string(model.MethodCash))
	if err != nil {
		t.Fatalf("failed to open sale: %v", err)
	}
	if _, err := f.sales.AddLine(sale.ID, retired.ID, 1); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected ErrValidation for inactive product, got %v", err)
	}
}

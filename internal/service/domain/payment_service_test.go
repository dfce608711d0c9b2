package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cinerama/cinerama/internal/model"
	"github.com/cinerama/cinerama/internal/service"
)

func TestPayTicket(t *testing.T) {
	f := newFixture(t)
	movie := f.movie(t, "Dune", "12.50")
	room := f.room(t, "Sala 1", 120)
	customer := f.customer(t, "Ana", "ana@example.com")
	showtime := f.showtime(t, movie.ID, room.ID, 120)

	ticket := &model.Ticket{ShowtimeID: showtime.ID, Seat: "A1", CustomerID: customer.ID}
	if err := f.tickets.Create(ticket); err != nil {
		t.Fatalf("failed to create ticket: %v", err)
	}

	payment, err := f.payments.PayTicket(ticket.ID, PaymentRequest{
		Method:      model.MethodCreditCard,
		CardNumber:  "4111111111111111",
		ReceiptType: model.ReceiptSimple,
	})
	if err != nil {
		t.Fatalf("failed to pay ticket: %v", err)
	}
	if payment.State != model.PaymentCompleted {
		t.Fatalf("expected COMPLETED, got %s", payment.State)
	}
	if !payment.Amount.Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("expected amount 12.50, got %s", payment.Amount)
	}
	if payment.CardNumber != "****1111" {
		t.Fatalf("expected masked card, got %q", payment.CardNumber)
	}
	if !strings.HasPrefix(payment.Reference, "TRX") {
		t.Fatalf("expected TRX reference, got %q", payment.Reference)
	}
	if ticket.State != model.TicketPaid {
		t.Fatalf("expected the ticket PAID, got %s", ticket.State)
	}

	// paying twice fails, the ticket is no longer RESERVED
	if _, err := f.payments.PayTicket(ticket.ID, PaymentRequest{
		Method:      model.MethodCash,
		ReceiptType: model.ReceiptSimple,
	}); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected ErrValidation on double payment, got %v", err)
	}
}

func TestPayTicketsBatch(t *testing.T) {
	f := newFixture(t)
	movie := f.movie(t, "Dune", "12.50")
	room := f.room(t, "Sala 1", 120)
	customer := f.customer(t, "Ana", "ana@example.com")
	showtime := f.showtime(t, movie.ID, room.ID, 120)

	first := &model.Ticket{ShowtimeID: showtime.ID, Seat: "A1", CustomerID: customer.ID}
	second := &model.Ticket{ShowtimeID: showtime.ID, Seat: "A2", CustomerID: customer.ID}
	for _, ticket := range []*model.Ticket{first, second} {
		if err := f.tickets.Create(ticket); err != nil {
			t.Fatalf("failed to create ticket: %v", err)
		}
	}

	payment, err := f.payments.PayTickets([]uint{first.ID, second.ID}, PaymentRequest{
		Method:      model.MethodCash,
		ReceiptType: model.ReceiptSimple,
	})
	if err != nil {
		t.Fatalf("failed to pay ticket batch: %v", err)
	}
	if !payment.Amount.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("expected amount 25.00, got %s", payment.Amount)
	}
	if first.State != model.TicketPaid || second.State != model.TicketPaid {
		t.Fatalf("expected both tickets PAID, got %s and %s", first.State, second.State)
	}
}

func TestPayTicketsBatchAllOrNothing(t *testing.T) {
	f := newFixture(t)
	movie := f.movie(t, "Dune", "12.50")
	room := f.room(t, "Sala 1", 120)
	customer := f.customer(t, "Ana", "ana@example.com")
	showtime := f.showtime(t, movie.ID, room.ID, 120)

	paid := &model.Ticket{ShowtimeID: showtime.ID, Seat: "B1", CustomerID: customer.ID}
	reserved := &model.Ticket{ShowtimeID: showtime.ID, Seat: "B2", CustomerID: customer.ID}
	for _, ticket := range []*model.Ticket{paid, reserved} {
		if err := f.tickets.Create(ticket); err != nil {
			t.Fatalf("failed to create ticket: %v", err)
		}
	}
	if ok, err := f.tickets.Pay(paid.ID); !ok || err != nil {
		t.Fatalf("failed to pre-pay ticket: ok=%v err=%v", ok, err)
	}

	_, err := f.payments.PayTickets([]uint{paid.ID, reserved.ID}, PaymentRequest{
		Method:      model.MethodCash,
		ReceiptType: model.ReceiptSimple,
	})
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if reserved.State != model.TicketReserved {
		t.Fatalf("failed batch moved a ticket to %s", reserved.State)
	}
	if _, err := f.payments.PayTickets(nil, PaymentRequest{
		Method:      model.MethodCash,
		ReceiptType: model.ReceiptSimple,
	}); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected ErrValidation for an empty batch, got %v", err)
	}
}

func TestPaymentDailyTotals(t *testing.T) {
	f := newFixture(t)
	popcorn := f.product(t, "Popcorn XL", "5.00", 10)
	today := time.Now().Format("2006-01-02")

	for i := 0; i < 2; i++ {
		sale, err := f.sales.Create(nil, string(model.MethodCash))
		if err != nil {
			t.Fatalf("failed to open sale: %v", err)
		}
		if _, err := f.sales.AddLine(sale.ID, popcorn.ID, 2); err != nil {
			t.Fatalf("failed to add line: %v", err)
		}
		if _, err := f.payments.PaySale(sale.ID, PaymentRequest{
			Method:      model.MethodCash,
			ReceiptType: model.ReceiptSimple,
		}); err != nil {
			t.Fatalf("failed to pay sale: %v", err)
		}
	}

	completed := f.payments.ListByDate(today)
	if len(completed) != 2 {
		t.Fatalf("expected 2 completed payments today, got %d", len(completed))
	}
	if total := f.payments.TotalCompletedForDate(today); !total.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("expected daily total 20.00, got %s", total)
	}
	if got := f.payments.ListByDate("1999-01-01"); len(got) != 0 {
		t.Fatalf("expected no payments on an empty date, got %d", len(got))
	}
}

func TestPayTicketRequiresCardNumber(t *testing.T) {
	f := newFixture(t)
	if _, err := f.payments.PayTicket(1, PaymentRequest{
		Method:      model.MethodDebitCard,
		ReceiptType: model.ReceiptSimple,
	}); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing card number, got %v", err)
	}
	if _, err := f.payments.PayTicket(1, PaymentRequest{
		Method:      "BARTER",
		ReceiptType: model.ReceiptSimple,
	}); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown method, got %v", err)
	}
}

func TestPaySaleCompletesAndCommitsStock(t *testing.T) {
	f := newFixture(t)
	popcorn := f.product(t, "Popcorn XL", "5.00", 10)
	customer := f.customer(t, "Ana", "ana@example.com")

	sale, err := f.sales.Create(&customer.ID, string(model.MethodAppYape))
	if err != nil {
		t.Fatalf("failed to open sale: %v", err)
	}
	if _, err := f.sales.AddLine(sale.ID, popcorn.ID, 7); err != nil {
		t.Fatalf("failed to add line: %v", err)
	}

	payment, err := f.payments.PaySale(sale.ID, PaymentRequest{
		Method:      model.MethodAppYape,
		ReceiptType: model.ReceiptInvoice,
	})
	if err != nil {
		t.Fatalf("failed to pay sale: %v", err)
	}
	if payment.State != model.PaymentCompleted {
		t.Fatalf("expected COMPLETED, got %s", payment.State)
	}
	if !payment.Amount.Equal(decimal.RequireFromString("35.00")) {
		t.Fatalf("expected amount 35.00, got %s", payment.Amount)
	}
	if payment.CustomerID != customer.ID {
		t.Fatalf("expected customer %d on the payment, got %d", customer.ID, payment.CustomerID)
	}
	if !sale.Completed {
		t.Fatal("expected the sale completed")
	}
	if popcorn.Stock != 3 {
		t.Fatalf("expected stock 3, got %d", popcorn.Stock)
	}
}

func TestPaySaleRejectedOnStockFailure(t *testing.T) {
	f := newFixture(t)
	soda := f.product(t, "Soda", "3.00", 5)

	sale, err := f.sales.Create(nil, string(model.MethodCash))
	if err != nil {
		t.Fatalf("failed to open sale: %v", err)
	}
	if _, err := f.sales.AddLine(sale.ID, soda.ID, 5); err != nil {
		t.Fatalf("failed to add line: %v", err)
	}
	if _, err := f.products.SetStock(soda.ID, 1); err != nil {
		t.Fatalf("failed to set stock: %v", err)
	}

	_, err = f.payments.PaySale(sale.ID, PaymentRequest{
		Method:      model.MethodCash,
		ReceiptType: model.ReceiptSimple,
	})
	if !errors.Is(err, service.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if sale.Completed {
		t.Fatal("failed payment completed the sale")
	}

	rejected := f.payments.ListByState(model.PaymentRejected)
	if len(rejected) != 1 {
		t.Fatalf("expected one rejected payment, got %d", len(rejected))
	}
}

func TestPaymentLookups(t *testing.T) {
	f := newFixture(t)
	popcorn := f.product(t, "Popcorn XL", "5.00", 10)

	sale, err := f.sales.Create(nil, string(model.MethodCash))
	if err != nil {
		t.Fatalf("failed to open sale: %v", err)
	}
	if _, err := f.sales.AddLine(sale.ID, popcorn.ID, 1); err != nil {
		t.Fatalf("failed to add line: %v", err)
	}
	payment, err := f.payments.PaySale(sale.ID, PaymentRequest{
		Method:      model.MethodCash,
		ReceiptType: model.ReceiptSimple,
	})
	if err != nil {
		t.Fatalf("failed to pay sale: %v", err)
	}

	byRef, err := f.payments.GetByReference(payment.Reference)
	if err != nil || byRef.ID != payment.ID {
		t.Fatalf("lookup by reference failed: %v", err)
	}
	if _, err := f.payments.GetByReference("TRX-unknown"); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

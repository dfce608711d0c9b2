package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Movie struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Genre       string          `json:"genre"`
	DurationMin int             `json:"duration_min"`
	Rating      string          `json:"rating"`
	Synopsis    string          `json:"synopsis"`
	Price       decimal.Decimal `json:"price"`
}

type RoomType string

const (
	RoomTypeStandard RoomType = "STANDARD"
	RoomTypeTwoD     RoomType = "TWO_D"
)

type Room struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Capacity    int      `json:"capacity"`
	Type        RoomType `json:"type"`
	Active      bool     `json:"active"`
}

type Customer struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Showtime is the unit of seat accounting: SeatsTotal is fixed at creation
// and SeatsAvailable moves between 0 and SeatsTotal as tickets come and go.
type Showtime struct {
	ID             uint   `json:"id"`
	MovieID        uint   `json:"movie_id"`
	RoomID         uint   `json:"room_id"`
	Date           string `json:"date"` // YYYY-MM-DD
	Time           string `json:"time"` // HH:MM
	SeatsAvailable int    `json:"seats_available"`
	SeatsTotal     int    `json:"seats_total"`
}

func (s *Showtime) HasAvailability() bool {
	return s.SeatsAvailable > 0
}

func (s *Showtime) ReserveSeat() bool {
	if !s.HasAvailability() {
		return false
	}
	s.SeatsAvailable--
	return true
}

// ReleaseSeat clamps at SeatsTotal so a stray release can never push the
// counter past capacity.
func (s *Showtime) ReleaseSeat() {
	if s.SeatsAvailable < s.SeatsTotal {
		s.SeatsAvailable++
	}
}

func (s *Showtime) Occupancy() float64 {
	if s.SeatsTotal == 0 {
		return 0
	}
	occupied := s.SeatsTotal - s.SeatsAvailable
	return float64(occupied) * 100.0 / float64(s.SeatsTotal)
}

type TicketState string

const (
	TicketReserved  TicketState = "RESERVED"
	TicketPaid      TicketState = "PAID"
	TicketCancelled TicketState = "CANCELLED"
	TicketUsed      TicketState = "USED"
)

// Ticket is a claim on one seat of one showtime. A ticket in RESERVED or
// PAID state occupies its seat and consumes inventory.
type Ticket struct {
	ID          uint            `json:"id"`
	ShowtimeID  uint            `json:"showtime_id"`
	Seat        string          `json:"seat"`
	Price       decimal.Decimal `json:"price"`
	State       TicketState     `json:"state"`
	PurchasedAt time.Time       `json:"purchased_at"`
	CustomerID  uint            `json:"customer_id"`
}

func (t *Ticket) IsValid() bool {
	return t.State == TicketReserved || t.State == TicketPaid
}

func (t *Ticket) CanCancel() bool {
	return t.State == TicketReserved || t.State == TicketPaid
}

type ProductCategory string

const (
	CategoryPopcorn   ProductCategory = "POPCORN"
	CategoryDrinks    ProductCategory = "DRINKS"
	CategoryChocolate ProductCategory = "CHOCOLATE"
	CategoryCandy     ProductCategory = "CANDY"
	CategoryCombos    ProductCategory = "COMBOS"
)

type Product struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    ProductCategory `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
	ImageURL    string          `json:"image_url"`
}

func (p *Product) HasStock() bool {
	return p.Stock > 0
}

func (p *Product) ReduceStock(quantity int) bool {
	if p.Stock < quantity {
		return false
	}
	p.Stock -= quantity
	return true
}

func (p *Product) IncreaseStock(quantity int) {
	p.Stock += quantity
}

// SaleLine captures the product's unit price at add time; later price
// changes on the product do not touch existing lines.
type SaleLine struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func (l *SaleLine) recalc() {
	l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ProductSale accumulates line items while open and freezes once completed.
type ProductSale struct {
	ID            uint            `json:"id"`
	Lines         []SaleLine      `json:"lines"`
	Total         decimal.Decimal `json:"total"`
	SoldAt        time.Time       `json:"sold_at"`
	CustomerID    *uint           `json:"customer_id,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	Completed     bool            `json:"completed"`
}

func NewProductSale(id uint, customerID *uint, paymentMethod string) *ProductSale {
	return &ProductSale{
		ID:            id,
		Lines:         []SaleLine{},
		Total:         decimal.Zero,
		SoldAt:        time.Now(),
		CustomerID:    customerID,
		PaymentMethod: paymentMethod,
	}
}

// AddLine accumulates quantity on an existing line for the product instead
// of appending a duplicate.
func (s *ProductSale) AddLine(product *Product, quantity int) {
	for i := range s.Lines {
		if s.Lines[i].ProductID == product.ID {
			s.Lines[i].Quantity += quantity
			s.Lines[i].recalc()
			s.recalcTotal()
			return
		}
	}
	line := SaleLine{ProductID: product.ID, Quantity: quantity, UnitPrice: product.Price}
	line.recalc()
	s.Lines = append(s.Lines, line)
	s.recalcTotal()
}

func (s *ProductSale) RemoveLine(productID uint) {
	for i := range s.Lines {
		if s.Lines[i].ProductID == productID {
			s.Lines = append(s.Lines[:i], s.Lines[i+1:]...)
			break
		}
	}
	s.recalcTotal()
}

func (s *ProductSale) SetLineQuantity(productID uint, quantity int) {
	if quantity <= 0 {
		s.RemoveLine(productID)
		return
	}
	for i := range s.Lines {
		if s.Lines[i].ProductID == productID {
			s.Lines[i].Quantity = quantity
			s.Lines[i].recalc()
			s.recalcTotal()
			return
		}
	}
}

func (s *ProductSale) LineFor(productID uint) *SaleLine {
	for i := range s.Lines {
		if s.Lines[i].ProductID == productID {
			return &s.Lines[i]
		}
	}
	return nil
}

func (s *ProductSale) TotalQuantity() int {
	n := 0
	for i := range s.Lines {
		n += s.Lines[i].Quantity
	}
	return n
}

func (s *ProductSale) recalcTotal() {
	total := decimal.Zero
	for i := range s.Lines {
		total = total.Add(s.Lines[i].Subtotal)
	}
	s.Total = total
}

func (s *ProductSale) Complete() {
	s.Completed = true
	s.SoldAt = time.Now()
}

type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "CREDIT_CARD"
	MethodDebitCard  PaymentMethod = "DEBIT_CARD"
	MethodAppYape    PaymentMethod = "APP_YAPE"
	MethodAppPlin    PaymentMethod = "APP_PLIN"
	MethodCash       PaymentMethod = "CASH"
)

type PaymentState string

const (
	PaymentPending   PaymentState = "PENDING"
	PaymentCompleted PaymentState = "COMPLETED"
	PaymentRejected  PaymentState = "REJECTED"
)

type ReceiptType string

const (
	ReceiptSimple  ReceiptType = "RECEIPT"
	ReceiptInvoice ReceiptType = "INVOICE"
)

type Payment struct {
	ID          uint            `json:"id"`
	Reference   string          `json:"reference"`
	Amount      decimal.Decimal `json:"amount"`
	CustomerID  uint            `json:"customer_id"`
	Method      PaymentMethod   `json:"method"`
	CardNumber  string          `json:"card_number,omitempty"`
	State       PaymentState    `json:"state"`
	PaidAt      time.Time       `json:"paid_at"`
	ReceiptType ReceiptType     `json:"receipt_type"`
}

// SetCardNumber stores only the last four digits.
func (p *Payment) SetCardNumber(number string) {
	if len(number) >= 4 {
		p.CardNumber = "****" + number[len(number)-4:]
		return
	}
	p.CardNumber = number
}

func (p *Payment) Complete() {
	p.State = PaymentCompleted
	p.PaidAt = time.Now()
}

func (p *Payment) Reject() {
	p.State = PaymentRejected
}

func (p *Payment) IsPaid() bool {
	return p.State == PaymentCompleted
}

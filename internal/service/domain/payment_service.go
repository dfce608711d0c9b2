package domain

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cinerama/cinerama/internal/model"
	"github.com/cinerama/cinerama/internal/mq"
	"github.com/cinerama/cinerama/internal/repository"
	"github.com/cinerama/cinerama/internal/service"
)

// PaymentRequest carries the charge details common to ticket and sale
// payments. CardNumber is required for card methods and stored masked.
type PaymentRequest struct {
	Method      model.PaymentMethod
	CardNumber  string
	ReceiptType model.ReceiptType
}

// PaymentService charges tickets and concession sales. A completed
// payment and the state change it pays for happen together: the payment
// is only marked COMPLETED once the underlying transition succeeds.
type PaymentService interface {
	PayTicket(ticketID uint, req PaymentRequest) (*model.Payment, error)
	PayTickets(ticketIDs []uint, req PaymentRequest) (*model.Payment, error)
	PaySale(saleID uint, req PaymentRequest) (*model.Payment, error)
	GetByID(id uint) (*model.Payment, error)
	GetByReference(reference string) (*model.Payment, error)
	ListAll() []*model.Payment
	ListByCustomer(customerID uint) []*model.Payment
	ListByState(state model.PaymentState) []*model.Payment
	ListByDate(date string) []*model.Payment
	TotalCompletedForDate(date string) decimal.Decimal
}

type paymentService struct {
	repo    repository.PaymentRepo
	tickets TicketService
	sales   SaleService
	events  *mq.Publisher
	logger  *zap.Logger
	refSeq  atomic.Uint64
}

var _ PaymentService = (*paymentService)(nil)

func NewPaymentService(
	repo repository.PaymentRepo,
	tickets TicketService,
	sales SaleService,
	events *mq.Publisher,
	logger *zap.Logger,
) *paymentService {
	return &paymentService{
		repo:    repo,
		tickets: tickets,
		sales:   sales,
		events:  events,
		logger:  logger,
	}
}

type paymentEvent struct {
	PaymentID  uint               `json:"payment_id"`
	Reference  string             `json:"reference"`
	Amount     decimal.Decimal    `json:"amount"`
	Method     model.PaymentMethod `json:"method"`
	State      model.PaymentState `json:"state"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// PayTicket charges a RESERVED ticket and moves it to PAID.
func (s *paymentService) PayTicket(ticketID uint, req PaymentRequest) (*model.Payment, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.State != model.TicketReserved {
		return nil, fmt.Errorf("%w: ticket %d is not awaiting payment", service.ErrValidation, ticketID)
	}

	payment := s.newPayment(ticket.Price, ticket.CustomerID, req)
	s.repo.Create(payment)

	paid, err := s.tickets.Pay(ticketID)
	if err != nil || !paid {
		payment.Reject()
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: ticket %d is not awaiting payment", service.ErrValidation, ticketID)
	}
	payment.Complete()
	s.logger.Info("ticket payment completed",
		zap.Uint("paymentId", payment.ID),
		zap.Uint("ticketId", ticketID),
		zap.String("reference", payment.Reference))
	s.publish(payment)
	return payment, nil
}

// PayTickets charges several RESERVED tickets as one payment; the amount
// is the sum of their prices. Either every ticket transitions to PAID or
// none does.
func (s *paymentService) PayTickets(ticketIDs []uint, req PaymentRequest) (*model.Payment, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if len(ticketIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one ticket is required", service.ErrValidation)
	}

	amount := decimal.Zero
	var customerID uint
	for _, id := range ticketIDs {
		ticket, err := s.tickets.GetByID(id)
		if err != nil {
			return nil, err
		}
		if ticket.State != model.TicketReserved {
			return nil, fmt.Errorf("%w: ticket %d is not awaiting payment", service.ErrValidation, id)
		}
		amount = amount.Add(ticket.Price)
		customerID = ticket.CustomerID
	}

	payment := s.newPayment(amount, customerID, req)
	s.repo.Create(payment)

	if err := s.tickets.PayBatch(ticketIDs); err != nil {
		payment.Reject()
		return nil, err
	}
	payment.Complete()
	s.logger.Info("ticket batch payment completed",
		zap.Uint("paymentId", payment.ID),
		zap.Int("tickets", len(ticketIDs)),
		zap.String("reference", payment.Reference))
	s.publish(payment)
	return payment, nil
}

// PaySale charges an open sale for its current total and completes it,
// committing stock. A failed stock commit rejects the payment and leaves
// the sale open.
func (s *paymentService) PaySale(saleID uint, req PaymentRequest) (*model.Payment, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	sale, err := s.sales.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale.Completed {
		return nil, fmt.Errorf("%w: sale %d", service.ErrSaleCompleted, saleID)
	}

	var customerID uint
	if sale.CustomerID != nil {
		customerID = *sale.CustomerID
	}
	payment := s.newPayment(sale.Total, customerID, req)
	s.repo.Create(payment)

	if _, err := s.sales.Complete(saleID); err != nil {
		payment.Reject()
		return nil, err
	}
	payment.Complete()
	s.logger.Info("sale payment completed",
		zap.Uint("paymentId", payment.ID),
		zap.Uint("saleId", saleID),
		zap.String("reference", payment.Reference))
	s.publish(payment)
	return payment, nil
}

func (s *paymentService) GetByID(id uint) (*model.Payment, error) {
	payment, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: payment %d", service.ErrNotFound, id)
	}
	return payment, nil
}

func (s *paymentService) GetByReference(reference string) (*model.Payment, error) {
	payment, err := s.repo.GetByReference(reference)
	if err != nil {
		return nil, fmt.Errorf("%w: payment %q", service.ErrNotFound, reference)
	}
	return payment, nil
}

func (s *paymentService) ListAll() []*model.Payment {
	return s.repo.ListAll()
}

func (s *paymentService) ListByCustomer(customerID uint) []*model.Payment {
	return s.repo.ListByCustomer(customerID)
}

func (s *paymentService) ListByState(state model.PaymentState) []*model.Payment {
	return s.repo.ListByState(state)
}

// ListByDate matches payments by the calendar date they completed, in the
// server's local zone. Pending and rejected payments never match.
func (s *paymentService) ListByDate(date string) []*model.Payment {
	matched := make([]*model.Payment, 0)
	for _, payment := range s.repo.ListAll() {
		if payment.IsPaid() && payment.PaidAt.Format("2006-01-02") == date {
			matched = append(matched, payment)
		}
	}
	return matched
}

func (s *paymentService) TotalCompletedForDate(date string) decimal.Decimal {
	total := decimal.Zero
	for _, payment := range s.ListByDate(date) {
		total = total.Add(payment.Amount)
	}
	return total
}

func (s *paymentService) newPayment(amount decimal.Decimal, customerID uint, req PaymentRequest) *model.Payment {
	payment := &model.Payment{
		Reference:   s.nextReference(),
		Amount:      amount,
		CustomerID:  customerID,
		Method:      req.Method,
		State:       model.PaymentPending,
		ReceiptType: req.ReceiptType,
	}
	if req.CardNumber != "" {
		payment.SetCardNumber(req.CardNumber)
	}
	return payment
}

func (s *paymentService) nextReference() string {
	return fmt.Sprintf("TRX-%s-%04d", time.Now().Format("20060102"), s.refSeq.Add(1))
}

func (s *paymentService) validate(req PaymentRequest) error {
	switch req.Method {
	case model.MethodCreditCard, model.MethodDebitCard:
		if req.CardNumber == "" {
			return fmt.Errorf("%w: card number is required for card payments", service.ErrValidation)
		}
	case model.MethodAppYape, model.MethodAppPlin, model.MethodCash:
	default:
		return fmt.Errorf("%w: unknown payment method %q", service.ErrValidation, req.Method)
	}
	switch req.ReceiptType {
	case model.ReceiptSimple, model.ReceiptInvoice:
	default:
		return fmt.Errorf("%w: unknown receipt type %q", service.ErrValidation, req.ReceiptType)
	}
	return nil
}

func (s *paymentService) publish(payment *model.Payment) {
	err := s.events.Publish(mq.PaymentEventsQueue, paymentEvent{
		PaymentID:  payment.ID,
		Reference:  payment.Reference,
		Amount:     payment.Amount,
		Method:     payment.Method,
		State:      payment.State,
		OccurredAt: time.Now(),
	})
	if err != nil {
		s.logger.Warn("failed to publish payment event",
			zap.Uint("paymentId", payment.ID), zap.Error(err))
	}
}

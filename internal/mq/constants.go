package mq

// Queue names

// ticket lifecycle queue
// every reserve/pay/cancel/use transition is announced here
const (
	TicketEventsQueue = "ticket.lifecycle.events"
)

// completed concession sales
const (
	SaleEventsQueue = "sale.completed.events"
)

// completed payments, tickets and sales alike
const (
	PaymentEventsQueue = "payment.completed.events"
)

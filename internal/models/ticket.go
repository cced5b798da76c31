package models

import "time"

// TicketStatus is the availability state of a ticket.
type TicketStatus string

const (
	TicketAvailable    TicketStatus = "available"
	TicketNotAvailable TicketStatus = "not_available"
)

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// PaymentStatus is the processing state of a payment.
type PaymentStatus string

const (
	PaymentPending      PaymentStatus = "pending"
	PaymentApproved     PaymentStatus = "approved"
	PaymentDeclined     PaymentStatus = "declined"
	PaymentOutOfBalance PaymentStatus = "out_of_balance"
)

// Ticket ties a user to an event. Purchase flow is not implemented yet,
// the schema exists so events and payments have something to reference.
type Ticket struct {
	ID        int64        `db:"id" json:"id"`
	Status    TicketStatus `db:"status" json:"status"`
	UserID    int64        `db:"user_id" json:"user_id"`
	EventID   int64        `db:"event_id" json:"event_id"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}

// Payment records a payment made against a ticket.
type Payment struct {
	ID         int64         `db:"id" json:"id"`
	Amount     float64       `db:"amount" json:"amount"`
	Method     PaymentMethod `db:"payment_method" json:"payment_method"`
	Status     PaymentStatus `db:"status" json:"status"`
	CardNumber string        `db:"card_number" json:"-"`
	ExpDate    string        `db:"exp_date" json:"-"`
	UserID     int64         `db:"user_id" json:"user_id"`
	TicketID   int64         `db:"ticket_id" json:"ticket_id"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}

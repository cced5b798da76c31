package models

import "time"

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventNotStarted EventStatus = "not_started"
	EventCounting   EventStatus = "counting"
	EventFinished   EventStatus = "finished"
	EventCancelled  EventStatus = "cancelled"
)

// Event represents an event offered on the platform.
type Event struct {
	ID          int64       `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description"`
	Category    string      `db:"category" json:"category"`
	StartsAt    time.Time   `db:"starts_at" json:"starts_at"`
	EndsAt      time.Time   `db:"ends_at" json:"ends_at"`
	TicketPrice float64     `db:"ticket_price" json:"ticket_price"`
	TicketCount int         `db:"ticket_count" json:"ticket_count"`
	Location    string      `db:"location" json:"location"`
	Status      EventStatus `db:"status" json:"status"`
	OrganizerID int64       `db:"organizer_id" json:"organizer_id"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
}

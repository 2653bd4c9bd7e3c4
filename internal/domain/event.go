package domain

import (
	"math"
	"time"
)

// Event represents a capacity-bounded, schedulable activity.
//
// Registration counts are intentionally absent from the struct: they are
// derived from the registration ledger at read time and carried separately
// as EventStats so a stale stored counter can never drift from the ledger.
type Event struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	ImageURL     string     `json:"image,omitempty"`
	Excerpt      string     `json:"excerpt"`
	StartsAt     time.Time  `json:"date"`
	EndsAt       *time.Time `json:"end_date,omitempty"`
	Location     string     `json:"location"`
	VenueDetails string     `json:"venue_details"`
	Capacity     int        `json:"capacity"`
	TicketPrice  string     `json:"ticket_price"`
	Agenda       string     `json:"agenda,omitempty"`
	ContactEmail string     `json:"contact_email,omitempty"`
	AuthorID     string     `json:"author"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// EventStats carries the registration-derived view of a single event.
type EventStats struct {
	Capacity             int
	CurrentRegistrations int
}

// NewEventStats derives stats from a committed ledger count.
func NewEventStats(capacity, registrations int) EventStats {
	return EventStats{Capacity: capacity, CurrentRegistrations: registrations}
}

// IsFull reports whether no further admissions are possible. A capacity of
// zero is always full.
func (s EventStats) IsFull() bool {
	return s.CurrentRegistrations >= s.Capacity
}

// AvailableSpots returns the remaining capacity, never negative even when an
// event was resized below its committed registration count.
func (s EventStats) AvailableSpots() int {
	if s.CurrentRegistrations >= s.Capacity {
		return 0
	}
	return s.Capacity - s.CurrentRegistrations
}

// FillPercentage returns registrations/capacity as a percentage rounded to
// one decimal place, and 0 for capacity-zero events.
func (s EventStats) FillPercentage() float64 {
	if s.Capacity == 0 {
		return 0
	}
	pct := float64(s.CurrentRegistrations) / float64(s.Capacity) * 100
	return math.Round(pct*10) / 10
}

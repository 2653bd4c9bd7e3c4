package dto

import (
	"time"

	"github.com/mightcoding/ISSAConnect/internal/domain"
)

// CreateEventRequest represents the request to create a new event
type CreateEventRequest struct {
	Title        string     `json:"title" binding:"required,min=1,max=200"`
	Description  string     `json:"description" binding:"required"`
	Category     string     `json:"category" binding:"max=50"`
	ImageURL     string     `json:"image" binding:"omitempty,url"`
	Excerpt      string     `json:"excerpt"`
	StartsAt     time.Time  `json:"date" binding:"required"`
	EndsAt       *time.Time `json:"end_date"`
	Location     string     `json:"location" binding:"required,max=200"`
	VenueDetails string     `json:"venue_details"`
	Capacity     *int       `json:"capacity"`
	TicketPrice  string     `json:"ticket_price" binding:"max=50"`
	Agenda       string     `json:"agenda"`
	ContactEmail string     `json:"contact_email" binding:"omitempty,email"`
}

// Validate validates the CreateEventRequest
func (r *CreateEventRequest) Validate() (bool, string) {
	if r.Capacity != nil && *r.Capacity < 0 {
		return false, "Capacity cannot be negative"
	}
	if r.EndsAt != nil && r.EndsAt.Before(r.StartsAt) {
		return false, "Event end must be after its start"
	}
	return true, ""
}

// UpdateEventRequest represents a partial event update
type UpdateEventRequest struct {
	Title        *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description  *string    `json:"description"`
	Category     *string    `json:"category" binding:"omitempty,max=50"`
	ImageURL     *string    `json:"image" binding:"omitempty,url"`
	Excerpt      *string    `json:"excerpt"`
	StartsAt     *time.Time `json:"date"`
	EndsAt       *time.Time `json:"end_date"`
	Location     *string    `json:"location" binding:"omitempty,max=200"`
	VenueDetails *string    `json:"venue_details"`
	Capacity     *int       `json:"capacity"`
	TicketPrice  *string    `json:"ticket_price" binding:"omitempty,max=50"`
	Agenda       *string    `json:"agenda"`
	ContactEmail *string    `json:"contact_email" binding:"omitempty,email"`
}

// Validate validates the UpdateEventRequest
func (r *UpdateEventRequest) Validate() (bool, string) {
	if r.Capacity != nil && *r.Capacity < 0 {
		return false, "Capacity cannot be negative"
	}
	return true, ""
}

// EventResponse represents an event with its registration-derived fields
type EventResponse struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Category             string   `json:"category"`
	ImageURL             string   `json:"image,omitempty"`
	Excerpt              string   `json:"excerpt"`
	StartsAt             string   `json:"date"`
	EndsAt               *string  `json:"end_date,omitempty"`
	Location             string   `json:"location"`
	VenueDetails         string   `json:"venue_details"`
	Capacity             int      `json:"capacity"`
	CurrentRegistrations int      `json:"current_registrations"`
	IsFull               bool     `json:"is_full"`
	AvailableSpots       int      `json:"available_spots"`
	TicketPrice          string   `json:"ticket_price"`
	Agenda               string   `json:"agenda,omitempty"`
	ContactEmail         string   `json:"contact_email,omitempty"`
	AuthorID             string   `json:"author"`
	AuthorName           string   `json:"author_name"`
	AuthorAvatar         string   `json:"author_avatar,omitempty"`
	Sponsors             []string `json:"sponsors"`
	CreatedAt            string   `json:"created_at"`
	UpdatedAt            string   `json:"updated_at"`
}

// NewEventResponse converts an event, its ledger-derived stats, and its
// author into the API shape.
func NewEventResponse(e *domain.Event, stats domain.EventStats, author *domain.User) *EventResponse {
	resp := &EventResponse{
		ID:                   e.ID,
		Title:                e.Title,
		Description:          e.Description,
		Category:             e.Category,
		ImageURL:             e.ImageURL,
		Excerpt:              e.Excerpt,
		StartsAt:             e.StartsAt.Format(time.RFC3339),
		Location:             e.Location,
		VenueDetails:         e.VenueDetails,
		Capacity:             e.Capacity,
		CurrentRegistrations: stats.CurrentRegistrations,
		IsFull:               stats.IsFull(),
		AvailableSpots:       stats.AvailableSpots(),
		TicketPrice:          e.TicketPrice,
		Agenda:               e.Agenda,
		ContactEmail:         e.ContactEmail,
		AuthorID:             e.AuthorID,
		Sponsors:             []string{},
		CreatedAt:            e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            e.UpdatedAt.Format(time.RFC3339),
	}
	if e.EndsAt != nil {
		s := e.EndsAt.Format(time.RFC3339)
		resp.EndsAt = &s
	}
	if author != nil {
		resp.AuthorName = author.DisplayName()
		resp.AuthorAvatar = author.AvatarURL
	}
	return resp
}

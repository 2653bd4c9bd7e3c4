package dto

import (
	"time"

	"github.com/mightcoding/ISSAConnect/internal/domain"
)

// RegistrationResponse is returned after a successful register/unregister
// with the counts recomputed from the ledger.
type RegistrationResponse struct {
	Registered           bool   `json:"registered"`
	EventID              string `json:"event_id"`
	CurrentRegistrations int    `json:"current_registrations"`
	AvailableSpots       int    `json:"available_spots"`
	IsFull               bool   `json:"is_full"`
}

// NewRegistrationResponse builds the post-mutation view of an event.
func NewRegistrationResponse(eventID string, registered bool, stats domain.EventStats) *RegistrationResponse {
	return &RegistrationResponse{
		Registered:           registered,
		EventID:              eventID,
		CurrentRegistrations: stats.CurrentRegistrations,
		AvailableSpots:       stats.AvailableSpots(),
		IsFull:               stats.IsFull(),
	}
}

// RegistrantResponse is one enriched ledger entry in an admin listing
type RegistrantResponse struct {
	RegistrationID string `json:"registration_id"`
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	RegisteredAt   string `json:"registered_at"`
}

// EventRegistrationsResponse is the admin view of one event's ledger
type EventRegistrationsResponse struct {
	EventID              string               `json:"event_id"`
	Title                string               `json:"title"`
	Capacity             int                  `json:"capacity"`
	CurrentRegistrations int                  `json:"current_registrations"`
	IsFull               bool                 `json:"is_full"`
	AvailableSpots       int                  `json:"available_spots"`
	Registrants          []RegistrantResponse `json:"registrants"`
}

// NewEventRegistrationsResponse builds the admin registration listing.
func NewEventRegistrationsResponse(e *domain.Event, stats domain.EventStats, registrants []*domain.Registrant) *EventRegistrationsResponse {
	resp := &EventRegistrationsResponse{
		EventID:              e.ID,
		Title:                e.Title,
		Capacity:             e.Capacity,
		CurrentRegistrations: stats.CurrentRegistrations,
		IsFull:               stats.IsFull(),
		AvailableSpots:       stats.AvailableSpots(),
		Registrants:          make([]RegistrantResponse, 0, len(registrants)),
	}
	for _, r := range registrants {
		resp.Registrants = append(resp.Registrants, RegistrantResponse{
			RegistrationID: r.RegistrationID,
			UserID:         r.UserID,
			Username:       r.Username,
			FullName:       r.FullName,
			Email:          r.Email,
			AvatarURL:      r.AvatarURL,
			RegisteredAt:   r.RegisteredAt.Format(time.RFC3339),
		})
	}
	return resp
}

// EventOverviewResponse is one row of the privileged events overview
type EventOverviewResponse struct {
	EventID              string  `json:"event_id"`
	Title                string  `json:"title"`
	StartsAt             string  `json:"date"`
	Capacity             int     `json:"capacity"`
	CurrentRegistrations int     `json:"current_registrations"`
	IsFull               bool    `json:"is_full"`
	RegistrationPercent  float64 `json:"registration_percent"`
}

// NewEventOverviewResponse builds one overview row.
func NewEventOverviewResponse(e *domain.Event, stats domain.EventStats) *EventOverviewResponse {
	return &EventOverviewResponse{
		EventID:              e.ID,
		Title:                e.Title,
		StartsAt:             e.StartsAt.Format(time.RFC3339),
		Capacity:             e.Capacity,
		CurrentRegistrations: stats.CurrentRegistrations,
		IsFull:               stats.IsFull(),
		RegistrationPercent:  stats.FillPercentage(),
	}
}

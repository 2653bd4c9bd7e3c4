package domain

import "time"

// Registration is a single row in the registration ledger: one user admitted
// to one event. The (event, user) pair is unique at the storage layer; a
// registration is either present or absent, never edited.
type Registration struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	UserID       string    `json:"user_id"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Registrant is a ledger entry enriched with user display data for
// administrative listings.
type Registrant struct {
	RegistrationID string    `json:"registration_id"`
	UserID         string    `json:"user_id"`
	Username       string    `json:"username"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	RegisteredAt   time.Time `json:"registered_at"`
}

package repository

import (
	"context"

	"github.com/mightcoding/ISSAConnect/internal/domain"
)

// UserRepository defines the interface for user data access.
// Lookup methods return (nil, nil) when no row exists.
type UserRepository interface {
	// Create inserts a new user together with its profile fields
	Create(ctx context.Context, user *domain.User) error
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Exists checks whether the username or email is already taken
	Exists(ctx context.Context, username, email string) (bool, error)
	// Update updates profile fields
	Update(ctx context.Context, user *domain.User) error
	// UpdatePermissions sets the content-creation flag
	UpdatePermissions(ctx context.Context, id string, canCreateContent bool) error
	// UpdateAvatar sets the avatar URL; an empty string clears it
	UpdateAvatar(ctx context.Context, id, avatarURL string) error
	// List returns all users ordered by join date
	List(ctx context.Context) ([]*domain.User, error)
}

// SessionRepository defines the interface for refresh-token sessions
type SessionRepository interface {
	// Create stores a new session
	Create(ctx context.Context, session *domain.Session) error
	// GetByRefreshToken retrieves a session; (nil, nil) when absent
	GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	// Delete removes a session by ID
	Delete(ctx context.Context, id string) error
	// DeleteByUserID removes all sessions of a user
	DeleteByUserID(ctx context.Context, userID string) error
}

// NewsRepository defines the interface for news data access
type NewsRepository interface {
	// Create inserts a new article
	Create(ctx context.Context, news *domain.News) error
	// GetByID retrieves an article; (nil, nil) when absent
	GetByID(ctx context.Context, id string) (*domain.News, error)
	// List returns the newest articles, capped at limit
	List(ctx context.Context, limit int) ([]*domain.News, error)
	// Update updates an article
	Update(ctx context.Context, news *domain.News) error
	// Delete removes an article
	Delete(ctx context.Context, id string) error
	// IncrementViews bumps the view counter atomically and returns the new value
	IncrementViews(ctx context.Context, id string) (int, error)
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	// Create inserts a new event
	Create(ctx context.Context, event *domain.Event) error
	// GetByID retrieves an event; (nil, nil) when absent
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// List returns the newest events, capped at limit
	List(ctx context.Context, limit int) ([]*domain.Event, error)
	// ListAll returns every event, newest first
	ListAll(ctx context.Context) ([]*domain.Event, error)
	// Update updates an event
	Update(ctx context.Context, event *domain.Event) error
	// Delete removes an event and, through the ledger's foreign key,
	// all of its registrations in the same statement
	Delete(ctx context.Context, id string) error
}

// RegistrationRepository is the registration ledger: the single source of
// truth for who is registered for which event.
type RegistrationRepository interface {
	// Register admits a user inside one transaction: the event row is
	// locked, committed registrations are counted against capacity, and the
	// ledger row is inserted. Returns domain.ErrEventNotFound,
	// domain.ErrEventFull or domain.ErrAlreadyRegistered.
	Register(ctx context.Context, eventID, userID string) (*domain.Registration, error)
	// Remove deletes the (event, user) row. Returns domain.ErrNotRegistered
	// when no row exists.
	Remove(ctx context.Context, eventID, userID string) error
	// Exists reports whether the (event, user) pair is registered
	Exists(ctx context.Context, eventID, userID string) (bool, error)
	// CountByEvent returns the committed registration count for one event
	CountByEvent(ctx context.Context, eventID string) (int, error)
	// CountByEvents returns committed counts for a set of events
	CountByEvents(ctx context.Context, eventIDs []string) (map[string]int, error)
	// ListByEvent returns ledger entries enriched with user display data
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Registrant, error)
}

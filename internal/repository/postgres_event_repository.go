package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mightcoding/ISSAConnect/internal/domain"
)

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

const eventColumns = `id, title, description, category,
	COALESCE(image_url, '') as image_url,
	excerpt, starts_at, ends_at, location,
	COALESCE(venue_details, '') as venue_details,
	capacity, ticket_price,
	COALESCE(agenda, '') as agenda,
	COALESCE(contact_email, '') as contact_email,
	author_id, created_at, updated_at`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Category,
		&e.ImageURL,
		&e.Excerpt,
		&e.StartsAt,
		&e.EndsAt,
		&e.Location,
		&e.VenueDetails,
		&e.Capacity,
		&e.TicketPrice,
		&e.Agenda,
		&e.ContactEmail,
		&e.AuthorID,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts a new event
func (r *PostgresEventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, title, description, category, image_url, excerpt,
			starts_at, ends_at, location, venue_details, capacity, ticket_price,
			agenda, contact_email, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, NULLIF($10, ''),
			$11, $12, NULLIF($13, ''), NULLIF($14, ''), $15, $16, $17)
	`
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Category,
		event.ImageURL,
		event.Excerpt,
		event.StartsAt,
		event.EndsAt,
		event.Location,
		event.VenueDetails,
		event.Capacity,
		event.TicketPrice,
		event.Agenda,
		event.ContactEmail,
		event.AuthorID,
		event.CreatedAt,
		event.UpdatedAt,
	)
	return err
}

// GetByID retrieves an event; (nil, nil) when absent
func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	event, err := scanEvent(r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

// List returns the newest events, capped at limit
func (r *PostgresEventRepository) List(ctx context.Context, limit int) ([]*domain.Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// ListAll returns every event, newest first
func (r *PostgresEventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// Update updates an event
func (r *PostgresEventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, category = $4, image_url = NULLIF($5, ''),
		    excerpt = $6, starts_at = $7, ends_at = $8, location = $9,
		    venue_details = NULLIF($10, ''), capacity = $11, ticket_price = $12,
		    agenda = NULLIF($13, ''), contact_email = NULLIF($14, ''),
		    updated_at = $15
		WHERE id = $1
	`
	event.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Category,
		event.ImageURL,
		event.Excerpt,
		event.StartsAt,
		event.EndsAt,
		event.Location,
		event.VenueDetails,
		event.Capacity,
		event.TicketPrice,
		event.Agenda,
		event.ContactEmail,
		event.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// Delete removes an event. Registrations are removed by the foreign
// key cascade on event_registrations.
func (r *PostgresEventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mightcoding/ISSAConnect/internal/domain"
	"github.com/mightcoding/ISSAConnect/internal/dto"
	"github.com/mightcoding/ISSAConnect/internal/repository"
	"github.com/mightcoding/ISSAConnect/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	eventListLimit       = 10
	defaultEventCategory = "Workshop"
	defaultEventCapacity = 50
	defaultTicketPrice   = "Free"
)

// EventService defines the interface for event management
type EventService interface {
	// CreateEvent creates an event; the author needs publishing rights
	CreateEvent(ctx context.Context, authorID string, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	// GetEvent retrieves one event with ledger-derived stats
	GetEvent(ctx context.Context, id string) (*dto.EventResponse, error)
	// ListEvents returns the ten newest events with ledger-derived stats
	ListEvents(ctx context.Context) ([]*dto.EventResponse, error)
	// UpdateEvent updates an event owned by the caller (admins may edit any).
	// Lowering capacity below the committed registration count is accepted;
	// existing registrants are never evicted.
	UpdateEvent(ctx context.Context, actorID, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	// DeleteEvent removes an event and its registrations
	DeleteEvent(ctx context.Context, actorID, id string) error
}

// eventService implements EventService
type eventService struct {
	eventRepo        repository.EventRepository
	registrationRepo repository.RegistrationRepository
	userRepo         repository.UserRepository
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo repository.EventRepository,
	registrationRepo repository.RegistrationRepository,
	userRepo repository.UserRepository,
) EventService {
	return &eventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
	}
}

// stats derives the registration view of one event from the ledger
func (s *eventService) stats(ctx context.Context, event *domain.Event) (domain.EventStats, error) {
	count, err := s.registrationRepo.CountByEvent(ctx, event.ID)
	if err != nil {
		return domain.EventStats{}, err
	}
	return domain.NewEventStats(event.Capacity, count), nil
}

// CreateEvent creates an event; the author needs publishing rights
func (s *eventService) CreateEvent(ctx context.Context, authorID string, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.create")
	defer span.End()

	span.SetAttributes(attribute.String("author_id", authorID))

	author, err := getActor(ctx, s.userRepo, authorID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !author.CanPublish() {
		span.SetStatus(codes.Error, "permission denied")
		return nil, domain.ErrPermissionDenied
	}

	if req.Capacity != nil && *req.Capacity < 0 {
		span.SetStatus(codes.Error, "invalid capacity")
		return nil, domain.ErrInvalidCapacity
	}
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		span.SetStatus(codes.Error, "invalid schedule")
		return nil, domain.ErrInvalidSchedule
	}

	category := req.Category
	if category == "" {
		category = defaultEventCategory
	}
	capacity := defaultEventCapacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	ticketPrice := req.TicketPrice
	if ticketPrice == "" {
		ticketPrice = defaultTicketPrice
	}
	excerpt := req.Excerpt
	if excerpt == "" {
		excerpt = makeExcerpt(req.Description)
	}
	venueDetails := req.VenueDetails
	if venueDetails == "" {
		venueDetails = req.Location
	}
	contactEmail := req.ContactEmail
	if contactEmail == "" {
		contactEmail = author.Email
	}

	now := time.Now()
	event := &domain.Event{
		ID:           uuid.New().String(),
		Title:        req.Title,
		Description:  req.Description,
		Category:     category,
		ImageURL:     req.ImageURL,
		Excerpt:      excerpt,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		Location:     req.Location,
		VenueDetails: venueDetails,
		Capacity:     capacity,
		TicketPrice:  ticketPrice,
		Agenda:       req.Agenda,
		ContactEmail: contactEmail,
		AuthorID:     authorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("event_id", event.ID))
	span.SetStatus(codes.Ok, "")
	return dto.NewEventResponse(event, domain.NewEventStats(capacity, 0), author), nil
}

// GetEvent retrieves one event with ledger-derived stats
func (s *eventService) GetEvent(ctx context.Context, id string) (*dto.EventResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.get")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", id))

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if event == nil {
		span.SetStatus(codes.Error, "event not found")
		return nil, domain.ErrEventNotFound
	}

	stats, err := s.stats(ctx, event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, event.AuthorID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.NewEventResponse(event, stats, author), nil
}

// ListEvents returns the ten newest events with ledger-derived stats
func (s *eventService) ListEvents(ctx context.Context) ([]*dto.EventResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.list")
	defer span.End()

	events, err := s.eventRepo.List(ctx, eventListLimit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	counts, err := s.registrationRepo.CountByEvents(ctx, ids)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	responses := make([]*dto.EventResponse, 0, len(events))
	for _, e := range events {
		author, err := s.userRepo.GetByID(ctx, e.AuthorID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		stats := domain.NewEventStats(e.Capacity, counts[e.ID])
		responses = append(responses, dto.NewEventResponse(e, stats, author))
	}

	span.SetAttributes(attribute.Int("event_count", len(responses)))
	span.SetStatus(codes.Ok, "")
	return responses, nil
}

// UpdateEvent updates an event owned by the caller (admins may edit any)
func (s *eventService) UpdateEvent(ctx context.Context, actorID, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.update")
	defer span.End()

	span.SetAttributes(
		attribute.String("actor_id", actorID),
		attribute.String("event_id", id),
	)

	actor, err := getActor(ctx, s.userRepo, actorID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if event == nil {
		span.SetStatus(codes.Error, "event not found")
		return nil, domain.ErrEventNotFound
	}

	if !actor.CanModify(event.AuthorID) {
		span.SetStatus(codes.Error, "permission denied")
		return nil, domain.ErrPermissionDenied
	}

	if req.Capacity != nil && *req.Capacity < 0 {
		span.SetStatus(codes.Error, "invalid capacity")
		return nil, domain.ErrInvalidCapacity
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
		if req.Excerpt == nil {
			event.Excerpt = makeExcerpt(event.Description)
		}
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.ImageURL != nil {
		event.ImageURL = *req.ImageURL
	}
	if req.Excerpt != nil {
		event.Excerpt = *req.Excerpt
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = req.EndsAt
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.VenueDetails != nil {
		event.VenueDetails = *req.VenueDetails
	}
	if req.Capacity != nil {
		// A capacity below the committed registration count is allowed.
		// Registrants are never evicted; the event just reports full.
		event.Capacity = *req.Capacity
	}
	if req.TicketPrice != nil {
		event.TicketPrice = *req.TicketPrice
	}
	if req.Agenda != nil {
		event.Agenda = *req.Agenda
	}
	if req.ContactEmail != nil {
		event.ContactEmail = *req.ContactEmail
	}

	if event.EndsAt != nil && event.EndsAt.Before(event.StartsAt) {
		span.SetStatus(codes.Error, "invalid schedule")
		return nil, domain.ErrInvalidSchedule
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	stats, err := s.stats(ctx, event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, event.AuthorID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.NewEventResponse(event, stats, author), nil
}

// DeleteEvent removes an event and its registrations
func (s *eventService) DeleteEvent(ctx context.Context, actorID, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.event.delete")
	defer span.End()

	span.SetAttributes(
		attribute.String("actor_id", actorID),
		attribute.String("event_id", id),
	)

	actor, err := getActor(ctx, s.userRepo, actorID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if event == nil {
		span.SetStatus(codes.Error, "event not found")
		return domain.ErrEventNotFound
	}

	if !actor.CanModify(event.AuthorID) {
		span.SetStatus(codes.Error, "permission denied")
		return domain.ErrPermissionDenied
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

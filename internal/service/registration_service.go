package service

import (
	"context"
	"errors"

	"github.com/mightcoding/ISSAConnect/internal/domain"
	"github.com/mightcoding/ISSAConnect/internal/dto"
	"github.com/mightcoding/ISSAConnect/internal/repository"
	"github.com/mightcoding/ISSAConnect/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// RegistrationService defines the interface for event registration
type RegistrationService interface {
	// Register admits the user to the event. The admission decision is made
	// inside the ledger transaction, so concurrent requests cannot overrun
	// capacity and duplicate attempts resolve to exactly one success.
	Register(ctx context.Context, eventID, userID string) (*dto.RegistrationResponse, error)
	// Unregister removes the user's own registration, freeing the spot
	Unregister(ctx context.Context, eventID, userID string) (*dto.RegistrationResponse, error)
	// ListRegistrations returns an event's ledger with user display data;
	// callers must be staff or superuser
	ListRegistrations(ctx context.Context, actorID, eventID string) (*dto.EventRegistrationsResponse, error)
	// RemoveRegistrant removes another user's registration; callers must be
	// staff or superuser. Returns domain.ErrRegistrationNotFound when the
	// pair does not exist
	RemoveRegistrant(ctx context.Context, actorID, eventID, userID string) (*dto.RegistrationResponse, error)
	// EventsOverview returns per-event registration statistics; callers must
	// be staff or superuser
	EventsOverview(ctx context.Context, actorID string) ([]*dto.EventOverviewResponse, error)
}

// registrationService implements RegistrationService
type registrationService struct {
	registrationRepo repository.RegistrationRepository
	eventRepo        repository.EventRepository
	userRepo         repository.UserRepository
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	registrationRepo repository.RegistrationRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
	}
}

// postMutationStats recomputes an event's counts from the committed ledger
func (s *registrationService) postMutationStats(ctx context.Context, eventID string) (domain.EventStats, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return domain.EventStats{}, err
	}
	if event == nil {
		return domain.EventStats{}, domain.ErrEventNotFound
	}
	count, err := s.registrationRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return domain.EventStats{}, err
	}
	return domain.NewEventStats(event.Capacity, count), nil
}

// Register admits the user to the event
func (s *registrationService) Register(ctx context.Context, eventID, userID string) (*dto.RegistrationResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.registration.register")
	defer span.End()

	span.SetAttributes(
		attribute.String("event_id", eventID),
		attribute.String("user_id", userID),
	)

	if _, err := getActor(ctx, s.userRepo, userID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// Capacity and duplicate checks happen inside the ledger transaction;
	// anything checked out here would be stale by insert time.
	if _, err := s.registrationRepo.Register(ctx, eventID, userID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	stats, err := s.postMutationStats(ctx, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("current_registrations", stats.CurrentRegistrations))
	span.SetStatus(codes.Ok, "")
	return dto.NewRegistrationResponse(eventID, true, stats), nil
}

// Unregister removes the user's own registration, freeing the spot
func (s *registrationService) Unregister(ctx context.Context, eventID, userID string) (*dto.RegistrationResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.registration.unregister")
	defer span.End()

	span.SetAttributes(
		attribute.String("event_id", eventID),
		attribute.String("user_id", userID),
	)

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if event == nil {
		span.SetStatus(codes.Error, "event not found")
		return nil, domain.ErrEventNotFound
	}

	if err := s.registrationRepo.Remove(ctx, eventID, userID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	count, err := s.registrationRepo.CountByEvent(ctx, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	stats := domain.NewEventStats(event.Capacity, count)

	span.SetStatus(codes.Ok, "")
	return dto.NewRegistrationResponse(eventID, false, stats), nil
}

// ListRegistrations returns an event's ledger with user display data
func (s *registrationService) ListRegistrations(ctx context.Context, actorID, eventID string) (*dto.EventRegistrationsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.registration.list")
	defer span.End()

	span.SetAttributes(
		attribute.String("actor_id", actorID),
		attribute.String("event_id", eventID),
	)

	actor, err := getActor(ctx, s.userRepo, actorID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !actor.IsPrivileged() {
		span.SetStatus(codes.Error, "permission denied")
		return nil, domain.ErrPermissionDenied
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if event == nil {
		span.SetStatus(codes.Error, "event not found")
		return nil, domain.ErrEventNotFound
	}

	registrants, err := s.registrationRepo.ListByEvent(ctx, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	stats := domain.NewEventStats(event.Capacity, len(registrants))

	span.SetAttributes(attribute.Int("registrant_count", len(registrants)))
	span.SetStatus(codes.Ok, "")
	return dto.NewEventRegistrationsResponse(event, stats, registrants), nil
}

// RemoveRegistrant removes another user's registration
func (s *registrationService) RemoveRegistrant(ctx context.Context, actorID, eventID, userID string) (*dto.RegistrationResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.registration.remove_registrant")
	defer span.End()

	span.SetAttributes(
		attribute.String("actor_id", actorID),
		attribute.String("event_id", eventID),
		attribute.String("user_id", userID),
	)

	actor, err := getActor(ctx, s.userRepo, actorID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !actor.IsPrivileged() {
		span.SetStatus(codes.Error, "permission denied")
		return nil, domain.ErrPermissionDenied
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if event == nil {
		span.SetStatus(codes.Error, "event not found")
		return nil, domain.ErrEventNotFound
	}

	if err := s.registrationRepo.Remove(ctx, eventID, userID); err != nil {
		// For a forced removal an absent pair is a missing resource, not a
		// rule violation against the caller's own registration.
		if errors.Is(err, domain.ErrNotRegistered) {
			err = domain.ErrRegistrationNotFound
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	count, err := s.registrationRepo.CountByEvent(ctx, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	stats := domain.NewEventStats(event.Capacity, count)

	span.SetStatus(codes.Ok, "")
	return dto.NewRegistrationResponse(eventID, false, stats), nil
}

// EventsOverview returns per-event registration statistics
func (s *registrationService) EventsOverview(ctx context.Context, actorID string) ([]*dto.EventOverviewResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.registration.overview")
	defer span.End()

	span.SetAttributes(attribute.String("actor_id", actorID))

	actor, err := getActor(ctx, s.userRepo, actorID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !actor.IsPrivileged() {
		span.SetStatus(codes.Error, "permission denied")
		return nil, domain.ErrPermissionDenied
	}

	// The administrative overview covers the whole catalogue; only the
	// public listing is capped.
	events, err := s.eventRepo.ListAll(ctx)
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

	overview := make([]*dto.EventOverviewResponse, 0, len(events))
	for _, e := range events {
		stats := domain.NewEventStats(e.Capacity, counts[e.ID])
		overview = append(overview, dto.NewEventOverviewResponse(e, stats))
	}

	span.SetAttributes(attribute.Int("event_count", len(overview)))
	span.SetStatus(codes.Ok, "")
	return overview, nil
}

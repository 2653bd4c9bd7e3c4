package service

import (
	"context"

	"github.com/mightcoding/ISSAConnect/internal/domain"
	"github.com/mightcoding/ISSAConnect/internal/dto"
	"github.com/mightcoding/ISSAConnect/internal/repository"
	"github.com/mightcoding/ISSAConnect/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// UserService defines administrative user management operations
type UserService interface {
	// ListUsers returns all accounts; callers must be staff or superuser
	ListUsers(ctx context.Context, actorID string) ([]dto.UserResponse, error)
	// UpdatePermissions grants or revokes a user's content-creation rights
	UpdatePermissions(ctx context.Context, actorID, targetID string, canCreateContent bool) (*dto.UserResponse, error)
	// UpdateAvatar sets a user's avatar URL; an empty string clears it.
	// Users may change their own avatar, privileged users anyone's.
	UpdateAvatar(ctx context.Context, actorID, targetID, avatarURL string) (*dto.UserResponse, error)
}

// userService implements UserService
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// requirePrivileged loads the actor and rejects non-administrative callers
func (s *userService) requirePrivileged(ctx context.Context, actorID string) (*domain.User, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUserNotFound
	}
	if !actor.IsPrivileged() {
		return nil, domain.ErrPermissionDenied
	}
	return actor, nil
}

// ListUsers returns all accounts; callers must be staff or superuser
func (s *userService) ListUsers(ctx context.Context, actorID string) ([]dto.UserResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.list_users")
	defer span.End()

	span.SetAttributes(attribute.String("actor_id", actorID))

	if _, err := s.requirePrivileged(ctx, actorID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.NewUserResponse(u))
	}

	span.SetAttributes(attribute.Int("user_count", len(responses)))
	span.SetStatus(codes.Ok, "")
	return responses, nil
}

// UpdatePermissions grants or revokes a user's content-creation rights
func (s *userService) UpdatePermissions(ctx context.Context, actorID, targetID string, canCreateContent bool) (*dto.UserResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.update_permissions")
	defer span.End()

	span.SetAttributes(
		attribute.String("actor_id", actorID),
		attribute.String("target_id", targetID),
		attribute.Bool("can_create_content", canCreateContent),
	)

	if _, err := s.requirePrivileged(ctx, actorID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if target == nil {
		span.SetStatus(codes.Error, "user not found")
		return nil, domain.ErrUserNotFound
	}

	if err := s.userRepo.UpdatePermissions(ctx, targetID, canCreateContent); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	target.CanCreateContent = canCreateContent

	span.SetStatus(codes.Ok, "")
	resp := dto.NewUserResponse(target)
	return &resp, nil
}

// UpdateAvatar sets a user's avatar URL; an empty string clears it
func (s *userService) UpdateAvatar(ctx context.Context, actorID, targetID, avatarURL string) (*dto.UserResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.update_avatar")
	defer span.End()

	span.SetAttributes(
		attribute.String("actor_id", actorID),
		attribute.String("target_id", targetID),
	)

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if actor == nil {
		span.SetStatus(codes.Error, "user not found")
		return nil, domain.ErrUserNotFound
	}
	if !actor.CanModify(targetID) {
		span.SetStatus(codes.Error, "permission denied")
		return nil, domain.ErrPermissionDenied
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if user == nil {
		span.SetStatus(codes.Error, "user not found")
		return nil, domain.ErrUserNotFound
	}

	if err := s.userRepo.UpdateAvatar(ctx, targetID, avatarURL); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	user.AvatarURL = avatarURL

	span.SetStatus(codes.Ok, "")
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

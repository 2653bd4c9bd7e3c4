package dto

import (
	"time"

	"github.com/mightcoding/ISSAConnect/internal/domain"
)

// UserResponse represents user data returned by the API
type UserResponse struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	IsStaff          bool   `json:"is_staff"`
	IsSuperuser      bool   `json:"is_superuser"`
	CanCreateContent bool   `json:"can_create_content"`
	PhoneNumber      string `json:"phone_number,omitempty"`
	AvatarURL        string `json:"avatar_url,omitempty"`
	DateJoined       string `json:"date_joined"`
}

// NewUserResponse converts a domain user to its API representation
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		IsStaff:          u.IsStaff,
		IsSuperuser:      u.IsSuperuser,
		CanCreateContent: u.CanCreateContent,
		PhoneNumber:      u.PhoneNumber,
		AvatarURL:        u.AvatarURL,
		DateJoined:       u.DateJoined.Format(time.RFC3339),
	}
}

// UpdatePermissionsRequest grants or revokes content-creation rights
type UpdatePermissionsRequest struct {
	CanCreateContent *bool `json:"can_create_content" binding:"required"`
}

// UpdateAvatarRequest sets a user's avatar URL
type UpdateAvatarRequest struct {
	AvatarURL string `json:"avatar_url" binding:"required,url"`
}

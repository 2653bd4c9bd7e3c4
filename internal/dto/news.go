package dto

import (
	"time"

	"github.com/mightcoding/ISSAConnect/internal/domain"
)

// CreateNewsRequest represents the request to publish a news article
type CreateNewsRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category" binding:"max=50"`
	ImageURL string `json:"image" binding:"omitempty,url"`
	Excerpt  string `json:"excerpt"`
}

// UpdateNewsRequest represents a partial news update
type UpdateNewsRequest struct {
	Title    *string `json:"title" binding:"omitempty,min=1,max=200"`
	Content  *string `json:"content"`
	Category *string `json:"category" binding:"omitempty,max=50"`
	ImageURL *string `json:"image" binding:"omitempty,url"`
	Excerpt  *string `json:"excerpt"`
}

// NewsResponse represents a news article with author display data
type NewsResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Category     string   `json:"category"`
	ImageURL     string   `json:"image,omitempty"`
	Excerpt      string   `json:"excerpt"`
	ReadTime     string   `json:"read_time"`
	Views        int      `json:"views"`
	AuthorID     string   `json:"author"`
	AuthorName   string   `json:"author_name"`
	AuthorRole   string   `json:"author_role"`
	AuthorAvatar string   `json:"author_avatar,omitempty"`
	Tags         []string `json:"tags"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// NewNewsResponse converts a news article and its author into the API shape
func NewNewsResponse(n *domain.News, author *domain.User) *NewsResponse {
	resp := &NewsResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Category:  n.Category,
		ImageURL:  n.ImageURL,
		Excerpt:   n.Excerpt,
		ReadTime:  n.ReadTime,
		Views:     n.Views,
		AuthorID:  n.AuthorID,
		Tags:      []string{"News", n.Category},
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
		UpdatedAt: n.UpdatedAt.Format(time.RFC3339),
	}
	if author != nil {
		resp.AuthorName = author.DisplayName()
		resp.AuthorRole = author.RoleLabel()
		resp.AuthorAvatar = author.AvatarURL
	}
	return resp
}

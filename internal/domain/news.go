package domain

import "time"

// News represents a published news article.
type News struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	ImageURL  string    `json:"image,omitempty"`
	Excerpt   string    `json:"excerpt"`
	ReadTime  string    `json:"read_time"`
	Views     int       `json:"views"`
	AuthorID  string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package domain

import "time"

// Post is a news-feed entry.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

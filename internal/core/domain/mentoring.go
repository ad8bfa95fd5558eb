package domain

import "time"

// MentoringTask is assigned by a mentor to a mentee. Completed is a
// one-way transition.
type MentoringTask struct {
	ID          string     `json:"id"`
	MentorID    string     `json:"mentor_id"`
	MenteeID    string     `json:"mentee_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     string     `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// KnowledgeArticle is a searchable how-to entry.
type KnowledgeArticle struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Views     int64     `json:"views"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

// Comment is the model for the 'comentarios' table (the public forum).
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"` // Always the session's user, never client supplied
	Content   string    `json:"content" db:"content"`
	Rating    int       `json:"rating" db:"rating"` // 1..5
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Rating bounds accepted by the forum.
const (
	MinRating = 1
	MaxRating = 5
)

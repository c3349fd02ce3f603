package models

import "time"

// Feedback is a free-text message from a guardian or staff member.
type Feedback struct {
	ID        string    `db:"id" json:"id"`
	StudentID *string   `db:"student_id" json:"student_id,omitempty"`
	AuthorID  *string   `db:"author_id" json:"author_id,omitempty"`
	Subject   string    `db:"subject" json:"subject"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FeedbackFilter captures list parameters for feedback entries.
type FeedbackFilter struct {
	StudentID string
	Page      int
	PageSize  int
}

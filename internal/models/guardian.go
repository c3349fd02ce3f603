package models

import "time"

// Guardian is a parent or caretaker who receives daily summaries.
type Guardian struct {
	ID            string    `db:"id" json:"id"`
	StudentID     string    `db:"student_id" json:"student_id"`
	FullName      string    `db:"full_name" json:"full_name"`
	Relationship  string    `db:"relationship" json:"relationship"`
	Email         string    `db:"email" json:"email"`
	WhatsappPhone string    `db:"whatsapp_phone" json:"whatsapp_phone"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

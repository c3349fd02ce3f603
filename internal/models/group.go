package models

import "time"

// Group is a classroom cohort within a campus, associated with an age level.
type Group struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	AgeLevel  string    `db:"age_level" json:"age_level"`
	CampusID  string    `db:"campus_id" json:"campus_id"`
	TeacherID *string   `db:"teacher_id" json:"teacher_id,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// GroupDetail joins campus and assigned-teacher context onto a group.
type GroupDetail struct {
	Group
	CampusName  string  `db:"campus_name" json:"campus_name"`
	TeacherName *string `db:"teacher_name" json:"teacher_name,omitempty"`
}

// GroupFilter captures list parameters for groups.
type GroupFilter struct {
	CampusID  string
	Search    string
	Active    *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

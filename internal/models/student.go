package models

import "time"

// Student represents a child enrolled at a campus group.
type Student struct {
	ID        string    `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	BirthDate time.Time `db:"birth_date" json:"birth_date"`
	GroupID   string    `db:"group_id" json:"group_id"`
	Allergies string    `db:"allergies" json:"allergies"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StudentDetail joins group and campus context onto a student row.
type StudentDetail struct {
	Student
	GroupName  string `db:"group_name" json:"group_name"`
	CampusID   string `db:"campus_id" json:"campus_id"`
	CampusName string `db:"campus_name" json:"campus_name"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search    string
	GroupID   string
	CampusID  string
	Active    *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

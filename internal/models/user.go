package models

import "time"

// UserRole represents the staff role hierarchy. Teachers see their own group,
// directors their own campus, the remaining roles are unrestricted.
type UserRole string

const (
	RoleTeacher    UserRole = "TEACHER"
	RoleDirector   UserRole = "DIRECTOR"
	RoleViceRector UserRole = "VICE_RECTOR"
	RoleRector     UserRole = "RECTOR"
	RoleAdmin      UserRole = "ADMIN"
)

// Valid reports whether the role is one of the known staff roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleTeacher, RoleDirector, RoleViceRector, RoleRector, RoleAdmin:
		return true
	}
	return false
}

// User represents a staff member stored in the users table.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         UserRole   `db:"role" json:"role"`
	CampusID     *string    `db:"campus_id" json:"campus_id,omitempty"`
	GroupID      *string    `db:"group_id" json:"group_id,omitempty"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// UserFilter captures filtering criteria for listing staff.
type UserFilter struct {
	Role      *UserRole
	CampusID  string
	Active    *bool
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

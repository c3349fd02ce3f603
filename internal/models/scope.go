package models

// AccessScope is the visibility restriction derived from a caller's role and
// assignments. Empty fields impose no restriction. Every scoped repository
// query applies it, so handlers never re-implement the role branch.
type AccessScope struct {
	GroupID  string
	CampusID string
}

// Unrestricted reports whether the scope imposes no filtering.
func (s AccessScope) Unrestricted() bool {
	return s.GroupID == "" && s.CampusID == ""
}

// ScopeFor maps a role and its assignments to the visibility scope: teachers
// see their own group, directors their own campus, top-level roles see all.
func ScopeFor(role UserRole, campusID, groupID string) AccessScope {
	switch role {
	case RoleTeacher:
		return AccessScope{GroupID: groupID}
	case RoleDirector:
		return AccessScope{CampusID: campusID}
	default:
		return AccessScope{}
	}
}

package models

import "time"

// RefreshToken is one persisted login session. Refresh rotates the row:
// the old token is revoked and a new one issued, so a replayed token is
// detected by its revoked flag.
type RefreshToken struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Token     string    `db:"token" json:"-"`
	IPAddress string    `db:"ip_address" json:"ip_address"`
	UserAgent string    `db:"user_agent" json:"user_agent"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	Revoked   bool       `db:"revoked" json:"revoked"`
	RevokedAt *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
}

// Expired reports whether the session can no longer be refreshed.
func (t RefreshToken) Expired(now time.Time) bool {
	return t.Revoked || now.After(t.ExpiresAt)
}

package dto

import "time"

// ExportResponse describes a rendered export and its signed download token.
type ExportResponse struct {
	ExportID  string    `json:"export_id"`
	Date      string    `json:"date"`
	Format    string    `json:"format"`
	RowCount  int       `json:"row_count"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

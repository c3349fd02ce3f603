package dto

// StudentReportStatus is the per-student line of a completeness summary.
type StudentReportStatus struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	GroupID     string `json:"group_id"`
	HasReport   bool   `json:"has_report"`
	IsComplete  bool   `json:"is_complete"`
}

// GroupSummary aggregates report completeness for one group on one date.
type GroupSummary struct {
	GroupID    string `json:"group_id"`
	GroupName  string `json:"group_name"`
	CampusID   string `json:"campus_id"`
	Complete   int    `json:"complete"`
	Incomplete int    `json:"incomplete"`
	NotStarted int    `json:"not_started"`
}

// SummaryResponse is the payload of the reports summary endpoint.
type SummaryResponse struct {
	Date       string                `json:"date"`
	Strict     bool                  `json:"strict"`
	Students   []StudentReportStatus `json:"students"`
	Groups     []GroupSummary        `json:"groups"`
	Complete   int                   `json:"complete"`
	Incomplete int                   `json:"incomplete"`
	NotStarted int                   `json:"not_started"`
}

// GuardianDelivery is the outcome of sending a report summary to a guardian.
type GuardianDelivery struct {
	GuardianID   string `json:"guardian_id"`
	GuardianName string `json:"guardian_name"`
	Email        string `json:"email,omitempty"`
	EmailQueued  bool   `json:"email_queued"`
	WhatsappLink string `json:"whatsapp_link,omitempty"`
}

// SendReportResponse is returned by the report send endpoint.
type SendReportResponse struct {
	ReportID   string             `json:"report_id"`
	Summary    string             `json:"summary"`
	Deliveries []GuardianDelivery `json:"deliveries"`
}

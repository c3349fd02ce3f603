package models

import "time"

// Mood is how the student's day went overall.
type Mood string

const (
	MoodHappy Mood = "happy"
	MoodSad   Mood = "sad"
	MoodTired Mood = "tired"
)

// Valid reports whether the mood is one of the canonical values. Legacy
// variants (thoughtful, angry) are rejected; they belong to an abandoned
// schema migration.
func (m Mood) Valid() bool {
	switch m {
	case MoodHappy, MoodSad, MoodTired:
		return true
	}
	return false
}

// LunchIntake describes how much of lunch the student ate.
type LunchIntake string

const (
	LunchAll  LunchIntake = "all"
	LunchHalf LunchIntake = "half"
	LunchNone LunchIntake = "none"
)

// Valid reports whether the intake is one of the canonical values.
func (l LunchIntake) Valid() bool {
	switch l {
	case LunchAll, LunchHalf, LunchNone:
		return true
	}
	return false
}

// Behavior is the teacher's rating of the student's conduct. Stored as a real
// column; the legacy habit of prefixing it into the notes text is not carried.
type Behavior string

const (
	BehaviorExcellent Behavior = "excellent"
	BehaviorGood      Behavior = "good"
	BehaviorFair      Behavior = "fair"
	BehaviorRestless  Behavior = "restless"
)

// Valid reports whether the behavior rating is known.
func (b Behavior) Valid() bool {
	switch b {
	case BehaviorExcellent, BehaviorGood, BehaviorFair, BehaviorRestless:
		return true
	}
	return false
}

// ReportDateLayout is the wire and storage format for the report's logical
// calendar day. The client computes its local day and sends it verbatim.
const ReportDateLayout = "2006-01-02"

// DailyReport is the single record capturing one student's day, keyed by
// (student_id, report_date). ReportDate stays a string end to end so the row
// binds to the caller's literal calendar day, never the server's.
type DailyReport struct {
	ID              string    `db:"id" json:"id"`
	StudentID       string    `db:"student_id" json:"student_id"`
	ReportDate      string    `db:"report_date" json:"date"`
	Mood            string    `db:"mood" json:"mood"`
	LunchIntake     string    `db:"lunch_intake" json:"lunch_intake"`
	HadNap          bool      `db:"had_nap" json:"had_nap"`
	DiaperChanged   bool      `db:"diaper_changed" json:"diaper_changed"`
	BathroomNotes   string    `db:"bathroom_notes" json:"bathroom_notes"`
	MedicationGiven bool      `db:"medication_given" json:"medication_given"`
	MedicationName  string    `db:"medication_name" json:"medication_name"`
	MedicationNotes string    `db:"medication_notes" json:"medication_notes"`
	Behavior        *string   `db:"behavior" json:"behavior,omitempty"`
	RecessNotes     string    `db:"recess_notes" json:"recess_notes"`
	Achievements    string    `db:"achievements" json:"achievements"`
	GeneralNotes    string    `db:"general_notes" json:"general_notes"`
	IsComplete      bool      `db:"-" json:"is_complete"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Complete derives completeness from the stored fields: mood and lunch intake
// present, and under the strict rule also a behavior rating. Rows written
// through this API always carry mood and lunch (they default on insert); rows
// migrated from the legacy store may not.
func (r DailyReport) Complete(strict bool) bool {
	if r.Mood == "" || r.LunchIntake == "" {
		return false
	}
	if strict && (r.Behavior == nil || *r.Behavior == "") {
		return false
	}
	return true
}

// DailyReportChanges carries the partial field set of an upsert. Nil fields
// are left untouched on update and take their defaults on first insert.
type DailyReportChanges struct {
	Mood            *string
	LunchIntake     *string
	HadNap          *bool
	DiaperChanged   *bool
	BathroomNotes   *string
	MedicationGiven *bool
	MedicationName  *string
	MedicationNotes *string
	Behavior        *string
	RecessNotes     *string
	Achievements    *string
	GeneralNotes    *string
}

// DailyReportDetail joins student and group context onto a report row.
type DailyReportDetail struct {
	DailyReport
	StudentName string `db:"student_name" json:"student_name"`
	GroupID     string `db:"group_id" json:"group_id"`
	GroupName   string `db:"group_name" json:"group_name"`
	CampusID    string `db:"campus_id" json:"campus_id"`
}

// DailyReportFilter captures list parameters for reports.
type DailyReportFilter struct {
	Date      string
	DateFrom  string
	DateTo    string
	StudentID string
	GroupID   string
	CampusID  string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
)

// reportColumns is the shared projection for report rows. The date column
// round-trips as its literal YYYY-MM-DD string so a report saved for
// "2024-03-01" is always retrieved under that exact day, regardless of the
// server timezone.
const reportColumns = `r.id, r.student_id, to_char(r.report_date, 'YYYY-MM-DD') AS report_date,
        r.mood, r.lunch_intake, r.had_nap, r.diaper_changed, r.bathroom_notes,
        r.medication_given, r.medication_name, r.medication_notes,
        r.behavior, r.recess_notes, r.achievements, r.general_notes,
        r.created_at, r.updated_at`

// DailyReportRepository manages persistence for daily report rows.
type DailyReportRepository struct {
	db *sqlx.DB
}

// NewDailyReportRepository constructs a DailyReportRepository.
func NewDailyReportRepository(db *sqlx.DB) *DailyReportRepository {
	return &DailyReportRepository{db: db}
}

// Upsert inserts or updates the single report row for (studentID, date) in
// one atomic statement. The unique constraint on (student_id, report_date)
// backs the one-report-per-day invariant even under concurrent first writes.
func (r *DailyReportRepository) Upsert(ctx context.Context, studentID, date string, changes models.DailyReportChanges) (*models.DailyReport, error) {
	now := time.Now().UTC()
	query := `INSERT INTO daily_reports (id, student_id, report_date, mood, lunch_intake, had_nap, diaper_changed,
        bathroom_notes, medication_given, medication_name, medication_notes, behavior, recess_notes,
        achievements, general_notes, created_at, updated_at)
VALUES ($1, $2, $3::date,
        COALESCE($4::text, 'happy'), COALESCE($5::text, 'all'),
        COALESCE($6::boolean, false), COALESCE($7::boolean, false), COALESCE($8::text, ''),
        COALESCE($9::boolean, false), COALESCE($10::text, ''), COALESCE($11::text, ''),
        $12::text, COALESCE($13::text, ''), COALESCE($14::text, ''), COALESCE($15::text, ''),
        $16, $16)
ON CONFLICT (student_id, report_date) DO UPDATE SET
        mood = COALESCE($4::text, daily_reports.mood),
        lunch_intake = COALESCE($5::text, daily_reports.lunch_intake),
        had_nap = COALESCE($6::boolean, daily_reports.had_nap),
        diaper_changed = COALESCE($7::boolean, daily_reports.diaper_changed),
        bathroom_notes = COALESCE($8::text, daily_reports.bathroom_notes),
        medication_given = COALESCE($9::boolean, daily_reports.medication_given),
        medication_name = COALESCE($10::text, daily_reports.medication_name),
        medication_notes = COALESCE($11::text, daily_reports.medication_notes),
        behavior = COALESCE($12::text, daily_reports.behavior),
        recess_notes = COALESCE($13::text, daily_reports.recess_notes),
        achievements = COALESCE($14::text, daily_reports.achievements),
        general_notes = COALESCE($15::text, daily_reports.general_notes),
        updated_at = $16
RETURNING id, student_id, to_char(report_date, 'YYYY-MM-DD') AS report_date, mood, lunch_intake, had_nap,
        diaper_changed, bathroom_notes, medication_given, medication_name, medication_notes, behavior,
        recess_notes, achievements, general_notes, created_at, updated_at`

	var stored models.DailyReport
	err := r.db.GetContext(ctx, &stored, query,
		uuid.NewString(), studentID, date,
		changes.Mood, changes.LunchIntake,
		changes.HadNap, changes.DiaperChanged, changes.BathroomNotes,
		changes.MedicationGiven, changes.MedicationName, changes.MedicationNotes,
		changes.Behavior, changes.RecessNotes, changes.Achievements, changes.GeneralNotes,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert daily report: %w", err)
	}
	return &stored, nil
}

// FindByID fetches a report with student and group context.
func (r *DailyReportRepository) FindByID(ctx context.Context, id string) (*models.DailyReportDetail, error) {
	query := fmt.Sprintf(`SELECT %s, s.full_name AS student_name, s.group_id, g.name AS group_name, g.campus_id
        FROM daily_reports r
        JOIN students s ON s.id = r.student_id
        JOIN groups g ON g.id = s.group_id
        WHERE r.id = $1`, reportColumns)
	var detail models.DailyReportDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// List returns report rows matching the filter, restricted to the caller's
// visibility scope.
func (r *DailyReportRepository) List(ctx context.Context, filter models.DailyReportFilter, scope models.AccessScope) ([]models.DailyReportDetail, int, error) {
	base := `FROM daily_reports r
        JOIN students s ON s.id = r.student_id
        JOIN groups g ON g.id = s.group_id`
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Date != "" {
		conditions = append(conditions, fmt.Sprintf("r.report_date = $%d::date", len(args)+1))
		args = append(args, filter.Date)
	}
	if filter.DateFrom != "" {
		conditions = append(conditions, fmt.Sprintf("r.report_date >= $%d::date", len(args)+1))
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		conditions = append(conditions, fmt.Sprintf("r.report_date <= $%d::date", len(args)+1))
		args = append(args, filter.DateTo)
	}
	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("r.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.GroupID != "" {
		conditions = append(conditions, fmt.Sprintf("s.group_id = $%d", len(args)+1))
		args = append(args, filter.GroupID)
	}
	if filter.CampusID != "" {
		conditions = append(conditions, fmt.Sprintf("g.campus_id = $%d", len(args)+1))
		args = append(args, filter.CampusID)
	}
	conditions, args = appendScope(scope, "s.group_id", "g.campus_id", conditions, args)

	whereClause := strings.Join(conditions, " AND ")

	allowedSorts := map[string]string{
		"date":         "r.report_date",
		"student_name": "s.full_name",
		"created_at":   "r.created_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "r.report_date"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s, s.full_name AS student_name, s.group_id, g.name AS group_name, g.campus_id
        %s WHERE %s ORDER BY %s %s, s.full_name ASC LIMIT %d OFFSET %d`,
		reportColumns, base, whereClause, column, order, size, offset)

	var rows []models.DailyReportDetail
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list daily reports: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count daily reports: %w", err)
	}
	return rows, total, nil
}

// ListForDate returns all visible report rows for a single day without
// pagination. Feeds the summary fold, exports and the evening digest.
func (r *DailyReportRepository) ListForDate(ctx context.Context, date string, groupID, campusID string, scope models.AccessScope) ([]models.DailyReportDetail, error) {
	conditions := []string{"r.report_date = $1::date"}
	args := []interface{}{date}
	if groupID != "" {
		conditions = append(conditions, fmt.Sprintf("s.group_id = $%d", len(args)+1))
		args = append(args, groupID)
	}
	if campusID != "" {
		conditions = append(conditions, fmt.Sprintf("g.campus_id = $%d", len(args)+1))
		args = append(args, campusID)
	}
	conditions, args = appendScope(scope, "s.group_id", "g.campus_id", conditions, args)

	query := fmt.Sprintf(`SELECT %s, s.full_name AS student_name, s.group_id, g.name AS group_name, g.campus_id
        FROM daily_reports r
        JOIN students s ON s.id = r.student_id
        JOIN groups g ON g.id = s.group_id
        WHERE %s ORDER BY s.full_name ASC`, reportColumns, strings.Join(conditions, " AND "))

	var rows []models.DailyReportDetail
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list daily reports for date: %w", err)
	}
	return rows, nil
}

// History returns a student's reports in a date range, newest first.
func (r *DailyReportRepository) History(ctx context.Context, studentID, from, to string) ([]models.DailyReport, error) {
	conditions := []string{"r.student_id = $1"}
	args := []interface{}{studentID}
	if from != "" {
		conditions = append(conditions, fmt.Sprintf("r.report_date >= $%d::date", len(args)+1))
		args = append(args, from)
	}
	if to != "" {
		conditions = append(conditions, fmt.Sprintf("r.report_date <= $%d::date", len(args)+1))
		args = append(args, to)
	}

	query := fmt.Sprintf(`SELECT %s FROM daily_reports r WHERE %s ORDER BY r.report_date DESC`,
		reportColumns, strings.Join(conditions, " AND "))

	var rows []models.DailyReport
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("report history: %w", err)
	}
	return rows, nil
}

// Delete removes a report row. Reserved for explicit admin action.
func (r *DailyReportRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM daily_reports WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete daily report: %w", err)
	}
	return nil
}

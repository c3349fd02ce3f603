package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
)

func newReportMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func reportRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "student_id", "report_date", "mood", "lunch_intake", "had_nap", "diaper_changed",
		"bathroom_notes", "medication_given", "medication_name", "medication_notes", "behavior",
		"recess_notes", "achievements", "general_notes", "created_at", "updated_at",
	})
}

func TestDailyReportRepositoryUpsertInsertsDefaults(t *testing.T) {
	db, mock, cleanup := newReportMock(t)
	defer cleanup()
	repo := NewDailyReportRepository(db)

	mood := "sad"
	rows := reportRows().
		AddRow("r1", "s1", "2024-03-01", "sad", "all", false, false, "", false, "", "", nil, "", "", "", time.Now(), time.Now())
	mock.ExpectQuery("INSERT INTO daily_reports").
		WithArgs(sqlmock.AnyArg(), "s1", "2024-03-01",
			&mood, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, sqlmock.AnyArg()).
		WillReturnRows(rows)

	report, err := repo.Upsert(context.Background(), "s1", "2024-03-01", models.DailyReportChanges{Mood: &mood})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", report.ReportDate)
	assert.Equal(t, "sad", report.Mood)
	assert.Equal(t, "all", report.LunchIntake)
	assert.Nil(t, report.Behavior)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDailyReportRepositoryListAppliesScope(t *testing.T) {
	db, mock, cleanup := newReportMock(t)
	defer cleanup()
	repo := NewDailyReportRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "student_id", "report_date", "mood", "lunch_intake", "had_nap", "diaper_changed",
		"bathroom_notes", "medication_given", "medication_name", "medication_notes", "behavior",
		"recess_notes", "achievements", "general_notes", "created_at", "updated_at",
		"student_name", "group_id", "group_name", "campus_id",
	}).AddRow("r1", "s1", "2024-03-01", "happy", "all", true, false, "", false, "", "", nil,
		"", "", "", time.Now(), time.Now(), "Ana", "g1", "Sala Roja", "c1")

	mock.ExpectQuery(`SELECT .+ FROM daily_reports r\s+JOIN students s ON s\.id = r\.student_id\s+JOIN groups g ON g\.id = s\.group_id\s+WHERE 1=1 AND r\.report_date = \$1::date AND s\.group_id = \$2 ORDER BY`).
		WithArgs("2024-03-01", "g1").
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM daily_reports r`).
		WithArgs("2024-03-01", "g1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	scope := models.AccessScope{GroupID: "g1"}
	reports, total, err := repo.List(context.Background(), models.DailyReportFilter{Date: "2024-03-01"}, scope)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "2024-03-01", reports[0].ReportDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDailyReportRepositoryHistoryRange(t *testing.T) {
	db, mock, cleanup := newReportMock(t)
	defer cleanup()
	repo := NewDailyReportRepository(db)

	rows := reportRows().
		AddRow("r2", "s1", "2024-03-02", "happy", "half", false, false, "", false, "", "", nil, "", "", "", time.Now(), time.Now()).
		AddRow("r1", "s1", "2024-03-01", "tired", "all", true, false, "", false, "", "", nil, "", "", "", time.Now(), time.Now())

	mock.ExpectQuery(`SELECT .+ FROM daily_reports r WHERE r\.student_id = \$1 AND r\.report_date >= \$2::date AND r\.report_date <= \$3::date ORDER BY r\.report_date DESC`).
		WithArgs("s1", "2024-03-01", "2024-03-02").
		WillReturnRows(rows)

	reports, err := repo.History(context.Background(), "s1", "2024-03-01", "2024-03-02")
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "2024-03-02", reports[0].ReportDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDailyReportRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newReportMock(t)
	defer cleanup()
	repo := NewDailyReportRepository(db)

	mock.ExpectExec(`DELETE FROM daily_reports WHERE id = \$1`).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "r1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

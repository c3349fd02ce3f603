package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
)

type mockSummaryReports struct {
	byDate map[string][]models.DailyReportDetail
}

func (m *mockSummaryReports) ListForDate(ctx context.Context, date string, groupID, campusID string, scope models.AccessScope) ([]models.DailyReportDetail, error) {
	return m.byDate[date], nil
}

type mockSummaryGroups struct {
	groups    []models.GroupDetail
	lastScope models.AccessScope
}

func (m *mockSummaryGroups) List(ctx context.Context, filter models.GroupFilter, scope models.AccessScope) ([]models.GroupDetail, int, error) {
	m.lastScope = scope
	var out []models.GroupDetail
	for _, g := range m.groups {
		if scope.GroupID != "" && g.ID != scope.GroupID {
			continue
		}
		if scope.CampusID != "" && g.CampusID != scope.CampusID {
			continue
		}
		out = append(out, g)
	}
	total := len(out)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return out[start:end], total, nil
}

func (m *mockSummaryGroups) FindByID(ctx context.Context, id string) (*models.GroupDetail, error) {
	for _, g := range m.groups {
		if g.ID == id {
			detail := g
			return &detail, nil
		}
	}
	return nil, sql.ErrNoRows
}

type mockSummaryStudents struct {
	byGroup map[string][]models.Student
}

func (m *mockSummaryStudents) ListByGroup(ctx context.Context, groupID string) ([]models.Student, error) {
	return m.byGroup[groupID], nil
}

func summaryReport(studentID, date, mood, lunch string, behavior *string) models.DailyReportDetail {
	return models.DailyReportDetail{
		DailyReport: models.DailyReport{ID: "r-" + studentID, StudentID: studentID, ReportDate: date, Mood: mood, LunchIntake: lunch, Behavior: behavior},
		GroupID:     "g1",
	}
}

func newSummaryFixture() (*SummaryService, *mockSummaryGroups) {
	behavior := "good"
	reports := &mockSummaryReports{byDate: map[string][]models.DailyReportDetail{
		"2024-03-01": {
			summaryReport("s1", "2024-03-01", "happy", "all", &behavior),
			summaryReport("s2", "2024-03-01", "sad", "", nil),
		},
	}}
	groups := &mockSummaryGroups{groups: []models.GroupDetail{
		{Group: models.Group{ID: "g1", Name: "Sala Roja", CampusID: "c1", Active: true}},
		{Group: models.Group{ID: "g2", Name: "Sala Azul", CampusID: "c2", Active: true}},
	}}
	students := &mockSummaryStudents{byGroup: map[string][]models.Student{
		"g1": {
			{ID: "s1", FullName: "Ana", GroupID: "g1", Active: true},
			{ID: "s2", FullName: "Bruno", GroupID: "g1", Active: true},
			{ID: "s3", FullName: "Carla", GroupID: "g1", Active: true},
		},
		"g2": {
			{ID: "s4", FullName: "Diego", GroupID: "g2", Active: true},
		},
	}}
	svc := NewSummaryService(reports, groups, students, noCache(), 0, zap.NewNop())
	return svc, groups
}

func TestSummaryEveryStudentAppearsOnce(t *testing.T) {
	svc, _ := newSummaryFixture()

	summary, cached, err := svc.Summarize(context.Background(), models.AccessScope{}, SummaryQuery{Date: "2024-03-01"})
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Len(t, summary.Students, 4)

	seen := map[string]int{}
	for _, s := range summary.Students {
		seen[s.StudentID]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "student %s should appear exactly once", id)
	}
	assert.Equal(t, 1, summary.Complete)
	assert.Equal(t, 1, summary.Incomplete)
	assert.Equal(t, 2, summary.NotStarted)
}

func TestSummaryStrictRequiresBehavior(t *testing.T) {
	svc, _ := newSummaryFixture()

	summary, _, err := svc.Summarize(context.Background(), models.AccessScope{}, SummaryQuery{Date: "2024-03-01", Strict: true})
	require.NoError(t, err)
	// s1 has behavior, s2 lacks lunch and behavior
	assert.Equal(t, 1, summary.Complete)
	assert.Equal(t, 1, summary.Incomplete)
	assert.True(t, summary.Strict)
}

func TestSummaryRespectsGroupScope(t *testing.T) {
	svc, groups := newSummaryFixture()

	summary, _, err := svc.Summarize(context.Background(), models.AccessScope{GroupID: "g1"}, SummaryQuery{Date: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, "g1", groups.lastScope.GroupID)
	assert.Len(t, summary.Groups, 1)
	assert.Equal(t, "g1", summary.Groups[0].GroupID)
	assert.Len(t, summary.Students, 3)
}

func TestSummaryExplicitGroupOutsideScope(t *testing.T) {
	svc, _ := newSummaryFixture()

	_, _, err := svc.Summarize(context.Background(), models.AccessScope{GroupID: "g1"}, SummaryQuery{Date: "2024-03-01", GroupID: "g2"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrOutOfScope.Code, appErrors.FromError(err).Code)
}

func TestSummaryWalksAllGroupPages(t *testing.T) {
	reports := &mockSummaryReports{byDate: map[string][]models.DailyReportDetail{}}
	groups := &mockSummaryGroups{}
	students := &mockSummaryStudents{byGroup: map[string][]models.Student{}}
	for i := 1; i <= 150; i++ {
		id := fmt.Sprintf("g%03d", i)
		groups.groups = append(groups.groups, models.GroupDetail{
			Group: models.Group{ID: id, Name: "Sala " + id, CampusID: "c1", Active: true},
		})
		students.byGroup[id] = []models.Student{{ID: "s-" + id, FullName: "Alumno " + id, GroupID: id, Active: true}}
	}
	svc := NewSummaryService(reports, groups, students, noCache(), 0, zap.NewNop())

	summary, _, err := svc.Summarize(context.Background(), models.AccessScope{}, SummaryQuery{Date: "2024-03-01"})
	require.NoError(t, err)
	assert.Len(t, summary.Groups, 150)
	assert.Len(t, summary.Students, 150)
	assert.Equal(t, 150, summary.NotStarted)
}

func TestSummaryGroupTotalsAddUp(t *testing.T) {
	svc, _ := newSummaryFixture()

	summary, _, err := svc.Summarize(context.Background(), models.AccessScope{}, SummaryQuery{Date: "2024-03-01"})
	require.NoError(t, err)
	for _, g := range summary.Groups {
		count := 0
		for _, s := range summary.Students {
			if s.GroupID == g.GroupID {
				count++
			}
		}
		assert.Equal(t, count, g.Complete+g.Incomplete+g.NotStarted)
	}
}

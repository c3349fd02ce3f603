package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
)

type mockDigestUsers struct {
	byCampus map[string][]models.User
}

func (m *mockDigestUsers) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	users := m.byCampus[filter.CampusID]
	return users, len(users), nil
}

func TestDigestRunEmailsDirectors(t *testing.T) {
	today := time.Now().Format(models.ReportDateLayout)
	behavior := "good"
	reports := &mockSummaryReports{byDate: map[string][]models.DailyReportDetail{
		today: {
			summaryReport("s1", today, "happy", "all", &behavior),
			summaryReport("s2", today, "", "all", nil),
		},
	}}
	groups := &mockSummaryGroups{groups: []models.GroupDetail{
		{Group: models.Group{ID: "g1", Name: "Maternal A", CampusID: "c1", Active: true}},
	}}
	students := &mockSummaryStudents{byGroup: map[string][]models.Student{
		"g1": {
			{ID: "s1", FullName: "Valentina Ruiz", GroupID: "g1", Active: true},
			{ID: "s2", FullName: "Diego Lopez", GroupID: "g1", Active: true},
			{ID: "s3", FullName: "Emilia Castro", GroupID: "g1", Active: true},
		},
	}}
	users := &mockDigestUsers{byCampus: map[string][]models.User{
		"c1": {{ID: "u1", Email: "director@preescolar.mx", FullName: "Marco Diaz", Role: models.RoleDirector, Active: true}},
	}}
	sender := &recordingSender{}
	svc := NewDigestService(reports, groups, students, users, sender, NewMetricsService(), nil)

	require.NoError(t, svc.Run(context.Background()))
	require.Equal(t, 1, sender.count())

	msg := sender.sent[0]
	assert.Equal(t, "director@preescolar.mx", msg.ToEmail)
	assert.Contains(t, msg.Subject, today)
	assert.Contains(t, msg.PlainBody, "Maternal A")
	assert.Contains(t, msg.PlainBody, "No report: Emilia Castro")
	assert.Contains(t, msg.PlainBody, "Incomplete: Diego Lopez")
	assert.NotContains(t, msg.PlainBody, "Valentina Ruiz")
}

func TestDigestRunSkipsCleanCampuses(t *testing.T) {
	today := time.Now().Format(models.ReportDateLayout)
	behavior := "good"
	reports := &mockSummaryReports{byDate: map[string][]models.DailyReportDetail{
		today: {summaryReport("s1", today, "happy", "all", &behavior)},
	}}
	groups := &mockSummaryGroups{groups: []models.GroupDetail{
		{Group: models.Group{ID: "g1", Name: "Maternal A", CampusID: "c1", Active: true}},
	}}
	students := &mockSummaryStudents{byGroup: map[string][]models.Student{
		"g1": {{ID: "s1", FullName: "Valentina Ruiz", GroupID: "g1", Active: true}},
	}}
	users := &mockDigestUsers{byCampus: map[string][]models.User{
		"c1": {{ID: "u1", Email: "director@preescolar.mx", Role: models.RoleDirector}},
	}}
	sender := &recordingSender{}
	svc := NewDigestService(reports, groups, students, users, sender, NewMetricsService(), nil)

	require.NoError(t, svc.Run(context.Background()))
	assert.Zero(t, sender.count())
}

func TestDigestRunCoversGroupsBeyondFirstPage(t *testing.T) {
	reports := &mockSummaryReports{byDate: map[string][]models.DailyReportDetail{}}
	groups := &mockSummaryGroups{}
	students := &mockSummaryStudents{byGroup: map[string][]models.Student{}}
	for i := 1; i <= 105; i++ {
		id := fmt.Sprintf("g%03d", i)
		groups.groups = append(groups.groups, models.GroupDetail{
			Group: models.Group{ID: id, Name: "Sala " + id, CampusID: "c1", Active: true},
		})
		students.byGroup[id] = []models.Student{{ID: "s-" + id, FullName: "Alumno " + id, GroupID: id, Active: true}}
	}
	users := &mockDigestUsers{byCampus: map[string][]models.User{
		"c1": {{ID: "u1", Email: "director@preescolar.mx", Role: models.RoleDirector}},
	}}
	sender := &recordingSender{}
	svc := NewDigestService(reports, groups, students, users, sender, NewMetricsService(), nil)

	require.NoError(t, svc.Run(context.Background()))
	require.Equal(t, 1, sender.count())
	assert.Contains(t, sender.sent[0].PlainBody, "Sala g105")
	assert.Contains(t, sender.sent[0].PlainBody, "No report: Alumno g105")
}

func TestDigestRunToleratesMissingDirector(t *testing.T) {
	reports := &mockSummaryReports{byDate: map[string][]models.DailyReportDetail{}}
	groups := &mockSummaryGroups{groups: []models.GroupDetail{
		{Group: models.Group{ID: "g1", Name: "Maternal A", CampusID: "c1", Active: true}},
	}}
	students := &mockSummaryStudents{byGroup: map[string][]models.Student{
		"g1": {{ID: "s1", FullName: "Valentina Ruiz", GroupID: "g1", Active: true}},
	}}
	users := &mockDigestUsers{}
	sender := &recordingSender{}
	svc := NewDigestService(reports, groups, students, users, sender, NewMetricsService(), nil)

	require.NoError(t, svc.Run(context.Background()))
	assert.Zero(t, sender.count())
}

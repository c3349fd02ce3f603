package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/jobs"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/mailer"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (s *recordingSender) Send(ctx context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type mockGuardians struct {
	byStudent map[string][]models.Guardian
}

func (m *mockGuardians) ListByStudent(ctx context.Context, studentID string) ([]models.Guardian, error) {
	return m.byStudent[studentID], nil
}

func notificationFixture(guardians map[string][]models.Guardian) (*NotificationService, *recordingSender, *mockReportRepo) {
	behavior := "good"
	reports := &mockReportRepo{reports: map[string]models.DailyReportDetail{
		"r1": {
			DailyReport: models.DailyReport{
				ID: "r1", StudentID: "s1", ReportDate: "2024-03-01",
				Mood: "happy", LunchIntake: "half", HadNap: true, Behavior: &behavior,
			},
			StudentName: "Ana",
			GroupID:     "g1",
			CampusID:    "c1",
		},
	}}
	sender := &recordingSender{}
	svc := NewNotificationService(reports, &mockGuardians{byStudent: guardians}, sender, NewMetricsService(), jobs.QueueConfig{Workers: 1}, zap.NewNop())
	return svc, sender, reports
}

func TestSendReportQueuesEmailAndBuildsWhatsappLink(t *testing.T) {
	guardians := map[string][]models.Guardian{
		"s1": {
			{ID: "gu1", StudentID: "s1", FullName: "Madre", Email: "madre@ejemplo.com"},
			{ID: "gu2", StudentID: "s1", FullName: "Padre", WhatsappPhone: "+52 155 1234 5678"},
		},
	}
	svc, sender, _ := notificationFixture(guardians)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	result, err := svc.SendReport(context.Background(), models.AccessScope{}, "r1")
	require.NoError(t, err)
	require.Len(t, result.Deliveries, 2)

	assert.True(t, result.Deliveries[0].EmailQueued)
	assert.Empty(t, result.Deliveries[0].WhatsappLink)

	assert.False(t, result.Deliveries[1].EmailQueued)
	link := result.Deliveries[1].WhatsappLink
	assert.True(t, strings.HasPrefix(link, "https://wa.me/5215512345678?text="), link)

	require.Eventually(t, func() bool { return sender.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "madre@ejemplo.com", sender.sent[0].ToEmail)
	assert.Contains(t, sender.sent[0].PlainBody, "Mood: happy")
}

func TestWhatsappLinksNotCountedAsDeliveries(t *testing.T) {
	behavior := "good"
	reports := &mockReportRepo{reports: map[string]models.DailyReportDetail{
		"r1": {
			DailyReport: models.DailyReport{
				ID: "r1", StudentID: "s1", ReportDate: "2024-03-01",
				Mood: "happy", LunchIntake: "all", Behavior: &behavior,
			},
			StudentName: "Ana",
			GroupID:     "g1",
			CampusID:    "c1",
		},
	}}
	guardians := &mockGuardians{byStudent: map[string][]models.Guardian{
		"s1": {{ID: "gu1", StudentID: "s1", FullName: "Padre", WhatsappPhone: "+52 155 1234 5678"}},
	}}
	metrics := NewMetricsService()
	svc := NewNotificationService(reports, guardians, &recordingSender{}, metrics, jobs.QueueConfig{Workers: 1}, zap.NewNop())

	result, err := svc.SendReport(context.Background(), models.AccessScope{}, "r1")
	require.NoError(t, err)
	require.Len(t, result.Deliveries, 1)
	assert.NotEmpty(t, result.Deliveries[0].WhatsappLink)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.notifications.WithLabelValues("whatsapp", "link_generated")))
	assert.Zero(t, testutil.ToFloat64(metrics.notifications.WithLabelValues("whatsapp", "ok")))
}

func TestSendReportNoGuardians(t *testing.T) {
	svc, _, _ := notificationFixture(map[string][]models.Guardian{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	_, err := svc.SendReport(context.Background(), models.AccessScope{}, "r1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSendReportScopeCheck(t *testing.T) {
	guardians := map[string][]models.Guardian{
		"s1": {{ID: "gu1", StudentID: "s1", FullName: "Madre", Email: "madre@ejemplo.com"}},
	}
	svc, _, _ := notificationFixture(guardians)

	_, err := svc.SendReport(context.Background(), models.AccessScope{GroupID: "other"}, "r1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrOutOfScope.Code, appErrors.FromError(err).Code)
}

func TestRenderReportSummaryIncludesOptionalSections(t *testing.T) {
	behavior := "restless"
	detail := &models.DailyReportDetail{
		DailyReport: models.DailyReport{
			StudentID: "s1", ReportDate: "2024-03-01", Mood: "tired", LunchIntake: "none",
			MedicationGiven: true, MedicationName: "Paracetamol", Behavior: &behavior,
			RecessNotes: "played outside", GeneralNotes: "slept well",
		},
		StudentName: "Ana",
	}
	summary := RenderReportSummary(detail)
	assert.Contains(t, summary, "Daily report for Ana on 2024-03-01")
	assert.Contains(t, summary, "Behavior: restless")
	assert.Contains(t, summary, "Medication given: Paracetamol")
	assert.Contains(t, summary, "Recess: played outside")
	assert.Contains(t, summary, "Notes: slept well")
}

func TestWhatsappLinkEncodesText(t *testing.T) {
	link := WhatsappLink("+34 600-111-222", "Daily report: all good")
	assert.Equal(t, "https://wa.me/34600111222?text=Daily+report%3A+all+good", link)
}

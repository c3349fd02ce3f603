package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/dto"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/jobs"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/mailer"
)

const jobTypeGuardianEmail = "guardian_email"

type notificationReportRepository interface {
	FindByID(ctx context.Context, id string) (*models.DailyReportDetail, error)
}

type notificationGuardianRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Guardian, error)
}

type emailJobPayload struct {
	ToName    string
	ToEmail   string
	Subject   string
	PlainBody string
	HTMLBody  string
}

// NotificationService sends report summaries to guardians. Email goes out
// asynchronously through the job queue; WhatsApp delivery is a prefilled
// wa.me link the caller opens client side.
type NotificationService struct {
	reports   notificationReportRepository
	guardians notificationGuardianRepository
	sender    mailer.Sender
	queue     *jobs.Queue
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewNotificationService constructs the notification service and its queue.
// Call Start before enqueueing and Stop on shutdown.
func NewNotificationService(reports notificationReportRepository, guardians notificationGuardianRepository, sender mailer.Sender, metrics *MetricsService, queueCfg jobs.QueueConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{
		reports:   reports,
		guardians: guardians,
		sender:    sender,
		metrics:   metrics,
		logger:    logger,
	}
	queueCfg.Logger = logger
	s.queue = jobs.NewQueue("notifications", s.handleJob, queueCfg)
	return s
}

// Start launches the delivery workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the delivery workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// SendReport renders the report summary and fans it out to the student's
// guardians. Emails are queued; WhatsApp links come back in the response.
func (s *NotificationService) SendReport(ctx context.Context, scope models.AccessScope, reportID string) (*dto.SendReportResponse, error) {
	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report")
	}
	if err := checkReportScope(scope, report); err != nil {
		return nil, err
	}

	guardians, err := s.guardians.ListByStudent(ctx, report.StudentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list guardians")
	}
	if len(guardians) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student has no guardians on file")
	}

	summary := RenderReportSummary(report)
	subject := fmt.Sprintf("Daily report for %s (%s)", report.StudentName, report.ReportDate)

	response := &dto.SendReportResponse{ReportID: report.ID, Summary: summary}
	for _, guardian := range guardians {
		delivery := dto.GuardianDelivery{
			GuardianID:   guardian.ID,
			GuardianName: guardian.FullName,
			Email:        guardian.Email,
		}
		if guardian.Email != "" {
			job := jobs.Job{
				ID:   uuid.NewString(),
				Type: jobTypeGuardianEmail,
				Payload: emailJobPayload{
					ToName:    guardian.FullName,
					ToEmail:   guardian.Email,
					Subject:   subject,
					PlainBody: summary,
				},
			}
			if err := s.queue.Enqueue(job); err != nil {
				s.logger.Warn("failed to enqueue guardian email",
					zap.String("guardian_id", guardian.ID), zap.Error(err))
			} else {
				delivery.EmailQueued = true
			}
		}
		if guardian.WhatsappPhone != "" {
			delivery.WhatsappLink = WhatsappLink(guardian.WhatsappPhone, summary)
			s.metrics.RecordNotificationLink("whatsapp")
		}
		response.Deliveries = append(response.Deliveries, delivery)
	}
	return response, nil
}

func (s *NotificationService) handleJob(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(emailJobPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type for job %s", job.ID)
	}
	err := s.sender.Send(ctx, mailer.Message{
		ToName:    payload.ToName,
		ToEmail:   payload.ToEmail,
		Subject:   payload.Subject,
		PlainBody: payload.PlainBody,
		HTMLBody:  payload.HTMLBody,
	})
	s.metrics.RecordNotification("email", err == nil)
	if err != nil {
		return err
	}
	s.logger.Info("guardian email delivered", zap.String("job_id", job.ID), zap.String("to", payload.ToEmail))
	return nil
}

// RenderReportSummary produces the guardian-facing text of one report.
func RenderReportSummary(report *models.DailyReportDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily report for %s on %s\n\n", report.StudentName, report.ReportDate)
	fmt.Fprintf(&b, "Mood: %s\n", report.Mood)
	fmt.Fprintf(&b, "Lunch: %s\n", report.LunchIntake)
	fmt.Fprintf(&b, "Nap: %s\n", yesNo(report.HadNap))
	if report.Behavior != nil {
		fmt.Fprintf(&b, "Behavior: %s\n", *report.Behavior)
	}
	if report.DiaperChanged {
		b.WriteString("Diaper changed: yes\n")
	}
	if report.BathroomNotes != "" {
		fmt.Fprintf(&b, "Bathroom: %s\n", report.BathroomNotes)
	}
	if report.MedicationGiven {
		line := "Medication given"
		if report.MedicationName != "" {
			line += ": " + report.MedicationName
		}
		if report.MedicationNotes != "" {
			line += " (" + report.MedicationNotes + ")"
		}
		b.WriteString(line + "\n")
	}
	if report.RecessNotes != "" {
		fmt.Fprintf(&b, "Recess: %s\n", report.RecessNotes)
	}
	if report.Achievements != "" {
		fmt.Fprintf(&b, "Achievements: %s\n", report.Achievements)
	}
	if report.GeneralNotes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", report.GeneralNotes)
	}
	return strings.TrimRight(b.String(), "\n")
}

// WhatsappLink builds a wa.me share link with the text prefilled. Phone
// numbers are reduced to digits as wa.me requires.
func WhatsappLink(phone, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(text))
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

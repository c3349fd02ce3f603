package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/mailer"
)

type digestUserRepository interface {
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
}

// DigestService emails campus directors an end-of-day list of students whose
// report is missing or incomplete. The scheduler triggers Run on a cron spec.
type DigestService struct {
	reports  summaryReportRepository
	groups   summaryGroupRepository
	students summaryStudentRepository
	users    digestUserRepository
	sender   mailer.Sender
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewDigestService constructs the digest service.
func NewDigestService(reports summaryReportRepository, groups summaryGroupRepository, students summaryStudentRepository, users digestUserRepository, sender mailer.Sender, metrics *MetricsService, logger *zap.Logger) *DigestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DigestService{
		reports:  reports,
		groups:   groups,
		students: students,
		users:    users,
		sender:   sender,
		metrics:  metrics,
		logger:   logger,
	}
}

type digestGroupLine struct {
	groupName  string
	missing    []string
	incomplete []string
}

// Run computes today's completeness per campus and delivers the digest to
// that campus' directors. Campuses with nothing outstanding are skipped.
func (s *DigestService) Run(ctx context.Context) error {
	date := time.Now().Format(models.ReportDateLayout)

	active := true
	groups, err := listAllGroups(ctx, s.groups, models.GroupFilter{Active: &active}, models.AccessScope{})
	if err != nil {
		return fmt.Errorf("digest: list groups: %w", err)
	}

	reports, err := s.reports.ListForDate(ctx, date, "", "", models.AccessScope{})
	if err != nil {
		return fmt.Errorf("digest: list reports: %w", err)
	}
	byStudent := make(map[string]models.DailyReportDetail, len(reports))
	for _, report := range reports {
		byStudent[report.StudentID] = report
	}

	byCampus := make(map[string][]digestGroupLine)
	for _, group := range groups {
		students, err := s.students.ListByGroup(ctx, group.ID)
		if err != nil {
			return fmt.Errorf("digest: list students of group %s: %w", group.ID, err)
		}
		line := digestGroupLine{groupName: group.Name}
		for _, student := range students {
			report, ok := byStudent[student.ID]
			switch {
			case !ok:
				line.missing = append(line.missing, student.FullName)
			case !report.Complete(false):
				line.incomplete = append(line.incomplete, student.FullName)
			}
		}
		if len(line.missing) > 0 || len(line.incomplete) > 0 {
			byCampus[group.CampusID] = append(byCampus[group.CampusID], line)
		}
	}

	for campusID, lines := range byCampus {
		if err := s.deliver(ctx, campusID, date, lines); err != nil {
			s.logger.Warn("digest delivery failed", zap.String("campus_id", campusID), zap.Error(err))
		}
	}
	s.logger.Info("digest run finished", zap.String("date", date), zap.Int("campuses", len(byCampus)))
	return nil
}

func (s *DigestService) deliver(ctx context.Context, campusID, date string, lines []digestGroupLine) error {
	role := models.RoleDirector
	active := true
	directors, _, err := s.users.List(ctx, models.UserFilter{Role: &role, CampusID: campusID, Active: &active, PageSize: 100})
	if err != nil {
		return fmt.Errorf("list directors: %w", err)
	}
	if len(directors) == 0 {
		s.logger.Warn("campus has outstanding reports but no director", zap.String("campus_id", campusID))
		return nil
	}

	body := renderDigestBody(date, lines)
	subject := fmt.Sprintf("Outstanding daily reports for %s", date)
	for _, director := range directors {
		err := s.sender.Send(ctx, mailer.Message{
			ToName:    director.FullName,
			ToEmail:   director.Email,
			Subject:   subject,
			PlainBody: body,
		})
		s.metrics.RecordNotification("digest", err == nil)
		if err != nil {
			s.logger.Warn("digest email failed", zap.String("to", director.Email), zap.Error(err))
		}
	}
	return nil
}

func renderDigestBody(date string, lines []digestGroupLine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily report status for %s\n", date)
	for _, line := range lines {
		fmt.Fprintf(&b, "\n%s\n", line.groupName)
		if len(line.missing) > 0 {
			fmt.Fprintf(&b, "  No report: %s\n", strings.Join(line.missing, ", "))
		}
		if len(line.incomplete) > 0 {
			fmt.Fprintf(&b, "  Incomplete: %s\n", strings.Join(line.incomplete, ", "))
		}
	}
	return b.String()
}

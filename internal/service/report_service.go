package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
)

type reportRepository interface {
	Upsert(ctx context.Context, studentID, date string, changes models.DailyReportChanges) (*models.DailyReport, error)
	FindByID(ctx context.Context, id string) (*models.DailyReportDetail, error)
	List(ctx context.Context, filter models.DailyReportFilter, scope models.AccessScope) ([]models.DailyReportDetail, int, error)
	History(ctx context.Context, studentID, from, to string) ([]models.DailyReport, error)
	Delete(ctx context.Context, id string) error
}

type reportStudentLookup interface {
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
}

// UpsertReportRequest is the partial payload of a report submission. Pointer
// fields distinguish "not sent" from zero values so an update never clobbers
// a field the teacher did not touch.
type UpsertReportRequest struct {
	StudentID       string  `json:"student_id" validate:"required"`
	Date            string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Mood            *string `json:"mood" validate:"omitempty,oneof=happy sad tired"`
	LunchIntake     *string `json:"lunch_intake" validate:"omitempty,oneof=all half none"`
	HadNap          *bool   `json:"had_nap"`
	DiaperChanged   *bool   `json:"diaper_changed"`
	BathroomNotes   *string `json:"bathroom_notes"`
	MedicationGiven *bool   `json:"medication_given"`
	MedicationName  *string `json:"medication_name"`
	MedicationNotes *string `json:"medication_notes"`
	Behavior        *string `json:"behavior" validate:"omitempty,oneof=excellent good fair restless"`
	RecessNotes     *string `json:"recess_notes"`
	Achievements    *string `json:"achievements"`
	GeneralNotes    *string `json:"general_notes"`
}

// ReportService handles daily-report use cases.
type ReportService struct {
	repo      reportRepository
	students  reportStudentLookup
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(repo reportRepository, students reportStudentLookup, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{repo: repo, students: students, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Upsert creates or updates the single report for (student, date). The date
// is the caller's local calendar day; when absent the server date stands in.
func (s *ReportService) Upsert(ctx context.Context, scope models.AccessScope, req UpsertReportRequest) (*models.DailyReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report payload")
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format(models.ReportDateLayout)
	}

	student, err := s.students.FindByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := checkStudentScope(scope, student); err != nil {
		return nil, err
	}

	changes := models.DailyReportChanges{
		Mood:            req.Mood,
		LunchIntake:     req.LunchIntake,
		HadNap:          req.HadNap,
		DiaperChanged:   req.DiaperChanged,
		BathroomNotes:   req.BathroomNotes,
		MedicationGiven: req.MedicationGiven,
		MedicationName:  req.MedicationName,
		MedicationNotes: req.MedicationNotes,
		Behavior:        req.Behavior,
		RecessNotes:     req.RecessNotes,
		Achievements:    req.Achievements,
		GeneralNotes:    req.GeneralNotes,
	}

	report, err := s.repo.Upsert(ctx, req.StudentID, date, changes)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save report")
	}
	report.IsComplete = report.Complete(false)

	s.metrics.RecordReportUpsert()
	if s.cache.Enabled() {
		if err := s.cache.Invalidate(ctx, fmt.Sprintf("summary:%s:*", date)); err != nil {
			s.logger.Warn("summary cache invalidation failed", zap.String("date", date), zap.Error(err))
		}
	}

	return report, nil
}

// Get returns a single report with student context, scope-checked.
func (s *ReportService) Get(ctx context.Context, scope models.AccessScope, id string) (*models.DailyReportDetail, error) {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report")
	}
	if err := checkReportScope(scope, detail); err != nil {
		return nil, err
	}
	detail.IsComplete = detail.Complete(false)
	return detail, nil
}

// List returns visible reports with pagination metadata.
func (s *ReportService) List(ctx context.Context, scope models.AccessScope, filter models.DailyReportFilter) ([]models.DailyReportDetail, *models.Pagination, error) {
	reports, total, err := s.repo.List(ctx, filter, scope)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reports")
	}
	for i := range reports {
		reports[i].IsComplete = reports[i].Complete(false)
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return reports, pagination, nil
}

// History returns a student's reports between two dates, newest first.
func (s *ReportService) History(ctx context.Context, scope models.AccessScope, studentID, from, to string) ([]models.DailyReport, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := checkStudentScope(scope, student); err != nil {
		return nil, err
	}

	reports, err := s.repo.History(ctx, studentID, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report history")
	}
	for i := range reports {
		reports[i].IsComplete = reports[i].Complete(false)
	}
	return reports, nil
}

// Delete removes a report. Routing restricts this to admin-level roles.
func (s *ReportService) Delete(ctx context.Context, id string) error {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "report not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete report")
	}
	if s.cache.Enabled() {
		if err := s.cache.Invalidate(ctx, fmt.Sprintf("summary:%s:*", detail.ReportDate)); err != nil {
			s.logger.Warn("summary cache invalidation failed", zap.String("date", detail.ReportDate), zap.Error(err))
		}
	}
	return nil
}

func checkStudentScope(scope models.AccessScope, student *models.StudentDetail) error {
	if scope.GroupID != "" && student.GroupID != scope.GroupID {
		return appErrors.Clone(appErrors.ErrOutOfScope, "student outside caller group")
	}
	if scope.CampusID != "" && student.CampusID != scope.CampusID {
		return appErrors.Clone(appErrors.ErrOutOfScope, "student outside caller campus")
	}
	return nil
}

func checkReportScope(scope models.AccessScope, detail *models.DailyReportDetail) error {
	if scope.GroupID != "" && detail.GroupID != scope.GroupID {
		return appErrors.Clone(appErrors.ErrOutOfScope, "report outside caller group")
	}
	if scope.CampusID != "" && detail.CampusID != scope.CampusID {
		return appErrors.Clone(appErrors.ErrOutOfScope, "report outside caller campus")
	}
	return nil
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter, scope models.AccessScope) ([]models.StudentDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Deactivate(ctx context.Context, id string) error
}

type studentGroupLookup interface {
	FindByID(ctx context.Context, id string) (*models.GroupDetail, error)
}

// CreateStudentRequest is the payload for enrolling a student.
type CreateStudentRequest struct {
	FullName  string `json:"full_name" validate:"required,min=2,max=200"`
	BirthDate string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	GroupID   string `json:"group_id" validate:"required,uuid"`
	Allergies string `json:"allergies"`
}

// UpdateStudentRequest is the payload for editing a student. Pointer fields
// leave unset attributes untouched.
type UpdateStudentRequest struct {
	FullName  *string `json:"full_name" validate:"omitempty,min=2,max=200"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	GroupID   *string `json:"group_id" validate:"omitempty,uuid"`
	Allergies *string `json:"allergies"`
	Active    *bool   `json:"active"`
}

// StudentService handles student roster use cases.
type StudentService struct {
	repo      studentRepository
	groups    studentGroupLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, groups studentGroupLookup, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, groups: groups, validator: validate, logger: logger}
}

// List returns students visible to the caller.
func (s *StudentService) List(ctx context.Context, scope models.AccessScope, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, filter, scope)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return students, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one student with group and campus context.
func (s *StudentService) Get(ctx context.Context, scope models.AccessScope, id string) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := checkStudentScope(scope, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Create enrolls a student into a group.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.StudentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if _, err := s.groups.FindByID(ctx, req.GroupID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group")
	}

	birthDate, err := time.Parse(models.ReportDateLayout, req.BirthDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid birth date")
	}
	student := &models.Student{
		FullName:  req.FullName,
		BirthDate: birthDate,
		GroupID:   req.GroupID,
		Allergies: req.Allergies,
		Active:    true,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return s.repo.FindByID(ctx, student.ID)
}

// Update edits a student record.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.StudentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	student := detail.Student
	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse(models.ReportDateLayout, *req.BirthDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid birth date")
		}
		student.BirthDate = birthDate
	}
	if req.GroupID != nil {
		if _, err := s.groups.FindByID(ctx, *req.GroupID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group")
		}
		student.GroupID = *req.GroupID
	}
	if req.Allergies != nil {
		student.Allergies = *req.Allergies
	}
	if req.Active != nil {
		student.Active = *req.Active
	}

	if err := s.repo.Update(ctx, &student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return s.repo.FindByID(ctx, id)
}

// Deactivate marks a student inactive. History and reports stay intact.
func (s *StudentService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate student")
	}
	return nil
}

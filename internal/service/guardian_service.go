package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
)

type guardianRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Guardian, error)
	FindByID(ctx context.Context, id string) (*models.Guardian, error)
	Create(ctx context.Context, guardian *models.Guardian) error
	Update(ctx context.Context, guardian *models.Guardian) error
	Delete(ctx context.Context, id string) error
}

// CreateGuardianRequest is the payload for attaching a guardian to a student.
type CreateGuardianRequest struct {
	StudentID     string `json:"student_id" validate:"required,uuid"`
	FullName      string `json:"full_name" validate:"required,min=2,max=200"`
	Relationship  string `json:"relationship" validate:"required,max=50"`
	Email         string `json:"email" validate:"omitempty,email"`
	WhatsappPhone string `json:"whatsapp_phone" validate:"omitempty,e164"`
}

// UpdateGuardianRequest is the payload for editing a guardian.
type UpdateGuardianRequest struct {
	FullName      *string `json:"full_name" validate:"omitempty,min=2,max=200"`
	Relationship  *string `json:"relationship" validate:"omitempty,max=50"`
	Email         *string `json:"email" validate:"omitempty,email"`
	WhatsappPhone *string `json:"whatsapp_phone" validate:"omitempty,e164"`
}

// GuardianService manages guardian contacts.
type GuardianService struct {
	repo      guardianRepository
	students  reportStudentLookup
	validator *validator.Validate
}

// NewGuardianService constructs a GuardianService.
func NewGuardianService(repo guardianRepository, students reportStudentLookup, validate *validator.Validate) *GuardianService {
	if validate == nil {
		validate = validator.New()
	}
	return &GuardianService{repo: repo, students: students, validator: validate}
}

// ListByStudent returns a student's guardians, scope-checked on the student.
func (s *GuardianService) ListByStudent(ctx context.Context, scope models.AccessScope, studentID string) ([]models.Guardian, error) {
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
	guardians, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list guardians")
	}
	return guardians, nil
}

// Create attaches a guardian to a student.
func (s *GuardianService) Create(ctx context.Context, req CreateGuardianRequest) (*models.Guardian, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid guardian payload")
	}
	if req.Email == "" && req.WhatsappPhone == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "guardian needs an email or a whatsapp phone")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	guardian := &models.Guardian{
		StudentID:     req.StudentID,
		FullName:      req.FullName,
		Relationship:  req.Relationship,
		Email:         req.Email,
		WhatsappPhone: req.WhatsappPhone,
	}
	if err := s.repo.Create(ctx, guardian); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create guardian")
	}
	return guardian, nil
}

// Update edits a guardian contact.
func (s *GuardianService) Update(ctx context.Context, id string, req UpdateGuardianRequest) (*models.Guardian, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid guardian payload")
	}
	guardian, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "guardian not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load guardian")
	}
	if req.FullName != nil {
		guardian.FullName = *req.FullName
	}
	if req.Relationship != nil {
		guardian.Relationship = *req.Relationship
	}
	if req.Email != nil {
		guardian.Email = *req.Email
	}
	if req.WhatsappPhone != nil {
		guardian.WhatsappPhone = *req.WhatsappPhone
	}
	if guardian.Email == "" && guardian.WhatsappPhone == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "guardian needs an email or a whatsapp phone")
	}
	if err := s.repo.Update(ctx, guardian); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update guardian")
	}
	return guardian, nil
}

// Delete removes a guardian contact.
func (s *GuardianService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "guardian not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load guardian")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete guardian")
	}
	return nil
}

package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
)

type feedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	List(ctx context.Context, filter models.FeedbackFilter) ([]models.Feedback, int, error)
}

// CreateFeedbackRequest is the payload for submitting feedback.
type CreateFeedbackRequest struct {
	StudentID *string `json:"student_id" validate:"omitempty,uuid"`
	Subject   string  `json:"subject" validate:"required,min=2,max=200"`
	Message   string  `json:"message" validate:"required,min=2"`
}

// FeedbackService records and lists free-text feedback.
type FeedbackService struct {
	repo      feedbackRepository
	students  reportStudentLookup
	validator *validator.Validate
}

// NewFeedbackService constructs a FeedbackService.
func NewFeedbackService(repo feedbackRepository, students reportStudentLookup, validate *validator.Validate) *FeedbackService {
	if validate == nil {
		validate = validator.New()
	}
	return &FeedbackService{repo: repo, students: students, validator: validate}
}

// Create stores a feedback entry, optionally linked to a student.
func (s *FeedbackService) Create(ctx context.Context, authorID string, req CreateFeedbackRequest) (*models.Feedback, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid feedback payload")
	}
	if req.StudentID != nil {
		if _, err := s.students.FindByID(ctx, *req.StudentID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
		}
	}
	feedback := &models.Feedback{
		StudentID: req.StudentID,
		Subject:   req.Subject,
		Message:   req.Message,
	}
	if authorID != "" {
		feedback.AuthorID = &authorID
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create feedback")
	}
	return feedback, nil
}

// List returns feedback entries, newest first.
func (s *FeedbackService) List(ctx context.Context, filter models.FeedbackFilter) ([]models.Feedback, *models.Pagination, error) {
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list feedback")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return entries, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

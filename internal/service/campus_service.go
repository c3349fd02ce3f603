package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
)

type campusRepository interface {
	List(ctx context.Context, filter models.CampusFilter) ([]models.Campus, int, error)
	FindByID(ctx context.Context, id string) (*models.Campus, error)
	Create(ctx context.Context, campus *models.Campus) error
	Update(ctx context.Context, campus *models.Campus) error
	Deactivate(ctx context.Context, id string) error
}

// CreateCampusRequest is the payload for registering a campus.
type CreateCampusRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=200"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// UpdateCampusRequest is the payload for editing a campus.
type UpdateCampusRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=200"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Active  *bool   `json:"active"`
}

// CampusService handles campus administration.
type CampusService struct {
	repo      campusRepository
	validator *validator.Validate
}

// NewCampusService constructs a CampusService.
func NewCampusService(repo campusRepository, validate *validator.Validate) *CampusService {
	if validate == nil {
		validate = validator.New()
	}
	return &CampusService{repo: repo, validator: validate}
}

// List returns campuses matching the filter.
func (s *CampusService) List(ctx context.Context, filter models.CampusFilter) ([]models.Campus, *models.Pagination, error) {
	campuses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list campuses")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return campuses, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one campus.
func (s *CampusService) Get(ctx context.Context, id string) (*models.Campus, error) {
	campus, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "campus not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load campus")
	}
	return campus, nil
}

// Create registers a campus.
func (s *CampusService) Create(ctx context.Context, req CreateCampusRequest) (*models.Campus, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid campus payload")
	}
	campus := &models.Campus{Name: req.Name, Address: req.Address, Phone: req.Phone, Active: true}
	if err := s.repo.Create(ctx, campus); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create campus")
	}
	return campus, nil
}

// Update edits a campus.
func (s *CampusService) Update(ctx context.Context, id string, req UpdateCampusRequest) (*models.Campus, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid campus payload")
	}
	campus, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "campus not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load campus")
	}
	if req.Name != nil {
		campus.Name = *req.Name
	}
	if req.Address != nil {
		campus.Address = *req.Address
	}
	if req.Phone != nil {
		campus.Phone = *req.Phone
	}
	if req.Active != nil {
		campus.Active = *req.Active
	}
	if err := s.repo.Update(ctx, campus); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update campus")
	}
	return campus, nil
}

// Deactivate marks a campus inactive.
func (s *CampusService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "campus not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load campus")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate campus")
	}
	return nil
}

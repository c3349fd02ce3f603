package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
)

type groupRepository interface {
	List(ctx context.Context, filter models.GroupFilter, scope models.AccessScope) ([]models.GroupDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.GroupDetail, error)
	Create(ctx context.Context, group *models.Group) error
	Update(ctx context.Context, group *models.Group) error
	Deactivate(ctx context.Context, id string) error
}

type groupCampusLookup interface {
	FindByID(ctx context.Context, id string) (*models.Campus, error)
}

// CreateGroupRequest is the payload for opening a group.
type CreateGroupRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	AgeLevel  string  `json:"age_level" validate:"required,max=50"`
	CampusID  string  `json:"campus_id" validate:"required,uuid"`
	TeacherID *string `json:"teacher_id" validate:"omitempty,uuid"`
}

// UpdateGroupRequest is the payload for editing a group.
type UpdateGroupRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	AgeLevel  *string `json:"age_level" validate:"omitempty,max=50"`
	TeacherID *string `json:"teacher_id" validate:"omitempty,uuid"`
	Active    *bool   `json:"active"`
}

// GroupService handles classroom group administration.
type GroupService struct {
	repo      groupRepository
	campuses  groupCampusLookup
	validator *validator.Validate
}

// NewGroupService constructs a GroupService.
func NewGroupService(repo groupRepository, campuses groupCampusLookup, validate *validator.Validate) *GroupService {
	if validate == nil {
		validate = validator.New()
	}
	return &GroupService{repo: repo, campuses: campuses, validator: validate}
}

// List returns groups visible to the caller.
func (s *GroupService) List(ctx context.Context, scope models.AccessScope, filter models.GroupFilter) ([]models.GroupDetail, *models.Pagination, error) {
	groups, total, err := s.repo.List(ctx, filter, scope)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list groups")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return groups, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one group with campus and teacher context.
func (s *GroupService) Get(ctx context.Context, scope models.AccessScope, id string) (*models.GroupDetail, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group")
	}
	if scope.GroupID != "" && group.ID != scope.GroupID {
		return nil, appErrors.Clone(appErrors.ErrOutOfScope, "group outside caller scope")
	}
	if scope.CampusID != "" && group.CampusID != scope.CampusID {
		return nil, appErrors.Clone(appErrors.ErrOutOfScope, "group outside caller campus")
	}
	return group, nil
}

// Create opens a group at a campus.
func (s *GroupService) Create(ctx context.Context, req CreateGroupRequest) (*models.GroupDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group payload")
	}
	if _, err := s.campuses.FindByID(ctx, req.CampusID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "campus not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load campus")
	}
	group := &models.Group{
		Name:      req.Name,
		AgeLevel:  req.AgeLevel,
		CampusID:  req.CampusID,
		TeacherID: req.TeacherID,
		Active:    true,
	}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create group")
	}
	return s.repo.FindByID(ctx, group.ID)
}

// Update edits a group.
func (s *GroupService) Update(ctx context.Context, id string, req UpdateGroupRequest) (*models.GroupDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group payload")
	}
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group")
	}

	group := detail.Group
	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.AgeLevel != nil {
		group.AgeLevel = *req.AgeLevel
	}
	if req.TeacherID != nil {
		group.TeacherID = req.TeacherID
	}
	if req.Active != nil {
		group.Active = *req.Active
	}
	if err := s.repo.Update(ctx, &group); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update group")
	}
	return s.repo.FindByID(ctx, id)
}

// Deactivate marks a group inactive.
func (s *GroupService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate group")
	}
	return nil
}

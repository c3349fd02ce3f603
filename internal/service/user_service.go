package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
)

type userRepository interface {
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	RevokeUserRefreshTokens(ctx context.Context, userID string) error
}

// CreateUserRequest is the payload for registering a staff member.
type CreateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	FullName string  `json:"full_name" validate:"required,min=2,max=200"`
	Role     string  `json:"role" validate:"required,oneof=TEACHER DIRECTOR VICE_RECTOR RECTOR ADMIN"`
	CampusID *string `json:"campus_id" validate:"omitempty,uuid"`
	GroupID  *string `json:"group_id" validate:"omitempty,uuid"`
}

// UpdateUserRequest is the payload for editing a staff member.
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=200"`
	Role     *string `json:"role" validate:"omitempty,oneof=TEACHER DIRECTOR VICE_RECTOR RECTOR ADMIN"`
	CampusID *string `json:"campus_id" validate:"omitempty,uuid"`
	GroupID  *string `json:"group_id" validate:"omitempty,uuid"`
	Active   *bool   `json:"active"`
}

// UserService manages staff accounts.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
}

// NewUserService constructs a UserService.
func NewUserService(repo userRepository, validate *validator.Validate) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, validator: validate}
}

// List returns staff accounts matching the filter.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.User, *models.Pagination, error) {
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return users, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one staff account.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}

// Create registers a staff member. Teachers must carry a group assignment and
// directors a campus assignment, otherwise their visibility would be empty.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}
	role := models.UserRole(req.Role)
	if err := validateAssignments(role, req.CampusID, req.GroupID); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         role,
		CampusID:     req.CampusID,
		GroupID:      req.GroupID,
		Active:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}
	return user, nil
}

// Update edits a staff account. Changing the role or deactivating revokes
// outstanding refresh tokens.
func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	revokeSessions := false
	if req.Email != nil && *req.Email != user.Email {
		exists, err := s.repo.ExistsByEmail(ctx, *req.Email, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Role != nil && models.UserRole(*req.Role) != user.Role {
		user.Role = models.UserRole(*req.Role)
		revokeSessions = true
	}
	if req.CampusID != nil {
		user.CampusID = req.CampusID
	}
	if req.GroupID != nil {
		user.GroupID = req.GroupID
	}
	if req.Active != nil && *req.Active != user.Active {
		user.Active = *req.Active
		if !user.Active {
			revokeSessions = true
		}
	}
	if err := validateAssignments(user.Role, user.CampusID, user.GroupID); err != nil {
		return nil, err
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user")
	}
	if revokeSessions {
		if err := s.repo.RevokeUserRefreshTokens(ctx, id); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to revoke sessions")
		}
	}
	return user, nil
}

func validateAssignments(role models.UserRole, campusID, groupID *string) error {
	switch role {
	case models.RoleTeacher:
		if groupID == nil || *groupID == "" {
			return appErrors.Clone(appErrors.ErrValidation, "teachers require a group assignment")
		}
	case models.RoleDirector:
		if campusID == nil || *campusID == "" {
			return appErrors.Clone(appErrors.ErrValidation, "directors require a campus assignment")
		}
	}
	return nil
}

package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
)

// GroupRepository manages persistence for classroom groups.
type GroupRepository struct {
	db *sqlx.DB
}

// NewGroupRepository constructs a GroupRepository.
func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// List returns groups matching the filter within the caller's scope.
func (r *GroupRepository) List(ctx context.Context, filter models.GroupFilter, scope models.AccessScope) ([]models.GroupDetail, int, error) {
	base := `FROM groups g
        JOIN campuses c ON c.id = g.campus_id
        LEFT JOIN users u ON u.id = g.teacher_id`
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.CampusID != "" {
		conditions = append(conditions, fmt.Sprintf("g.campus_id = $%d", len(args)+1))
		args = append(args, filter.CampusID)
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("g.active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(g.name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	conditions, args = appendScope(scope, "g.id", "g.campus_id", conditions, args)

	whereClause := strings.Join(conditions, " AND ")

	allowedSorts := map[string]string{
		"name":       "g.name",
		"age_level":  "g.age_level",
		"created_at": "g.created_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "g.name"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT g.id, g.name, g.age_level, g.campus_id, g.teacher_id, g.active, g.created_at, g.updated_at,
        c.name AS campus_name, u.full_name AS teacher_name
        %s WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`, base, whereClause, column, order, size, offset)

	var groups []models.GroupDetail
	if err := r.db.SelectContext(ctx, &groups, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list groups: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count groups: %w", err)
	}
	return groups, total, nil
}

// FindByID fetches a group detail by ID.
func (r *GroupRepository) FindByID(ctx context.Context, id string) (*models.GroupDetail, error) {
	query := `SELECT g.id, g.name, g.age_level, g.campus_id, g.teacher_id, g.active, g.created_at, g.updated_at,
        c.name AS campus_name, u.full_name AS teacher_name
        FROM groups g
        JOIN campuses c ON c.id = g.campus_id
        LEFT JOIN users u ON u.id = g.teacher_id
        WHERE g.id = $1`
	var detail models.GroupDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListByCampus returns the active groups of a campus, digest ordering.
func (r *GroupRepository) ListByCampus(ctx context.Context, campusID string) ([]models.GroupDetail, error) {
	query := `SELECT g.id, g.name, g.age_level, g.campus_id, g.teacher_id, g.active, g.created_at, g.updated_at,
        c.name AS campus_name, u.full_name AS teacher_name
        FROM groups g
        JOIN campuses c ON c.id = g.campus_id
        LEFT JOIN users u ON u.id = g.teacher_id
        WHERE g.campus_id = $1 AND g.active = true ORDER BY g.name ASC`
	var groups []models.GroupDetail
	if err := r.db.SelectContext(ctx, &groups, query, campusID); err != nil {
		return nil, fmt.Errorf("list groups by campus: %w", err)
	}
	return groups, nil
}

// Create inserts a new group.
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if group.CreatedAt.IsZero() {
		group.CreatedAt = now
	}
	group.UpdatedAt = now
	const query = `INSERT INTO groups (id, name, age_level, campus_id, teacher_id, active, created_at, updated_at)
        VALUES (:id, :name, :age_level, :campus_id, :teacher_id, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

// Update modifies an existing group.
func (r *GroupRepository) Update(ctx context.Context, group *models.Group) error {
	group.UpdatedAt = time.Now().UTC()
	const query = `UPDATE groups SET name = :name, age_level = :age_level, campus_id = :campus_id,
        teacher_id = :teacher_id, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	return nil
}

// Deactivate marks a group as inactive.
func (r *GroupRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE groups SET active = false, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate group: %w", err)
	}
	return nil
}

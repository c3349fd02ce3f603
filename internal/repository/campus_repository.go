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

// CampusRepository manages persistence for campuses.
type CampusRepository struct {
	db *sqlx.DB
}

// NewCampusRepository constructs a CampusRepository.
func NewCampusRepository(db *sqlx.DB) *CampusRepository {
	return &CampusRepository{db: db}
}

// List returns campuses matching the filter.
func (r *CampusRepository) List(ctx context.Context, filter models.CampusFilter) ([]models.Campus, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	whereClause := strings.Join(conditions, " AND ")

	allowedSorts := map[string]string{
		"name":       "name",
		"created_at": "created_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "name"
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

	query := fmt.Sprintf(`SELECT id, name, address, phone, active, created_at, updated_at
        FROM campuses WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`, whereClause, column, order, size, offset)

	var campuses []models.Campus
	if err := r.db.SelectContext(ctx, &campuses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list campuses: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM campuses WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count campuses: %w", err)
	}
	return campuses, total, nil
}

// FindByID fetches a campus by ID.
func (r *CampusRepository) FindByID(ctx context.Context, id string) (*models.Campus, error) {
	var campus models.Campus
	query := `SELECT id, name, address, phone, active, created_at, updated_at FROM campuses WHERE id = $1`
	if err := r.db.GetContext(ctx, &campus, query, id); err != nil {
		return nil, err
	}
	return &campus, nil
}

// Create inserts a new campus.
func (r *CampusRepository) Create(ctx context.Context, campus *models.Campus) error {
	if campus.ID == "" {
		campus.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if campus.CreatedAt.IsZero() {
		campus.CreatedAt = now
	}
	campus.UpdatedAt = now
	const query = `INSERT INTO campuses (id, name, address, phone, active, created_at, updated_at)
        VALUES (:id, :name, :address, :phone, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, campus); err != nil {
		return fmt.Errorf("create campus: %w", err)
	}
	return nil
}

// Update modifies an existing campus.
func (r *CampusRepository) Update(ctx context.Context, campus *models.Campus) error {
	campus.UpdatedAt = time.Now().UTC()
	const query = `UPDATE campuses SET name = :name, address = :address, phone = :phone, active = :active,
        updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, campus); err != nil {
		return fmt.Errorf("update campus: %w", err)
	}
	return nil
}

// Deactivate marks a campus as inactive.
func (r *CampusRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE campuses SET active = false, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate campus: %w", err)
	}
	return nil
}

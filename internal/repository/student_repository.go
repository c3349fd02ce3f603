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

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the filter within the caller's scope.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter, scope models.AccessScope) ([]models.StudentDetail, int, error) {
	base := `FROM students s
        JOIN groups g ON g.id = s.group_id
        JOIN campuses c ON c.id = g.campus_id`
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.GroupID != "" {
		conditions = append(conditions, fmt.Sprintf("s.group_id = $%d", len(args)+1))
		args = append(args, filter.GroupID)
	}
	if filter.CampusID != "" {
		conditions = append(conditions, fmt.Sprintf("g.campus_id = $%d", len(args)+1))
		args = append(args, filter.CampusID)
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("s.active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(s.full_name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	conditions, args = appendScope(scope, "s.group_id", "g.campus_id", conditions, args)

	whereClause := strings.Join(conditions, " AND ")

	allowedSorts := map[string]string{
		"full_name":  "s.full_name",
		"birth_date": "s.birth_date",
		"created_at": "s.created_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "s.full_name"
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

	query := fmt.Sprintf(`SELECT s.id, s.full_name, s.birth_date, s.group_id, s.allergies, s.active, s.created_at, s.updated_at,
        g.name AS group_name, g.campus_id, c.name AS campus_name
        %s WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`, base, whereClause, column, order, size, offset)

	var students []models.StudentDetail
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByID fetches a student detail by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	query := `SELECT s.id, s.full_name, s.birth_date, s.group_id, s.allergies, s.active, s.created_at, s.updated_at,
        g.name AS group_name, g.campus_id, c.name AS campus_name
        FROM students s
        JOIN groups g ON g.id = s.group_id
        JOIN campuses c ON c.id = g.campus_id
        WHERE s.id = $1`
	var detail models.StudentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListByGroup returns active students of a group, used by summaries and the
// digest to find students without a report.
func (r *StudentRepository) ListByGroup(ctx context.Context, groupID string) ([]models.Student, error) {
	query := `SELECT id, full_name, birth_date, group_id, allergies, active, created_at, updated_at
        FROM students WHERE group_id = $1 AND active = true ORDER BY full_name ASC`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, groupID); err != nil {
		return nil, fmt.Errorf("list students by group: %w", err)
	}
	return students, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, full_name, birth_date, group_id, allergies, active, created_at, updated_at)
        VALUES (:id, :full_name, :birth_date, :group_id, :allergies, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET full_name = :full_name, birth_date = :birth_date, group_id = :group_id,
        allergies = :allergies, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Deactivate marks a student as inactive.
func (r *StudentRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE students SET active = false, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate student: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
)

// GuardianRepository manages persistence for guardian contacts.
type GuardianRepository struct {
	db *sqlx.DB
}

// NewGuardianRepository constructs a GuardianRepository.
func NewGuardianRepository(db *sqlx.DB) *GuardianRepository {
	return &GuardianRepository{db: db}
}

// ListByStudent returns all guardians linked to a student.
func (r *GuardianRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Guardian, error) {
	query := `SELECT id, student_id, full_name, relationship, email, whatsapp_phone, created_at, updated_at
        FROM guardians WHERE student_id = $1 ORDER BY full_name ASC`
	var guardians []models.Guardian
	if err := r.db.SelectContext(ctx, &guardians, query, studentID); err != nil {
		return nil, fmt.Errorf("list guardians: %w", err)
	}
	return guardians, nil
}

// FindByID fetches a guardian by ID.
func (r *GuardianRepository) FindByID(ctx context.Context, id string) (*models.Guardian, error) {
	var guardian models.Guardian
	query := `SELECT id, student_id, full_name, relationship, email, whatsapp_phone, created_at, updated_at
        FROM guardians WHERE id = $1`
	if err := r.db.GetContext(ctx, &guardian, query, id); err != nil {
		return nil, err
	}
	return &guardian, nil
}

// Create inserts a new guardian contact.
func (r *GuardianRepository) Create(ctx context.Context, guardian *models.Guardian) error {
	if guardian.ID == "" {
		guardian.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if guardian.CreatedAt.IsZero() {
		guardian.CreatedAt = now
	}
	guardian.UpdatedAt = now
	const query = `INSERT INTO guardians (id, student_id, full_name, relationship, email, whatsapp_phone, created_at, updated_at)
        VALUES (:id, :student_id, :full_name, :relationship, :email, :whatsapp_phone, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, guardian); err != nil {
		return fmt.Errorf("create guardian: %w", err)
	}
	return nil
}

// Update modifies an existing guardian contact.
func (r *GuardianRepository) Update(ctx context.Context, guardian *models.Guardian) error {
	guardian.UpdatedAt = time.Now().UTC()
	const query = `UPDATE guardians SET full_name = :full_name, relationship = :relationship, email = :email,
        whatsapp_phone = :whatsapp_phone, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, guardian); err != nil {
		return fmt.Errorf("update guardian: %w", err)
	}
	return nil
}

// Delete removes a guardian contact.
func (r *GuardianRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM guardians WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete guardian: %w", err)
	}
	return nil
}

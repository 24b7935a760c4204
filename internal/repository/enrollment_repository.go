package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edustack/campus-api/internal/models"
)

// EnrollmentRepository handles persistence for enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository creates a new repository instance.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create persists a new enrollment and returns the generated id.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) (int64, error) {
	const query = `INSERT INTO enrollments (student_id, class_id) VALUES ($1, $2) RETURNING id`
	var id int64
	if err := r.db.QueryRowxContext(ctx, query, enrollment.StudentID, enrollment.ClassID).Scan(&id); err != nil {
		return 0, fmt.Errorf("create enrollment: %w", err)
	}
	return id, nil
}

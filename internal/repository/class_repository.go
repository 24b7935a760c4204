package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/edustack/campus-api/internal/models"
)

const classColumns = `id, subject_id, teacher_id, code, name, capacity, status, description, banner_url, banner_cld_pub_id, schedule, created_at, updated_at`

// ClassRepository handles persistence for classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository creates a new repository instance.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns classes matching filters with pagination metadata.
func (r *ClassRepository) List(ctx context.Context, filter models.ClassFilter) ([]models.Class, int, error) {
	base := "FROM classes WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.SubjectID != 0 {
		conditions = append(conditions, fmt.Sprintf("subject_id = $%d", len(args)+1))
		args = append(args, filter.SubjectID)
	}
	if filter.TeacherID != 0 {
		conditions = append(conditions, fmt.Sprintf("teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(code) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page, limit := normalizePage(filter.Page, filter.Limit)
	offset := (page - 1) * limit

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count classes: %w", err)
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC, id ASC LIMIT %d OFFSET %d", classColumns, base, limit, offset)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list classes: %w", err)
	}

	return classes, total, nil
}

// FindByID returns a class by id with subject and teacher display fields.
func (r *ClassRepository) FindByID(ctx context.Context, id int64) (*models.ClassDetail, error) {
	const query = `SELECT c.id, c.subject_id, c.teacher_id, c.code, c.name, c.capacity, c.status, c.description,
		c.banner_url, c.banner_cld_pub_id, c.schedule, c.created_at, c.updated_at,
		s.name AS subject_name, s.code AS subject_code, u.name AS teacher_name
		FROM classes c
		JOIN subjects s ON s.id = c.subject_id
		JOIN users u ON u.id = c.teacher_id
		WHERE c.id = $1`
	var class models.ClassDetail
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// Create persists a new class and returns the generated id.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) (int64, error) {
	const query = `INSERT INTO classes (subject_id, teacher_id, code, name, capacity, status, description, banner_url, banner_cld_pub_id, schedule)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		class.SubjectID, class.TeacherID, class.Code, class.Name, class.Capacity,
		class.Status, class.Description, class.BannerURL, class.BannerCldPubID, class.Schedule,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create class: %w", err)
	}
	return id, nil
}

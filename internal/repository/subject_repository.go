package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/edustack/campus-api/internal/models"
)

// subjectSelect carries the owning department one level deep; the joined
// columns map onto the embedded Department via sqlx dotted aliases.
const subjectSelect = `s.id, s.department_id, s.code, s.name, s.description, s.created_at, s.updated_at,
	d.id AS "department.id", d.code AS "department.code", d.name AS "department.name",
	d.description AS "department.description", d.created_at AS "department.created_at",
	d.updated_at AS "department.updated_at"`

// SubjectRepository handles persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new repository instance.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns subjects matching filters with pagination metadata. The count
// query runs over the same join and conditions as the data query.
func (r *SubjectRepository) List(ctx context.Context, filter models.SubjectFilter) ([]models.SubjectWithDepartment, int, error) {
	base := "FROM subjects s JOIN departments d ON d.id = s.department_id WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.DepartmentID != 0 {
		conditions = append(conditions, fmt.Sprintf("s.department_id = $%d", len(args)+1))
		args = append(args, filter.DepartmentID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(s.code) LIKE $%d OR LOWER(s.name) LIKE $%d)", len(args)+1, len(args)+1))
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
		return nil, 0, fmt.Errorf("count subjects: %w", err)
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY s.created_at DESC, s.id ASC LIMIT %d OFFSET %d", subjectSelect, base, limit, offset)
	var subjects []models.SubjectWithDepartment
	if err := r.db.SelectContext(ctx, &subjects, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list subjects: %w", err)
	}

	return subjects, total, nil
}

// FindByID returns a subject by id with its department.
func (r *SubjectRepository) FindByID(ctx context.Context, id int64) (*models.SubjectWithDepartment, error) {
	query := fmt.Sprintf("SELECT %s FROM subjects s JOIN departments d ON d.id = s.department_id WHERE s.id = $1", subjectSelect)
	var subject models.SubjectWithDepartment
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Create persists a new subject and returns the generated id.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) (int64, error) {
	const query = `INSERT INTO subjects (department_id, code, name, description) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int64
	if err := r.db.QueryRowxContext(ctx, query, subject.DepartmentID, subject.Code, subject.Name, subject.Description).Scan(&id); err != nil {
		return 0, fmt.Errorf("create subject: %w", err)
	}
	return id, nil
}

// ListClasses returns the subject's classes, newest first.
func (r *SubjectRepository) ListClasses(ctx context.Context, subjectID int64, page, limit int) ([]models.Class, int, error) {
	page, limit = normalizePage(page, limit)
	offset := (page - 1) * limit

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM classes WHERE subject_id = $1`, subjectID); err != nil {
		return nil, 0, fmt.Errorf("count subject classes: %w", err)
	}

	query := fmt.Sprintf("SELECT id, subject_id, teacher_id, code, name, capacity, status, description, banner_url, banner_cld_pub_id, schedule, created_at, updated_at FROM classes WHERE subject_id = $1 ORDER BY created_at DESC, id ASC LIMIT %d OFFSET %d", limit, offset)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, subjectID); err != nil {
		return nil, 0, fmt.Errorf("list subject classes: %w", err)
	}

	return classes, total, nil
}

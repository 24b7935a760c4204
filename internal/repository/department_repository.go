package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/edustack/campus-api/internal/models"
)

// DepartmentRepository handles persistence for departments.
type DepartmentRepository struct {
	db *sqlx.DB
}

// NewDepartmentRepository creates a new repository instance.
func NewDepartmentRepository(db *sqlx.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// List returns departments matching filters with pagination metadata.
func (r *DepartmentRepository) List(ctx context.Context, filter models.DepartmentFilter) ([]models.Department, int, error) {
	base := "FROM departments WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(code) LIKE $%d OR LOWER(name) LIKE $%d)", len(args)+1, len(args)+1))
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
		return nil, 0, fmt.Errorf("count departments: %w", err)
	}

	query := fmt.Sprintf("SELECT id, code, name, description, created_at, updated_at %s ORDER BY created_at DESC, id ASC LIMIT %d OFFSET %d", base, limit, offset)
	var departments []models.Department
	if err := r.db.SelectContext(ctx, &departments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list departments: %w", err)
	}

	return departments, total, nil
}

// FindByID returns a department by id.
func (r *DepartmentRepository) FindByID(ctx context.Context, id int64) (*models.Department, error) {
	const query = `SELECT id, code, name, description, created_at, updated_at FROM departments WHERE id = $1`
	var department models.Department
	if err := r.db.GetContext(ctx, &department, query, id); err != nil {
		return nil, err
	}
	return &department, nil
}

// Create persists a new department and returns the generated id.
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) (int64, error) {
	const query = `INSERT INTO departments (code, name, description) VALUES ($1, $2, $3) RETURNING id`
	var id int64
	if err := r.db.QueryRowxContext(ctx, query, department.Code, department.Name, department.Description).Scan(&id); err != nil {
		return 0, fmt.Errorf("create department: %w", err)
	}
	return id, nil
}

// ListSubjects returns the department's subjects, newest first.
func (r *DepartmentRepository) ListSubjects(ctx context.Context, departmentID int64, page, limit int) ([]models.Subject, int, error) {
	page, limit = normalizePage(page, limit)
	offset := (page - 1) * limit

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM subjects WHERE department_id = $1`, departmentID); err != nil {
		return nil, 0, fmt.Errorf("count department subjects: %w", err)
	}

	query := fmt.Sprintf("SELECT id, department_id, code, name, description, created_at, updated_at FROM subjects WHERE department_id = $1 ORDER BY created_at DESC, id ASC LIMIT %d OFFSET %d", limit, offset)
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, departmentID); err != nil {
		return nil, 0, fmt.Errorf("list department subjects: %w", err)
	}

	return subjects, total, nil
}

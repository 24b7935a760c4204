package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edustack/campus-api/internal/models"
	appErrors "github.com/edustack/campus-api/pkg/errors"
)

type departmentRepository interface {
	List(ctx context.Context, filter models.DepartmentFilter) ([]models.Department, int, error)
	FindByID(ctx context.Context, id int64) (*models.Department, error)
	Create(ctx context.Context, department *models.Department) (int64, error)
	ListSubjects(ctx context.Context, departmentID int64, page, limit int) ([]models.Subject, int, error)
}

// CreateDepartmentRequest captures fields for creating departments.
type CreateDepartmentRequest struct {
	Code        string  `json:"code" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// DepartmentService handles department domain workflows.
type DepartmentService struct {
	repo      departmentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDepartmentService creates a new department service.
func NewDepartmentService(repo departmentRepository, validate *validator.Validate, logger *zap.Logger) *DepartmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepartmentService{repo: repo, validator: validate, logger: logger}
}

// List returns paginated departments.
func (s *DepartmentService) List(ctx context.Context, filter models.DepartmentFilter) ([]models.Department, *models.Pagination, error) {
	departments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list departments")
	}
	if departments == nil {
		departments = []models.Department{}
	}

	page, limit := normalizePagination(filter.Page, filter.Limit)
	return departments, models.NewPagination(page, limit, total), nil
}

// Get returns a department by identifier.
func (s *DepartmentService) Get(ctx context.Context, id int64) (*models.Department, error) {
	department, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department")
	}
	return department, nil
}

// Create adds a new department and returns the generated id.
func (s *DepartmentService) Create(ctx context.Context, req CreateDepartmentRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, appErrors.ErrInvalidArgument.Status, "invalid department payload")
	}

	department := &models.Department{
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}

	id, err := s.repo.Create(ctx, department)
	if err != nil {
		return 0, createError(err, "department code already exists", "invalid department reference", "failed to create department")
	}
	if id == 0 {
		return 0, appErrors.Clone(appErrors.ErrInsertFailed, "department insert returned no id")
	}
	return id, nil
}

// Subjects lists the department's subjects.
func (s *DepartmentService) Subjects(ctx context.Context, departmentID int64, page, limit int) ([]models.Subject, *models.Pagination, error) {
	if _, err := s.Get(ctx, departmentID); err != nil {
		return nil, nil, err
	}

	page, limit = normalizePagination(page, limit)
	subjects, total, err := s.repo.ListSubjects(ctx, departmentID, page, limit)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list department subjects")
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}
	return subjects, models.NewPagination(page, limit, total), nil
}

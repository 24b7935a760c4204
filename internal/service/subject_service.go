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

type subjectRepository interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.SubjectWithDepartment, int, error)
	FindByID(ctx context.Context, id int64) (*models.SubjectWithDepartment, error)
	Create(ctx context.Context, subject *models.Subject) (int64, error)
	ListClasses(ctx context.Context, subjectID int64, page, limit int) ([]models.Class, int, error)
}

type subjectRelationResolver interface {
	UsersForSubject(ctx context.Context, subjectID int64, role models.UserRole, page, limit int) ([]models.User, int, error)
}

// CreateSubjectRequest captures fields for creating subjects.
type CreateSubjectRequest struct {
	DepartmentID int64   `json:"departmentId" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Code         string  `json:"code" validate:"required"`
	Description  *string `json:"description"`
}

// SubjectService handles subject domain workflows.
type SubjectService struct {
	repo      subjectRepository
	relations subjectRelationResolver
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService creates a new subject service.
func NewSubjectService(repo subjectRepository, relations subjectRelationResolver, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, relations: relations, validator: validate, logger: logger}
}

// List returns paginated subjects with their departments.
func (s *SubjectService) List(ctx context.Context, filter models.SubjectFilter) ([]models.SubjectWithDepartment, *models.Pagination, error) {
	subjects, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	if subjects == nil {
		subjects = []models.SubjectWithDepartment{}
	}

	page, limit := normalizePagination(filter.Page, filter.Limit)
	return subjects, models.NewPagination(page, limit, total), nil
}

// Get returns a subject by identifier.
func (s *SubjectService) Get(ctx context.Context, id int64) (*models.SubjectWithDepartment, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	return subject, nil
}

// Create adds a new subject and returns the generated id.
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, appErrors.ErrInvalidArgument.Status, "invalid subject payload")
	}

	subject := &models.Subject{
		DepartmentID: req.DepartmentID,
		Code:         strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
	}

	id, err := s.repo.Create(ctx, subject)
	if err != nil {
		return 0, createError(err, "subject code already exists", "department not found", "failed to create subject")
	}
	if id == 0 {
		return 0, appErrors.Clone(appErrors.ErrInsertFailed, "subject insert returned no id")
	}
	return id, nil
}

// Classes lists the subject's classes.
func (s *SubjectService) Classes(ctx context.Context, subjectID int64, page, limit int) ([]models.Class, *models.Pagination, error) {
	if _, err := s.Get(ctx, subjectID); err != nil {
		return nil, nil, err
	}

	page, limit = normalizePagination(page, limit)
	classes, total, err := s.repo.ListClasses(ctx, subjectID, page, limit)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subject classes")
	}
	if classes == nil {
		classes = []models.Class{}
	}
	return classes, models.NewPagination(page, limit, total), nil
}

// Users lists the subject's teachers or enrolled students depending on role.
func (s *SubjectService) Users(ctx context.Context, subjectID int64, role models.UserRole, page, limit int) ([]models.User, *models.Pagination, error) {
	if role != models.RoleTeacher && role != models.RoleStudent {
		return nil, nil, appErrors.Clone(appErrors.ErrInvalidArgument, "role must be teacher or student")
	}

	if _, err := s.Get(ctx, subjectID); err != nil {
		return nil, nil, err
	}

	page, limit = normalizePagination(page, limit)
	users, total, err := s.relations.UsersForSubject(ctx, subjectID, role, page, limit)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subject users")
	}
	if users == nil {
		users = []models.User{}
	}
	return users, models.NewPagination(page, limit, total), nil
}

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

type userRepository interface {
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) (int64, error)
}

type userRelationResolver interface {
	DepartmentsForUser(ctx context.Context, userID int64, role models.UserRole, page, limit int) ([]models.Department, int, error)
	SubjectsForUser(ctx context.Context, userID int64, role models.UserRole, page, limit int) ([]models.SubjectWithDepartment, int, error)
}

// CreateUserRequest captures fields for creating users.
type CreateUserRequest struct {
	Name  string          `json:"name" validate:"required"`
	Email string          `json:"email" validate:"required,email"`
	Role  models.UserRole `json:"role" validate:"required,oneof=admin teacher student"`
}

// UserService handles user domain workflows.
type UserService struct {
	repo      userRepository
	relations userRelationResolver
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates a new user service.
func NewUserService(repo userRepository, relations userRelationResolver, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, relations: relations, validator: validate, logger: logger}
}

// List returns paginated users.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.User, *models.Pagination, error) {
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	if users == nil {
		users = []models.User{}
	}

	page, limit := normalizePagination(filter.Page, filter.Limit)
	return users, models.NewPagination(page, limit, total), nil
}

// Get returns a user by identifier.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}

// Create adds a new user and returns the generated id.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, appErrors.ErrInvalidArgument.Status, "invalid user payload")
	}

	user := &models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Role:  req.Role,
	}

	id, err := s.repo.Create(ctx, user)
	if err != nil {
		return 0, createError(err, "email already exists", "invalid user reference", "failed to create user")
	}
	if id == 0 {
		return 0, appErrors.Clone(appErrors.ErrInsertFailed, "user insert returned no id")
	}
	return id, nil
}

// Departments lists the departments visible to the user. Teachers reach them
// through the classes they teach, students through their enrollments. Any
// other stored role yields the conventional empty page without touching the
// resolver.
func (s *UserService) Departments(ctx context.Context, userID int64, page, limit int) ([]models.Department, *models.Pagination, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if user.Role != models.RoleTeacher && user.Role != models.RoleStudent {
		return []models.Department{}, models.EmptyPagination(), nil
	}

	page, limit = normalizePagination(page, limit)
	departments, total, err := s.relations.DepartmentsForUser(ctx, userID, user.Role, page, limit)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list user departments")
	}
	if departments == nil {
		departments = []models.Department{}
	}
	return departments, models.NewPagination(page, limit, total), nil
}

// Subjects lists the subjects visible to the user, with departments
// eager-loaded. Role handling mirrors Departments.
func (s *UserService) Subjects(ctx context.Context, userID int64, page, limit int) ([]models.SubjectWithDepartment, *models.Pagination, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if user.Role != models.RoleTeacher && user.Role != models.RoleStudent {
		return []models.SubjectWithDepartment{}, models.EmptyPagination(), nil
	}

	page, limit = normalizePagination(page, limit)
	subjects, total, err := s.relations.SubjectsForUser(ctx, userID, user.Role, page, limit)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list user subjects")
	}
	if subjects == nil {
		subjects = []models.SubjectWithDepartment{}
	}
	return subjects, models.NewPagination(page, limit, total), nil
}

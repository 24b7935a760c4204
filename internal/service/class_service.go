package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/edustack/campus-api/internal/models"
	appErrors "github.com/edustack/campus-api/pkg/errors"
)

const (
	inviteCodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	inviteCodeLength   = 7
)

type classRepository interface {
	List(ctx context.Context, filter models.ClassFilter) ([]models.Class, int, error)
	FindByID(ctx context.Context, id int64) (*models.ClassDetail, error)
	Create(ctx context.Context, class *models.Class) (int64, error)
}

type classRelationResolver interface {
	UsersForClass(ctx context.Context, classID int64, role models.UserRole, page, limit int) ([]models.User, int, error)
}

// CreateClassRequest captures fields for creating classes.
type CreateClassRequest struct {
	Name           string  `json:"name" validate:"required"`
	TeacherID      int64   `json:"teacherId" validate:"required"`
	SubjectID      int64   `json:"subjectId" validate:"required"`
	Capacity       int     `json:"capacity" validate:"gte=0"`
	Description    *string `json:"description"`
	Status         string  `json:"status" validate:"omitempty,oneof=active archived"`
	BannerURL      *string `json:"bannerUrl"`
	BannerCldPubID *string `json:"bannerCldPubId"`
}

// ClassService handles class domain workflows.
type ClassService struct {
	repo      classRepository
	relations classRelationResolver
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService creates a new class service.
func NewClassService(repo classRepository, relations classRelationResolver, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, relations: relations, validator: validate, logger: logger}
}

// List returns paginated classes.
func (s *ClassService) List(ctx context.Context, filter models.ClassFilter) ([]models.Class, *models.Pagination, error) {
	classes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	if classes == nil {
		classes = []models.Class{}
	}

	page, limit := normalizePagination(filter.Page, filter.Limit)
	return classes, models.NewPagination(page, limit, total), nil
}

// Get returns a class by identifier.
func (s *ClassService) Get(ctx context.Context, id int64) (*models.ClassDetail, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	return class, nil
}

// Create adds a new class and returns the generated id. The invite code is a
// random 7-character base-36 token; the schedule starts empty.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, appErrors.ErrInvalidArgument.Status, "invalid class payload")
	}

	code, err := generateInviteCode()
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate invite code")
	}

	status := req.Status
	if status == "" {
		status = models.ClassStatusActive
	}

	class := &models.Class{
		SubjectID:      req.SubjectID,
		TeacherID:      req.TeacherID,
		Code:           code,
		Name:           strings.TrimSpace(req.Name),
		Capacity:       req.Capacity,
		Status:         status,
		Description:    req.Description,
		BannerURL:      req.BannerURL,
		BannerCldPubID: req.BannerCldPubID,
		Schedule:       pq.StringArray{},
	}

	id, err := s.repo.Create(ctx, class)
	if err != nil {
		return 0, createError(err, "invite code already exists", "subject or teacher not found", "failed to create class")
	}
	if id == 0 {
		return 0, appErrors.Clone(appErrors.ErrInsertFailed, "class insert returned no id")
	}
	return id, nil
}

// Users lists the class's teacher or its enrolled students depending on role.
func (s *ClassService) Users(ctx context.Context, classID int64, role models.UserRole, page, limit int) ([]models.User, *models.Pagination, error) {
	if role != models.RoleTeacher && role != models.RoleStudent {
		return nil, nil, appErrors.Clone(appErrors.ErrInvalidArgument, "role must be teacher or student")
	}

	if _, err := s.Get(ctx, classID); err != nil {
		return nil, nil, err
	}

	page, limit = normalizePagination(page, limit)
	users, total, err := s.relations.UsersForClass(ctx, classID, role, page, limit)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class users")
	}
	if users == nil {
		users = []models.User{}
	}
	return users, models.NewPagination(page, limit, total), nil
}

func generateInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(buf), nil
}

package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edustack/campus-api/internal/models"
	appErrors "github.com/edustack/campus-api/pkg/errors"
)

type enrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) (int64, error)
}

// CreateEnrollmentRequest captures fields for enrolling a student in a class.
type CreateEnrollmentRequest struct {
	StudentID int64 `json:"studentId" validate:"required"`
	ClassID   int64 `json:"classId" validate:"required"`
}

// EnrollmentService handles enrollment workflows.
type EnrollmentService struct {
	repo      enrollmentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService creates a new enrollment service.
func NewEnrollmentService(repo enrollmentRepository, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, validator: validate, logger: logger}
}

// Create enrolls a student in a class and returns the generated id.
func (s *EnrollmentService) Create(ctx context.Context, req CreateEnrollmentRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, appErrors.ErrInvalidArgument.Status, "invalid enrollment payload")
	}

	enrollment := &models.Enrollment{StudentID: req.StudentID, ClassID: req.ClassID}

	id, err := s.repo.Create(ctx, enrollment)
	if err != nil {
		return 0, createError(err, "student already enrolled in class", "student or class not found", "failed to create enrollment")
	}
	if id == 0 {
		return 0, appErrors.Clone(appErrors.ErrInsertFailed, "enrollment insert returned no id")
	}
	return id, nil
}

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edustack/campus-api/internal/models"
	"github.com/edustack/campus-api/internal/service"
)

type stubSubjectRepo struct {
	subjects map[int64]*models.SubjectWithDepartment
	createID int64
}

func (s *stubSubjectRepo) List(ctx context.Context, filter models.SubjectFilter) ([]models.SubjectWithDepartment, int, error) {
	return nil, 0, nil
}

func (s *stubSubjectRepo) FindByID(ctx context.Context, id int64) (*models.SubjectWithDepartment, error) {
	if subject, ok := s.subjects[id]; ok {
		return subject, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubSubjectRepo) Create(ctx context.Context, subject *models.Subject) (int64, error) {
	return s.createID, nil
}

func (s *stubSubjectRepo) ListClasses(ctx context.Context, subjectID int64, page, limit int) ([]models.Class, int, error) {
	return nil, 0, nil
}

func newSubjectRouter(repo *stubSubjectRepo, resolver *stubResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewSubjectService(repo, resolver, validator.New(), zap.NewNop())
	h := NewSubjectHandler(svc)

	r := gin.New()
	r.GET("/subjects", h.List)
	r.POST("/subjects", h.Create)
	r.GET("/subjects/:id", h.Get)
	r.GET("/subjects/:id/classes", h.Classes)
	r.GET("/subjects/:id/users", h.Users)
	return r
}

func TestSubjectHandlerListRejectsBadDepartmentParam(t *testing.T) {
	r := newSubjectRouter(&stubSubjectRepo{}, &stubResolver{})

	rec := doRequest(t, r, http.MethodGet, "/subjects?department=math", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid department parameter"}`, rec.Body.String())
}

func TestSubjectHandlerUsersRequiresRole(t *testing.T) {
	repo := &stubSubjectRepo{subjects: map[int64]*models.SubjectWithDepartment{4: {Subject: models.Subject{ID: 4}}}}
	r := newSubjectRouter(repo, &stubResolver{})

	for _, role := range []string{"", "admin", "Teacher"} {
		rec := doRequest(t, r, http.MethodGet, "/subjects/4/users?role="+role, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, "role %q", role)
		assert.JSONEq(t, `{"error":"role must be teacher or student"}`, rec.Body.String())
	}
}

func TestSubjectHandlerUsersStudentRole(t *testing.T) {
	repo := &stubSubjectRepo{subjects: map[int64]*models.SubjectWithDepartment{4: {Subject: models.Subject{ID: 4}}}}
	resolver := &stubResolver{users: []models.User{{ID: 9, Role: models.RoleStudent}}, total: 1}
	r := newSubjectRouter(repo, resolver)

	rec := doRequest(t, r, http.MethodGet, "/subjects/4/users?role=student", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSubjectHandlerCreate(t *testing.T) {
	r := newSubjectRouter(&stubSubjectRepo{createID: 4}, &stubResolver{})

	rec := doRequest(t, r, http.MethodPost, "/subjects", `{"departmentId":1,"name":"Algebra I","code":"ALG1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":4}}`, rec.Body.String())
}

func TestSubjectHandlerClassesUnknownSubject(t *testing.T) {
	r := newSubjectRouter(&stubSubjectRepo{}, &stubResolver{})

	rec := doRequest(t, r, http.MethodGet, "/subjects/999/classes", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

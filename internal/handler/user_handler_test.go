package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edustack/campus-api/internal/models"
	"github.com/edustack/campus-api/internal/service"
)

type stubUserRepo struct {
	users     map[int64]*models.User
	listUsers []models.User
	listCount int
	createID  int64
}

func (s *stubUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	return s.listUsers, s.listCount, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) (int64, error) {
	return s.createID, nil
}

type stubResolver struct {
	departments []models.Department
	subjects    []models.SubjectWithDepartment
	users       []models.User
	total       int
}

func (s *stubResolver) DepartmentsForUser(ctx context.Context, userID int64, role models.UserRole, page, limit int) ([]models.Department, int, error) {
	return s.departments, s.total, nil
}

func (s *stubResolver) SubjectsForUser(ctx context.Context, userID int64, role models.UserRole, page, limit int) ([]models.SubjectWithDepartment, int, error) {
	return s.subjects, s.total, nil
}

func (s *stubResolver) UsersForSubject(ctx context.Context, subjectID int64, role models.UserRole, page, limit int) ([]models.User, int, error) {
	return s.users, s.total, nil
}

func (s *stubResolver) UsersForClass(ctx context.Context, classID int64, role models.UserRole, page, limit int) ([]models.User, int, error) {
	return s.users, s.total, nil
}

func newUserRouter(repo *stubUserRepo, resolver *stubResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewUserService(repo, resolver, validator.New(), zap.NewNop())
	h := NewUserHandler(svc)

	r := gin.New()
	r.GET("/users", h.List)
	r.POST("/users", h.Create)
	r.GET("/users/:id", h.Get)
	r.GET("/users/:id/departments", h.Departments)
	r.GET("/users/:id/subjects", h.Subjects)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUserHandlerListEnvelope(t *testing.T) {
	repo := &stubUserRepo{listUsers: []models.User{{ID: 1, Name: "Ada", Email: "ada@example.com", Role: models.RoleTeacher}}, listCount: 21}
	r := newUserRouter(repo, &stubResolver{})

	rec := doRequest(t, r, http.MethodGet, "/users?page=1&limit=10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data       []models.User      `json:"data"`
		Pagination *models.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 21, body.Pagination.Total)
	assert.Equal(t, 3, body.Pagination.TotalPages)
}

func TestUserHandlerListFloorsExplicitZeroLimit(t *testing.T) {
	repo := &stubUserRepo{listUsers: []models.User{{ID: 1}}, listCount: 5}
	r := newUserRouter(repo, &stubResolver{})

	rec := doRequest(t, r, http.MethodGet, "/users?limit=0", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Pagination *models.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 1, body.Pagination.Limit)
	assert.Equal(t, 5, body.Pagination.TotalPages)
}

func TestUserHandlerListRejectsUnknownRoleFilter(t *testing.T) {
	r := newUserRouter(&stubUserRepo{}, &stubResolver{})

	rec := doRequest(t, r, http.MethodGet, "/users?role=principal", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
}

func TestUserHandlerGetInvalidID(t *testing.T) {
	r := newUserRouter(&stubUserRepo{}, &stubResolver{})

	rec := doRequest(t, r, http.MethodGet, "/users/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid id"}`, rec.Body.String())
}

func TestUserHandlerGetNotFound(t *testing.T) {
	r := newUserRouter(&stubUserRepo{}, &stubResolver{})

	rec := doRequest(t, r, http.MethodGet, "/users/999", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandlerCreateReturnsID(t *testing.T) {
	r := newUserRouter(&stubUserRepo{createID: 42}, &stubResolver{})

	rec := doRequest(t, r, http.MethodPost, "/users", `{"name":"Ada","email":"ada@example.com","role":"teacher"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":42}}`, rec.Body.String())
}

func TestUserHandlerDepartmentsAdminEmptyPage(t *testing.T) {
	repo := &stubUserRepo{users: map[int64]*models.User{1: {ID: 1, Role: models.RoleAdmin}}}
	r := newUserRouter(repo, &stubResolver{})

	rec := doRequest(t, r, http.MethodGet, "/users/1/departments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[],"pagination":{"page":1,"limit":0,"total":0,"totalPages":0}}`, rec.Body.String())
}

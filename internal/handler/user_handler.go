package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edustack/campus-api/internal/models"
	"github.com/edustack/campus-api/internal/service"
	appErrors "github.com/edustack/campus-api/pkg/errors"
	"github.com/edustack/campus-api/pkg/response"
)

// UserHandler handles user endpoints.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler constructs a user handler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// List godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Param search query string false "Match name or email"
// @Param role query string false "Filter by role"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	var filter models.UserFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	if role := c.Query("role"); role != "" {
		filter.Role = models.UserRole(role)
		if !filter.Role.Valid() {
			response.Error(c, appErrors.Clone(appErrors.ErrInvalidArgument, "invalid role parameter"))
			return
		}
	}
	filter.Page, filter.Limit = parsePagination(c)

	users, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users, pagination)
}

// Get godoc
// @Summary Get user by id
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

// Create godoc
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body service.CreateUserRequest true "User payload"
// @Success 201 {object} response.Envelope
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	id, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": id})
}

// Departments godoc
// @Summary List departments visible to a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /users/{id}/departments [get]
func (h *UserHandler) Departments(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, limit := parsePagination(c)

	departments, pagination, err := h.service.Departments(c.Request.Context(), id, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, departments, pagination)
}

// Subjects godoc
// @Summary List subjects visible to a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /users/{id}/subjects [get]
func (h *UserHandler) Subjects(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, limit := parsePagination(c)

	subjects, pagination, err := h.service.Subjects(c.Request.Context(), id, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, pagination)
}

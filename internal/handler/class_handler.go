package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edustack/campus-api/internal/models"
	"github.com/edustack/campus-api/internal/service"
	appErrors "github.com/edustack/campus-api/pkg/errors"
	"github.com/edustack/campus-api/pkg/response"
)

// ClassHandler handles class endpoints.
type ClassHandler struct {
	service *service.ClassService
}

// NewClassHandler constructs a class handler.
func NewClassHandler(svc *service.ClassService) *ClassHandler {
	return &ClassHandler{service: svc}
}

// List godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Param search query string false "Match name or invite code"
// @Param subject query int false "Filter by subject id"
// @Param teacher query int false "Filter by teacher id"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	var filter models.ClassFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	if raw := c.Query("subject"); raw != "" {
		subjectID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrInvalidArgument, "invalid subject parameter"))
			return
		}
		filter.SubjectID = subjectID
	}
	if raw := c.Query("teacher"); raw != "" {
		teacherID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrInvalidArgument, "invalid teacher parameter"))
			return
		}
		filter.TeacherID = teacherID
	}
	filter.Page, filter.Limit = parsePagination(c)

	classes, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, pagination)
}

// Get godoc
// @Summary Get class by id
// @Tags Classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	class, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class, nil)
}

// Create godoc
// @Summary Create class
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body service.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req service.CreateClassRequest
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

// Users godoc
// @Summary List the teacher or students of a class
// @Tags Classes
// @Produce json
// @Param id path int true "Class ID"
// @Param role query string true "teacher or student"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/users [get]
func (h *ClassHandler) Users(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	role := models.UserRole(c.Query("role"))
	if role != models.RoleTeacher && role != models.RoleStudent {
		response.Error(c, appErrors.Clone(appErrors.ErrInvalidArgument, "role must be teacher or student"))
		return
	}
	page, limit := parsePagination(c)

	users, pagination, err := h.service.Users(c.Request.Context(), id, role, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users, pagination)
}

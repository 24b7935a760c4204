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

// SubjectHandler handles subject endpoints.
type SubjectHandler struct {
	service *service.SubjectService
}

// NewSubjectHandler constructs a subject handler.
func NewSubjectHandler(svc *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{service: svc}
}

// List godoc
// @Summary List subjects
// @Tags Subjects
// @Produce json
// @Param search query string false "Match name or code"
// @Param department query int false "Filter by department id"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	var filter models.SubjectFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	if raw := c.Query("department"); raw != "" {
		departmentID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrInvalidArgument, "invalid department parameter"))
			return
		}
		filter.DepartmentID = departmentID
	}
	filter.Page, filter.Limit = parsePagination(c)

	subjects, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, pagination)
}

// Get godoc
// @Summary Get subject by id
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id} [get]
func (h *SubjectHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	subject, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subject, nil)
}

// Create godoc
// @Summary Create subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body service.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Router /subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req service.CreateSubjectRequest
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

// Classes godoc
// @Summary List classes of a subject
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/classes [get]
func (h *SubjectHandler) Classes(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, limit := parsePagination(c)

	classes, pagination, err := h.service.Classes(c.Request.Context(), id, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, pagination)
}

// Users godoc
// @Summary List teachers or students of a subject
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Param role query string true "teacher or student"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/users [get]
func (h *SubjectHandler) Users(c *gin.Context) {
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

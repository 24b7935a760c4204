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

// DepartmentHandler handles department endpoints.
type DepartmentHandler struct {
	service *service.DepartmentService
}

// NewDepartmentHandler constructs a department handler.
func NewDepartmentHandler(svc *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{service: svc}
}

// List godoc
// @Summary List departments
// @Tags Departments
// @Produce json
// @Param search query string false "Match name or code"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /departments [get]
func (h *DepartmentHandler) List(c *gin.Context) {
	var filter models.DepartmentFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Page, filter.Limit = parsePagination(c)

	departments, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, departments, pagination)
}

// Get godoc
// @Summary Get department by id
// @Tags Departments
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} response.Envelope
// @Router /departments/{id} [get]
func (h *DepartmentHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	department, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, department, nil)
}

// Create godoc
// @Summary Create department
// @Tags Departments
// @Accept json
// @Produce json
// @Param payload body service.CreateDepartmentRequest true "Department payload"
// @Success 201 {object} response.Envelope
// @Router /departments [post]
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req service.CreateDepartmentRequest
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

// Subjects godoc
// @Summary List subjects of a department
// @Tags Departments
// @Produce json
// @Param id path int true "Department ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /departments/{id}/subjects [get]
func (h *DepartmentHandler) Subjects(c *gin.Context) {
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

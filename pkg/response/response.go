package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edustack/campus-api/internal/models"
	appErrors "github.com/edustack/campus-api/pkg/errors"
)

// Envelope is the success contract: {data} for details, {data, pagination}
// for lists.
type Envelope struct {
	Data       interface{}        `json:"data"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// ErrorEnvelope is the failure contract. Only a generic message crosses the
// wire; codes and wrapped causes stay server-side.
type ErrorEnvelope struct {
	Error string `json:"error"`
}

// JSON sends a success response with optional pagination metadata.
func JSON(c *gin.Context, status int, data interface{}, pagination *models.Pagination) {
	c.JSON(status, Envelope{Data: data, Pagination: pagination})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data, nil)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, ErrorEnvelope{Error: appErr.Message})
}

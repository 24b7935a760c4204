package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/edustack/campus-api/pkg/errors"
)

// parseID coerces the :id path parameter. Non-numeric ids are invalid
// arguments, not lookups that miss.
func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrInvalidArgument, "invalid id")
	}
	return id, nil
}

// parsePagination coerces page and limit. A missing or unparsable limit gets
// the default page size; an explicit limit below 1 floors to 1.
func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		limit = 20
	}
	if limit < 1 {
		limit = 1
	}
	return page, limit
}

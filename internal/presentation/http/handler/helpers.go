package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/pkg/pagination"
)

const dateLayout = "2006-01-02"

// GetPaginationParams reads page/per_page query parameters with defaults
func GetPaginationParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
	params.Validate()
	return params
}

// GetUUIDQuery parses an optional UUID query parameter. The bool result is
// false when the parameter is present but malformed.
func GetUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// GetDateQuery parses an optional YYYY-MM-DD query parameter. The bool result
// is false when the parameter is present but malformed.
func GetDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, false
	}
	return &date, true
}

// GetActor returns the value the created_by audit fields are stamped with.
// There is no authentication layer, so the caller identifies itself through
// an optional header.
func GetActor(c *gin.Context) string {
	return c.GetHeader("X-Actor")
}

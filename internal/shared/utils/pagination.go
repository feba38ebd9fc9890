package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"garage/internal/shared/constants"
)

// Pagination holds parsed pagination parameters.
type Pagination struct {
	Page    int
	PerPage int
}

// ValidatePagination normalizes pagination parameters.
// Page defaults to 1, PerPage to defaultPerPage, capped at MaxPerPage.
func ValidatePagination(page, perPage, defaultPerPage int) Pagination {
	if defaultPerPage < 1 {
		defaultPerPage = constants.DefaultPerPage
	}
	if page < 1 {
		page = constants.DefaultPage
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > constants.MaxPerPage {
		perPage = constants.MaxPerPage
	}
	return Pagination{Page: page, PerPage: perPage}
}

// ParsePagination reads page and per_page from the query string.
func ParsePagination(c *gin.Context, defaultPerPage int) Pagination {
	return ValidatePagination(
		parseQueryInt(c, "page", 0),
		parseQueryInt(c, "per_page", 0),
		defaultPerPage,
	)
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 1 {
			return n
		}
	}
	return defaultVal
}

// LastPage returns the number of the last page, at least 1.
func LastPage(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

package api

import (
	"slices"
	"strconv"

	"go-hr/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ParseListQuery extracts the shared list parameters (search, page,
// page_size, sort_by, sort_order) from the request. sort_by values outside
// the allow-list are dropped so they can never reach the storage layer.
func ParseListQuery(c *fiber.Ctx, allowedSort []string) models.ListQuery {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.Query("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	sortBy := c.Query("sort_by")
	if sortBy != "" && !slices.Contains(allowedSort, sortBy) {
		sortBy = ""
	}
	sortOrder := c.Query("sort_order", "asc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "asc"
	}

	return models.ListQuery{
		Search:    c.Query("search"),
		Page:      page,
		PageSize:  pageSize,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}
}

// ExportQuery is ParseListQuery without pagination: exports apply the same
// filters and sort to the whole result set.
func ExportQuery(c *fiber.Ctx, allowedSort []string) models.ListQuery {
	q := ParseListQuery(c, allowedSort)
	q.Page = 1
	q.PageSize = 0
	return q
}

// SendExport writes an encoded export payload with its download filename.
func SendExport(c *fiber.Ctx, data []byte, filename, mime string) error {
	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

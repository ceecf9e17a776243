package listing

import "math"

// SortDirection cycles none -> asc -> desc -> none per toggled column.
type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Query is the full list-request state for one resource view: free-text
// search, named filters, pagination and a single exclusive sort.
type Query struct {
	Search    string
	Filters   map[string]any
	Page      int
	PageSize  int
	SortBy    string
	SortOrder SortDirection
}

// Clone returns a copy safe to hand to an asynchronous fetch.
func (q Query) Clone() Query {
	filters := make(map[string]any, len(q.Filters))
	for k, v := range q.Filters {
		filters[k] = v
	}
	q.Filters = filters
	return q
}

// Result is one page of rows plus pagination metadata, mirroring the list
// endpoints' {items, total, page, page_size, total_pages} payload.
type Result[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
}

// TotalPages computes ceil(total/pageSize).
func TotalPages(total int64, pageSize int) int64 {
	if pageSize <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(total) / float64(pageSize)))
}

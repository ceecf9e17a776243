package models

// ListQuery carries the shared list-endpoint parameters. Feature
// repositories combine it with their own filter fields.
type ListQuery struct {
	Search    string
	Page      int // 1-indexed
	PageSize  int // 0 means unpaginated (export path)
	SortBy    string
	SortOrder string // "asc" | "desc"
}

// Offset returns the number of documents to skip.
func (q ListQuery) Offset() int64 {
	if q.Page < 1 || q.PageSize <= 0 {
		return 0
	}
	return int64(q.Page-1) * int64(q.PageSize)
}

// SortValue maps the direction onto Mongo's 1/-1 convention.
func (q ListQuery) SortValue() int {
	if q.SortOrder == "desc" {
		return -1
	}
	return 1
}

// MemberRef is a minimal employee reference for pickers and joins.
type MemberRef struct {
	EmpID    string `json:"emp_id"`
	Name     string `json:"name"`
	JobTitle string `json:"job_title"`
}

// ListResult is the uniform list payload every resource returns.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
}

// NewListResult assembles the payload and derives total_pages.
func NewListResult[T any](items []T, total int64, q ListQuery) ListResult[T] {
	if items == nil {
		items = []T{}
	}
	pages := int64(0)
	if q.PageSize > 0 {
		pages = (total + int64(q.PageSize) - 1) / int64(q.PageSize)
	}
	return ListResult[T]{
		Items:      items,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: pages,
	}
}

// ImportMode selects how a bulk spreadsheet import treats existing rows.
type ImportMode string

const (
	ImportDeleteAll  ImportMode = "delete_all"
	ImportInsertOnly ImportMode = "insert_only"
	ImportUpsert     ImportMode = "upsert"
)

// ImportSummary reports a bulk import outcome; row-level failures are
// counted as skipped, never fatal to the batch.
type ImportSummary struct {
	Message  string `json:"message"`
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
	Skipped  int    `json:"skipped"`
	Total    int    `json:"total"`
}

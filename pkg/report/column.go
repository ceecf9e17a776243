package report

import (
	"fmt"
	"time"
)

// Formatter maps a raw cell value plus the full row to a display string.
// Formatters must be pure: they run once per cell per export, including
// for headers redrawn across page breaks.
type Formatter func(value any, row map[string]any) string

// Column describes one exportable field of a row-set.
type Column struct {
	Key       string
	Title     string
	Width     float64 // layout units; 0 means auto
	Formatter Formatter
}

// CellValue resolves the display string for one cell. Every encoder (PDF,
// CSV, XLSX) goes through this single rule so the three outputs stay
// value-consistent for the same input.
func CellValue(col Column, row map[string]any) string {
	raw := row[col.Key]
	if col.Formatter != nil {
		return col.Formatter(raw, row)
	}
	if raw == nil {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return v
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	case bool:
		if v {
			return "Y"
		}
		return "N"
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

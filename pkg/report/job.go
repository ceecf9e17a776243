package report

import (
	"fmt"
	"time"
)

// Job is one export request: a row-set, the columns to emit, a display
// title and a filename stem. A job is built when the user triggers an
// export, consumed by exactly one encoder and then discarded.
type Job struct {
	Rows    []map[string]any
	Columns []Column
	Title   string
	Stem    string
}

// Filename generates the download name for the given extension,
// {stem}_{YYYY-MM-DD}.{ext}.
func (j Job) Filename(ext string) string {
	return fmt.Sprintf("%s_%s.%s", j.Stem, time.Now().Format("2006-01-02"), ext)
}

// Export dispatches to the encoder for format ("pdf", "csv" or "xlsx") and
// returns the payload, the generated filename and the response MIME type.
func Export(job Job, format string) ([]byte, string, string, error) {
	switch format {
	case "pdf":
		data, name, err := ToPDF(job)
		return data, name, "application/pdf", err
	case "csv":
		data, name, err := ToCSV(job)
		return data, name, "text/csv; charset=utf-8", err
	case "xlsx":
		data, name, err := ToXLSX(job)
		return data, name, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	default:
		return nil, "", "", fmt.Errorf("unsupported format: %s", format)
	}
}

package report

import (
	"bytes"
	"encoding/csv"
)

// utf8BOM keeps spreadsheet tools from misreading non-ASCII exports.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ToCSV encodes the job as UTF-8 CSV with a BOM prefix. The header row uses
// column titles; cells go through CellValue like every other encoder.
func ToCSV(job Job) ([]byte, string, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	writer := csv.NewWriter(&buf)

	headers := make([]string, len(job.Columns))
	for i, c := range job.Columns {
		headers[i] = c.Title
	}
	if err := writer.Write(headers); err != nil {
		return nil, "", err
	}

	for _, row := range job.Rows {
		fields := make([]string, len(job.Columns))
		for i, c := range job.Columns {
			fields[i] = CellValue(c, row)
		}
		if err := writer.Write(fields); err != nil {
			return nil, "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), job.Filename("csv"), nil
}

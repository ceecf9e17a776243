package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func sampleJob() Job {
	return Job{
		Title: "Members",
		Stem:  "members",
		Columns: []Column{
			{Key: "emp_id", Title: "Employee ID", Width: 25},
			{Key: "chinese_name", Title: "Name"},
			{Key: "is_employed", Title: "Employed", Formatter: func(v any, _ map[string]any) string {
				if b, ok := v.(bool); ok && b {
					return "employed"
				}
				return "left"
			}},
		},
		Rows: []map[string]any{
			{"emp_id": "E001", "chinese_name": "王小明", "is_employed": true},
			{"emp_id": "E002", "chinese_name": "李大華", "is_employed": false},
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	job := Job{
		Title:   "Tricky",
		Stem:    "tricky",
		Columns: []Column{{Key: "v", Title: "Value"}},
		Rows: []map[string]any{
			{"v": `with, comma and "quote" and` + "\nnewline"},
		},
	}

	data, _, err := ToCSV(job)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, utf8BOM) {
		t.Error("CSV output missing UTF-8 BOM")
	}

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want header + 1 row", len(records))
	}
	if records[0][0] != "Value" {
		t.Errorf("header = %q, want %q", records[0][0], "Value")
	}
	want := `with, comma and "quote" and` + "\nnewline"
	if records[1][0] != want {
		t.Errorf("round-tripped field = %q, want %q", records[1][0], want)
	}
}

func TestEncodersAgreeOnCellValues(t *testing.T) {
	job := sampleJob()

	// Reference values through the shared rule.
	var want [][]string
	for _, row := range job.Rows {
		var cells []string
		for _, col := range job.Columns {
			cells = append(cells, CellValue(col, row))
		}
		want = append(want, cells)
	}

	// CSV path.
	csvData, _, err := ToCSV(job)
	if err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(csvData, utf8BOM))).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	for i, cells := range want {
		for j, cell := range cells {
			if records[i+1][j] != cell {
				t.Errorf("csv[%d][%d] = %q, want %q", i, j, records[i+1][j], cell)
			}
		}
	}

	// XLSX path.
	xlsxData, _, err := ToXLSX(job)
	if err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(xlsxData))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	for i, cells := range want {
		for j, cell := range cells {
			ref, _ := excelize.CoordinatesToCellName(j+1, i+2)
			got, err := f.GetCellValue(job.Title, ref)
			if err != nil {
				t.Fatal(err)
			}
			if got != cell {
				t.Errorf("xlsx %s = %q, want %q", ref, got, cell)
			}
		}
	}

	// PDF path renders through the layout engine; inspect its text runs.
	page := Page{Width: 297, Height: 210, Margin: 24, RowHeight: 8, CellPadding: 2, Measure: func(s string) float64 { return 1 }}
	instructions, err := Layout(job.Rows, job.Columns, page)
	if err != nil {
		t.Fatal(err)
	}
	var texts []string
	for _, ins := range instructions {
		if d, ok := ins.(DrawText); ok && !d.Bold {
			texts = append(texts, d.Text)
		}
	}
	idx := 0
	for i, cells := range want {
		for j, cell := range cells {
			if idx >= len(texts) {
				t.Fatalf("layout emitted %d text runs, expected more", len(texts))
			}
			if texts[idx] != cell {
				t.Errorf("layout text[%d][%d] = %q, want %q", i, j, texts[idx], cell)
			}
			idx++
		}
	}
}

func TestExportFilename(t *testing.T) {
	job := sampleJob()
	date := time.Now().Format("2006-01-02")

	for _, ext := range []string{"pdf", "csv", "xlsx"} {
		want := fmt.Sprintf("members_%s.%s", date, ext)
		if got := job.Filename(ext); got != want {
			t.Errorf("Filename(%q) = %q, want %q", ext, got, want)
		}
	}
}

func TestExportDispatch(t *testing.T) {
	job := sampleJob()

	for _, format := range []string{"pdf", "csv", "xlsx"} {
		data, name, mime, err := Export(job, format)
		if err != nil {
			t.Fatalf("Export(%q): %v", format, err)
		}
		if len(data) == 0 {
			t.Errorf("Export(%q) produced no bytes", format)
		}
		if !strings.HasSuffix(name, "."+format) {
			t.Errorf("Export(%q) filename = %q", format, name)
		}
		if mime == "" {
			t.Errorf("Export(%q) missing mime type", format)
		}
	}

	if _, _, _, err := Export(job, "docx"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestSheetNameTruncatedTo31(t *testing.T) {
	job := sampleJob()
	job.Title = strings.Repeat("x", 40)

	data, _, err := ToXLSX(job)
	if err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	want := strings.Repeat("x", 31)
	for _, name := range f.GetSheetList() {
		if name == want {
			return
		}
	}
	t.Errorf("sheet %q not found in %v", want, f.GetSheetList())
}

package report

import (
	"github.com/xuri/excelize/v2"
)

const (
	maxSheetNameLen = 31
	// xlsxWidthScale converts layout-engine units into Excel column widths.
	xlsxWidthScale  = 4.0
	defaultColWidth = 15.0
)

// ToXLSX encodes the job as a single-sheet workbook. Cells carry the
// already-stringified CellValue output so XLSX content matches the PDF and
// CSV encodings byte for byte.
func ToXLSX(job Job) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := job.Title
	if len([]rune(sheet)) > maxSheetNameLen {
		sheet = string([]rune(sheet)[:maxSheetNameLen])
	}
	if sheet == "" {
		sheet = "Report"
	}
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range job.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col.Title)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, row := range job.Rows {
		for colIdx, col := range job.Columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, CellValue(col, row))
		}
	}

	for i, col := range job.Columns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		width := defaultColWidth
		if col.Width > 0 {
			width = col.Width / xlsxWidthScale
		}
		f.SetColWidth(sheet, name, name, width)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), job.Filename("xlsx"), nil
}

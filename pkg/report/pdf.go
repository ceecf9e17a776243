package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	// pdfMargin leaves room above the grid for the title block.
	pdfMargin      = 24.0
	pdfRowHeight   = 8.0
	pdfCellPadding = 2.0
	pdfFontSize    = 9.0
)

// ToPDF renders the job as a landscape A4 grid. A centered title line and a
// generation timestamp precede the table; row and column placement is
// delegated to the layout engine.
func ToPDF(job Job) ([]byte, string, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text((pageW-pdf.GetStringWidth(job.Title))/2, 12, job.Title)

	pdf.SetFont("Helvetica", "", 9)
	stamp := fmt.Sprintf("generated on %s", time.Now().Format("2006-01-02"))
	pdf.Text((pageW-pdf.GetStringWidth(stamp))/2, 18, stamp)

	pdf.SetFont("Helvetica", "", pdfFontSize)
	page := Page{
		Width:       pageW,
		Height:      pageH,
		Margin:      pdfMargin,
		RowHeight:   pdfRowHeight,
		CellPadding: pdfCellPadding,
		Measure:     pdf.GetStringWidth,
	}
	instructions, err := Layout(job.Rows, job.Columns, page)
	if err != nil {
		return nil, "", err
	}

	current := 0
	for _, ins := range instructions {
		for current < ins.PageIndex() {
			pdf.AddPage()
			current++
		}
		switch v := ins.(type) {
		case FillRect:
			if v.Shade == ShadeHeader {
				pdf.SetFillColor(60, 76, 96)
			} else {
				pdf.SetFillColor(240, 243, 246)
			}
			pdf.Rect(v.X, v.Y, v.W, v.H, "F")
		case DrawText:
			if v.Bold {
				pdf.SetFont("Helvetica", "B", pdfFontSize)
				pdf.SetTextColor(255, 255, 255)
			} else {
				pdf.SetFont("Helvetica", "", pdfFontSize)
				pdf.SetTextColor(30, 30, 30)
			}
			pdf.Text(v.X, v.Y+1.5, v.Text)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), job.Filename("pdf"), nil
}

package report

import "fmt"

// ellipsisMark replaces the last two characters of a truncated cell.
const ellipsisMark = ".."

// MeasureFunc returns the rendered width of a string in page units.
type MeasureFunc func(s string) float64

// Page holds the fixed geometry the layout engine works against.
type Page struct {
	Width       float64
	Height      float64
	Margin      float64
	RowHeight   float64
	CellPadding float64
	Measure     MeasureFunc
}

// Instruction is one vector-drawing step, tagged with the page it lands on.
type Instruction interface {
	PageIndex() int
}

// Shade selects a fill style for a rectangle.
type Shade int

const (
	ShadeHeader Shade = iota
	ShadeAlt
)

type FillRect struct {
	Page       int
	X, Y, W, H float64
	Shade      Shade
}

func (f FillRect) PageIndex() int { return f.Page }

type DrawText struct {
	Page int
	X, Y float64
	Text string
	Bold bool
}

func (d DrawText) PageIndex() int { return d.Page }

// ResolveWidths keeps explicit column widths and divides the remaining
// usable width evenly among columns without one. With no auto columns the
// remainder is simply unused.
func ResolveWidths(cols []Column, usable float64) []float64 {
	widths := make([]float64, len(cols))
	explicit := 0.0
	auto := 0
	for i, c := range cols {
		if c.Width > 0 {
			widths[i] = c.Width
			explicit += c.Width
		} else {
			auto++
		}
	}
	if auto > 0 {
		share := (usable - explicit) / float64(auto)
		for i := range widths {
			if widths[i] == 0 {
				widths[i] = share
			}
		}
	}
	return widths
}

// truncateToFit trims trailing characters until the string fits max. If any
// trimming happened and at least two characters remain, the last two are
// replaced with the ellipsis marker. Strings forced below two characters
// keep the bare trim; callers rely on that today.
func truncateToFit(s string, max float64, measure MeasureFunc) string {
	if measure(s) <= max {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && measure(string(r)) > max {
		r = r[:len(r)-1]
	}
	if len(r) >= 2 {
		return string(r[:len(r)-2]) + ellipsisMark
	}
	return string(r)
}

// Layout paginates rows into a printable grid. The header row is redrawn at
// the top of every page so each page reads on its own. Even-indexed body
// rows get an alternate background fill.
func Layout(rows []map[string]any, cols []Column, page Page) ([]Instruction, error) {
	if page.Width <= 0 || page.Height <= 0 {
		return nil, fmt.Errorf("report: invalid page dimensions %gx%g", page.Width, page.Height)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("report: column set is empty")
	}
	if page.RowHeight <= 0 {
		page.RowHeight = 8
	}
	measure := page.Measure
	if measure == nil {
		measure = func(s string) float64 { return float64(len([]rune(s))) * 2.5 }
	}

	usable := page.Width - 2*page.Margin
	widths := ResolveWidths(cols, usable)

	var out []Instruction
	pageIdx := 0
	y := page.Margin

	header := func() {
		out = append(out, FillRect{Page: pageIdx, X: page.Margin, Y: y, W: usable, H: page.RowHeight, Shade: ShadeHeader})
		x := page.Margin
		for i, c := range cols {
			text := truncateToFit(c.Title, widths[i]-2*page.CellPadding, measure)
			out = append(out, DrawText{Page: pageIdx, X: x + page.CellPadding, Y: y + page.RowHeight/2, Text: text, Bold: true})
			x += widths[i]
		}
		y += page.RowHeight
	}
	header()

	for i, row := range rows {
		if y+page.RowHeight > page.Height-page.Margin {
			pageIdx++
			y = page.Margin
			header()
		}
		if i%2 == 0 {
			out = append(out, FillRect{Page: pageIdx, X: page.Margin, Y: y, W: usable, H: page.RowHeight, Shade: ShadeAlt})
		}
		x := page.Margin
		for ci, c := range cols {
			text := truncateToFit(CellValue(c, row), widths[ci]-2*page.CellPadding, measure)
			out = append(out, DrawText{Page: pageIdx, X: x + page.CellPadding, Y: y + page.RowHeight/2, Text: text})
			x += widths[ci]
		}
		y += page.RowHeight
	}

	return out, nil
}

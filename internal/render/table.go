// Package render provides console output formatting for tdb.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
)

// Table accumulates rows and renders them as an aligned ASCII grid.
// Column widths are computed with runewidth so wide characters line up.
type Table struct {
	Title   string
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given title and column headers.
func NewTable(title string, headers ...string) *Table {
	return &Table{Title: title, headers: headers}
}

// AddRow appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
	}
	t.rows = append(t.rows, row)
}

// RowCount returns the number of data rows added so far.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Fprint writes the rendered table to w.
func (t *Table) Fprint(w io.Writer) {
	widths := t.columnWidths()

	if t.Title != "" {
		fmt.Fprintln(w, color.Bold.Sprint(t.Title))
	}

	sep := separator(widths)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, renderRow(t.headers, widths, color.Cyan.Sprint))
	fmt.Fprintln(w, sep)
	for _, row := range t.rows {
		fmt.Fprintln(w, renderRow(row, widths, nil))
	}
	fmt.Fprintln(w, sep)
}

// String renders the table to a string.
func (t *Table) String() string {
	var sb strings.Builder
	t.Fprint(&sb)
	return sb.String()
}

func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func separator(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	return "+" + strings.Join(parts, "+") + "+"
}

func renderRow(cells []string, widths []int, colorize func(...interface{}) string) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded := cell + strings.Repeat(" ", w-runewidth.StringWidth(cell))
		if colorize != nil {
			padded = colorize(padded)
		}
		parts[i] = " " + padded + " "
	}
	return "|" + strings.Join(parts, "|") + "|"
}

// FormatBytes renders a byte count with binary-scaled units.
func FormatBytes(n int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	x := float64(n)
	for i, u := range units {
		if x < 1024 || i == len(units)-1 {
			return fmt.Sprintf("%.2f %s", x, u)
		}
		x /= 1024
	}
	return fmt.Sprintf("%d B", n)
}

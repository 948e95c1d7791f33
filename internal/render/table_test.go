package render

import (
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	// Deterministic output regardless of terminal detection.
	color.Disable()
}

func TestTableRendering(t *testing.T) {
	tbl := NewTable("Schema: users", "column", "type")
	tbl.AddRow("id", "BIGINT")
	tbl.AddRow("name", "VARCHAR")

	out := tbl.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Equal(t, "Schema: users", lines[0])
	assert.Equal(t, "+--------+---------+", lines[1])
	assert.Equal(t, "| column | type    |", lines[2])
	assert.Equal(t, "+--------+---------+", lines[3])
	assert.Equal(t, "| id     | BIGINT  |", lines[4])
	assert.Equal(t, "| name   | VARCHAR |", lines[5])
	assert.Equal(t, "+--------+---------+", lines[6])
}

func TestTableNoTitle(t *testing.T) {
	tbl := NewTable("", "a")
	tbl.AddRow("1")

	out := tbl.String()
	assert.True(t, strings.HasPrefix(out, "+"), "untitled table should start with separator, got %q", out)
}

func TestTableWidthsUseRuneWidth(t *testing.T) {
	tbl := NewTable("", "name")
	tbl.AddRow("日本語")

	lines := strings.Split(strings.TrimRight(tbl.String(), "\n"), "\n")
	// CJK cells are double width: 3 runes occupy 6 cells.
	assert.Equal(t, "+--------+", lines[0])
	assert.Equal(t, "| 日本語 |", lines[2])
}

func TestTableRowCellMismatch(t *testing.T) {
	tbl := NewTable("", "a", "b")
	tbl.AddRow("only")
	tbl.AddRow("x", "y", "dropped")

	assert.Equal(t, 2, tbl.RowCount())
	out := tbl.String()
	assert.NotContains(t, out, "dropped")
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0.00 B"},
		{512, "512.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{1073741824, "1.00 GB"},
		{1099511627776, "1.00 TB"},
		{2199023255552, "2.00 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBytes(tt.input))
		})
	}
}

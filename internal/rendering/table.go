package rendering

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const columnGap = "  "

// Table aligns columns by display width, so Hangul cells, which take two
// terminal cells per rune, line up with Latin ones.
type Table struct {
	Headers []string
	Rows    [][]string
	// MaxCellWidth truncates longer cells. Zero means no limit.
	MaxCellWidth int
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// AddRow appends a row. Missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render writes the header, a dashed rule and every row.
func (t *Table) Render(w io.Writer) error {
	cols := len(t.Headers)
	for _, r := range t.Rows {
		cols = max(cols, len(r))
	}
	if cols == 0 {
		return nil
	}

	cell := func(row []string, i int) string {
		if i >= len(row) {
			return ""
		}
		s := strings.ReplaceAll(row[i], "\n", " ")
		if t.MaxCellWidth > 0 {
			s = runewidth.Truncate(s, t.MaxCellWidth, "…")
		}
		return s
	}

	widths := make([]int, cols)
	all := append([][]string{t.Headers}, t.Rows...)
	for _, row := range all {
		for i := range widths {
			widths[i] = max(widths[i], runewidth.StringWidth(cell(row, i)))
		}
	}

	rule := make([]string, cols)
	for i, wd := range widths {
		rule[i] = strings.Repeat("-", wd)
	}

	lines := make([][]string, 0, len(all)+1)
	if len(t.Headers) > 0 {
		lines = append(lines, t.Headers, rule)
	}
	lines = append(lines, t.Rows...)

	for _, row := range lines {
		parts := make([]string, cols)
		for i := range parts {
			parts[i] = runewidth.FillRight(cell(row, i), widths[i])
		}
		line := strings.TrimRight(strings.Join(parts, columnGap), " ")
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

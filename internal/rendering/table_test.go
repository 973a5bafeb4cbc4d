package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTableAlignsWideRunes(t *testing.T) {
	tbl := NewTable("SPEAKER", "HITS")
	tbl.AddRow("민수", "3")
	tbl.AddRow("Alice", "10")

	var buf bytes.Buffer
	if err := tbl.Render(&buf); err != nil {
		t.Fatal(err)
	}

	want := "SPEAKER  HITS\n" +
		"-------  ----\n" +
		"민수     3\n" +
		"Alice    10\n"
	if buf.String() != want {
		t.Errorf("Render() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestTableTruncatesAndFlattens(t *testing.T) {
	tbl := NewTable("MESSAGE")
	tbl.MaxCellWidth = 6
	tbl.AddRow("가나다라마바사")
	tbl.AddRow("a\nb")

	var buf bytes.Buffer
	if err := tbl.Render(&buf); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines: %q", len(lines), lines)
	}
	if w := runewidth.StringWidth(lines[2]); w > 6 {
		t.Errorf("truncated cell is %d cells wide: %q", w, lines[2])
	}
	if lines[3] != "a b" {
		t.Errorf("newlines should be flattened, got %q", lines[3])
	}
}

func TestTableMissingCells(t *testing.T) {
	tbl := NewTable("A", "B", "C")
	tbl.AddRow("x")

	var buf bytes.Buffer
	if err := tbl.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "x\n") {
		t.Errorf("short rows should render with empty cells: %q", buf.String())
	}

	if err := NewTable().Render(&buf); err != nil {
		t.Errorf("empty table should render nothing, got %v", err)
	}
}

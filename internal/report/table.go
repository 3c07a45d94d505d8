// Package report parses the text reports printed by backend tooling.
//
// Every parser is total: malformed lines and fields are dropped, never reported.
package report

import (
	"strings"
	"unicode"
)

type column struct {
	name  string
	start int
	end   int // -1 runs to end of line
}

// ParseTable reads a fixed-width table. The first non-blank line is the header;
// a run of two or more spaces separates header cells. Rows are sliced at the
// header's column boundaries and the last column always runs to end of line.
func ParseTable(raw string) []map[string]string {
	lines := splitLines(raw)

	headerAt := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil
	}

	columns := inferColumns([]rune(lines[headerAt]))
	if len(columns) == 0 {
		return nil
	}

	rows := make([]map[string]string, 0, len(lines)-headerAt-1)
	for _, line := range lines[headerAt+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, sliceRow([]rune(line), columns))
	}

	return rows
}

func inferColumns(header []rune) []column {
	var starts []int
	for i, r := range header {
		if unicode.IsSpace(r) {
			continue
		}
		if len(starts) == 0 || (i >= 2 && header[i-1] == ' ' && header[i-2] == ' ') {
			starts = append(starts, i)
		}
	}

	columns := make([]column, 0, len(starts))
	for i, start := range starts {
		end := -1
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		columns = append(columns, column{
			name:  columnName(sliceRunes(header, start, end)),
			start: start,
			end:   end,
		})
	}

	return columns
}

func columnName(cell string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(cell)), " ", "_")
}

func sliceRow(line []rune, columns []column) map[string]string {
	row := make(map[string]string, len(columns))
	for _, col := range columns {
		row[col.name] = strings.TrimSpace(sliceRunes(line, col.start, col.end))
	}
	return row
}

func sliceRunes(line []rune, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end < 0 || end > len(line) {
		end = len(line)
	}
	return string(line[start:end])
}

func splitLines(raw string) []string {
	return strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
}

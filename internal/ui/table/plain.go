package table

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// PrintJSONResults outputs results as a JSON array of objects.
func PrintJSONResults(w io.Writer, colNames []string, rows [][]string) error {
	results := make([]map[string]any, len(rows))

	for i, row := range rows {
		obj := make(map[string]any, len(colNames))
		for j, colName := range colNames {
			if j < len(row) {
				obj[colName] = row[j]
			} else {
				obj[colName] = nil
			}
		}
		results[i] = obj
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(results)
}

// PrintPlainTable prints an aligned table for non-TTY output. Widths are
// measured in terminal cells so emoji columns line up.
func PrintPlainTable(w io.Writer, colNames []string, rows [][]string) {
	if len(colNames) == 0 {
		fmt.Fprintln(w, "(0 rows)")
		return
	}

	colWidths := make([]int, len(colNames))
	for i, name := range colNames {
		colWidths[i] = runewidth.StringWidth(name)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < len(colWidths) {
				colWidths[i] = max(colWidths[i], runewidth.StringWidth(val))
			}
		}
	}

	writeRow := func(vals []string) {
		var sb strings.Builder
		for i, val := range vals {
			if i >= len(colWidths) {
				break
			}
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(pad(val, colWidths[i]))
		}
		fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
	}

	writeRow(colNames)

	seps := make([]string, len(colWidths))
	for i, cw := range colWidths {
		seps[i] = strings.Repeat("─", cw)
	}
	writeRow(seps)

	for _, row := range rows {
		writeRow(row)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "(%d rows)\n", len(rows))
}

// pad adds spaces to reach the desired cell width (no truncation).
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Truncate shortens a string to fit width cells, adding "..." if needed.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

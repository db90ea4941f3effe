// Package diff renders line diffs between a file's original and repaired
// text, used for dry-run previews.
package diff

import (
	"fmt"
	"strings"

	"github.com/imgajeed76/mojifix/internal/ui/styles"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Hunk is a contiguous group of changed lines with surrounding context.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Line is one line of a hunk.
type Line struct {
	Type    LineType
	Content string
}

// LineType classifies a diff line.
type LineType int

const (
	LineContext LineType = iota
	LineAdd
	LineDelete
)

// GenerateHunks computes hunks between oldContent and newContent with the
// given number of context lines.
func GenerateHunks(oldContent, newContent string, contextLines int) []Hunk {
	if oldContent == newContent {
		return nil
	}
	if contextLines < 0 {
		contextLines = 0
	}

	dmp := diffmatchpatch.New()

	// Line-mode diff: each line is mapped to a single rune first.
	oldRunes, newRunes, lineArray := dmp.DiffLinesToRunes(oldContent, newContent)
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var lines []Line
	for _, d := range diffs {
		parts := strings.Split(d.Text, "\n")
		for i, text := range parts {
			// Skip empty last line from split
			if i == len(parts)-1 && text == "" {
				continue
			}

			var lt LineType
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				lt = LineContext
			case diffmatchpatch.DiffInsert:
				lt = LineAdd
			case diffmatchpatch.DiffDelete:
				lt = LineDelete
			}
			lines = append(lines, Line{Type: lt, Content: text})
		}
	}

	return groupIntoHunks(lines, contextLines)
}

// groupIntoHunks groups diff lines into hunks with context
func groupIntoHunks(lines []Line, contextLines int) []Hunk {
	var hunks []Hunk
	var current *Hunk

	oldLine, newLine := 1, 1
	lastChange := -1

	for i, line := range lines {
		isChange := line.Type != LineContext

		if isChange {
			// Close the open hunk if the gap since its last change is too wide.
			if current != nil && i-lastChange-1 > contextLines*2 {
				trailing := min(contextLines, i-lastChange-1)
				appendContext(current, lines[lastChange+1:lastChange+1+trailing])
				hunks = append(hunks, *current)
				current = nil
			}

			if current == nil {
				start := max(i-contextLines, lastChange+1, 0)
				lead := lines[start:i]
				current = &Hunk{
					OldStart: oldLine - len(lead),
					NewStart: newLine - len(lead),
				}
				appendContext(current, lead)
			} else {
				appendContext(current, lines[lastChange+1:i])
			}

			current.Lines = append(current.Lines, line)
			if line.Type == LineAdd {
				current.NewCount++
			} else {
				current.OldCount++
			}
			lastChange = i
		}

		switch line.Type {
		case LineContext:
			oldLine++
			newLine++
		case LineAdd:
			newLine++
		case LineDelete:
			oldLine++
		}
	}

	if current != nil {
		trailing := min(contextLines, len(lines)-lastChange-1)
		appendContext(current, lines[lastChange+1:lastChange+1+trailing])
		hunks = append(hunks, *current)
	}

	return hunks
}

func appendContext(h *Hunk, ctx []Line) {
	for _, l := range ctx {
		h.Lines = append(h.Lines, l)
		h.OldCount++
		h.NewCount++
	}
}

// Format renders hunks for path in unified diff style.
func Format(path string, hunks []Hunk, noColor bool) string {
	var sb strings.Builder

	paint := func(style func(string) string, s string) string {
		if noColor {
			return s
		}
		return style(s)
	}

	sb.WriteString(paint(styles.Strong, fmt.Sprintf("--- a/%s", path)) + "\n")
	sb.WriteString(paint(styles.Strong, fmt.Sprintf("+++ b/%s", path)) + "\n")

	for _, hunk := range hunks {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OldStart, hunk.OldCount,
			hunk.NewStart, hunk.NewCount)
		sb.WriteString(paint(styles.Hunk, header) + "\n")

		for _, line := range hunk.Lines {
			switch line.Type {
			case LineContext:
				sb.WriteString(paint(styles.Mute, " "+line.Content) + "\n")
			case LineAdd:
				sb.WriteString(paint(styles.Green, "+"+line.Content) + "\n")
			case LineDelete:
				sb.WriteString(paint(styles.Red, "-"+line.Content) + "\n")
			}
		}
	}

	return sb.String()
}

package styles

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Symbols - Unicode with ASCII fallbacks
const (
	SymbolSuccess = "✓"
	SymbolWarning = "⚠"
)

var forceNoColor atomic.Bool

// SetNoColor disables colors for the rest of the process (--no-color).
func SetNoColor(v bool) {
	forceNoColor.Store(v)
}

// NoColor checks if colors should be disabled
func NoColor() bool {
	return forceNoColor.Load() || os.Getenv("NO_COLOR") != "" || os.Getenv("MOJIFIX_NO_COLOR") != ""
}

// IsAccessible checks if accessibility mode is enabled
// When enabled: no animations, no spinner, no interactive table
func IsAccessible() bool {
	return os.Getenv("MOJIFIX_ACCESSIBLE") == "1" || os.Getenv("MOJIFIX_ACCESSIBLE") == "true"
}

// Base text styles
var Bold = lipgloss.NewStyle().Bold(true)

// Semantic styles - use these instead of raw colors
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	InfoStyle    = lipgloss.NewStyle().Foreground(Info)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)

	CorruptStyle  = lipgloss.NewStyle().Foreground(ColorCorrupt)
	RepairedStyle = lipgloss.NewStyle().Foreground(ColorRepaired)
	IDStyle       = lipgloss.NewStyle().Foreground(ColorID)

	DiffAddLine    = lipgloss.NewStyle().Foreground(ColorDiffAdd)
	DiffRemoveLine = lipgloss.NewStyle().Foreground(ColorDiffRemove)
	DiffHunkHeader = lipgloss.NewStyle().Foreground(ColorDiffHunk)

	// Interactive TUI
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(BgBorder).
			BorderBottom(true)
	SelectedStyle = lipgloss.NewStyle().
			Background(BgHighlight).
			Foreground(TextPrimary)

	HelpKey = lipgloss.NewStyle().Foreground(Accent)
)

// ═══════════════════════════════════════════════════════════════════════════
// Render functions - centralized formatting with NoColor support
// ═══════════════════════════════════════════════════════════════════════════

// render applies a style if colors are enabled
func render(s lipgloss.Style, text string) string {
	if NoColor() {
		return text
	}
	return s.Render(text)
}

// ID formats a run ID (always lowercase, optionally short)
func ID(id string, short bool) string {
	id = strings.ToLower(id)
	if short && len(id) > 7 {
		id = id[len(id)-7:]
	}
	return render(IDStyle, id)
}

// Corrupt shows a corrupted sequence with its invisible characters escaped.
func Corrupt(s string) string {
	return render(CorruptStyle, Escape(s))
}

// Repaired formats replacement text.
func Repaired(s string) string {
	return render(RepairedStyle, s)
}

// Escape quotes s, escaping control and non-printing characters, so that
// sequences like "â\u009c\u0085" are readable in a terminal.
func Escape(s string) string {
	q := fmt.Sprintf("%+q", s)
	return q[1 : len(q)-1]
}

// ═══════════════════════════════════════════════════════════════════════════
// Message formatters - structured output
// ═══════════════════════════════════════════════════════════════════════════

// SuccessMsg formats a success message with checkmark
func SuccessMsg(msg string) string {
	symbol := SymbolSuccess
	if NoColor() {
		symbol = "+"
	}
	return fmt.Sprintf("%s %s", render(SuccessStyle, symbol), msg)
}

// ErrorMsg formats an error message
func ErrorMsg(title string) string {
	return render(ErrorStyle, "Error: "+title)
}

// WarningMsg formats a warning message
func WarningMsg(msg string) string {
	symbol := SymbolWarning
	if NoColor() {
		symbol = "!"
	}
	return fmt.Sprintf("%s %s", render(WarningStyle, symbol), msg)
}

// InfoMsg formats an info message
func InfoMsg(msg string) string {
	return render(InfoStyle, msg)
}

// SectionHeader formats a section header
func SectionHeader(title string) string {
	return render(Bold, title)
}

// ═══════════════════════════════════════════════════════════════════════════
// Color functions - simple string coloring (non-printf versions)
// ═══════════════════════════════════════════════════════════════════════════

func Strong(s string) string      { return render(Bold, s) }
func Hunk(s string) string        { return render(DiffHunkHeader, s) }
func Green(s string) string       { return render(DiffAddLine, s) }
func Red(s string) string         { return render(DiffRemoveLine, s) }
func Mute(s string) string        { return render(MutedStyle, s) }
func SuccessText(s string) string { return render(SuccessStyle, s) }
func WarningText(s string) string { return render(WarningStyle, s) }
func ErrorText(s string) string   { return render(ErrorStyle, s) }

// Printf-style
func Mutef(format string, a ...any) string { return Mute(fmt.Sprintf(format, a...)) }

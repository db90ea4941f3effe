package styles

import "github.com/charmbracelet/lipgloss"

// Color palette, dark mode optimized, semantic colors
var (
	Accent  = lipgloss.Color("#7C3AED") // violet-500 - highlights, interactive
	Success = lipgloss.Color("#10B981") // emerald-500 - success, repaired text
	Warning = lipgloss.Color("#F59E0B") // amber-500 - warnings, lint findings
	Error   = lipgloss.Color("#EF4444") // red-500 - errors, corrupted text
	Info    = lipgloss.Color("#3B82F6") // blue-500 - info, run IDs
	Muted   = lipgloss.Color("#6B7280") // gray-500 - secondary text

	TextPrimary = lipgloss.Color("#F9FAFB") // gray-50 - main text
	BgHighlight = lipgloss.Color("#1F2937") // gray-800 - selected rows
	BgBorder    = lipgloss.Color("#374151") // gray-700 - borders
)

// Semantic color aliases for clarity
var (
	ColorCorrupt  = Error   // Corrupted sequences
	ColorRepaired = Success // Replacement text
	ColorID       = Info    // Run IDs and hashes

	ColorDiffAdd    = Success
	ColorDiffRemove = Error
	ColorDiffHunk   = Accent
)

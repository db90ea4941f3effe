package table

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	btable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/imgajeed76/mojifix/internal/ui/styles"
	"github.com/mattn/go-runewidth"
)

const (
	maxColWidth = 40
	chromeLines = 4 // title, search/status line, help line, border
)

// Exit mode: what to do after quitting the TUI
type exitMode int

const (
	exitNormal exitMode = iota
	exitJSON
	exitRaw
	exitPlain
)

// ═══════════════════════════════════════════════════════════════════════════
// Key Bindings
// ═══════════════════════════════════════════════════════════════════════════

type tableKeyMap struct {
	Search      key.Binding
	Quit        key.Binding
	ExportJSON  key.Binding
	ExportRaw   key.Binding
	ExportPlain key.Binding
}

var tableKeys = tableKeyMap{
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	ExportJSON:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "print as JSON")),
	ExportRaw:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "print raw")),
	ExportPlain: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "print table")),
}

// ═══════════════════════════════════════════════════════════════════════════
// Model
// ═══════════════════════════════════════════════════════════════════════════

type tableModel struct {
	title     string
	rows      [][]string
	table     btable.Model
	search    textinput.Model
	searching bool
	exitMode  exitMode
}

// RunTableTUI launches the interactive table viewer. It blocks until the
// user quits. If the user requests an export (J/R/P), the data is printed
// to stdout after the TUI exits.
func RunTableTUI(title string, columns []string, rows [][]string) error {
	m := newTableModel(title, columns, rows)

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := finalModel.(tableModel); ok {
		switch fm.exitMode {
		case exitJSON:
			return PrintJSONResults(os.Stdout, columns, rows)
		case exitRaw:
			for _, row := range rows {
				fmt.Println(strings.Join(row, "\t"))
			}
		case exitPlain:
			PrintPlainTable(os.Stdout, columns, rows)
		}
	}

	return nil
}

func newTableModel(title string, columns []string, rows [][]string) tableModel {
	cols := make([]btable.Column, len(columns))
	for i, name := range columns {
		width := runewidth.StringWidth(name)
		for _, row := range rows {
			if i < len(row) {
				width = max(width, runewidth.StringWidth(row[i]))
			}
		}
		cols[i] = btable.Column{Title: name, Width: min(width, maxColWidth)}
	}

	st := btable.DefaultStyles()
	st.Header = styles.HeaderStyle
	st.Selected = styles.SelectedStyle

	t := btable.New(
		btable.WithColumns(cols),
		btable.WithRows(toRows(rows)),
		btable.WithFocused(true),
		btable.WithHeight(min(len(rows)+1, 20)),
		btable.WithStyles(st),
	)

	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = 100
	ti.Width = 30

	return tableModel{title: title, rows: rows, table: t, search: ti}
}

func toRows(rows [][]string) []btable.Row {
	out := make([]btable.Row, len(rows))
	for i, r := range rows {
		out[i] = btable.Row(r)
	}
	return out
}

// filterRows keeps rows where any cell contains query (case-insensitive).
func filterRows(rows [][]string, query string) [][]string {
	if query == "" {
		return rows
	}
	q := strings.ToLower(query)
	var out [][]string
	for _, row := range rows {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), q) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// ═══════════════════════════════════════════════════════════════════════════
// Bubble Tea Interface
// ═══════════════════════════════════════════════════════════════════════════

func (m tableModel) Init() tea.Cmd {
	return nil
}

func (m tableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-chromeLines, 3))
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch {
		case key.Matches(msg, tableKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, tableKeys.Search):
			m.searching = true
			return m, m.search.Focus()
		case key.Matches(msg, tableKeys.ExportJSON):
			m.exitMode = exitJSON
			return m, tea.Quit
		case key.Matches(msg, tableKeys.ExportRaw):
			m.exitMode = exitRaw
			return m, tea.Quit
		case key.Matches(msg, tableKeys.ExportPlain):
			m.exitMode = exitPlain
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m tableModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.searching = false
		m.table.SetRows(toRows(m.rows))
		return m, nil
	case "enter":
		m.search.Blur()
		m.searching = false
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.table.SetRows(toRows(filterRows(m.rows, m.search.Value())))
	m.table.SetCursor(0)
	return m, cmd
}

func (m tableModel) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Strong(m.title))
	sb.WriteString(styles.Mute(fmt.Sprintf("  (%d rows)", len(m.rows))))
	sb.WriteString("\n")
	sb.WriteString(m.table.View())
	sb.WriteString("\n")

	if m.searching || m.search.Value() != "" {
		sb.WriteString(m.search.View())
		sb.WriteString("\n")
	}

	help := []key.Binding{tableKeys.Search, tableKeys.ExportJSON, tableKeys.ExportPlain, tableKeys.ExportRaw, tableKeys.Quit}
	parts := make([]string, len(help))
	for i, b := range help {
		h := b.Help()
		parts[i] = styles.HelpKey.Render(h.Key) + " " + styles.Mute(h.Desc)
	}
	sb.WriteString(strings.Join(parts, "  "))

	return sb.String()
}

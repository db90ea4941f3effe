// Package table provides output formatters for tabular results: an
// interactive TUI viewer, plain aligned tables, JSON and raw tab-separated
// output.
//
// It is used by `mojifix table list`, `mojifix check` and `mojifix history`.
package table

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/imgajeed76/mojifix/internal/ui/styles"
	"golang.org/x/term"
)

// DisplayOptions controls how results are rendered.
type DisplayOptions struct {
	// JSON outputs results as a JSON array of objects.
	JSON bool
	// Raw outputs results as tab-separated values (for piping).
	Raw bool
	// NoPager forces plain table output even on a TTY.
	NoPager bool
	// Out receives non-interactive output. Defaults to os.Stdout; the TUI
	// is only used when Out is a terminal.
	Out io.Writer
}

// DisplayResults picks the right output mode based on options and environment,
// then renders the given columns and rows. The title is shown in the
// interactive TUI header; for non-interactive modes it is ignored.
func DisplayResults(title string, columns []string, rows [][]string, opts DisplayOptions) error {
	w := opts.Out
	if w == nil {
		w = os.Stdout
	}
	isTTY := false
	if f, ok := w.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return display(w, isTTY, title, columns, rows, opts)
}

func display(w io.Writer, isTTY bool, title string, columns []string, rows [][]string, opts DisplayOptions) error {
	if opts.Raw {
		for _, row := range rows {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return nil
	}

	if opts.JSON {
		return PrintJSONResults(w, columns, rows)
	}

	if !isTTY || opts.NoPager || styles.IsAccessible() || len(rows) == 0 {
		PrintPlainTable(w, columns, rows)
		return nil
	}

	return RunTableTUI(title, columns, rows)
}

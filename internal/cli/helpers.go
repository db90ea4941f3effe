package cli

import (
	"context"
	"fmt"

	"github.com/imgajeed76/mojifix/internal/config"
	"github.com/imgajeed76/mojifix/internal/db"
	"github.com/imgajeed76/mojifix/internal/repair"
	"github.com/imgajeed76/mojifix/internal/textio"
	"github.com/imgajeed76/mojifix/internal/ui"
	"github.com/imgajeed76/mojifix/internal/util"
	"github.com/spf13/cobra"
)

// runEnv is the resolved configuration for a fix or check run: the config
// file, then environment, then command-line flags.
type runEnv struct {
	cfg       *config.Config
	table     repair.Table
	tableName string
	source    textio.Encoding
	dest      textio.Encoding
}

// addTableFlags adds the flags shared by commands that use a substitution table.
func addTableFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("table", "t", "", "TOML substitution table (default: config table.path or built-in)")
	cmd.Flags().String("from", "", "Encoding used to read files (default: config encoding.source)")
}

// loadRunEnv loads config and applies --table, --from and (if defined) --to.
func loadRunEnv(cmd *cobra.Command) (*runEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, util.NewError("Failed to load config").
			WithContext(config.Path()).
			Wrap(err)
	}

	if cmd.Flags().Changed("table") {
		cfg.Table.Path, _ = cmd.Flags().GetString("table")
	}
	if cmd.Flags().Changed("from") {
		cfg.Encoding.Source, _ = cmd.Flags().GetString("from")
	}
	if f := cmd.Flags().Lookup("to"); f != nil && f.Changed {
		cfg.Encoding.Dest = f.Value.String()
	}

	table, name, err := config.LoadTable(cfg.Table.Path)
	if err != nil {
		return nil, err
	}
	source, err := textio.LookupEncoding(cfg.Encoding.Source)
	if err != nil {
		return nil, err
	}
	dest, err := textio.LookupEncoding(cfg.Encoding.Dest)
	if err != nil {
		return nil, err
	}

	util.Logger().Debug("run configuration",
		"table", name, "rules", len(table), "source", source, "dest", dest)

	return &runEnv{
		cfg:       cfg,
		table:     table,
		tableName: name,
		source:    source,
		dest:      dest,
	}, nil
}

// openJournal opens the journal at url. An empty url returns a nil store.
// Caller must Close a non-nil store.
func openJournal(ctx context.Context, journalURL string) (db.Store, error) {
	if journalURL == "" {
		return nil, nil
	}
	// Spinner only on a terminal; a remote database can take a moment.
	var sp *ui.Spinner
	if ui.IsTTY() {
		sp = ui.NewSpinner("Opening repair journal")
		sp.Start()
	}
	store, err := db.Open(ctx, journalURL)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return nil, err
	}
	util.Logger().Debug("journal open", "url", util.RedactURL(journalURL))
	return store, nil
}

// requireFiles reports a missing <file> argument with an example.
func requireFiles(args []string, example string) error {
	if len(args) == 0 {
		return util.MissingArgumentError("file", example)
	}
	return nil
}

// closeStore closes a journal opened with openJournal, logging failures.
func closeStore(store db.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		util.Logger().Warn("failed to close journal", "err", err)
	}
}

// plural returns "1 file" / "2 files".
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

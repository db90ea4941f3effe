package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/imgajeed76/mojifix/internal/repair"
	"github.com/imgajeed76/mojifix/internal/util"
)

// TableFile is the on-disk form of a substitution table:
//
//	name = "admin page emoji"
//
//	[[rule]]
//	name = "checkmark"
//	from = "â\u009c\u0085"
//	to   = "✅"
//
// Rules are applied in file order.
type TableFile struct {
	Name  string        `toml:"name"`
	Rules []repair.Rule `toml:"rule"`
}

// BuiltinTableName labels the built-in table in output.
const BuiltinTableName = "built-in"

// LoadTable reads and validates a table file. An empty path returns the
// built-in table.
func LoadTable(path string) (repair.Table, string, error) {
	if path == "" {
		return repair.DefaultTable(), BuiltinTableName, nil
	}

	var tf TableFile
	if _, err := toml.DecodeFile(path, &tf); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", util.ResourceNotFoundError(path, err)
		}
		return nil, "", util.InvalidTableError(path, err)
	}

	table := repair.Table(tf.Rules)
	if err := table.Validate(); err != nil {
		return nil, "", util.InvalidTableError(path, err)
	}

	name := tf.Name
	if name == "" {
		name = path
	}
	return table, name, nil
}

// WriteTable writes table as a TOML table file to w.
func WriteTable(w io.Writer, name string, table repair.Table) error {
	tf := TableFile{Name: name, Rules: table}
	if err := toml.NewEncoder(w).Encode(tf); err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	return nil
}

// SaveTable writes table to path.
func SaveTable(path, name string, table repair.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteTable(f, name, table)
}

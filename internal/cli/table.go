package cli

import (
	"fmt"
	"strconv"

	"github.com/imgajeed76/mojifix/internal/config"
	"github.com/imgajeed76/mojifix/internal/repair"
	"github.com/imgajeed76/mojifix/internal/ui/styles"
	"github.com/imgajeed76/mojifix/internal/ui/table"
	"github.com/imgajeed76/mojifix/internal/util"
	"github.com/spf13/cobra"
)

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Inspect and build substitution tables",
		Long: `Inspect and build substitution tables.

A table is an ordered list of rules; each rule replaces every occurrence
of its corrupted pattern with the intended text. Custom tables are TOML:

  name = "my fixes"

  [[rule]]
  name = "checkmark"
  from = "â\u009c\u0085"
  to   = "✅"

Subcommands:
  list     Show the active table
  lint     Check the active table for unreachable or unstable rules
  derive   Generate rules for characters corrupted through Latin-1/Windows-1252
  export   Write the active table as TOML`,
	}

	cmd.PersistentFlags().StringP("table", "t", "", "TOML substitution table (default: config table.path or built-in)")

	cmd.AddCommand(
		newTableListCmd(),
		newTableLintCmd(),
		newTableDeriveCmd(),
		newTableExportCmd(),
	)

	return cmd
}

// loadActiveTable resolves --table, MOJIFIX_TABLE and config table.path.
func loadActiveTable(cmd *cobra.Command) (repair.Table, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	if cmd.Flags().Changed("table") {
		cfg.Table.Path, _ = cmd.Flags().GetString("table")
	}
	return config.LoadTable(cfg.Table.Path)
}

func newTableListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the rules of the active table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, name, err := loadActiveTable(cmd)
			if err != nil {
				return err
			}

			jsonOutput, _ := cmd.Flags().GetBool("json")
			raw, _ := cmd.Flags().GetBool("raw")
			noPager, _ := cmd.Flags().GetBool("no-pager")

			columns := []string{"#", "name", "from", "to"}
			rows := make([][]string, len(t))
			for i, rule := range t {
				rows[i] = []string{strconv.Itoa(i + 1), rule.Name, styles.Escape(rule.From), rule.To}
			}

			return table.DisplayResults(fmt.Sprintf("%s: %s", name, plural(len(t), "rule")), columns, rows, table.DisplayOptions{
				JSON:    jsonOutput,
				Raw:     raw,
				NoPager: noPager,
				Out:     cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().Bool("json", false, "Output as JSON")
	cmd.Flags().Bool("raw", false, "Output as tab-separated values (for piping)")
	cmd.Flags().Bool("no-pager", false, "Plain table output, no interactive viewer")

	return cmd
}

func newTableLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Check the active table for problems",
		Long: `Check the active table for rules that can never match, rules shadowed
by an earlier rule, and replacements that a second run would change again.

Exits with status 1 if any rule has an empty pattern.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, name, err := loadActiveTable(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			issues := t.Lint()
			if len(issues) == 0 {
				fmt.Fprintln(out, styles.SuccessMsg(fmt.Sprintf("%s: %s, no issues", name, plural(len(t), "rule"))))
				return nil
			}

			for _, is := range issues {
				msg := fmt.Sprintf("rule %d (%s): %s", is.Rule+1, t[is.Rule].Name, is.Message)
				if is.Severity == repair.SeverityError {
					fmt.Fprintln(out, styles.ErrorMsg(msg))
				} else {
					fmt.Fprintln(out, styles.WarningMsg(msg))
				}
			}

			if repair.HasErrors(issues) {
				return util.NewError("Substitution table has errors").
					WithContext(name).
					WithSuggestions("mojifix table list  # Inspect the rules").
					Wrap(util.ErrInvalidTable)
			}
			return nil
		},
	}
}

func newTableDeriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive <text>...",
		Short: "Generate rules for the given characters",
		Long: `Generate substitution rules by corrupting each argument the way a
Latin-1 (or Windows-1252) round trip does. The table is written as TOML.

Examples:
  mojifix table derive ✅ 📊 —
  mojifix table derive --via latin1 --via windows-1252 ✅ > fixes.toml
  mojifix fix --table fixes.toml app/page.tsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			via, _ := cmd.Flags().GetStringSlice("via")
			name, _ := cmd.Flags().GetString("name")

			t, err := repair.DeriveTable(args, via...)
			if err != nil {
				return util.NewError("Cannot derive rules").
					WithMessage(err.Error()).
					WithSuggestions("mojifix table derive --via windows-1252 ✅").
					Wrap(err)
			}
			if len(t) == 0 {
				return util.NewError("Nothing to derive").
					WithMessage("ASCII text is not changed by a Latin-1 round trip")
			}
			return config.WriteTable(cmd.OutOrStdout(), name, t)
		},
	}

	cmd.Flags().StringSlice("via", []string{repair.Latin1}, "Charset the text was misread as (iso-8859-1, windows-1252)")
	cmd.Flags().String("name", "derived", "Table name")

	return cmd
}

func newTableExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the active table as TOML",
		Long: `Write the active table as TOML to stdout or to the given file.
Exporting the built-in table is a starting point for a custom one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, name, err := loadActiveTable(cmd)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return config.WriteTable(cmd.OutOrStdout(), name, t)
			}
			if err := config.SaveTable(args[0], name, t); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles.SuccessMsg(fmt.Sprintf("Wrote %s to %s", plural(len(t), "rule"), args[0])))
			return nil
		},
	}
}

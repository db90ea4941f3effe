package cli

import (
	"fmt"
	"strings"

	"github.com/imgajeed76/mojifix/internal/config"
	"github.com/imgajeed76/mojifix/internal/ui/styles"
	"github.com/imgajeed76/mojifix/internal/util"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <key> [value]",
		Short: "Get and set options",
		Long: fmt.Sprintf(`Get and set mojifix options.

Options are stored in %s
(override the location with %s). Command-line flags take precedence for a
single run; %s and %s override the file.

Available keys:

%s

Examples:
  mojifix config encoding.dest              # Get value
  mojifix config encoding.dest utf-8        # Write files without a BOM
  mojifix config journal.url sqlite:~/.mojifix/runs.db
  mojifix config --list                     # List all options`,
			config.Path(), config.EnvConfig, config.EnvTable, config.EnvJournalURL,
			config.GenerateHelpText()),
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}

	cmd.Flags().BoolP("list", "l", false, "List all configuration")

	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	listAll, _ := cmd.Flags().GetBool("list")
	out := cmd.OutOrStdout()
	path := config.Path()

	if listAll {
		// List effective values, including environment overrides
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		for _, key := range config.ListKeys() {
			value, _ := cfg.GetValue(key)
			fmt.Fprintf(out, "%s=%s\n", key, value)
		}
		return nil
	}

	if len(args) == 0 {
		return util.MissingArgumentError("key", "mojifix config --list")
	}

	key := strings.ToLower(args[0])

	// Get value
	if len(args) == 1 {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		value, ok := cfg.GetValue(key)
		if !ok {
			return unknownKeyError(key)
		}
		fmt.Fprintln(out, value)
		return nil
	}

	// Set value. Read the file without environment overrides so they are
	// not persisted.
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if _, ok := cfg.GetValue(key); !ok {
		return unknownKeyError(key)
	}
	if err := cfg.SetValue(key, args[1]); err != nil {
		return util.NewError(fmt.Sprintf("Invalid value for %s", key)).
			WithMessage(err.Error()).
			Wrap(err)
	}
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	util.Logger().Debug("config saved", "key", key, "path", path)
	fmt.Fprintln(out, styles.SuccessMsg(fmt.Sprintf("Set %s", key)))
	return nil
}

func unknownKeyError(key string) error {
	return util.NewError(fmt.Sprintf("Unknown config key: %s", key)).
		WithMessage("Available keys: " + strings.Join(config.ListKeys(), ", ")).
		WithSuggestions("mojifix config --list")
}

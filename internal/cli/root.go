package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/imgajeed76/mojifix/internal/ui/styles"
	"github.com/imgajeed76/mojifix/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mojifix",
		Short: "Repair mojibake emoji and punctuation in text files",
		Long: `mojifix repairs text that was encoded as UTF-8, decoded as Latin-1 and
saved again, turning "✅" into "âœ…" and "—" into "â€”".

Files are read, every sequence from the substitution table is replaced
with its intended character, and the result is written back (by default
as UTF-8 with a byte-order marker).

Examples:
  mojifix fix app/page.tsx                 # Repair in place
  mojifix fix --dry-run src/*.tsx          # Show what would change
  mojifix check app/page.tsx lib/*.ts      # Exit 1 if anything is corrupted
  mojifix table list                       # Show the substitution table`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Version flag template to show more info
	cmd.SetVersionTemplate(fmt.Sprintf("mojifix version %s\n  commit: %s\n  built:  %s\n", Version, CommitSHA, BuildDate))

	// Set up pre-run to handle global flags
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		noColor, _ := cmd.Flags().GetBool("no-color")
		if noColor {
			styles.SetNoColor(true)
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		util.SetVerbose(verbose)
	}

	// Add all subcommands
	cmd.AddCommand(
		newFixCmd(),
		newCheckCmd(),
		newTableCmd(),
		newConfigCmd(),
		newHistoryCmd(),
		newVersionCmd(),
	)

	return cmd
}

// Execute runs the root command. Errors are rendered to stderr here.
func Execute(ctx context.Context) error {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(err)
		return err
	}
	return nil
}

func reportError(err error) {
	// check has already printed its findings
	if errors.Is(err, util.ErrCorruptionFound) {
		return
	}

	// Check if it's a structured FixError
	var fixErr *util.FixError
	if errors.As(err, &fixErr) {
		fmt.Fprintln(os.Stderr, fixErr.Format())
		return
	}

	// Simple error - still format nicely
	fmt.Fprintln(os.Stderr, styles.ErrorMsg(err.Error()))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mojifix version %s\n", Version)
			fmt.Fprintf(out, "  commit: %s\n", CommitSHA)
			fmt.Fprintf(out, "  built:  %s\n", BuildDate)
		},
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/52AnTIMateria812/dirscout/internal/display"
)

// NewCopyCommand creates the 'dirscout copy' subcommand
func NewCopyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "copy PATTERN DEST",
		Short: "Copy files matching a glob pattern into a directory",
		Long: `Copy resolves every file under the root matching PATTERN and copies
each into DEST, preserving the file name. DEST is created if missing.

A single file's failure does not stop the rest; every attempted file
is listed with its outcome.

Examples:
  dirscout copy '*.py' backup/
  dirscout copy 'docs/**/*.md' /tmp/docs`,
		Args: cobra.ExactArgs(2),
		RunE: runCopy,
	}
}

func runCopy(cmd *cobra.Command, args []string) error {
	pattern, dest := args[0], args[1]

	inv, _, err := buildInventory()
	if err != nil {
		return err
	}

	report, err := inv.Copy(pattern, dest)
	if err != nil {
		return fmt.Errorf("copy: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(report.Outcomes) == 0 {
		fmt.Fprintf(out, "No files match %q\n", pattern)
		return nil
	}

	for _, o := range report.Outcomes {
		display.Outcome(out, o.Source, o.Err)
	}
	display.BatchSummary(out, "Copied", report.Succeeded(), report.Failed())
	return nil
}

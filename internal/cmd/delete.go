package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/52AnTIMateria812/dirscout/internal/display"
)

var deleteConfirm bool

// NewDeleteCommand creates the 'dirscout delete' subcommand
func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete PATTERN",
		Short: "Delete files matching a glob pattern (dry run by default)",
		Long: `Delete resolves every file under the root matching PATTERN. Without
--confirm it is a dry run: candidates are listed and nothing is
removed. With --confirm each file is deleted, and one file's failure
does not stop the rest. Directories are never deleted.

Examples:
  dirscout delete '*.tmp'            # dry run
  dirscout delete '*.tmp' --confirm  # actually delete`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().BoolVar(&deleteConfirm, "confirm", false, "Actually delete; without this flag nothing is removed")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	pattern := args[0]

	inv, _, err := buildInventory()
	if err != nil {
		return err
	}

	report, err := inv.Delete(pattern, deleteConfirm)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(report.Outcomes) == 0 {
		fmt.Fprintf(out, "No files match %q\n", pattern)
		return nil
	}

	if report.DryRun {
		fmt.Fprintf(out, "Dry run: %d file(s) would be deleted:\n", len(report.Outcomes))
		for _, o := range report.Outcomes {
			fmt.Fprintf(out, "  %s\n", o.Source)
		}
		display.Note(out, "Re-run with --confirm to delete")
		return nil
	}

	for _, o := range report.Outcomes {
		display.Outcome(out, o.Source, o.Err)
	}
	display.BatchSummary(out, "Deleted", report.Succeeded(), report.Failed())
	return nil
}

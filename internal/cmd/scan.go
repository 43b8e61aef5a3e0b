package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/52AnTIMateria812/dirscout/internal/filelock"
)

var (
	scanOutput string
	scanTopK   int
)

// NewScanCommand creates the 'dirscout scan' subcommand
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the tree and print a statistics report",
		Long: `Scan walks the root directory once and prints a report with file
and directory counts, a per-category breakdown, the largest files,
and any empty directories.

Examples:
  dirscout scan
  dirscout scan --root ./src --top 5
  dirscout scan --output report.txt`,
		Args: cobra.NoArgs,
		RunE: runScan,
	}

	cmd.Flags().StringVarP(&scanOutput, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().IntVar(&scanTopK, "top", 0, "Number of largest files to track (overrides config)")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	inv, cfg, err := buildInventory()
	if err != nil {
		return err
	}

	// --top overrides the config without mutating shared state: a
	// fresh Inventory is built with the requested bound.
	if scanTopK > 0 && scanTopK != cfg.TopLargest {
		cfg.TopLargest = scanTopK
		inv, err = rebuildInventory(cfg)
		if err != nil {
			return err
		}
	}

	if _, err := inv.Scan(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	if scanOutput == "" {
		return inv.Report(cmd.OutOrStdout())
	}

	var sb strings.Builder
	if err := inv.Report(&sb); err != nil {
		return err
	}
	path, err := resolveOutputPath(scanOutput)
	if err != nil {
		return err
	}
	if err := filelock.LockAndWrite(path, []byte(sb.String())); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to: %s\n", path)
	return nil
}

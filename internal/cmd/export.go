package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var exportOutput string

// NewExportCommand creates the 'dirscout export' subcommand
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export scan statistics as JSON",
		Long: `Export scans the root and writes the statistics snapshot as a JSON
document with a fixed schema (total_files, total_dirs, by_category,
largest_files, empty_dirs, plus snapshot metadata).

Examples:
  dirscout export --output stats.json
  dirscout export            # JSON to stdout
  dirscout export --output ~/reports/stats.json`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (empty for stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	inv, _, err := buildInventory()
	if err != nil {
		return err
	}

	if _, err := inv.Scan(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	if exportOutput == "" {
		return inv.WriteJSON(cmd.OutOrStdout())
	}

	path, err := resolveOutputPath(exportOutput)
	if err != nil {
		return err
	}
	if err := inv.ExportJSON(path); err != nil {
		return fmt.Errorf("export to file failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported statistics to: %s\n", path)
	return nil
}

// resolveOutputPath expands a leading ~ and converts the path to
// absolute form. Missing parent directories are created at write time.
func resolveOutputPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("output path cannot be empty")
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	return absPath, nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/52AnTIMateria812/dirscout/internal/inventory"
)

var (
	findPattern  string
	findCategory string
)

// NewFindCommand creates the 'dirscout find' subcommand
func NewFindCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "List files matching a glob pattern and/or category",
		Long: `Find lists files under the root matching a shell-style glob pattern
(*, ?, **), a category (python, config, markdown, ...), or both.
When both are given a file must match both.

Examples:
  dirscout find --pattern '*.py'
  dirscout find --category config
  dirscout find --pattern 'test_*' --category python`,
		Args: cobra.NoArgs,
		RunE: runFind,
	}

	cmd.Flags().StringVarP(&findPattern, "pattern", "p", "", "Glob pattern to match file names against")
	cmd.Flags().StringVarP(&findCategory, "category", "t", "", "Category to restrict matches to")

	return cmd
}

func runFind(cmd *cobra.Command, args []string) error {
	inv, _, err := buildInventory()
	if err != nil {
		return err
	}

	matches, err := inv.Find(inventory.FindQuery{
		Pattern:  findPattern,
		Category: findCategory,
	})
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(matches) == 0 {
		fmt.Fprintln(out, "No matching files")
		return nil
	}
	for _, path := range matches {
		fmt.Fprintln(out, path)
	}
	fmt.Fprintf(out, "\n%d file(s)\n", len(matches))
	return nil
}

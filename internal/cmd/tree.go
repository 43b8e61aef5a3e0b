package cmd

import (
	"github.com/spf13/cobra"
)

var treeDepth int

// NewTreeCommand creates the 'dirscout tree' subcommand
func NewTreeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print a depth-limited tree of the directory structure",
		Long: `Tree renders the directory structure under the root, directories
first, with file sizes. Subtrees deeper than --depth are truncated.

Examples:
  dirscout tree
  dirscout tree --depth 2 --root ./src`,
		Args: cobra.NoArgs,
		RunE: runTree,
	}

	cmd.Flags().IntVarP(&treeDepth, "depth", "d", 3, "Maximum depth to display")

	return cmd
}

func runTree(cmd *cobra.Command, args []string) error {
	inv, _, err := buildInventory()
	if err != nil {
		return err
	}
	return inv.Tree(cmd.OutOrStdout(), treeDepth)
}

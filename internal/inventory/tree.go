package inventory

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/52AnTIMateria812/dirscout/internal/display"
)

// Tree writes a depth-limited textual tree of the directory structure
// to w. Directories sort before files, subtrees below maxDepth are
// truncated with an ellipsis marker, and file sizes are humanized.
// Tree reads the filesystem directly and is independent of scan state.
func (inv *Inventory) Tree(w io.Writer, maxDepth int) error {
	if maxDepth < 1 {
		maxDepth = 1
	}
	if _, err := fmt.Fprintf(w, "%s/\n", filepath.Base(inv.root)); err != nil {
		return err
	}
	return inv.treeLevel(w, inv.root, "", 1, maxDepth)
}

func (inv *Inventory) treeLevel(w io.Writer, dir, prefix string, depth, maxDepth int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		_, werr := fmt.Fprintf(w, "%s└── [unreadable: %v]\n", prefix, err)
		return werr
	}

	visible := entries[:0:0]
	for _, e := range entries {
		if inv.skipName(e.Name(), e.IsDir()) {
			continue
		}
		visible = append(visible, e)
	}

	// Directories first, then lexical order within each group.
	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].IsDir() != visible[j].IsDir() {
			return visible[i].IsDir()
		}
		return visible[i].Name() < visible[j].Name()
	})

	for i, entry := range visible {
		last := i == len(visible)-1
		connector, childPrefix := "├── ", prefix+"│   "
		if last {
			connector, childPrefix = "└── ", prefix+"    "
		}

		if entry.IsDir() {
			if depth >= maxDepth {
				if _, err := fmt.Fprintf(w, "%s%s%s/ ...\n", prefix, connector, entry.Name()); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "%s%s%s/\n", prefix, connector, entry.Name()); err != nil {
				return err
			}
			if err := inv.treeLevel(w, filepath.Join(dir, entry.Name()), childPrefix, depth+1, maxDepth); err != nil {
				return err
			}
			continue
		}

		size := "?"
		if info, err := entry.Info(); err == nil {
			size = display.Size(info.Size())
		}
		if _, err := fmt.Fprintf(w, "%s%s%s (%s)\n", prefix, connector, entry.Name(), size); err != nil {
			return err
		}
	}

	return nil
}

package inventory

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FindQuery filters files by a glob pattern, a category, or both.
// When both are set a file must satisfy both (conjunction). The zero
// query matches every file under the root.
type FindQuery struct {
	// Pattern is a shell-style glob (*, ?, **) matched against the
	// base name, or against the root-relative path when it contains
	// a path separator
	Pattern string
	// Category restricts matches to files classified into it
	Category string
}

// Find walks the tree and returns the root-relative paths of matching
// files, sorted. It performs its own traversal and needs no prior Scan.
// An empty result is not an error.
func (inv *Inventory) Find(q FindQuery) ([]string, error) {
	if q.Pattern != "" {
		if !doublestar.ValidatePattern(q.Pattern) {
			return nil, fmt.Errorf("invalid pattern %q", q.Pattern)
		}
	}

	matches := []string{}
	err := filepath.WalkDir(inv.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are not matches
		}
		if path == inv.root {
			return nil
		}
		if inv.skipName(d.Name(), d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			// Follow symlinks: a link resolving to a regular file is a
			// match candidate, anything else is not.
			info, statErr := os.Stat(path)
			if statErr != nil || !info.Mode().IsRegular() {
				return nil
			}
		}

		rel, err := filepath.Rel(inv.root, path)
		if err != nil {
			return nil
		}

		if q.Pattern != "" && !matchPattern(q.Pattern, rel, d.Name()) {
			return nil
		}
		if q.Category != "" {
			ext := strings.ToLower(filepath.Ext(d.Name()))
			if inv.classify.Classify(ext) != q.Category {
				return nil
			}
		}

		matches = append(matches, rel)
		return nil
	})
	if err != nil {
		return nil, &FilesystemError{Op: "find", Path: inv.root, Err: err}
	}

	sort.Strings(matches)
	return matches, nil
}

// matchPattern applies the glob to the base name for simple patterns,
// and to the root-relative path for patterns with separators or **.
func matchPattern(pattern, rel, name string) bool {
	target := name
	if strings.ContainsRune(pattern, '/') || strings.Contains(pattern, "**") {
		target = filepath.ToSlash(rel)
	}
	ok, err := doublestar.Match(pattern, target)
	return err == nil && ok
}

// resolve returns the absolute paths of files matching pattern, for
// batch operations. An empty pattern matches nothing.
func (inv *Inventory) resolve(pattern string) ([]string, error) {
	if pattern == "" {
		return []string{}, nil
	}
	rels, err := inv.Find(FindQuery{Pattern: pattern})
	if err != nil {
		return nil, err
	}
	abs := make([]string, len(rels))
	for i, rel := range rels {
		abs[i] = filepath.Join(inv.root, rel)
	}
	return abs, nil
}

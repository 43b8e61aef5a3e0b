package inventory

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Scan walks the entire subtree once and returns a fresh ScanResult.
// Directories increment the dir count and are recorded when empty;
// files are counted, classified by extension and size-aggregated.
// Unreadable entries are collected into ScanResult.Errors and do not
// abort the walk. A failed Scan leaves the previous snapshot in place.
func (inv *Inventory) Scan() (*ScanResult, error) {
	started := time.Now()

	// The root was a directory at construction time but may have
	// vanished since; a failed scan must not touch the prior snapshot.
	info, err := os.Stat(inv.root)
	if err != nil {
		return nil, &FilesystemError{Op: "scan", Path: inv.root, Err: err}
	}
	if !info.IsDir() {
		return nil, &FilesystemError{Op: "scan", Path: inv.root, Err: errNotDirectory}
	}

	result := &ScanResult{
		ScanID:      uuid.NewString(),
		Root:        inv.root,
		ByCategory:  make(map[string]CategoryStats),
		ByExtension: make(map[string]int),
		EmptyDirs:   []string{},
	}

	largest := newTopList(inv.topLargest)

	err = filepath.WalkDir(inv.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("access %s: %v", path, err))
			return nil
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

		rel, err := filepath.Rel(inv.root, path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("relativize %s: %v", path, err))
			return nil
		}

		depth := strings.Count(rel, string(filepath.Separator)) + 1
		if depth > result.MaxDepth {
			result.MaxDepth = depth
		}

		if d.IsDir() {
			result.TotalDirs++
			empty, err := isEmptyDir(path)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("read dir %s: %v", path, err))
				return nil
			}
			if empty {
				result.EmptyDirs = append(result.EmptyDirs, rel)
			}
			return nil
		}

		var info fs.FileInfo
		if d.Type().IsRegular() {
			info, err = d.Info()
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("stat %s: %v", path, err))
				return nil
			}
		} else {
			// Symlinks count as whatever they resolve to, so a linked
			// file contributes its size and category like any other.
			// WalkDir does not descend into linked directories, so one
			// counts as a single entry. Broken links are errors.
			info, err = os.Stat(path)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("resolve %s: %v", path, err))
				return nil
			}
			if info.IsDir() {
				result.TotalDirs++
				return nil
			}
			if !info.Mode().IsRegular() {
				return nil // fifos, sockets, devices
			}
		}

		result.TotalFiles++
		size := info.Size()
		result.TotalSizeBytes += size

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext != "" {
			result.ByExtension[ext]++
		}

		cat := inv.classify.Classify(ext)
		stats := result.ByCategory[cat]
		stats.Count++
		stats.TotalSizeBytes += size
		result.ByCategory[cat] = stats

		largest.add(FileRecord{Path: rel, SizeBytes: size, ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, &FilesystemError{Op: "scan", Path: inv.root, Err: err}
	}

	sort.Strings(result.EmptyDirs)
	result.LargestFiles = largest.records()
	result.GeneratedAt = time.Now()

	inv.last = result

	inv.log.WithFields(map[string]interface{}{
		"files":    result.TotalFiles,
		"dirs":     result.TotalDirs,
		"bytes":    result.TotalSizeBytes,
		"errors":   len(result.Errors),
		"duration": time.Since(started).Round(time.Millisecond).String(),
	}).Info("scan complete")

	return result, nil
}

// isEmptyDir reports whether the directory contains zero entries.
func isEmptyDir(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}

// topList keeps the K largest records seen so far, largest first.
// Insertion into a bounded sorted slice is plenty at K ~ 10.
type topList struct {
	limit   int
	entries []FileRecord
}

func newTopList(limit int) *topList {
	return &topList{limit: limit}
}

func (t *topList) add(rec FileRecord) {
	if t.limit <= 0 {
		return
	}
	if len(t.entries) == t.limit && rec.SizeBytes <= t.entries[len(t.entries)-1].SizeBytes {
		return
	}

	pos := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].SizeBytes < rec.SizeBytes
	})
	t.entries = append(t.entries, FileRecord{})
	copy(t.entries[pos+1:], t.entries[pos:])
	t.entries[pos] = rec

	if len(t.entries) > t.limit {
		t.entries = t.entries[:t.limit]
	}
}

func (t *topList) records() []FileRecord {
	out := make([]FileRecord, len(t.entries))
	copy(out, t.entries)
	return out
}

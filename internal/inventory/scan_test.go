package inventory

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTree creates files (with given contents) and any directories
// listed with a trailing slash under dir.
func writeTree(t *testing.T, dir string, files map[string]string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
}

// newTestInventory builds an Inventory over a fixture tree:
//
//	root/
//	  a.py (10 bytes)
//	  b.py (20 bytes)
//	  c.py (30 bytes)
//	  note.txt (5 bytes)
//	  config.json
//	  src/
//	    module.py
//	  empty/
//	  .hidden/
//	    secret.py
func newTestInventory(t *testing.T) (*Inventory, string) {
	t.Helper()
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.py":              strings.Repeat("x", 10),
		"b.py":              strings.Repeat("x", 20),
		"c.py":              strings.Repeat("x", 30),
		"note.txt":          strings.Repeat("x", 5),
		"config.json":       "{}",
		"src/module.py":     "package",
		".hidden/secret.py": "hidden",
	}, "empty")

	inv, err := New(dir, Config{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return inv, dir
}

func TestNewBadRoot(t *testing.T) {
	if _, err := New("/nonexistent/dirscout-test-root", Config{}); err == nil {
		t.Fatal("expected error for missing root")
	}

	file := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := New(file, Config{})
	var fsErr *FilesystemError
	if !errors.As(err, &fsErr) {
		t.Fatalf("expected FilesystemError for file root, got %v", err)
	}
}

func TestScanCounts(t *testing.T) {
	inv, _ := newTestInventory(t)

	result, err := inv.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	// Hidden entries are skipped: 6 visible files, 2 visible dirs.
	if result.TotalFiles != 6 {
		t.Errorf("TotalFiles = %d, want 6", result.TotalFiles)
	}
	if result.TotalDirs != 2 {
		t.Errorf("TotalDirs = %d, want 2", result.TotalDirs)
	}
	wantSize := int64(10 + 20 + 30 + 5 + 2 + 7)
	if result.TotalSizeBytes != wantSize {
		t.Errorf("TotalSizeBytes = %d, want %d", result.TotalSizeBytes, wantSize)
	}
	if result.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", result.MaxDepth)
	}
	if result.ScanID == "" {
		t.Error("ScanID should not be empty")
	}
	if result.GeneratedAt.IsZero() {
		t.Error("GeneratedAt should be set")
	}
}

func TestScanCategories(t *testing.T) {
	inv, _ := newTestInventory(t)

	result, err := inv.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	python := result.ByCategory["python"]
	if python.Count != 4 {
		t.Errorf("python count = %d, want 4", python.Count)
	}
	if python.TotalSizeBytes != 10+20+30+7 {
		t.Errorf("python size = %d, want 67", python.TotalSizeBytes)
	}

	// .json classifies as config, .txt as markdown.
	if result.ByCategory["config"].Count != 1 {
		t.Errorf("config count = %d, want 1", result.ByCategory["config"].Count)
	}
	if result.ByCategory["markdown"].Count != 1 {
		t.Errorf("markdown count = %d, want 1", result.ByCategory["markdown"].Count)
	}

	if result.ByExtension[".py"] != 4 {
		t.Errorf("by_extension[.py] = %d, want 4", result.ByExtension[".py"])
	}
}

func TestScanLargestFiles(t *testing.T) {
	inv, _ := newTestInventory(t)

	result, err := inv.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(result.LargestFiles) == 0 {
		t.Fatal("expected largest files")
	}
	if result.LargestFiles[0].Path != "c.py" {
		t.Errorf("largest file = %s, want c.py", result.LargestFiles[0].Path)
	}
	if result.LargestFiles[0].SizeBytes != 30 {
		t.Errorf("largest size = %d, want 30", result.LargestFiles[0].SizeBytes)
	}
	for i := 1; i < len(result.LargestFiles); i++ {
		if result.LargestFiles[i].SizeBytes > result.LargestFiles[i-1].SizeBytes {
			t.Errorf("largest files not ordered at %d", i)
		}
	}
}

func TestScanTopKBound(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"f1": "1", "f2": "22", "f3": "333", "f4": "4444", "f5": "55555",
	})

	inv, err := New(dir, Config{TopLargest: 2})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	result, err := inv.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(result.LargestFiles) != 2 {
		t.Fatalf("LargestFiles len = %d, want 2", len(result.LargestFiles))
	}
	if result.LargestFiles[0].Path != "f5" || result.LargestFiles[1].Path != "f4" {
		t.Errorf("top 2 = %s, %s; want f5, f4",
			result.LargestFiles[0].Path, result.LargestFiles[1].Path)
	}
}

func TestScanEmptyDirs(t *testing.T) {
	inv, _ := newTestInventory(t)

	result, err := inv.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(result.EmptyDirs) != 1 || result.EmptyDirs[0] != "empty" {
		t.Errorf("EmptyDirs = %v, want [empty]", result.EmptyDirs)
	}
}

func TestScanRepeatable(t *testing.T) {
	inv, _ := newTestInventory(t)

	first, err := inv.Scan()
	if err != nil {
		t.Fatalf("first Scan failed: %v", err)
	}
	second, err := inv.Scan()
	if err != nil {
		t.Fatalf("second Scan failed: %v", err)
	}

	if first == second {
		t.Fatal("each Scan must return a fresh snapshot")
	}
	if first.TotalFiles != second.TotalFiles ||
		first.TotalDirs != second.TotalDirs ||
		first.TotalSizeBytes != second.TotalSizeBytes ||
		first.MaxDepth != second.MaxDepth {
		t.Error("aggregates differ between scans of an unchanged tree")
	}
	for cat, stats := range first.ByCategory {
		if second.ByCategory[cat] != stats {
			t.Errorf("category %s differs between scans", cat)
		}
	}
}

func TestScanShowHidden(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"visible.py":     "x",
		".dotfile":       "x",
		".dotdir/sub.py": "x",
	})

	inv, err := New(dir, Config{ShowHidden: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	result, err := inv.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if result.TotalFiles != 3 {
		t.Errorf("TotalFiles = %d, want 3 with hidden shown", result.TotalFiles)
	}
}

func TestScanExcludeDirs(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"keep.py":             "x",
		"node_modules/mod.js": "x",
		"vendor/dep/dep.go":   "x",
	})

	inv, err := New(dir, Config{ExcludeDirs: []string{"node_modules", "vendor"}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	result, err := inv.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if result.TotalFiles != 1 {
		t.Errorf("TotalFiles = %d, want 1 with exclusions", result.TotalFiles)
	}
	if result.TotalDirs != 0 {
		t.Errorf("TotalDirs = %d, want 0 with exclusions", result.TotalDirs)
	}
}

func TestScanFailurePreservesSnapshot(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "root")
	writeTree(t, root, map[string]string{"a.py": "x"})

	inv, err := New(root, Config{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	first, err := inv.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if err := os.RemoveAll(root); err != nil {
		t.Fatalf("remove root: %v", err)
	}

	if _, err := inv.Scan(); err == nil {
		t.Fatal("expected scan failure after root removal")
	}

	snap, ok := inv.Snapshot()
	if !ok || snap.ScanID != first.ScanID {
		t.Error("failed scan must leave the previous snapshot intact")
	}
}

func TestScanCountsSymlinkedFiles(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"real.py": strings.Repeat("x", 10)})
	if err := os.Symlink(filepath.Join(dir, "real.py"), filepath.Join(dir, "link.py")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	inv, err := New(dir, Config{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	result, err := inv.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	// The link resolves to a regular file, so both entries count.
	if result.TotalFiles+result.TotalDirs != 2 {
		t.Errorf("TotalFiles+TotalDirs = %d, want 2", result.TotalFiles+result.TotalDirs)
	}
	python := result.ByCategory["python"]
	if python.Count != 2 {
		t.Errorf("python count = %d, want 2", python.Count)
	}
	if python.TotalSizeBytes != 20 {
		t.Errorf("python size = %d, want 20", python.TotalSizeBytes)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected scan errors: %v", result.Errors)
	}
}

func TestScanCountsSymlinkedDirOnce(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"target/inner.py": "x"})
	if err := os.Symlink(filepath.Join(dir, "target"), filepath.Join(dir, "dirlink")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	inv, err := New(dir, Config{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	result, err := inv.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	// The link counts as a directory entry but is not descended into,
	// so inner.py is counted exactly once.
	if result.TotalDirs != 2 {
		t.Errorf("TotalDirs = %d, want 2", result.TotalDirs)
	}
	if result.TotalFiles != 1 {
		t.Errorf("TotalFiles = %d, want 1", result.TotalFiles)
	}
}

func TestScanBrokenSymlink(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.py": "x"})
	if err := os.Symlink(filepath.Join(dir, "gone.py"), filepath.Join(dir, "dangling.py")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	inv, err := New(dir, Config{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	result, err := inv.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if result.TotalFiles != 1 {
		t.Errorf("TotalFiles = %d, want 1 (broken link is not a file)", result.TotalFiles)
	}
	if len(result.Errors) != 1 {
		t.Errorf("Errors = %v, want the broken link recorded", result.Errors)
	}
}

func TestScanUnreadableDirCollectsErrors(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not bind root")
	}

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"ok.py":           "x",
		"locked/inner.py": "x",
	})
	locked := filepath.Join(dir, "locked")
	if err := os.Chmod(locked, 0000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	inv, err := New(dir, Config{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	result, err := inv.Scan()
	if err != nil {
		t.Fatalf("walk must survive unreadable entries: %v", err)
	}

	if len(result.Errors) == 0 {
		t.Error("unreadable directory should be recorded in Errors")
	}
	// Siblings are still counted.
	if result.TotalFiles != 1 {
		t.Errorf("TotalFiles = %d, want 1", result.TotalFiles)
	}
	if result.TotalDirs != 1 {
		t.Errorf("TotalDirs = %d, want 1", result.TotalDirs)
	}
}

func TestSnapshotBeforeScan(t *testing.T) {
	inv, _ := newTestInventory(t)
	if _, ok := inv.Snapshot(); ok {
		t.Error("Snapshot should report false before any scan")
	}
}

// Package inventory builds and queries statistics snapshots of a
// directory tree.
//
// An Inventory is bound to a single root directory. Scan walks the tree
// once and produces an immutable ScanResult; Find, Copy, Delete and
// Tree perform their own traversals and work regardless of scan state.
// Report and ExportJSON require a successful prior Scan.
package inventory

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ErrNotScanned is returned by operations that need a snapshot before
// any Scan has succeeded.
var ErrNotScanned = errors.New("no scan has been performed")

var errNotDirectory = errors.New("not a directory")

// FilesystemError signals a whole-operation filesystem failure: a bad
// root, or an unwritable destination. Per-item batch failures are
// reported through BatchReport instead.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// Config carries per-instance scan configuration. It replaces any form
// of shared default state: every knob travels with the Inventory that
// uses it.
type Config struct {
	// TopLargest bounds the largest-files list (default 10)
	TopLargest int
	// ShowHidden includes dot-prefixed entries in traversals
	ShowHidden bool
	// ExcludeDirs lists directory names whose subtrees are skipped
	ExcludeDirs []string
	// Categories adds extension→category entries on top of the
	// built-in table (e.g. ".proto" → "config")
	Categories map[string]string
	// Logger receives structured scan progress; nil discards
	Logger *logrus.Entry
}

// DefaultTopLargest is used when Config.TopLargest is zero or negative.
const DefaultTopLargest = 10

// Inventory scans and queries a single root directory.
// It is not safe for concurrent use; callers sharing one Inventory
// across goroutines must serialize Scan and treat returned ScanResults
// as immutable snapshots.
type Inventory struct {
	root       string
	topLargest int
	showHidden bool
	excluded   map[string]bool
	classify   *classifier
	log        *logrus.Entry

	// last is replaced wholesale by each successful Scan and left
	// untouched by failed ones
	last *ScanResult
}

// New creates an Inventory rooted at dir. The root must exist and be a
// directory; otherwise a FilesystemError is returned.
func New(dir string, cfg Config) (*Inventory, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, &FilesystemError{Op: "resolve", Path: dir, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, &FilesystemError{Op: "stat", Path: abs, Err: err}
	}
	if !info.IsDir() {
		return nil, &FilesystemError{Op: "scan", Path: abs, Err: errNotDirectory}
	}

	topK := cfg.TopLargest
	if topK <= 0 {
		topK = DefaultTopLargest
	}

	excluded := make(map[string]bool, len(cfg.ExcludeDirs))
	for _, name := range cfg.ExcludeDirs {
		excluded[name] = true
	}

	log := cfg.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = logrus.NewEntry(discard)
	}

	return &Inventory{
		root:       abs,
		topLargest: topK,
		showHidden: cfg.ShowHidden,
		excluded:   excluded,
		classify:   newClassifier(cfg.Categories),
		log:        log.WithField("root", abs),
	}, nil
}

// Root returns the absolute root path the inventory is bound to.
func (inv *Inventory) Root() string {
	return inv.root
}

// Snapshot returns the most recent ScanResult and true, or nil and
// false before any successful Scan.
func (inv *Inventory) Snapshot() (*ScanResult, bool) {
	if inv.last == nil {
		return nil, false
	}
	return inv.last, true
}

// skipName reports whether a directory entry should be passed over
// entirely (hidden entries unless configured, excluded dir names for
// directories).
func (inv *Inventory) skipName(name string, isDir bool) bool {
	if !inv.showHidden && len(name) > 0 && name[0] == '.' {
		return true
	}
	return isDir && inv.excluded[name]
}

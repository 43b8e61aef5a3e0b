package inventory

import (
	"time"
)

// CategoryStats aggregates files that share a category.
type CategoryStats struct {
	// Count is the number of files classified into the category
	Count int `json:"count"`
	// TotalSizeBytes is the sum of the file sizes in bytes
	TotalSizeBytes int64 `json:"total_size_bytes"`
}

// FileRecord describes a single file seen during a traversal.
// Records are produced while walking and folded into ScanResult
// aggregates; they are not retained beyond the largest-files list.
type FileRecord struct {
	// Path is relative to the inventory root
	Path string `json:"path"`
	// SizeBytes is the file size in bytes
	SizeBytes int64 `json:"size_bytes"`
	// ModTime is the file's last modification time; omitted from the
	// export schema but kept for report rendering
	ModTime time.Time `json:"-"`
}

// ScanResult is an immutable snapshot built by one Scan call.
// A new ScanResult replaces the previous one wholesale; it is never
// mutated after being returned.
type ScanResult struct {
	// ScanID uniquely identifies this snapshot
	ScanID string `json:"scan_id"`
	// Root is the absolute path the scan started from
	Root string `json:"root"`
	// GeneratedAt is when the scan completed
	GeneratedAt time.Time `json:"generated_at"`

	// TotalFiles is the number of regular files seen
	TotalFiles int `json:"total_files"`
	// TotalDirs is the number of directories seen (excluding the root)
	TotalDirs int `json:"total_dirs"`
	// TotalSizeBytes is the byte total across all files
	TotalSizeBytes int64 `json:"total_size_bytes"`
	// MaxDepth is the deepest level reached, relative to the root
	MaxDepth int `json:"max_depth"`

	// ByCategory maps category name to aggregate stats
	ByCategory map[string]CategoryStats `json:"by_category"`
	// ByExtension maps lowercase extension (".py") to file count
	ByExtension map[string]int `json:"by_extension"`

	// LargestFiles holds the top-K files by size, largest first
	LargestFiles []FileRecord `json:"largest_files"`
	// EmptyDirs lists directories containing zero entries, root-relative
	EmptyDirs []string `json:"empty_dirs"`

	// Errors collects per-entry traversal failures; the walk continues
	// past them. Not part of the export schema.
	Errors []string `json:"-"`
}

// Outcome is the result of one item in a batch operation.
type Outcome struct {
	// Source is the path the operation was attempted on
	Source string
	// Dest is the destination path for copies, empty for deletes
	Dest string
	// Err is nil on success
	Err error
}

// OK reports whether the item succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// BatchReport is the complete accounting of a batch copy or delete.
// Every attempted item appears exactly once; per-item failures never
// abort sibling items.
type BatchReport struct {
	// Pattern is the glob the batch resolved against
	Pattern string
	// DryRun is true when nothing was modified (delete without confirm)
	DryRun bool
	// Outcomes lists every attempted item in resolution order
	Outcomes []Outcome
}

// Succeeded returns the number of successful items.
func (r *BatchReport) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed items.
func (r *BatchReport) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

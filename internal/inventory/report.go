package inventory

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/52AnTIMateria812/dirscout/internal/display"
)

// emptyDirDisplayLimit caps how many empty directories the text report
// lists before collapsing the remainder into a count.
const emptyDirDisplayLimit = 10

// Report renders the most recent ScanResult to w as a formatted text
// report. It requires a successful prior Scan and returns ErrNotScanned
// otherwise; commands that want implicit scanning call Scan themselves.
func (inv *Inventory) Report(w io.Writer) error {
	result, ok := inv.Snapshot()
	if !ok {
		return ErrNotScanned
	}
	_, err := io.WriteString(w, formatReport(result))
	return err
}

func formatReport(result *ScanResult) string {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("INVENTORY REPORT: %s\n", result.Root))
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", result.GeneratedAt.Format("2006-01-02 15:04:05")))

	sb.WriteString("TOTALS:\n")
	sb.WriteString(fmt.Sprintf("  Files:       %d\n", result.TotalFiles))
	sb.WriteString(fmt.Sprintf("  Directories: %d\n", result.TotalDirs))
	sb.WriteString(fmt.Sprintf("  Size:        %s\n", display.Size(result.TotalSizeBytes)))
	sb.WriteString(fmt.Sprintf("  Max depth:   %d\n\n", result.MaxDepth))

	if len(result.ByCategory) > 0 {
		sb.WriteString("BY CATEGORY:\n")
		sb.WriteString(fmt.Sprintf("  %-12s %8s %12s\n", "Category", "Files", "Size"))
		sb.WriteString("  " + strings.Repeat("-", 34) + "\n")
		for _, name := range sortedCategories(result.ByCategory) {
			stats := result.ByCategory[name]
			sb.WriteString(fmt.Sprintf("  %-12s %8d %12s\n",
				name, stats.Count, display.Size(stats.TotalSizeBytes)))
		}
		sb.WriteString("\n")
	}

	if len(result.LargestFiles) > 0 {
		sb.WriteString("LARGEST FILES:\n")
		for _, rec := range result.LargestFiles {
			sb.WriteString(fmt.Sprintf("  %s (%s)\n", rec.Path, display.Size(rec.SizeBytes)))
		}
		sb.WriteString("\n")
	}

	if len(result.EmptyDirs) > 0 {
		sb.WriteString("EMPTY DIRECTORIES:\n")
		shown := result.EmptyDirs
		if len(shown) > emptyDirDisplayLimit {
			shown = shown[:emptyDirDisplayLimit]
		}
		for _, dir := range shown {
			sb.WriteString(fmt.Sprintf("  %s\n", dir))
		}
		if rest := len(result.EmptyDirs) - len(shown); rest > 0 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", rest))
		}
		sb.WriteString("\n")
	}

	if len(result.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("SCAN ERRORS (%d):\n", len(result.Errors)))
		for _, msg := range result.Errors {
			sb.WriteString(fmt.Sprintf("  %s\n", msg))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// sortedCategories orders categories by file count descending, name
// ascending as the tiebreak, so report output is deterministic.
func sortedCategories(byCategory map[string]CategoryStats) []string {
	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := byCategory[names[i]].Count, byCategory[names[j]].Count
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})
	return names
}

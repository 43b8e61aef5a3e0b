package inventory

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Copy resolves files matching pattern and copies each into destDir,
// preserving the base name and creating destDir as needed. Per-file
// failures are collected into the report and never abort the remaining
// copies; only an unresolvable pattern or unusable destination fails
// the whole call. A pattern with zero matches yields an empty report
// and creates nothing.
func (inv *Inventory) Copy(pattern, destDir string) (*BatchReport, error) {
	sources, err := inv.resolve(pattern)
	if err != nil {
		return nil, err
	}

	report := &BatchReport{Pattern: pattern, Outcomes: []Outcome{}}
	if len(sources) == 0 {
		return report, nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, &FilesystemError{Op: "create", Path: destDir, Err: err}
	}

	for _, src := range sources {
		dest := filepath.Join(destDir, filepath.Base(src))
		copyErr := copyFile(src, dest)
		report.Outcomes = append(report.Outcomes, Outcome{Source: src, Dest: dest, Err: copyErr})
		if copyErr != nil {
			inv.log.WithField("source", src).WithError(copyErr).Warn("copy failed")
		}
	}

	return report, nil
}

// Delete resolves files matching pattern. With confirm false it is a
// dry run: the report lists every candidate and nothing is removed, so
// repeated dry runs over an unchanged tree produce identical reports.
// With confirm true each matched file is unlinked, collecting per-file
// failures like Copy. Directories are never deleted.
func (inv *Inventory) Delete(pattern string, confirm bool) (*BatchReport, error) {
	sources, err := inv.resolve(pattern)
	if err != nil {
		return nil, err
	}

	report := &BatchReport{Pattern: pattern, DryRun: !confirm, Outcomes: []Outcome{}}

	for _, src := range sources {
		if !confirm {
			report.Outcomes = append(report.Outcomes, Outcome{Source: src})
			continue
		}
		delErr := os.Remove(src)
		report.Outcomes = append(report.Outcomes, Outcome{Source: src, Err: delErr})
		if delErr != nil {
			inv.log.WithField("source", src).WithError(delErr).Warn("delete failed")
		}
	}

	return report, nil
}

// copyFile copies src to dest byte-for-byte, truncating any existing
// dest. Permissions follow the source file.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return fmt.Errorf("copy contents: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("close destination: %w", err)
	}
	return nil
}

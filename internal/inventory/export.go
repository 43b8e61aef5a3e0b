package inventory

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/52AnTIMateria812/dirscout/internal/filelock"
)

// ExportJSON serializes the most recent ScanResult to path as an
// indented JSON document. The write goes through an exclusive file
// lock and a temp-file rename, so a partially written export is never
// observable. Returns ErrNotScanned before any successful Scan and a
// FilesystemError when the destination cannot be written.
func (inv *Inventory) ExportJSON(path string) error {
	result, ok := inv.Snapshot()
	if !ok {
		return ErrNotScanned
	}

	data, err := marshalResult(result)
	if err != nil {
		return err
	}

	if err := filelock.LockAndWrite(path, data); err != nil {
		return &FilesystemError{Op: "export", Path: path, Err: err}
	}

	inv.log.WithField("path", path).Info("exported scan result")
	return nil
}

// WriteJSON serializes the most recent ScanResult to w, for stdout
// exports where locking is meaningless.
func (inv *Inventory) WriteJSON(w io.Writer) error {
	result, ok := inv.Snapshot()
	if !ok {
		return ErrNotScanned
	}
	data, err := marshalResult(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func marshalResult(result *ScanResult) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal scan result: %w", err)
	}
	return append(data, '\n'), nil
}

// Package storage owns the files of a tally project: TODO.md, the history
// ledger, the preferences file and the ignore rules. Every type loads its
// file once and writes the whole file back on each mutation. There is no
// locking; concurrent writers get last-writer-wins.
package storage

import (
	"os"
	"path/filepath"
	"time"
)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// writeFile creates the parent directory and overwrites path with data.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &IOError{Op: "create directory", Path: dir, Err: err}
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// readFile reports ok=false when path does not exist.
func readFile(path string) (data []byte, ok bool, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, &IOError{Op: "read", Path: path, Err: err}
	}
	return data, true, nil
}

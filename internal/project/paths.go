// Package project locates a tally project on disk and names its files.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	DirName     = ".tally"
	TodoFile    = "TODO.md"
	HistoryFile = "history.json"
	ConfigFile  = "config.toml"
	IgnoreFile  = "ignore"
)

var (
	ErrNotInitialized     = errors.New("no .tally/ directory found; run 'tally init' to create one")
	ErrAlreadyInitialized = errors.New("project already initialized")
)

// Paths are the files of one project, all absolute.
type Paths struct {
	Root        string
	TallyDir    string
	TodoFile    string
	HistoryFile string
	ConfigFile  string
	IgnoreFile  string
}

// PathsFor returns the layout rooted at root without touching the disk.
func PathsFor(root string) Paths {
	tally := filepath.Join(root, DirName)
	return Paths{
		Root:        root,
		TallyDir:    tally,
		TodoFile:    filepath.Join(root, TodoFile),
		HistoryFile: filepath.Join(tally, HistoryFile),
		ConfigFile:  filepath.Join(tally, ConfigFile),
		IgnoreFile:  filepath.Join(tally, IgnoreFile),
	}
}

// FindRoot walks up from start to the first directory holding .tally/.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}
	for {
		info, err := os.Stat(filepath.Join(dir, DirName))
		if err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialized
		}
		dir = parent
	}
}

// Discover is FindRoot followed by PathsFor.
func Discover(start string) (Paths, error) {
	root, err := FindRoot(start)
	if err != nil {
		return Paths{}, err
	}
	return PathsFor(root), nil
}

// Init creates .tally/ under dir. It fails with ErrAlreadyInitialized when
// the directory exists.
func Init(dir string) (Paths, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return Paths{}, fmt.Errorf("resolving %s: %w", dir, err)
	}
	p := PathsFor(root)
	if _, err := os.Stat(p.TallyDir); err == nil {
		return p, fmt.Errorf("%w at %s", ErrAlreadyInitialized, p.TallyDir)
	}
	if err := os.MkdirAll(p.TallyDir, 0755); err != nil {
		return Paths{}, fmt.Errorf("creating %s: %w", p.TallyDir, err)
	}
	return p, nil
}

package domain

import (
	"fmt"
	"path/filepath"
	"time"
)

// Project is an entry of the global registry of tally workspaces.
type Project struct {
	ID           string
	Path         string
	Name         string
	RegisteredAt time.Time
	LastSeenAt   time.Time
}

// Validate checks that the registry entry points at an absolute path.
func (p *Project) Validate() error {
	if p.Path == "" {
		return fmt.Errorf("project path is required")
	}
	if !filepath.IsAbs(p.Path) {
		return fmt.Errorf("project path %q must be absolute", p.Path)
	}
	return nil
}

// DisplayID returns the first 8 characters of the ID.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// DisplayName falls back to the directory name when Name is empty.
func (p *Project) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return filepath.Base(p.Path)
}

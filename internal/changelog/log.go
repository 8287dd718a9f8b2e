package changelog

import (
	"sort"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

// Log is a project's changelog: releases newest first.
type Log struct {
	ProjectName string    `json:"project_name" yaml:"project_name"`
	Releases    []Release `json:"releases" yaml:"releases"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

// NewLog orders releases by descending version.
func NewLog(projectName string, releases []Release, now time.Time) *Log {
	sorted := append([]Release(nil), releases...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Version.IsNewerThan(sorted[j].Version)
	})
	return &Log{
		ProjectName: projectName,
		Releases:    sorted,
		GeneratedAt: now.UTC(),
	}
}

// FilterVersions keeps releases with from <= version <= to. A nil bound is
// open.
func (l *Log) FilterVersions(from, to *domain.Version) *Log {
	out := &Log{ProjectName: l.ProjectName, GeneratedAt: l.GeneratedAt}
	for _, r := range l.Releases {
		if from != nil && r.Version.Less(*from) {
			continue
		}
		if to != nil && r.Version.IsNewerThan(*to) {
			continue
		}
		out.Releases = append(out.Releases, r)
	}
	return out
}

func (l *Log) Empty() bool { return len(l.Releases) == 0 }

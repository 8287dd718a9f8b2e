// Package changelog groups completed work into releases and renders them as
// release notes.
package changelog

import (
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

// Release is the set of changes shipped under one version. It is built on
// demand and never persisted.
type Release struct {
	Version           domain.Version                      `json:"version" yaml:"version"`
	Date              time.Time                           `json:"date" yaml:"date"`
	ChangesByPriority map[domain.Priority][]domain.Change `json:"changes_by_priority" yaml:"changes_by_priority"`
	ChangesByTag      map[string][]domain.Change          `json:"changes_by_tag" yaml:"changes_by_tag"`
}

// ReleaseFromTasks snapshots tasks into a release dated at the latest
// completion, or now when there is none.
func ReleaseFromTasks(version domain.Version, tasks []domain.Task, now time.Time) Release {
	changes := make([]domain.Change, 0, len(tasks))
	for _, t := range tasks {
		changes = append(changes, domain.ChangeFromTask(t, now))
	}
	return ReleaseFromChanges(version, ReleaseDate(changes, now), changes)
}

// ReleaseFromChanges groups changes under version. Every change lands in
// exactly one priority bucket and in one bucket per tag.
func ReleaseFromChanges(version domain.Version, date time.Time, changes []domain.Change) Release {
	r := Release{
		Version:           version,
		Date:              date.UTC(),
		ChangesByPriority: make(map[domain.Priority][]domain.Change),
		ChangesByTag:      make(map[string][]domain.Change),
	}
	for _, c := range changes {
		p := c.Priority
		if p == "" {
			p = domain.PriorityMedium
		}
		r.ChangesByPriority[p] = append(r.ChangesByPriority[p], c)
		for _, tag := range c.Tags {
			r.ChangesByTag[tag] = append(r.ChangesByTag[tag], c)
		}
	}
	return r
}

// ReleaseDate is the latest CompletedAt among changes, or now.
func ReleaseDate(changes []domain.Change, now time.Time) time.Time {
	var latest time.Time
	for _, c := range changes {
		if c.CompletedAt.After(latest) {
			latest = c.CompletedAt
		}
	}
	if latest.IsZero() {
		return now.UTC()
	}
	return latest
}

// Len counts distinct changes in the release.
func (r Release) Len() int {
	n := 0
	for _, changes := range r.ChangesByPriority {
		n += len(changes)
	}
	return n
}

package domain

import "time"

// Task is one line item of TODO.md. Completed is true exactly when
// CompletedAt is set. Empty commit strings mean "not recorded".
type Task struct {
	Description string
	Priority    Priority
	Tags        []string
	Completed   bool

	CreatedAt      time.Time
	CreatedVersion *Version
	CreatedCommit  string

	CompletedAt      *time.Time
	CompletedVersion *Version
	CompletedCommit  string
}

// NewTask returns an open task created at now. Duplicate tags are dropped.
func NewTask(description string, priority Priority, tags []string, now time.Time) Task {
	if priority == "" {
		priority = PriorityMedium
	}
	t := Task{
		Description: description,
		Priority:    priority,
		CreatedAt:   now.UTC(),
	}
	for _, tag := range tags {
		t.AddTag(tag)
	}
	return t
}

// MarkComplete records completion. A nil version or empty commit leaves the
// corresponding field untouched.
func (t *Task) MarkComplete(at time.Time, version *Version, commit string) {
	at = at.UTC()
	t.Completed = true
	t.CompletedAt = &at
	if version != nil {
		v := *version
		t.CompletedVersion = &v
	}
	if commit != "" {
		t.CompletedCommit = commit
	}
}

// AddTag appends tag unless it is empty or already present.
func (t *Task) AddTag(tag string) bool {
	if tag == "" || t.HasTag(tag) {
		return false
	}
	t.Tags = append(t.Tags, tag)
	return true
}

func (t *Task) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

func (t *Task) HasAnyTag(tags []string) bool {
	for _, tag := range tags {
		if t.HasTag(tag) {
			return true
		}
	}
	return false
}

func (t *Task) HasAllTags(tags []string) bool {
	for _, tag := range tags {
		if !t.HasTag(tag) {
			return false
		}
	}
	return true
}

// CompletedBefore reports whether the task was completed strictly before cutoff.
func (t *Task) CompletedBefore(cutoff time.Time) bool {
	return t.Completed && t.CompletedAt != nil && t.CompletedAt.Before(cutoff)
}

// SortTime is the completion time for completed tasks and the creation
// time otherwise.
func (t *Task) SortTime() time.Time {
	if t.CompletedAt != nil {
		return *t.CompletedAt
	}
	return t.CreatedAt
}

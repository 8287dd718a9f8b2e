package domain

import (
	"sort"
	"time"
)

// DefaultProjectName is used when no TODO.md exists yet.
const DefaultProjectName = "Untitled"

// DefaultVersion is the version of a freshly created list.
var DefaultVersion = NewVersion(0, 1, 0, false)

type List struct {
	ProjectName    string
	ProjectVersion Version
	CreatedAt      time.Time
	ModifiedAt     time.Time
	Tasks          []Task
}

// TaskGroup is the set of tasks completed under one version.
type TaskGroup struct {
	Version Version
	Tasks   []Task
}

func NewList(name string, version Version, now time.Time) *List {
	now = now.UTC()
	return &List{
		ProjectName:    name,
		ProjectVersion: version,
		CreatedAt:      now,
		ModifiedAt:     now,
	}
}

func (l *List) AddTask(t Task, now time.Time) {
	l.Tasks = append(l.Tasks, t)
	l.Touch(now)
}

// Touch records a mutation.
func (l *List) Touch(now time.Time) {
	l.ModifiedAt = now.UTC()
}

func (l *List) TasksForVersion(v Version) []Task {
	var out []Task
	for _, t := range l.Tasks {
		if t.CompletedVersion != nil && t.CompletedVersion.Equal(v) {
			out = append(out, t)
		}
	}
	return out
}

// TasksBetweenVersions returns tasks completed in [from, to].
func (l *List) TasksBetweenVersions(from, to Version) []Task {
	var out []Task
	for _, t := range l.Tasks {
		if t.CompletedVersion == nil {
			continue
		}
		if t.CompletedVersion.Compare(from) >= 0 && t.CompletedVersion.Compare(to) <= 0 {
			out = append(out, t)
		}
	}
	return out
}

func (l *List) UnversionedCompletedTasks() []Task {
	var out []Task
	for _, t := range l.Tasks {
		if t.Completed && t.CompletedVersion == nil {
			out = append(out, t)
		}
	}
	return out
}

// TasksByVersion groups versioned tasks, ordered by ascending version.
func (l *List) TasksByVersion() []TaskGroup {
	index := make(map[Version]int)
	var groups []TaskGroup
	for _, t := range l.Tasks {
		if t.CompletedVersion == nil {
			continue
		}
		v := *t.CompletedVersion
		i, ok := index[v]
		if !ok {
			i = len(groups)
			index[v] = i
			groups = append(groups, TaskGroup{Version: v})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Version.Less(groups[j].Version)
	})
	return groups
}

// AssignVersionToCompleted stamps v on completed tasks that have no version
// yet and returns how many changed. ModifiedAt moves only when something did.
func (l *List) AssignVersionToCompleted(v Version, now time.Time) int {
	count := 0
	for i := range l.Tasks {
		t := &l.Tasks[i]
		if t.Completed && t.CompletedVersion == nil {
			assigned := v
			t.CompletedVersion = &assigned
			count++
		}
	}
	if count > 0 {
		l.Touch(now)
	}
	return count
}

// OpenCount returns the number of incomplete tasks.
func (l *List) OpenCount() int {
	n := 0
	for _, t := range l.Tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

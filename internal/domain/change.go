package domain

import (
	"encoding/json"
	"time"
)

// Change is an immutable snapshot of a completed task, taken when it is
// recorded into the history ledger.
type Change struct {
	Description string    `json:"description" yaml:"description"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	Tags        []string  `json:"tags" yaml:"tags"`
	Commit      string    `json:"commit" yaml:"commit,omitempty"`
	CompletedAt time.Time `json:"completed_at" yaml:"completed_at"`
}

// ChangeFromTask snapshots t. A task without a completion time gets now.
func ChangeFromTask(t Task, now time.Time) Change {
	completed := now.UTC()
	if t.CompletedAt != nil {
		completed = *t.CompletedAt
	}
	tags := make([]string, len(t.Tags))
	copy(tags, t.Tags)
	return Change{
		Description: t.Description,
		Priority:    t.Priority,
		Tags:        tags,
		Commit:      t.CompletedCommit,
		CompletedAt: completed,
	}
}

// ShortCommit returns the first seven characters of the commit hash.
func (c Change) ShortCommit() string {
	if len(c.Commit) > 7 {
		return c.Commit[:7]
	}
	return c.Commit
}

type changeJSON struct {
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Tags        []string  `json:"tags"`
	Commit      *string   `json:"commit"`
	CompletedAt time.Time `json:"completed_at"`
}

// MarshalJSON writes a missing commit as null.
func (c Change) MarshalJSON() ([]byte, error) {
	out := changeJSON{
		Description: c.Description,
		Priority:    c.Priority,
		Tags:        c.Tags,
		CompletedAt: c.CompletedAt,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if c.Commit != "" {
		commit := c.Commit
		out.Commit = &commit
	}
	return json.Marshal(out)
}

func (c *Change) UnmarshalJSON(data []byte) error {
	var in changeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*c = Change{
		Description: in.Description,
		Priority:    in.Priority,
		Tags:        in.Tags,
		CompletedAt: in.CompletedAt,
	}
	if c.Priority == "" {
		c.Priority = PriorityMedium
	}
	if in.Commit != nil {
		c.Commit = *in.Commit
	}
	return nil
}

// HistoryEntry is one ledger record. Version is assigned once, when the
// release containing the change is cut.
type HistoryEntry struct {
	Change  Change   `json:"change" yaml:"change"`
	Version *Version `json:"version" yaml:"version,omitempty"`
}

func NewHistoryEntry(t Task, now time.Time) HistoryEntry {
	e := HistoryEntry{Change: ChangeFromTask(t, now)}
	if t.CompletedVersion != nil {
		v := *t.CompletedVersion
		e.Version = &v
	}
	return e
}

// SameTask reports whether two entries describe the same completion: equal
// non-empty commit hashes, or equal description and version.
func (e HistoryEntry) SameTask(o HistoryEntry) bool {
	if e.Change.Commit != "" && o.Change.Commit != "" && e.Change.Commit == o.Change.Commit {
		return true
	}
	return e.Change.Description == o.Change.Description && SameVersion(e.Version, o.Version)
}

// SameSnapshot reports whether two entries record the same task text at the
// same commit. Unlike SameTask, tasks sharing a commit stay distinct.
func (e HistoryEntry) SameSnapshot(o HistoryEntry) bool {
	return e.Change.Description == o.Change.Description && e.Change.Commit == o.Change.Commit
}

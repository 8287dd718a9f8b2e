package storage

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/alexanderramin/tally/internal/domain"
)

// HistoryStorage is the append-only ledger of completed tasks. It outlives
// the tasks themselves so changelogs survive removal and pruning.
type HistoryStorage struct {
	path      string
	entries   []domain.HistoryEntry
	clock     Clock
	discarded bool
}

// EntryGroup holds the ledger entries released under one version.
type EntryGroup struct {
	Version domain.Version
	Entries []domain.HistoryEntry
}

// OpenHistoryStorage loads the ledger at path. A missing file is an empty
// ledger, and so is one that does not parse; see Discarded.
func OpenHistoryStorage(path string, opts ...Option) (*HistoryStorage, error) {
	o := buildOptions(opts)
	s := &HistoryStorage{path: path, clock: o.clock}

	data, ok, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return s, nil
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.discarded = true
		return s, nil
	}
	s.entries = entries
	return s, nil
}

func (s *HistoryStorage) Path() string { return s.path }

// Discarded reports whether an unreadable ledger was replaced by an empty one.
func (s *HistoryStorage) Discarded() bool { return s.discarded }

func (s *HistoryStorage) Save() error {
	entries := s.entries
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	return writeFile(s.path, append(data, '\n'))
}

// Record appends a snapshot of t when t is completed and not yet in the
// ledger. It reports whether an entry was added.
func (s *HistoryStorage) Record(t domain.Task) (bool, error) {
	if !s.insert(t) {
		return false, nil
	}
	return true, s.Save()
}

// RecordAll is Record for a batch with a single write at the end.
func (s *HistoryStorage) RecordAll(tasks []domain.Task) (int, error) {
	added := 0
	for _, t := range tasks {
		if s.insert(t) {
			added++
		}
	}
	if added == 0 {
		return 0, nil
	}
	return added, s.Save()
}

func (s *HistoryStorage) insert(t domain.Task) bool {
	if !t.Completed {
		return false
	}
	candidate := domain.NewHistoryEntry(t, s.clock())
	if s.Contains(candidate) {
		return false
	}
	s.entries = append(s.entries, candidate)
	return true
}

// Contains reports whether the ledger already holds e.
func (s *HistoryStorage) Contains(e domain.HistoryEntry) bool {
	for _, existing := range s.entries {
		if existing.SameTask(e) {
			return true
		}
	}
	return false
}

// HasSnapshot reports whether the ledger holds an entry with the same
// description and commit as e.
func (s *HistoryStorage) HasSnapshot(e domain.HistoryEntry) bool {
	for _, existing := range s.entries {
		if existing.SameSnapshot(e) {
			return true
		}
	}
	return false
}

// AssignVersion stamps v on every unversioned entry. Entries that already
// carry a version are never changed.
func (s *HistoryStorage) AssignVersion(v domain.Version) (int, error) {
	n := 0
	for i := range s.entries {
		if s.entries[i].Version == nil {
			assigned := v
			s.entries[i].Version = &assigned
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return n, s.Save()
}

func (s *HistoryStorage) Entries() []domain.HistoryEntry { return s.entries }

func (s *HistoryStorage) Len() int { return len(s.entries) }

func (s *HistoryStorage) EntriesForVersion(v domain.Version) []domain.HistoryEntry {
	var out []domain.HistoryEntry
	for _, e := range s.entries {
		if e.Version != nil && e.Version.Equal(v) {
			out = append(out, e)
		}
	}
	return out
}

// EntriesBetweenVersions returns entries versioned within [from, to].
func (s *HistoryStorage) EntriesBetweenVersions(from, to domain.Version) []domain.HistoryEntry {
	var out []domain.HistoryEntry
	for _, e := range s.entries {
		if e.Version == nil {
			continue
		}
		if e.Version.Compare(from) >= 0 && e.Version.Compare(to) <= 0 {
			out = append(out, e)
		}
	}
	return out
}

// EntriesByVersion groups versioned entries in ascending version order.
func (s *HistoryStorage) EntriesByVersion() []EntryGroup {
	index := make(map[domain.Version]int)
	var groups []EntryGroup
	for _, e := range s.entries {
		if e.Version == nil {
			continue
		}
		i, ok := index[*e.Version]
		if !ok {
			i = len(groups)
			index[*e.Version] = i
			groups = append(groups, EntryGroup{Version: *e.Version})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Version.Less(groups[j].Version)
	})
	return groups
}

func (s *HistoryStorage) UnversionedEntries() []domain.HistoryEntry {
	var out []domain.HistoryEntry
	for _, e := range s.entries {
		if e.Version == nil {
			out = append(out, e)
		}
	}
	return out
}

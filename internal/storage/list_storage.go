package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/todofile"
)

// Option configures a storage at open time.
type Option func(*options)

type options struct {
	clock Clock
}

// WithClock overrides the time source used for timestamps.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

func buildOptions(opts []Option) options {
	o := options{clock: systemClock}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ListStorage is TODO.md loaded into memory. Every mutation rewrites the
// file before returning.
type ListStorage struct {
	path  string
	list  *domain.List
	clock Clock
}

// OpenListStorage loads path. A missing file yields an empty "Untitled"
// list at 0.1.0; nothing is written until the first mutation.
func OpenListStorage(path string, opts ...Option) (*ListStorage, error) {
	o := buildOptions(opts)
	s := &ListStorage{path: path, clock: o.clock}

	data, ok, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.list = domain.NewList(domain.DefaultProjectName, domain.DefaultVersion, s.clock())
		return s, nil
	}

	l, err := todofile.Deserialize(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	s.list = l
	return s, nil
}

func (s *ListStorage) Path() string { return s.path }

// List returns the loaded list. Callers must not mutate it directly.
func (s *ListStorage) List() *domain.List { return s.list }

func (s *ListStorage) Tasks() []domain.Task { return s.list.Tasks }

func (s *ListStorage) ProjectName() string { return s.list.ProjectName }

func (s *ListStorage) ProjectVersion() domain.Version { return s.list.ProjectVersion }

// Save serializes the list and overwrites the file.
func (s *ListStorage) Save() error {
	return writeFile(s.path, []byte(todofile.Serialize(s.list)))
}

func (s *ListStorage) AddTask(t domain.Task) error {
	s.list.AddTask(t, s.clock())
	return s.Save()
}

// RemoveTask deletes the task at index and returns it.
func (s *ListStorage) RemoveTask(index int) (domain.Task, error) {
	if err := s.checkIndex(index); err != nil {
		return domain.Task{}, err
	}
	removed := s.list.Tasks[index]
	s.list.Tasks = append(s.list.Tasks[:index], s.list.Tasks[index+1:]...)
	s.list.Touch(s.clock())
	return removed, s.Save()
}

// RemoveTasks deletes several tasks with a single write. Indices refer to
// positions before any removal; duplicates are ignored.
func (s *ListStorage) RemoveTasks(indices []int) ([]domain.Task, error) {
	for _, i := range indices {
		if err := s.checkIndex(i); err != nil {
			return nil, err
		}
	}
	if len(indices) == 0 {
		return nil, nil
	}

	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	var removed []domain.Task
	last := -1
	for _, i := range sorted {
		if i == last {
			continue
		}
		last = i
		removed = append(removed, s.list.Tasks[i])
		s.list.Tasks = append(s.list.Tasks[:i], s.list.Tasks[i+1:]...)
	}
	s.list.Touch(s.clock())
	return removed, s.Save()
}

// CompleteTask marks the task at index done and returns the updated task.
// A nil version or empty commit leaves that field as it was.
func (s *ListStorage) CompleteTask(index int, version *domain.Version, commit string) (domain.Task, error) {
	if err := s.checkIndex(index); err != nil {
		return domain.Task{}, err
	}
	now := s.clock()
	t := &s.list.Tasks[index]
	t.MarkComplete(now, version, commit)
	s.list.Touch(now)
	return *t, s.Save()
}

// AssignVersionToCompleted stamps v on completed, unversioned tasks. When
// none qualify it returns 0 without writing.
func (s *ListStorage) AssignVersionToCompleted(v domain.Version) (int, error) {
	n := s.list.AssignVersionToCompleted(v, s.clock())
	if n == 0 {
		return 0, nil
	}
	return n, s.Save()
}

// SetProjectVersion rejects prerelease versions; the header grammar only
// reads plain MAJOR.MINOR.PATCH.
func (s *ListStorage) SetProjectVersion(v domain.Version) error {
	if v.IsPrerelease {
		return fmt.Errorf("project version %s: %w", v, ErrUnwritableHeader)
	}
	s.list.ProjectVersion = v
	s.list.Touch(s.clock())
	return s.Save()
}

func (s *ListStorage) SetProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("empty project name: %w", ErrUnwritableHeader)
	}
	s.list.ProjectName = name
	s.list.Touch(s.clock())
	return s.Save()
}

func (s *ListStorage) checkIndex(index int) error {
	if index < 0 || index >= len(s.list.Tasks) {
		return &NotFoundError{Index: index, Len: len(s.list.Tasks)}
	}
	return nil
}

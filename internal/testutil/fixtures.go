// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/google/uuid"
)

// Epoch is the default creation time of fixtures.
var Epoch = time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)

func Version(s string) *domain.Version {
	v, err := domain.ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return &v
}

type TaskOption func(*domain.Task)

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) { t.Priority = p }
}

func WithTags(tags ...string) TaskOption {
	return func(t *domain.Task) {
		for _, tag := range tags {
			t.AddTag(tag)
		}
	}
}

func WithCreatedAt(at time.Time) TaskOption {
	return func(t *domain.Task) { t.CreatedAt = at.UTC() }
}

// WithCompleted marks the task done at at. version may be "".
func WithCompleted(at time.Time, version, commit string) TaskOption {
	return func(t *domain.Task) {
		var v *domain.Version
		if version != "" {
			v = Version(version)
		}
		t.MarkComplete(at, v, commit)
	}
}

func NewTestTask(description string, opts ...TaskOption) domain.Task {
	t := domain.NewTask(description, domain.PriorityMedium, nil, Epoch)
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// NewTestList returns a list named name at version 0.1.0 holding tasks.
func NewTestList(name string, tasks ...domain.Task) *domain.List {
	l := domain.NewList(name, domain.DefaultVersion, Epoch)
	l.Tasks = append(l.Tasks, tasks...)
	return l
}

type ProjectOption func(*domain.Project)

func WithProjectName(name string) ProjectOption {
	return func(p *domain.Project) { p.Name = name }
}

func WithLastSeen(at time.Time) ProjectOption {
	return func(p *domain.Project) { p.LastSeenAt = at.UTC() }
}

// NewTestProject returns a registry entry for the absolute path dir.
func NewTestProject(dir string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		ID:           uuid.New().String(),
		Path:         dir,
		Name:         filepath.Base(dir),
		RegisteredAt: Epoch,
		LastSeenAt:   Epoch,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

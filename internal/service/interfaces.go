// Package service holds tally's use cases. Each one opens nothing itself:
// callers hand in a Workspace or repository and the service sequences the
// storage mutations, history recording and git side effects.
package service

import (
	"context"

	"github.com/alexanderramin/tally/internal/changelog"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/gitops"
)

type TaskService interface {
	Add(ctx context.Context, req AddRequest) (*AddResult, error)
	Complete(ctx context.Context, req CompleteRequest) (*CompleteResult, error)
	Remove(ctx context.Context, req RemoveRequest) (*RemoveResult, error)
	Prune(ctx context.Context, req PruneRequest) (*PruneResult, error)
	SetVersion(ctx context.Context, req VersionRequest) (*VersionResult, error)
	Release(ctx context.Context, req VersionRequest) (*VersionResult, error)
	Tag(ctx context.Context, req TagRequest) (*TagResult, error)
	Scan(ctx context.Context, req ScanRequest) (*ScanResult, error)
}

type ChangelogService interface {
	Build(ctx context.Context, from, to *domain.Version) (*changelog.Log, error)
}

type StatusService interface {
	Summary(ctx context.Context) (*StatusSummary, error)
}

type RegistryService interface {
	Register(ctx context.Context, root, name string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	PruneMissing(ctx context.Context) ([]*domain.Project, error)
	Status(ctx context.Context) (*RegistryStatus, error)
}

// GitClient is the subset of git tally drives. *gitops.Git implements it.
type GitClient interface {
	CommitFiles(ctx context.Context, message string, paths ...string) error
	CreateTag(ctx context.Context, name, message string) error
	RecentCommits(ctx context.Context, n int) ([]gitops.Commit, error)
}

var _ GitClient = (*gitops.Git)(nil)

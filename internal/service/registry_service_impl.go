package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/project"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/alexanderramin/tally/internal/storage"
)

type registryService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	clock    storage.Clock
	observer UseCaseObserver
}

func NewRegistryService(
	projects repository.ProjectRepo,
	uow db.UnitOfWork,
	clock storage.Clock,
	observers ...UseCaseObserver,
) RegistryService {
	if clock == nil {
		clock = systemClock
	}
	return &registryService{
		projects: projects,
		uow:      uow,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Register records root in the registry or refreshes its last-seen time.
func (s *registryService) Register(ctx context.Context, root, name string) (p *domain.Project, err error) {
	fields := map[string]any{"path": root}
	defer observe(ctx, s.observer, "register", fields)(&err)

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}
	now := s.clock()
	p = &domain.Project{
		ID:           uuid.New().String(),
		Path:         abs,
		Name:         name,
		RegisteredAt: now,
		LastSeenAt:   now,
	}
	if err = s.projects.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return s.projects.GetByPath(ctx, abs)
}

func (s *registryService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

// PruneMissing drops every project whose .tally/ directory is gone. All
// deletes share one transaction.
func (s *registryService) PruneMissing(ctx context.Context) (removed []*domain.Project, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "registry-prune", fields)(&err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteProjectRepo(tx)
		all, err := repo.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range all {
			if dirExists(filepath.Join(p.Path, project.DirName)) {
				continue
			}
			if err := repo.Delete(ctx, p.ID); err != nil {
				return err
			}
			removed = append(removed, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["removed"] = len(removed)
	return removed, nil
}

// Status loads every registered TODO.md. A project that fails to load is
// reported with Err set and left out of the totals.
func (s *registryService) Status(ctx context.Context) (*RegistryStatus, error) {
	all, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	st := &RegistryStatus{}
	for _, p := range all {
		ps := ProjectStatus{Project: p}
		list, err := storage.OpenListStorage(project.PathsFor(p.Path).TodoFile)
		if err != nil {
			ps.Err = err
			st.Projects = append(st.Projects, ps)
			continue
		}
		l := list.List()
		ps.Name = l.ProjectName
		ps.Version = l.ProjectVersion
		ps.Total = len(l.Tasks)
		ps.Open = l.OpenCount()
		ps.Done = ps.Total - ps.Open

		st.Loaded++
		st.Total += ps.Total
		st.Open += ps.Open
		st.Done += ps.Done
		st.Projects = append(st.Projects, ps)
	}
	return st, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return !errors.Is(err, os.ErrNotExist)
	}
	return info.IsDir()
}

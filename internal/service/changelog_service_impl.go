package service

import (
	"context"

	"github.com/alexanderramin/tally/internal/changelog"
	"github.com/alexanderramin/tally/internal/domain"
)

type changelogService struct {
	ws       *Workspace
	observer UseCaseObserver
}

func NewChangelogService(ws *Workspace, observers ...UseCaseObserver) ChangelogService {
	return &changelogService{ws: ws, observer: useCaseObserverOrNoop(observers)}
}

// Build assembles releases from the ledger, then adds versioned tasks still
// in TODO.md that were never recorded. Bounds are inclusive and optional.
func (s *changelogService) Build(ctx context.Context, from, to *domain.Version) (log *changelog.Log, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "changelog", fields)(&err)

	now := s.ws.Clock()
	var order []domain.Version
	byVersion := make(map[domain.Version][]domain.Change)
	add := func(v domain.Version, c domain.Change) {
		if _, seen := byVersion[v]; !seen {
			order = append(order, v)
		}
		byVersion[v] = append(byVersion[v], c)
	}

	for _, group := range s.ws.History.EntriesByVersion() {
		for _, e := range group.Entries {
			add(group.Version, e.Change)
		}
	}
	for _, t := range s.ws.List.Tasks() {
		if !t.Completed || t.CompletedVersion == nil {
			continue
		}
		entry := domain.NewHistoryEntry(t, now)
		if s.ws.History.HasSnapshot(entry) {
			continue
		}
		add(*t.CompletedVersion, entry.Change)
	}

	releases := make([]changelog.Release, 0, len(order))
	for _, v := range order {
		changes := byVersion[v]
		releases = append(releases, changelog.ReleaseFromChanges(v, changelog.ReleaseDate(changes, now), changes))
	}

	log = changelog.NewLog(s.ws.List.ProjectName(), releases, now).FilterVersions(from, to)
	fields["releases"] = len(log.Releases)
	return log, nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/matcher"
)

const (
	commitMsgComplete = "update TODO: complete task"
	commitMsgPrune    = "update TODO: prune tasks"
	commitMsgSemver   = "update TODO: set semver"
)

type taskService struct {
	ws       *Workspace
	git      GitClient
	observer UseCaseObserver
}

// NewTaskService binds the task use cases to ws. git may be nil when no
// request asks for a commit, tag or scan.
func NewTaskService(ws *Workspace, git GitClient, observers ...UseCaseObserver) TaskService {
	return &taskService{
		ws:       ws,
		git:      git,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) Add(ctx context.Context, req AddRequest) (res *AddResult, err error) {
	fields := map[string]any{"dry_run": req.DryRun}
	defer observe(ctx, s.observer, "add", fields)(&err)

	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		return nil, ErrEmptyDescription
	}

	priority := req.Priority
	if priority == "" {
		if priority, err = domain.ParsePriority(s.ws.Config.Config().Preferences.DefaultPriority); err != nil {
			return nil, fmt.Errorf("preferences.default_priority: %w", err)
		}
	}

	task := domain.NewTask(desc, priority, normalizeTags(req.Tags), s.ws.Clock())
	task.CreatedVersion = versionPtr(s.ws.List.ProjectVersion())
	fields["priority"] = string(task.Priority)

	if req.DryRun {
		return &AddResult{Task: task, DryRun: true}, nil
	}
	if err = s.ws.List.AddTask(task); err != nil {
		return nil, err
	}
	return &AddResult{Task: task}, nil
}

func (s *taskService) Complete(ctx context.Context, req CompleteRequest) (res *CompleteResult, err error) {
	fields := map[string]any{"query": req.Query, "dry_run": req.DryRun}
	defer observe(ctx, s.observer, "complete", fields)(&err)

	tasks := s.ws.List.Tasks()
	m, ok := matcher.Best(descriptions(tasks), req.Query, func(i int) bool {
		return !tasks[i].Completed
	})
	if !ok {
		return nil, &NoMatchError{Query: req.Query}
	}
	fields["score"] = m.Score

	if req.DryRun {
		preview := tasks[m.Index]
		preview.MarkComplete(s.ws.Clock(), req.Version, req.Commit)
		return &CompleteResult{Task: preview, Match: m, DryRun: true}, nil
	}

	task, err := s.ws.List.CompleteTask(m.Index, req.Version, req.Commit)
	if err != nil {
		return nil, err
	}
	res = &CompleteResult{Task: task, Match: m}
	if res.Recorded, err = s.ws.History.Record(task); err != nil {
		return nil, err
	}
	if res.Committed, err = s.ws.autoCommit(ctx, s.git, req.AutoCommit, commitMsgComplete); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *taskService) Remove(ctx context.Context, req RemoveRequest) (res *RemoveResult, err error) {
	fields := map[string]any{"query": req.Query, "dry_run": req.DryRun}
	defer observe(ctx, s.observer, "remove", fields)(&err)

	tasks := s.ws.List.Tasks()
	m, ok := matcher.Best(descriptions(tasks), req.Query, nil)
	if !ok {
		return nil, &NoMatchError{Query: req.Query}
	}
	fields["confidence"] = m.Confidence
	if m.Confidence < MinRemoveConfidence {
		return nil, &LowMatchError{Query: req.Query, Description: m.Text, Confidence: m.Confidence}
	}

	task := tasks[m.Index]
	if req.DryRun {
		return &RemoveResult{Task: task, Match: m, DryRun: true}, nil
	}

	res = &RemoveResult{Task: task, Match: m}
	if task.Completed {
		if res.Recorded, err = s.ws.History.Record(task); err != nil {
			return nil, err
		}
	}
	if _, err = s.ws.List.RemoveTask(m.Index); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *taskService) Prune(ctx context.Context, req PruneRequest) (res *PruneResult, err error) {
	age := req.Age
	if age <= 0 {
		age = DefaultPruneAge
	}
	fields := map[string]any{"age": age.String(), "dry_run": req.DryRun}
	defer observe(ctx, s.observer, "prune", fields)(&err)

	res = &PruneResult{Age: age, Cutoff: s.ws.Clock().Add(-age), DryRun: req.DryRun}
	var indices []int
	for i, t := range s.ws.List.Tasks() {
		if t.CompletedBefore(res.Cutoff) {
			indices = append(indices, i)
			res.Tasks = append(res.Tasks, t)
		}
	}
	fields["count"] = len(indices)
	if len(indices) == 0 || req.DryRun {
		return res, nil
	}

	if res.Recorded, err = s.ws.History.RecordAll(res.Tasks); err != nil {
		return nil, err
	}
	if _, err = s.ws.List.RemoveTasks(indices); err != nil {
		return nil, err
	}
	if res.Committed, err = s.ws.autoCommit(ctx, s.git, req.AutoCommit, commitMsgPrune); err != nil {
		return nil, err
	}
	return res, nil
}

// SetVersion makes req.Version the project version and releases every
// completed, unversioned task under it in both TODO.md and the ledger.
func (s *taskService) SetVersion(ctx context.Context, req VersionRequest) (res *VersionResult, err error) {
	fields := map[string]any{"version": req.Version.String(), "dry_run": req.DryRun}
	defer observe(ctx, s.observer, "semver", fields)(&err)

	res = &VersionResult{
		Version: req.Version,
		Pending: s.ws.List.List().UnversionedCompletedTasks(),
		DryRun:  req.DryRun,
	}
	if req.DryRun {
		return res, nil
	}

	if err = s.ws.List.SetProjectVersion(req.Version); err != nil {
		return nil, err
	}
	if res.Recorded, err = s.ws.History.RecordAll(res.Pending); err != nil {
		return nil, err
	}
	if res.Assigned, err = s.ws.List.AssignVersionToCompleted(req.Version); err != nil {
		return nil, err
	}
	if res.LedgerAssigned, err = s.ws.History.AssignVersion(req.Version); err != nil {
		return nil, err
	}
	res.Released = s.releasedChanges(req.Version)
	fields["assigned"] = res.Assigned

	if res.Committed, err = s.ws.autoCommit(ctx, s.git, req.AutoCommit, commitMsgSemver); err != nil {
		return nil, err
	}
	return res, nil
}

// Release stamps the version on completed tasks in TODO.md only. The
// project version and the ledger are left alone.
func (s *taskService) Release(ctx context.Context, req VersionRequest) (res *VersionResult, err error) {
	fields := map[string]any{"version": req.Version.String(), "dry_run": req.DryRun}
	defer observe(ctx, s.observer, "release", fields)(&err)

	res = &VersionResult{
		Version: req.Version,
		Pending: s.ws.List.List().UnversionedCompletedTasks(),
		DryRun:  req.DryRun,
	}
	if req.DryRun || len(res.Pending) == 0 {
		return res, nil
	}
	if res.Assigned, err = s.ws.List.AssignVersionToCompleted(req.Version); err != nil {
		return nil, err
	}
	for _, t := range s.ws.List.List().TasksForVersion(req.Version) {
		res.Released = append(res.Released, domain.ChangeFromTask(t, s.ws.Clock()))
	}
	return res, nil
}

func (s *taskService) Tag(ctx context.Context, req TagRequest) (res *TagResult, err error) {
	name := TagName(req.Version)
	msg := req.Message
	if msg == "" {
		msg = "Release " + name
	}
	fields := map[string]any{"tag": name, "dry_run": req.DryRun}
	defer observe(ctx, s.observer, "tag", fields)(&err)

	if !req.DryRun && s.git == nil {
		return nil, fmt.Errorf("tagging %s: git is not configured", name)
	}

	vres, err := s.SetVersion(ctx, req.VersionRequest)
	if err != nil {
		return nil, err
	}
	res = &TagResult{VersionResult: vres, Tag: name, Message: msg}
	if req.DryRun {
		return res, nil
	}
	if err = s.git.CreateTag(ctx, name, msg); err != nil {
		return nil, err
	}
	return res, nil
}

// Scan reads recent commits and completes open tasks whose description
// matches an item of a commit's done section. Only commits made after the
// task was created are considered.
func (s *taskService) Scan(ctx context.Context, req ScanRequest) (res *ScanResult, err error) {
	fields := map[string]any{"dry_run": req.DryRun, "auto": req.Auto}
	defer observe(ctx, s.observer, "scan", fields)(&err)

	if s.git == nil {
		return nil, fmt.Errorf("scan: git is not configured")
	}
	commits, err := s.git.RecentCommits(ctx, req.Depth)
	if err != nil {
		return nil, err
	}
	prefix := s.ws.Config.Config().Git.DonePrefix
	auto := req.Auto || s.ws.Config.Config().Preferences.AutoCompleteTasks

	res = &ScanResult{DryRun: req.DryRun}
	var accepted []ScanMatch
	for i, task := range s.ws.List.Tasks() {
		if task.Completed {
			continue
		}
		if s.ws.Ignore.IsIgnored(task.Description, task.Tags) {
			res.Ignored++
			continue
		}

		var best *ScanMatch
		for _, c := range commits {
			if c.Date.Before(task.CreatedAt) {
				continue
			}
			for _, item := range c.DoneItems(prefix) {
				score, ok := matcher.Score(task.Description, item)
				if !ok || (best != nil && score <= best.Score) {
					continue
				}
				best = &ScanMatch{Index: i, Task: task, Commit: c.Hash, DoneItem: item, Score: score}
			}
		}
		if best == nil {
			continue
		}
		res.Matches = append(res.Matches, *best)

		switch {
		case req.DryRun:
		case auto || (req.Confirm != nil && req.Confirm(*best)):
			accepted = append(accepted, *best)
		default:
			res.Skipped = append(res.Skipped, *best)
		}
	}
	fields["matches"] = len(res.Matches)
	if len(accepted) == 0 {
		return res, nil
	}

	for _, m := range accepted {
		task, err := s.ws.List.CompleteTask(m.Index, nil, m.Commit)
		if err != nil {
			return nil, err
		}
		res.Completed = append(res.Completed, task)
	}
	if _, err = s.ws.History.RecordAll(res.Completed); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *taskService) releasedChanges(v domain.Version) []domain.Change {
	var out []domain.Change
	for _, e := range s.ws.History.EntriesForVersion(v) {
		out = append(out, e.Change)
	}
	return out
}

func versionPtr(v domain.Version) *domain.Version {
	return &v
}


package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/project"
	"github.com/alexanderramin/tally/internal/storage"
)

// Workspace is one project's files loaded into memory.
type Workspace struct {
	Paths   project.Paths
	List    *storage.ListStorage
	History *storage.HistoryStorage
	Config  *storage.ConfigStorage
	Ignore  *storage.IgnoreRules
	Clock   storage.Clock
}

func systemClock() time.Time { return time.Now().UTC() }

// OpenWorkspace loads every file of the project at paths. A nil clock uses
// the system time.
func OpenWorkspace(paths project.Paths, clock storage.Clock) (*Workspace, error) {
	if clock == nil {
		clock = systemClock
	}
	list, err := storage.OpenListStorage(paths.TodoFile, storage.WithClock(clock))
	if err != nil {
		return nil, err
	}
	history, err := storage.OpenHistoryStorage(paths.HistoryFile, storage.WithClock(clock))
	if err != nil {
		return nil, err
	}
	config, err := storage.OpenConfigStorage(paths.ConfigFile)
	if err != nil {
		return nil, err
	}
	return &Workspace{
		Paths:   paths,
		List:    list,
		History: history,
		Config:  config,
		Ignore:  storage.LoadIgnoreRules(paths.IgnoreFile),
		Clock:   clock,
	}, nil
}

// InitResult reports which files InitWorkspace created.
type InitResult struct {
	Workspace      *Workspace
	CreatedDir     bool
	CreatedTodo    bool
	CreatedHistory bool
}

// AlreadyComplete is true when init found every file in place.
func (r *InitResult) AlreadyComplete() bool {
	return !r.CreatedDir && !r.CreatedTodo && !r.CreatedHistory
}

// InitWorkspace creates .tally/ with an empty ledger and a TODO.md named
// after the directory. Existing files are kept, so running it twice is
// harmless.
func InitWorkspace(ctx context.Context, dir string, clock storage.Clock, observers ...UseCaseObserver) (res *InitResult, err error) {
	fields := map[string]any{"dir": dir}
	defer observe(ctx, useCaseObserverOrNoop(observers), "init", fields)(&err)

	res = &InitResult{CreatedDir: true}
	paths, err := project.Init(dir)
	if errors.Is(err, project.ErrAlreadyInitialized) {
		res.CreatedDir = false
		err = nil
	}
	if err != nil {
		return nil, err
	}

	ws, err := OpenWorkspace(paths, clock)
	if err != nil {
		return nil, err
	}
	res.Workspace = ws

	if !fileExists(paths.HistoryFile) {
		if err = ws.History.Save(); err != nil {
			return nil, err
		}
		res.CreatedHistory = true
	}
	if !fileExists(paths.TodoFile) {
		name := filepath.Base(paths.Root)
		if name == "" || name == string(filepath.Separator) || name == "." {
			name = domain.DefaultProjectName
		}
		if err = ws.List.SetProjectName(name); err != nil {
			return nil, err
		}
		res.CreatedTodo = true
	}
	fields["created_todo"] = res.CreatedTodo
	return res, nil
}

// tallyFiles are the files auto-commit stages, relative to the root.
func (w *Workspace) tallyFiles() []string {
	var out []string
	for _, p := range []string{w.Paths.TodoFile, w.Paths.HistoryFile} {
		rel, err := filepath.Rel(w.Paths.Root, p)
		if err != nil {
			rel = p
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

// autoCommit commits the tally files when asked to or when the project
// prefers it. It reports whether a commit ran.
func (w *Workspace) autoCommit(ctx context.Context, git GitClient, requested bool, message string) (bool, error) {
	if !requested && !w.Config.Config().Preferences.AutoCommitTodo {
		return false, nil
	}
	if git == nil {
		return false, fmt.Errorf("auto-commit requested but git is not configured")
	}
	if err := git.CommitFiles(ctx, message, w.tallyFiles()...); err != nil {
		return false, err
	}
	return true, nil
}

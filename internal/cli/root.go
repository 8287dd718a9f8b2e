// Package cli is tally's cobra command tree. Commands resolve the project
// from App.Workdir, call one service use case and print through formatter.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tally/internal/gitops"
	"github.com/alexanderramin/tally/internal/project"
	"github.com/alexanderramin/tally/internal/service"
	"github.com/alexanderramin/tally/internal/storage"
)

// App holds what commands need from the process: where to look for the
// project, the shared registry and the terminal hooks.
type App struct {
	Workdir  string
	Registry service.RegistryService
	Clock    storage.Clock

	// NewGit returns the git client for a project root. Nil uses the git
	// binary on PATH.
	NewGit func(root string) service.GitClient

	// LogLevel enables use-case logging on stderr when set. --verbose
	// forces debug.
	LogLevel string
	Observer service.UseCaseObserver

	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh form.
	Confirm func(title, description string) (bool, error)
	// RunEditor opens path in editor. Nil runs the editor as a subprocess.
	RunEditor func(ctx context.Context, editor, path string) error

	dryRun  bool
	verbose bool
}

// NewRootCmd creates the top-level "tally" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tally",
		Short:         "Track TODO.md tasks and build changelogs from what got done",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().BoolVarP(&app.dryRun, "dry-run", "n", false, "show what would change without writing anything")
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "log each use case to stderr")
	root.PersistentFlags().StringVarP(&app.Workdir, "dir", "C", app.Workdir, "run as if tally was started in this directory")

	root.AddCommand(
		newInitCmd(app),
		newAddCmd(app),
		newDoneCmd(app),
		newRemoveCmd(app),
		newListCmd(app),
		newStatusCmd(app),
		newSemverCmd(app),
		newReleaseCmd(app),
		newTagCmd(app),
		newChangelogCmd(app),
		newPruneCmd(app),
		newScanCmd(app),
		newEditCmd(app),
		newConfigCmd(app),
		newProjectsCmd(app),
		newHistoryCmd(app),
	)

	return root
}

func (a *App) setup(stderr io.Writer) error {
	level := a.LogLevel
	if a.verbose {
		level = "debug"
	}
	if a.Observer == nil && level != "" {
		a.Observer = service.NewLogUseCaseObserver(stderr, level)
	}
	if a.Workdir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("finding working directory: %w", err)
		}
		a.Workdir = wd
	}
	return nil
}

func (a *App) observers() []service.UseCaseObserver {
	if a.Observer == nil {
		return nil
	}
	return []service.UseCaseObserver{a.Observer}
}

func (a *App) git(root string) service.GitClient {
	if a.NewGit != nil {
		return a.NewGit(root)
	}
	return gitops.New(root, nil)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// openWorkspace loads the project enclosing Workdir and refreshes its
// registry entry. A registry failure is reported but never fails the
// command.
func (a *App) openWorkspace(cmd *cobra.Command) (*service.Workspace, error) {
	paths, err := project.Discover(a.Workdir)
	if err != nil {
		return nil, err
	}
	ws, err := service.OpenWorkspace(paths, a.Clock)
	if err != nil {
		return nil, err
	}
	if ws.History.Discarded() {
		fmt.Fprintln(cmd.ErrOrStderr(), warnLine(fmt.Sprintf("%s could not be parsed; starting from an empty history", paths.HistoryFile)))
	}
	if !a.dryRun {
		a.register(cmd, paths.Root, ws.List.ProjectName())
	}
	return ws, nil
}

func (a *App) register(cmd *cobra.Command, root, name string) {
	if a.Registry == nil {
		return
	}
	if _, err := a.Registry.Register(cmd.Context(), root, name); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), warnLine(fmt.Sprintf("could not update project registry: %v", err)))
	}
}

func (a *App) taskService(ws *service.Workspace) service.TaskService {
	return service.NewTaskService(ws, a.git(ws.Paths.Root), a.observers()...)
}

func (a *App) now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now().UTC()
}

type forwardingObserver struct{ app *App }

func (f forwardingObserver) ObserveUseCase(ctx context.Context, event service.UseCaseEvent) {
	if f.app.Observer != nil {
		f.app.Observer.ObserveUseCase(ctx, event)
	}
}

// ForwardingObserver reports to whatever observer the App holds when the
// event fires, so services built before flag parsing still honour --verbose.
func (a *App) ForwardingObserver() service.UseCaseObserver {
	return forwardingObserver{app: a}
}

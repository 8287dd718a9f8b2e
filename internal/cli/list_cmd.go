package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/domain"
)

// taskJSON is the --json view of a task.
type taskJSON struct {
	Index            int             `json:"index"`
	Description      string          `json:"description"`
	Priority         domain.Priority `json:"priority"`
	Tags             []string        `json:"tags"`
	Completed        bool            `json:"completed"`
	CreatedAt        time.Time       `json:"created_at"`
	CreatedVersion   *domain.Version `json:"created_version,omitempty"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	CompletedVersion *domain.Version `json:"completed_version,omitempty"`
	CompletedCommit  string          `json:"completed_commit,omitempty"`
}

func newTaskJSON(it formatter.IndexedTask) taskJSON {
	t := it.Task
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return taskJSON{
		Index:            it.Index + 1,
		Description:      t.Description,
		Priority:         t.Priority,
		Tags:             tags,
		Completed:        t.Completed,
		CreatedAt:        t.CreatedAt,
		CreatedVersion:   t.CreatedVersion,
		CompletedAt:      t.CompletedAt,
		CompletedVersion: t.CompletedVersion,
		CompletedCommit:  t.CompletedCommit,
	}
}

type listFilter struct {
	done     bool
	undone   bool
	tags     []string
	priority priorityFlag
}

func (f *listFilter) keep(t domain.Task) bool {
	if f.done && !t.Completed {
		return false
	}
	if f.undone && t.Completed {
		return false
	}
	if len(f.tags) > 0 && !t.HasAnyTag(f.tags) {
		return false
	}
	if f.priority.value != "" && t.Priority != f.priority.value {
		return false
	}
	return true
}

func newListCmd(app *App) *cobra.Command {
	var (
		filter  listFilter
		rawTags []string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show tasks, optionally filtered",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := app.openWorkspace(cmd)
			if err != nil {
				return err
			}
			filter.tags = splitTags(rawTags)

			var tasks []formatter.IndexedTask
			for i, t := range ws.List.Tasks() {
				if filter.keep(t) {
					tasks = append(tasks, formatter.IndexedTask{Index: i, Task: t})
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				views := make([]taskJSON, 0, len(tasks))
				for _, it := range tasks {
					views = append(views, newTaskJSON(it))
				}
				data, err := json.MarshalIndent(views, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding tasks: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			fmt.Fprint(out, formatter.TaskList(tasks))
			return nil
		},
	}

	cmd.Flags().BoolVar(&filter.done, "done", false, "only completed tasks")
	cmd.Flags().BoolVar(&filter.undone, "undone", false, "only open tasks")
	cmd.Flags().StringSliceVarP(&rawTags, "tags", "t", nil, "only tasks carrying any of these tags")
	cmd.Flags().VarP(&filter.priority, "priority", "p", "only tasks with this priority")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.MarkFlagsMutuallyExclusive("done", "undone")
	return cmd
}

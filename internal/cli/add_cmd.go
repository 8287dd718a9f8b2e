package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/service"
)

func newAddCmd(app *App) *cobra.Command {
	var (
		priority priorityFlag
		tags     []string
	)

	cmd := &cobra.Command{
		Use:   "add <description...>",
		Short: "Add a task to TODO.md",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := app.openWorkspace(cmd)
			if err != nil {
				return err
			}
			res, err := app.taskService(ws).Add(cmd.Context(), service.AddRequest{
				Description: strings.Join(args, " "),
				Priority:    priority.value,
				Tags:        splitTags(tags),
				DryRun:      app.dryRun,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.DryRun {
				fmt.Fprintln(out, "Would add: "+formatter.TaskLine(res.Task))
				return nil
			}
			fmt.Fprintln(out, formatter.Success("Added: "+formatter.TaskLine(res.Task)))
			return nil
		},
	}

	cmd.Flags().VarP(&priority, "priority", "p", "task priority (low, medium, high)")
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "tags, comma separated")
	return cmd
}

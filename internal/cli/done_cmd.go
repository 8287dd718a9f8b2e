package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/service"
)

func newDoneCmd(app *App) *cobra.Command {
	var (
		commit     string
		version    versionFlag
		autoCommit bool
	)

	cmd := &cobra.Command{
		Use:     "done <query...>",
		Aliases: []string{"complete"},
		Short:   "Mark the open task best matching query as done",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := app.openWorkspace(cmd)
			if err != nil {
				return err
			}
			res, err := app.taskService(ws).Complete(cmd.Context(), service.CompleteRequest{
				Query:      strings.Join(args, " "),
				Version:    version.value,
				Commit:     commit,
				AutoCommit: autoCommit,
				DryRun:     app.dryRun,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.DryRun {
				fmt.Fprint(out, "Would complete:\n"+formatter.TaskPreview(res.Task))
				return nil
			}
			fmt.Fprintln(out, formatter.Success("Completed: "+formatter.TaskLine(res.Task)))
			if res.Committed {
				fmt.Fprintln(out, formatter.Dim("Committed TODO.md and history"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&commit, "commit", "", "commit hash that completed the task")
	cmd.Flags().Var(&version, "version", "version the task shipped in")
	cmd.Flags().BoolVar(&autoCommit, "auto", false, "commit TODO.md and history afterwards")
	return cmd
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/service"
)

func newRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove <query...>",
		Aliases: []string{"rm"},
		Short:   "Delete the task best matching query",
		Long: "Delete the task best matching query. Completed tasks are written to\n" +
			"the history ledger first so they still appear in changelogs.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := app.openWorkspace(cmd)
			if err != nil {
				return err
			}
			svc := app.taskService(ws)
			query := strings.Join(args, " ")
			out := cmd.OutOrStdout()

			preview, err := svc.Remove(cmd.Context(), service.RemoveRequest{Query: query, DryRun: true})
			if err != nil {
				return err
			}
			if app.dryRun {
				fmt.Fprint(out, "Would remove:\n"+formatter.TaskPreview(preview.Task))
				return nil
			}

			ok, err := app.confirm(yes, "Remove this task?", preview.Task.Description)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}

			res, err := svc.Remove(cmd.Context(), service.RemoveRequest{Query: query})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.Success("Removed: "+formatter.TaskLine(res.Task)))
			if res.Task.Completed {
				fmt.Fprintln(out, formatter.Dim("Kept in history"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

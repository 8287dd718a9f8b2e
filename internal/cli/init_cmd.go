package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/service"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Create .tally/ and TODO.md in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := app.Workdir
			if len(args) == 1 {
				dir = args[0]
			}

			res, err := service.InitWorkspace(cmd.Context(), dir, app.Clock, app.observers()...)
			if err != nil {
				return err
			}
			ws := res.Workspace
			app.register(cmd, ws.Paths.Root, ws.List.ProjectName())

			out := cmd.OutOrStdout()
			if res.AlreadyComplete() {
				fmt.Fprintf(out, "tally is already initialized in %s\n", ws.Paths.Root)
				return nil
			}
			if res.CreatedDir {
				fmt.Fprintln(out, formatter.Success("Created "+ws.Paths.TallyDir))
			}
			if res.CreatedTodo {
				fmt.Fprintln(out, formatter.Success("Created "+ws.Paths.TodoFile))
			}
			if res.CreatedHistory {
				fmt.Fprintln(out, formatter.Success("Created "+ws.Paths.HistoryFile))
			}
			return nil
		},
	}
}

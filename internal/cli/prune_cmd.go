package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/service"
)

func newPruneCmd(app *App) *cobra.Command {
	var (
		days, hours int
		autoCommit  bool
		yes         bool
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove completed tasks older than a cutoff",
		Long: "Remove completed tasks older than --days plus --hours (30 days when\n" +
			"neither is given). Pruned tasks are kept in the history ledger.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days < 0 || hours < 0 {
				return fmt.Errorf("--days and --hours must not be negative")
			}
			age := time.Duration(days)*24*time.Hour + time.Duration(hours)*time.Hour

			ws, err := app.openWorkspace(cmd)
			if err != nil {
				return err
			}
			svc := app.taskService(ws)
			out := cmd.OutOrStdout()

			preview, err := svc.Prune(cmd.Context(), service.PruneRequest{Age: age, DryRun: true})
			if err != nil {
				return err
			}
			span := formatter.Duration(preview.Age)
			if len(preview.Tasks) == 0 {
				fmt.Fprintf(out, "No completed tasks older than %s to prune.\n", span)
				return nil
			}
			if app.dryRun {
				fmt.Fprintf(out, "Would prune %s older than %s:\n", formatter.Plural(len(preview.Tasks), "completed task"), span)
				for _, t := range preview.Tasks {
					fmt.Fprintf(out, "  %s %s\n", formatter.TaskLine(t), formatter.Dim("(completed: "+t.CompletedAt.Format("2006-01-02 15:04")+")"))
				}
				return nil
			}

			ok, err := app.confirm(yes, fmt.Sprintf("Prune %s?", formatter.Plural(len(preview.Tasks), "completed task")), "They stay in the history ledger.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}

			res, err := svc.Prune(cmd.Context(), service.PruneRequest{Age: age, AutoCommit: autoCommit})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Pruned %s older than %s", formatter.Plural(len(res.Tasks), "task"), span)))
			if res.Committed {
				fmt.Fprintln(out, formatter.Dim("Committed TODO.md and history"))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "age in days")
	cmd.Flags().IntVar(&hours, "hours", 0, "age in hours, added to --days")
	cmd.Flags().BoolVar(&autoCommit, "auto", false, "commit TODO.md and history afterwards")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

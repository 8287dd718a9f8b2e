package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/gitops"
	"github.com/alexanderramin/tally/internal/service"
)

func newScanCmd(app *App) *cobra.Command {
	var (
		auto  bool
		depth int
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Complete open tasks listed in recent commit messages",
		Long: "Read recent commits and match the items under their done: section\n" +
			"(git.done_prefix) against open tasks. Each match is confirmed unless\n" +
			"--auto or preferences.auto_complete_tasks is set. Rules in\n" +
			".tally/ignore exclude tasks from matching.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := app.openWorkspace(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			req := service.ScanRequest{Depth: depth, Auto: auto, DryRun: app.dryRun}
			if app.interactive() {
				req.Confirm = func(m service.ScanMatch) bool {
					fmt.Fprint(out, formatter.FormatScanMatch(m))
					ask := app.Confirm
					if ask == nil {
						ask = huhConfirm
					}
					ok, err := ask("Mark this task as done?", m.Task.Description)
					return err == nil && ok
				}
			}

			res, err := app.taskService(ws).Scan(cmd.Context(), req)
			if err != nil {
				return err
			}

			if res.Ignored > 0 {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("Ignored %s via .tally/ignore", formatter.Plural(res.Ignored, "task"))))
			}
			if len(res.Matches) == 0 {
				fmt.Fprintln(out, "No matching tasks found in recent commits.")
				return nil
			}
			if res.DryRun {
				for _, m := range res.Matches {
					fmt.Fprint(out, formatter.FormatScanMatch(m))
				}
				fmt.Fprintf(out, "Would complete %s\n", formatter.Plural(len(res.Matches), "task"))
				return nil
			}
			for _, t := range res.Completed {
				fmt.Fprintln(out, formatter.Success("Completed: "+formatter.TaskLine(t)))
			}
			if n := len(res.Skipped); n > 0 {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("Skipped %d match(es); use --auto to accept all", n)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&auto, "auto", false, "complete every match without asking")
	cmd.Flags().IntVar(&depth, "depth", gitops.DefaultScanDepth, "number of commits to read")
	return cmd
}

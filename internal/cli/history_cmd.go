package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/project"
	"github.com/alexanderramin/tally/internal/storage"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the ledger of completed tasks",
	}
	cmd.AddCommand(newHistoryListCmd(app), newHistoryCheckCmd(app))
	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print ledger entries grouped by version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := app.openWorkspace(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(ws.History.EntriesByVersion(), ws.History.UnversionedEntries()))
			return nil
		},
	}
}

func newHistoryCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate .tally/history.json against the ledger schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := project.Discover(app.Workdir)
			if err != nil {
				return err
			}
			violations, err := storage.CheckHistoryFile(paths.HistoryFile)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatViolations(paths.HistoryFile, violations))
			if len(violations) > 0 {
				return fmt.Errorf("history ledger is invalid")
			}
			return nil
		},
	}
}

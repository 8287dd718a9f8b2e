package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tally/internal/cli/formatter"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Work with every tally project registered on this machine",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.setup(cmd.ErrOrStderr()); err != nil {
				return err
			}
			if app.Registry == nil {
				return fmt.Errorf("project registry is not configured")
			}
			return nil
		},
	}
	cmd.AddCommand(
		newProjectsListCmd(app),
		newProjectsStatusCmd(app),
		newProjectsPruneCmd(app),
	)
	return cmd
}

// dropMissing removes registry entries whose .tally/ is gone and reports
// them on stderr. Dry runs leave the registry alone.
func (a *App) dropMissing(cmd *cobra.Command) error {
	if a.dryRun {
		return nil
	}
	removed, err := a.Registry.PruneMissing(cmd.Context())
	if err != nil {
		return err
	}
	for _, p := range removed {
		fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("Dropped missing project "+p.Path))
	}
	return nil
}

func newProjectsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.dropMissing(cmd); err != nil {
				return err
			}
			projects, err := app.Registry.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectList(projects, app.now()))
			return nil
		},
	}
}

func newProjectsStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show task counts across registered projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.dropMissing(cmd); err != nil {
				return err
			}
			st, err := app.Registry.Status(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRegistryStatus(st))
			return nil
		},
	}
}

func newProjectsPruneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Forget projects whose .tally/ directory no longer exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if app.dryRun {
				fmt.Fprintln(out, "Would drop registered projects whose .tally/ directory is missing")
				return nil
			}
			removed, err := app.Registry.PruneMissing(cmd.Context())
			if err != nil {
				return err
			}
			if len(removed) == 0 {
				fmt.Fprintln(out, "All registered projects still exist.")
				return nil
			}
			for _, p := range removed {
				fmt.Fprintln(out, formatter.Success("Dropped "+p.Path))
			}
			return nil
		},
	}
}

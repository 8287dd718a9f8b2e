package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/service"
)

func newSemverCmd(app *App) *cobra.Command {
	var summary, autoCommit bool

	cmd := &cobra.Command{
		Use:   "semver <version>",
		Short: "Set the project version and stamp unversioned completed tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := domain.ParseVersion(args[0])
			if err != nil {
				return err
			}
			ws, err := app.openWorkspace(cmd)
			if err != nil {
				return err
			}
			res, err := app.taskService(ws).SetVersion(cmd.Context(), service.VersionRequest{
				Version:    v,
				AutoCommit: autoCommit,
				DryRun:     app.dryRun,
			})
			if err != nil {
				return err
			}
			printVersionResult(cmd.OutOrStdout(), res, true, summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "list the tasks released under the version")
	cmd.Flags().BoolVar(&autoCommit, "auto", false, "commit TODO.md and history afterwards")
	return cmd
}

func newReleaseCmd(app *App) *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "release <version>",
		Short: "Stamp unversioned completed tasks with a version",
		Long: "Stamp unversioned completed tasks in TODO.md with a version. Unlike\n" +
			"semver this leaves the project version and the history ledger alone.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := domain.ParseVersion(args[0])
			if err != nil {
				return err
			}
			ws, err := app.openWorkspace(cmd)
			if err != nil {
				return err
			}
			res, err := app.taskService(ws).Release(cmd.Context(), service.VersionRequest{
				Version: v,
				DryRun:  app.dryRun,
			})
			if err != nil {
				return err
			}
			printVersionResult(cmd.OutOrStdout(), res, false, summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "list the tasks released under the version")
	return cmd
}

func newTagCmd(app *App) *cobra.Command {
	var (
		message    string
		summary    bool
		autoCommit bool
	)

	cmd := &cobra.Command{
		Use:   "tag <version>",
		Short: "Run semver and create an annotated git tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := domain.ParseVersion(args[0])
			if err != nil {
				return err
			}
			ws, err := app.openWorkspace(cmd)
			if err != nil {
				return err
			}
			res, err := app.taskService(ws).Tag(cmd.Context(), service.TagRequest{
				VersionRequest: service.VersionRequest{
					Version:    v,
					AutoCommit: autoCommit,
					DryRun:     app.dryRun,
				},
				Message: message,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printVersionResult(out, res.VersionResult, true, summary)
			if res.DryRun {
				fmt.Fprintf(out, "\nWould create git tag: %s (%s)\n", res.Tag, res.Message)
				return nil
			}
			fmt.Fprintln(out, formatter.Success("Created git tag: "+res.Tag))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "tag message (default \"Release v<version>\")")
	cmd.Flags().BoolVar(&summary, "summary", false, "list the tasks released under the version")
	cmd.Flags().BoolVar(&autoCommit, "auto", false, "commit TODO.md and history before tagging")
	return cmd
}

func printVersionResult(out io.Writer, res *service.VersionResult, setsProject, summary bool) {
	v := res.Version.String()
	if setsProject {
		if res.DryRun {
			fmt.Fprintf(out, "Would set project version to %s\n", v)
		} else {
			fmt.Fprintf(out, "Set project version to %s\n", v)
		}
	}

	if len(res.Pending) == 0 {
		fmt.Fprintln(out, "Nothing to do: no completed tasks without a version.")
	} else if res.DryRun {
		fmt.Fprintf(out, "Would assign version %s to %s:\n", v, formatter.Plural(len(res.Pending), "task"))
		for _, t := range res.Pending {
			fmt.Fprintln(out, "  "+formatter.TaskLine(t))
		}
	} else {
		fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Assigned version %s to %s", v, formatter.Plural(res.Assigned, "task"))))
	}

	if res.Committed {
		fmt.Fprintln(out, formatter.Dim("Committed TODO.md and history"))
	}

	if summary && !res.DryRun && len(res.Released) > 0 {
		fmt.Fprintf(out, "\nTasks in %s:\n", v)
		for _, c := range res.Released {
			fmt.Fprintln(out, "  • "+c.Description)
		}
	}
}

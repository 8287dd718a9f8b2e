package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tally/internal/changelog"
	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/service"
)

func newChangelogCmd(app *App) *cobra.Command {
	var (
		from, to versionFlag
		format   string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Build a changelog from the history ledger and TODO.md",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := changelog.ParseFormat(format)
			if err != nil {
				return err
			}
			ws, err := app.openWorkspace(cmd)
			if err != nil {
				return err
			}
			log, err := service.NewChangelogService(ws, app.observers()...).Build(cmd.Context(), from.value, to.value)
			if err != nil {
				return err
			}
			data, err := changelog.Render(log, f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == "" {
				if log.Empty() && f == changelog.FormatMarkdown {
					fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("No versioned changes yet. Run `tally semver <version>` to cut a release."))
				}
				_, err = out.Write(data)
				return err
			}
			if app.dryRun {
				fmt.Fprintf(out, "Would write %s (%s)\n", output, formatter.Plural(len(log.Releases), "release"))
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Wrote %s (%s)", output, formatter.Plural(len(log.Releases), "release"))))
			return nil
		},
	}

	cmd.Flags().Var(&from, "from", "oldest version to include")
	cmd.Flags().Var(&to, "to", "newest version to include")
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "output format: markdown, json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/storage"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and change .tally/config.toml",
	}
	cmd.AddCommand(
		newConfigGetCmd(app),
		newConfigSetCmd(app),
		newConfigListCmd(app),
	)
	return cmd
}

// withKeyHint appends the supported keys to unknown-key errors.
func withKeyHint(err error) error {
	var knf *storage.KeyNotFoundError
	if errors.As(err, &knf) {
		return fmt.Errorf("%w (supported: %s)", err, strings.Join(storage.ConfigKeys(), ", "))
	}
	return err
}

func newConfigGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := app.openWorkspace(cmd)
			if err != nil {
				return err
			}
			v, err := ws.Config.Get(args[0])
			if err != nil {
				return withKeyHint(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := app.openWorkspace(cmd)
			if err != nil {
				return err
			}
			key, value := args[0], args[1]
			out := cmd.OutOrStdout()
			if app.dryRun {
				if _, err := ws.Config.Get(key); err != nil {
					return withKeyHint(err)
				}
				fmt.Fprintf(out, "Would set %s = %s\n", key, value)
				return nil
			}
			if err := ws.Config.Set(key, value); err != nil {
				return withKeyHint(err)
			}
			v, _ := ws.Config.Get(key)
			fmt.Fprintln(out, formatter.Success(fmt.Sprintf("%s = %s", key, v)))
			return nil
		},
	}
}

func newConfigListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := app.openWorkspace(cmd)
			if err != nil {
				return err
			}
			values := ws.Config.Flatten()
			rows := make([][]string, 0, len(values))
			for _, k := range storage.ConfigKeys() {
				v := values[k]
				if v == "" {
					v = formatter.Dim("(unset)")
				}
				rows = append(rows, []string{k, v})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"KEY", "VALUE"}, rows))
			return nil
		},
	}
}

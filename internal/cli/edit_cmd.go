package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
)

var fallbackEditors = []string{"nvim", "vim", "nano", "vi"}

// editorCandidates lists the configured editor, then $EDITOR, then common
// terminal editors, without duplicates.
func editorCandidates(configured string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range append([]string{configured, os.Getenv("EDITOR")}, fallbackEditors...) {
		e = strings.TrimSpace(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// execEditor runs editor on path attached to the terminal. The editor
// string may carry arguments, as in "code --wait".
func execEditor(ctx context.Context, editor, path string) error {
	fields := strings.Fields(editor)
	args := append(fields[1:], path)
	c := exec.CommandContext(ctx, fields[0], args...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open TODO.md in an editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := app.openWorkspace(cmd)
			if err != nil {
				return err
			}
			run := app.RunEditor
			if run == nil {
				run = execEditor
			}

			candidates := editorCandidates(ws.Config.Config().Preferences.Editor)
			for _, editor := range candidates {
				err := run(cmd.Context(), editor, ws.Paths.TodoFile)
				if err == nil {
					return nil
				}
				if errors.Is(err, exec.ErrNotFound) {
					continue
				}
				return fmt.Errorf("editor %q: %w", editor, err)
			}
			return fmt.Errorf("no editor found (tried %s); set preferences.editor or $EDITOR", strings.Join(candidates, ", "))
		},
	}
}

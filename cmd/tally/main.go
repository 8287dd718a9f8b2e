package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/tally/internal/cli"
	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/alexanderramin/tally/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Registry path: env var or the user config directory.
	registryPath := os.Getenv("TALLY_REGISTRY")
	if registryPath == "" {
		registryPath = db.DefaultPath()
	}

	app := &cli.App{
		LogLevel: os.Getenv("TALLY_LOG"),
	}

	// A broken registry must not stop per-project commands.
	database, err := db.OpenDB(registryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: project registry unavailable: %v\n", err)
	} else {
		defer database.Close()
		app.Registry = service.NewRegistryService(
			repository.NewSQLiteProjectRepo(database),
			db.NewSQLiteUnitOfWork(database),
			nil,
			app.ForwardingObserver(),
		)
	}

	// Prompts only run on an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(context.Background())
}

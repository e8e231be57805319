package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/boulderlog/boulderlog/internal/cli"
	"github.com/boulderlog/boulderlog/internal/config"
	"github.com/boulderlog/boulderlog/internal/db"
	"github.com/boulderlog/boulderlog/internal/repository"
	"github.com/boulderlog/boulderlog/internal/service"
	"github.com/boulderlog/boulderlog/internal/sheets"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cli.FriendlyError(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := cfg.Logger(os.Stderr)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	store := repository.NewStore(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(logger)
	}

	remote := sheets.NewNoopRemote(cfg.Sheets)
	if !cfg.Sheets.Configured() {
		logger.Debug("spreadsheet export not configured")
	}

	app := &cli.App{
		Sessions: service.NewSessionService(store, remote, service.WithObserver(observer)),
		Catalog:  service.NewCatalogService(service.WithObserver(observer)),
		Hub:      store.Hub(),
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

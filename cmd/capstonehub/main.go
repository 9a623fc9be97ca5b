package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/capstonehub/internal/cli"
	"github.com/alexanderramin/capstonehub/internal/db"
	"github.com/alexanderramin/capstonehub/internal/hub"
	"github.com/alexanderramin/capstonehub/internal/hubclient"
	"github.com/alexanderramin/capstonehub/internal/render"
	"github.com/alexanderramin/capstonehub/internal/repository"
	"github.com/alexanderramin/capstonehub/internal/service"
	"github.com/alexanderramin/capstonehub/internal/store"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dbPath, err := db.DefaultPath()
	if err != nil {
		return err
	}

	cfg, err := hubclient.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logLevel := slog.LevelWarn
	if cfg.LogCalls {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	// Observers only log when asked to
	var (
		callObserver    hubclient.Observer      = hubclient.NoopObserver{}
		useCaseObserver service.UseCaseObserver = service.NoopUseCaseObserver{}
	)
	if cfg.LogCalls {
		callObserver = hubclient.NewLogObserver(os.Stderr)
		useCaseObserver = service.NewLogUseCaseObserver(os.Stderr)
	}

	client, err := hubclient.New(cfg, hubclient.WithObserver(callObserver))
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	renderer, err := render.New()
	if err != nil {
		return err
	}

	uow := db.NewSQLiteUnitOfWork(database)
	app := &cli.App{
		Hub: hub.New(hub.Deps{
			Transport: client,
			AuthPath:  cfg.AuthPath,
			Options:   service.NewOptionService(uow, useCaseObserver),
			Hints:     repository.NewSQLiteKVRepo(database),
			Reporter:  store.NewLogReporter(os.Stderr),
			Logger:    logger,
		}),
		Renderer: renderer,
		Logger:   logger,
	}

	// Prompts only when a terminal is attached.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

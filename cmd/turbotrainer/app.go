package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/turbotrainer/internal/cli"
	"github.com/phrazzld/turbotrainer/internal/config"
	"github.com/phrazzld/turbotrainer/internal/platform/jsonfile"
	"github.com/phrazzld/turbotrainer/internal/service/study"
	"github.com/phrazzld/turbotrainer/internal/store"
)

// application holds the wired components of one game run.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	persister *jsonfile.Store
	sets      *store.SetStore
	menu      *cli.Menu
}

// newApplication loads saved progress and wires the menu to the terminal.
// A corrupt or unreadable progress file is an error; nothing is overwritten.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	in io.Reader,
	out io.Writer,
) (*application, error) {
	persister := jsonfile.NewStore(cfg.Storage.Path, logger)

	loaded, err := persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	sets := store.NewSetStore()
	sets.Replace(loaded)

	console := cli.NewConsole(in, out)
	studier := study.NewService(sets, persister, out, nil, logger)

	return &application{
		config:    cfg,
		logger:    logger,
		persister: persister,
		sets:      sets,
		menu:      cli.NewMenu(console, sets, studier, persister, logger),
	}, nil
}

// Run plays the game until the user quits.
func (app *application) Run(ctx context.Context) error {
	app.logger.Info("TurboTrainer starting",
		slog.String("progress_file", app.config.Storage.Path),
		slog.Int("set_count", app.sets.Len()))

	if err := app.menu.Run(ctx); err != nil {
		app.logger.Error("game ended with error", slog.String("error", err.Error()))
		return err
	}

	app.logger.Info("TurboTrainer stopped")
	return nil
}

// Package main implements the entry point for TurboTrainer, a car mod themed
// flashcard game: every correct answer earns a part for the user's car.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the turbotrainer command. It takes no arguments; all
// interaction happens through the menu on stdin/stdout.
func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "turbotrainer",
		Short: "Car mod themed flashcard practice game",
		Long: "TurboTrainer lets you create flashcard sets, add terms and definitions,\n" +
			"and study them in random order. The share of correct answers is how much\n" +
			"of your car you have built. Progress is kept in " +
			"flashcard_game_progress.json in the current directory.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

// run loads configuration, sets up logging, and plays the game until the user quits.
func run(ctx context.Context, in io.Reader, out, logOut io.Writer) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	l, err := setupAppLogger(cfg, logOut)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, l, in, out)
	if err != nil {
		l.Error("failed to initialize application", "error", err)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

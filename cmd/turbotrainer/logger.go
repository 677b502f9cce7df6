package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/turbotrainer/internal/config"
	"github.com/phrazzld/turbotrainer/internal/platform/logger"
)

// setupAppLogger configures the application logger to write to w.
func setupAppLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Log, w)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return l, nil
}

package main

import (
	"fmt"

	"github.com/phrazzld/turbotrainer/internal/config"
)

// loadAppConfig loads the application configuration from the working directory and environment.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

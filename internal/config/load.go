package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to every environment override, e.g. TURBO_STORAGE_PATH.
	EnvPrefix = "TURBO"

	// DefaultStoragePath is the progress file used when nothing else is configured.
	DefaultStoragePath = "flashcard_game_progress.json"

	// DefaultLogLevel keeps the interactive terminal quiet unless something goes wrong.
	DefaultLogLevel = "warn"

	configName = "turbotrainer"
)

// Load reads configuration from defaults, an optional turbotrainer.yaml in
// the working directory, and TURBO_ prefixed environment variables.
// Environment variables take precedence over values from the config file.
// Returns a populated Config or an error if loading or validation fails.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom behaves like Load but looks for the config file in dir.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("storage.path", DefaultStoragePath)
	v.SetDefault("log.level", DefaultLogLevel)

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

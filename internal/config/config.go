package config

// Config holds all application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Log     LogConfig     `mapstructure:"log" validate:"required"`
}

// StorageConfig contains settings for the progress file.
type StorageConfig struct {
	// Path is the JSON file holding every flashcard set and its progress.
	Path string `mapstructure:"path" validate:"required"`
}

// LogConfig contains structured logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

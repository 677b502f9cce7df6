// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config file, and environment variables. It keeps
// settings such as the progress file location and the log level separate from
// the game logic.
package config

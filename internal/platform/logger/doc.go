// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels. Log output goes to a caller-supplied writer so that it
// stays separate from the interactive game output.
package logger

package jsonfile

import "errors"

var (
	// ErrCorruptStore is returned when the progress file exists but does not
	// hold a valid set collection. Nothing is discarded; the caller must stop.
	ErrCorruptStore = errors.New("progress file is corrupt")

	// ErrReadFailed wraps I/O errors other than a missing file.
	ErrReadFailed = errors.New("failed to read progress file")

	// ErrWriteFailed wraps errors encountered while writing the progress file.
	ErrWriteFailed = errors.New("failed to write progress file")
)

package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phrazzld/turbotrainer/internal/domain"
	"github.com/phrazzld/turbotrainer/internal/platform/logger"
	"github.com/phrazzld/turbotrainer/internal/store"
)

// Verify interface compliance at compile time
var _ store.Persister = (*Store)(nil)

// Store persists the set collection to one JSON file.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a Store for the file at path.
func NewStore(path string, l *slog.Logger) *Store {
	if l == nil {
		l = slog.Default()
	}
	return &Store{
		path:   path,
		logger: l.With(slog.String("component", "jsonfile_store")),
	}
}

// Path returns the file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads every set from the file.
// A missing file yields an empty collection. Any other failure is returned
// wrapped in ErrReadFailed or ErrCorruptStore.
func (s *Store) Load(ctx context.Context) (map[string]*domain.FlashcardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("progress file not found, starting empty", slog.String("path", s.path))
			return make(map[string]*domain.FlashcardSet), nil
		}
		return nil, fmt.Errorf("%w %s: %w", ErrReadFailed, s.path, err)
	}

	sets, err := decode(data)
	if err != nil {
		log.Error("progress file could not be decoded",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptStore, s.path, err)
	}

	log.Debug("progress file loaded",
		slog.String("path", s.path),
		slog.Int("set_count", len(sets)))
	return sets, nil
}

// Save overwrites the file with sets.
func (s *Store) Save(ctx context.Context, sets map[string]*domain.FlashcardSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if sets == nil {
		sets = map[string]*domain.FlashcardSet{}
	}

	data, err := json.MarshalIndent(sets, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrWriteFailed, err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	log.Debug("progress file saved",
		slog.String("path", s.path),
		slog.Int("set_count", len(sets)))
	return nil
}

func decode(data []byte) (map[string]*domain.FlashcardSet, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("file is empty")
	}

	var sets map[string]*domain.FlashcardSet
	if err := json.Unmarshal(data, &sets); err != nil {
		return nil, err
	}
	if sets == nil {
		sets = make(map[string]*domain.FlashcardSet)
	}

	for name, set := range sets {
		if set == nil {
			return nil, fmt.Errorf("set %q is null", name)
		}
		set.Name = name
		if err := set.Validate(); err != nil {
			return nil, err
		}
	}

	return sets, nil
}

package store

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/phrazzld/turbotrainer/internal/domain"
)

// Persister loads and saves the whole set collection as one unit.
type Persister interface {
	// Load returns every stored set keyed by name.
	// A missing backing file yields an empty map and no error.
	Load(ctx context.Context) (map[string]*domain.FlashcardSet, error)

	// Save overwrites the stored collection with sets.
	Save(ctx context.Context, sets map[string]*domain.FlashcardSet) error
}

// SetStore keeps every flashcard set in memory along with the current selection.
// The zero value is not usable; create one with NewSetStore.
type SetStore struct {
	sets map[string]*domain.FlashcardSet

	// current is only meaningful when selected is true; "" is a legal set name.
	current  string
	selected bool
}

// NewSetStore returns an empty store with no set selected.
func NewSetStore() *SetStore {
	return &SetStore{sets: make(map[string]*domain.FlashcardSet)}
}

// Replace swaps in a freshly loaded collection and clears the selection.
func (s *SetStore) Replace(sets map[string]*domain.FlashcardSet) {
	s.sets = make(map[string]*domain.FlashcardSet, len(sets))
	for name, set := range sets {
		set.Name = name
		s.sets[name] = set
	}
	s.current = ""
	s.selected = false
}

// Create inserts an empty set under name, replacing any set with that name,
// and makes it current.
func (s *SetStore) Create(name string) *domain.FlashcardSet {
	set := domain.NewFlashcardSet(name)
	s.sets[name] = set
	s.current = name
	s.selected = true
	return set
}

// Select makes the named set current.
// Returns ErrSetNotFound, leaving the selection unchanged, if it does not exist.
func (s *SetStore) Select(name string) (*domain.FlashcardSet, error) {
	set, ok := s.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSetNotFound, name)
	}
	s.current = name
	s.selected = true
	return set, nil
}

// AddCard adds a flashcard to the current set, overwriting an existing term.
// Returns ErrNoSetSelected if there is no current set.
func (s *SetStore) AddCard(term, definition string) (*domain.FlashcardSet, error) {
	set, err := s.Current()
	if err != nil {
		return nil, err
	}
	set.AddCard(term, definition)
	return set, nil
}

// Current returns the selected set, or ErrNoSetSelected.
func (s *SetStore) Current() (*domain.FlashcardSet, error) {
	if !s.selected {
		return nil, ErrNoSetSelected
	}
	set, ok := s.sets[s.current]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSetNotFound, s.current)
	}
	return set, nil
}

// CurrentName returns the selected set's name and whether one is selected.
func (s *SetStore) CurrentName() (string, bool) {
	return s.current, s.selected
}

// Get returns the named set.
func (s *SetStore) Get(name string) (*domain.FlashcardSet, error) {
	set, ok := s.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSetNotFound, name)
	}
	return set, nil
}

// Names returns every set name in sorted order.
func (s *SetStore) Names() []string {
	return slices.Sorted(maps.Keys(s.sets))
}

// Sets returns the live collection for persistence. Callers must not mutate it.
func (s *SetStore) Sets() map[string]*domain.FlashcardSet {
	return s.sets
}

// Len returns the number of sets.
func (s *SetStore) Len() int {
	return len(s.sets)
}

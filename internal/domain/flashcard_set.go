package domain

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
)

// FlashcardSet is a named collection of term/definition pairs together with
// the progress of its most recent study session.
type FlashcardSet struct {
	// Name is the set's key in the store; it is not repeated in the serialized value.
	Name       string            `json:"-"`
	Flashcards map[string]string `json:"flashcards"`
	Progress   Progress          `json:"progress"`
}

// Progress records how the last study session went.
type Progress struct {
	// Percentage is the share of terms answered correctly, 0 to 100.
	Percentage float64 `json:"percentage"`
	// IncorrectFlashcards lists the misses in the order they happened.
	IncorrectFlashcards []MissedCard `json:"incorrect_flashcards"`
}

// MissedCard is a term the user got wrong, paired with the expected definition.
// It is serialized as a two-element JSON array: ["term", "definition"].
type MissedCard struct {
	Term       string
	Definition string
}

// NewFlashcardSet creates an empty set with zero progress.
func NewFlashcardSet(name string) *FlashcardSet {
	return &FlashcardSet{
		Name:       name,
		Flashcards: make(map[string]string),
		Progress: Progress{
			IncorrectFlashcards: []MissedCard{},
		},
	}
}

// AddCard inserts a flashcard, replacing the definition if the term already exists.
// Empty terms and definitions are accepted.
func (s *FlashcardSet) AddCard(term, definition string) {
	if s.Flashcards == nil {
		s.Flashcards = make(map[string]string)
	}
	s.Flashcards[term] = definition
}

// Len returns the number of flashcards in the set.
func (s *FlashcardSet) Len() int {
	return len(s.Flashcards)
}

// Terms returns the set's terms in sorted order.
func (s *FlashcardSet) Terms() []string {
	return slices.Sorted(maps.Keys(s.Flashcards))
}

// Definition looks up the definition stored for term.
func (s *FlashcardSet) Definition(term string) (string, bool) {
	def, ok := s.Flashcards[term]
	return def, ok
}

// Validate checks the set loaded from storage and fills in missing collections.
func (s *FlashcardSet) Validate() error {
	if s.Flashcards == nil {
		s.Flashcards = make(map[string]string)
	}
	if s.Progress.IncorrectFlashcards == nil {
		s.Progress.IncorrectFlashcards = []MissedCard{}
	}

	p := s.Progress.Percentage
	if math.IsNaN(p) || p < 0 || p > 100 {
		return fmt.Errorf("%w: set %q has percentage %v: %w", ErrValidation, s.Name, p, ErrInvalidPercentage)
	}

	return nil
}

// Clone returns a deep copy of the set.
func (s *FlashcardSet) Clone() *FlashcardSet {
	c := &FlashcardSet{
		Name:       s.Name,
		Flashcards: maps.Clone(s.Flashcards),
		Progress: Progress{
			Percentage:          s.Progress.Percentage,
			IncorrectFlashcards: slices.Clone(s.Progress.IncorrectFlashcards),
		},
	}
	if c.Flashcards == nil {
		c.Flashcards = make(map[string]string)
	}
	if c.Progress.IncorrectFlashcards == nil {
		c.Progress.IncorrectFlashcards = []MissedCard{}
	}
	return c
}

// BeginSession clears the misses recorded by the previous session.
func (p *Progress) BeginSession() {
	p.IncorrectFlashcards = []MissedCard{}
}

// RecordMiss appends a missed term to the current session's list.
func (p *Progress) RecordMiss(term, definition string) {
	p.IncorrectFlashcards = append(p.IncorrectFlashcards, MissedCard{Term: term, Definition: definition})
}

// MarshalJSON encodes the miss as ["term", "definition"].
func (m MissedCard) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{m.Term, m.Definition})
}

// UnmarshalJSON decodes a ["term", "definition"] pair.
func (m *MissedCard) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("%w: incorrect flashcard must be a [term, definition] array: %w", ErrInvalidFormat, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: incorrect flashcard has %d elements, want 2", ErrInvalidFormat, len(pair))
	}
	m.Term = pair[0]
	m.Definition = pair[1]
	return nil
}

package study

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"
	"github.com/phrazzld/turbotrainer/internal/domain"
	"github.com/phrazzld/turbotrainer/internal/platform/logger"
	"github.com/phrazzld/turbotrainer/internal/store"
)

// Feedback printed during a session.
const (
	MsgCorrect       = "Correct! You just earned a part for your car!"
	MsgIncorrect     = "Incorrect. No car parts for you. The correct answer is: %s"
	MsgAllCorrect    = "\nCongratulations! You answered all questions correctly.\nYou've earned all new parts for your car!"
	MsgPartialResult = "\nYou only built %s%% of your car"
	MsgRetryHeader   = "\nLet's try again!:"
	MsgNoFlashcards  = "The flashcard set '%s' has no flashcards yet. Add some before studying."
)

// ErrSaveFailed is returned when the session finished but its progress could not be persisted.
var ErrSaveFailed = errors.New("failed to save progress")

// Prompter asks the user for the definition of a term.
type Prompter interface {
	// Ask shows term and blocks until the user answers.
	Ask(ctx context.Context, term string) (string, error)
}

// SetStore is the part of the set store a session needs.
type SetStore interface {
	Current() (*domain.FlashcardSet, error)
	Sets() map[string]*domain.FlashcardSet
}

// Result summarizes one study session.
type Result struct {
	SessionID  uuid.UUID
	SetName    string
	Total      int
	Correct    int
	Percentage float64
	Missed     []domain.MissedCard
	// Retried is true when a retry pass was run.
	Retried bool
	// RetryCorrect counts misses answered correctly on the retry pass. It does not affect Percentage.
	RetryCorrect int
}

// Service runs study sessions against the current set.
type Service struct {
	sets      SetStore
	persister store.Persister
	out       io.Writer
	rng       *rand.Rand
	logger    *slog.Logger
}

// NewService creates a study Service.
// A nil rng is replaced by a randomly seeded source, so each session gets a new order.
func NewService(
	sets SetStore,
	persister store.Persister,
	out io.Writer,
	rng *rand.Rand,
	l *slog.Logger,
) *Service {
	if sets == nil {
		panic("sets cannot be nil")
	}
	if persister == nil {
		panic("persister cannot be nil")
	}
	if out == nil {
		out = io.Discard
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if l == nil {
		l = slog.Default()
	}

	return &Service{
		sets:      sets,
		persister: persister,
		out:       out,
		rng:       rng,
		logger:    l.With(slog.String("component", "study_service")),
	}
}

// Study runs a session over the current set.
//
// Returns store.ErrNoSetSelected if no set is current. A set without
// flashcards is skipped: nothing is asked, scored or saved. Otherwise the
// score and misses are written to the set's progress and the whole store is
// saved, even when the retry pass is interrupted.
func (s *Service) Study(ctx context.Context, p Prompter) (*Result, error) {
	set, err := s.sets.Current()
	if err != nil {
		return nil, err
	}

	result := &Result{
		SessionID: uuid.New(),
		SetName:   set.Name,
		Total:     set.Len(),
	}
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("session_id", result.SessionID.String()),
		slog.String("set", set.Name))

	if result.Total == 0 {
		log.Debug("skipping study of empty set")
		s.printf(MsgNoFlashcards+"\n", set.Name)
		return result, nil
	}

	terms := set.Terms()
	s.rng.Shuffle(len(terms), func(i, j int) {
		terms[i], terms[j] = terms[j], terms[i]
	})

	log.Debug("study session started", slog.Int("card_count", len(terms)))

	missed := make([]domain.MissedCard, 0)
	for _, term := range terms {
		definition, _ := set.Definition(term)

		ok, err := s.ask(ctx, p, term, definition)
		if err != nil {
			log.Warn("study session aborted", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to read answer for %q: %w", term, err)
		}
		if ok {
			result.Correct++
		} else {
			missed = append(missed, domain.MissedCard{Term: term, Definition: definition})
		}
	}

	result.Percentage = domain.Percentage(result.Correct, result.Total)
	result.Missed = missed

	set.Progress.BeginSession()
	for _, m := range missed {
		set.Progress.RecordMiss(m.Term, m.Definition)
	}
	set.Progress.Percentage = result.Percentage

	var retryErr error
	if result.Correct == result.Total {
		s.printf("%s\n", MsgAllCorrect)
	} else {
		s.printf(MsgPartialResult+"\n", formatPercentage(result.Percentage))
		retryErr = s.retry(ctx, p, result)
	}

	log.Info("study session completed",
		slog.Int("correct", result.Correct),
		slog.Int("total", result.Total),
		slog.Float64("percentage", result.Percentage),
		slog.Int("retry_correct", result.RetryCorrect))

	if err := s.persister.Save(ctx, s.sets.Sets()); err != nil {
		log.Error("failed to save progress", slog.String("error", err.Error()))
		return result, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	if retryErr != nil {
		return result, fmt.Errorf("failed to read retry answer: %w", retryErr)
	}

	return result, nil
}

// retry asks every missed term once more. Answers only produce feedback.
func (s *Service) retry(ctx context.Context, p Prompter, result *Result) error {
	if len(result.Missed) == 0 {
		return nil
	}

	result.Retried = true
	s.printf("%s\n", MsgRetryHeader)

	for _, m := range result.Missed {
		ok, err := s.ask(ctx, p, m.Term, m.Definition)
		if err != nil {
			return err
		}
		if ok {
			result.RetryCorrect++
		}
	}
	return nil
}

// ask prompts for term, prints feedback and reports whether the answer was right.
func (s *Service) ask(ctx context.Context, p Prompter, term, definition string) (bool, error) {
	answer, err := p.Ask(ctx, term)
	if err != nil {
		return false, err
	}

	if domain.IsCorrect(answer, definition) {
		s.printf("%s\n", MsgCorrect)
		return true, nil
	}

	s.printf(MsgIncorrect+"\n", definition)
	return false, nil
}

func (s *Service) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// formatPercentage prints whole numbers without a fraction and keeps full
// precision otherwise, e.g. "50" or "66.66666666666667".
func formatPercentage(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

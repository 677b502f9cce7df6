package study

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/phrazzld/turbotrainer/internal/domain"
	"github.com/phrazzld/turbotrainer/internal/platform/logger"
	"github.com/phrazzld/turbotrainer/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter answers each term from a per-term queue and records what was asked.
type scriptedPrompter struct {
	answers map[string][]string
	asked   []string
}

func newScriptedPrompter(answers map[string][]string) *scriptedPrompter {
	return &scriptedPrompter{answers: answers}
}

func (p *scriptedPrompter) Ask(_ context.Context, term string) (string, error) {
	p.asked = append(p.asked, term)
	queue := p.answers[term]
	if len(queue) == 0 {
		return "", io.EOF
	}
	p.answers[term] = queue[1:]
	return queue[0], nil
}

// recordingPersister keeps the number of saves and can be told to fail.
type recordingPersister struct {
	saves int
	err   error
}

func (p *recordingPersister) Load(context.Context) (map[string]*domain.FlashcardSet, error) {
	return map[string]*domain.FlashcardSet{}, nil
}

func (p *recordingPersister) Save(context.Context, map[string]*domain.FlashcardSet) error {
	p.saves++
	return p.err
}

type fixture struct {
	sets      *store.SetStore
	persister *recordingPersister
	out       *bytes.Buffer
	service   *Service
}

func newFixture(t *testing.T, seed uint64) *fixture {
	t.Helper()

	l, _ := logger.NewTestLogger(t)
	f := &fixture{
		sets:      store.NewSetStore(),
		persister: &recordingPersister{},
		out:       &bytes.Buffer{},
	}
	f.service = NewService(f.sets, f.persister, f.out, rand.New(rand.NewPCG(seed, seed)), l)
	return f
}

func (f *fixture) createSet(t *testing.T, name string, cards map[string]string) *domain.FlashcardSet {
	t.Helper()
	set := f.sets.Create(name)
	for term, def := range cards {
		_, err := f.sets.AddCard(term, def)
		require.NoError(t, err)
	}
	return set
}

func TestStudyWithoutSelection(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 1)
	p := newScriptedPrompter(nil)

	result, err := f.service.Study(context.Background(), p)

	assert.ErrorIs(t, err, store.ErrNoSetSelected)
	assert.Nil(t, result)
	assert.Empty(t, p.asked)
	assert.Zero(t, f.persister.saves)
}

// TestStudyCaseInsensitiveAllCorrect covers the Engine101 example.
func TestStudyCaseInsensitiveAllCorrect(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 1)
	set := f.createSet(t, "Engine101", map[string]string{"piston": "part that moves up and down"})
	p := newScriptedPrompter(map[string][]string{"piston": {"Part That Moves Up And Down"}})

	result, err := f.service.Study(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Percentage)
	assert.Equal(t, 1, result.Correct)
	assert.False(t, result.Retried)
	assert.Equal(t, []string{"piston"}, p.asked, "no retry prompt")
	assert.Equal(t, 100.0, set.Progress.Percentage)
	assert.Empty(t, set.Progress.IncorrectFlashcards)
	assert.Equal(t, 1, f.persister.saves)

	out := f.out.String()
	assert.Contains(t, out, MsgCorrect)
	assert.Contains(t, out, "Congratulations! You answered all questions correctly.")
	assert.NotContains(t, out, "Let's try again!")
}

func TestStudyPartialScoreAndRetry(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 7)
	set := f.createSet(t, "Engine101", map[string]string{
		"piston":   "moves up and down",
		"turbo":    "forced induction",
		"camshaft": "opens valves",
		"crank":    "turns motion",
	})
	p := newScriptedPrompter(map[string][]string{
		"piston":   {"MOVES UP AND DOWN"},
		"turbo":    {"forced induction"},
		"camshaft": {"no idea", "opens valves"},
		"crank":    {"spins", "still wrong"},
	})

	result, err := f.service.Study(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Correct)
	assert.Equal(t, 50.0, result.Percentage)
	assert.Equal(t, 50.0, set.Progress.Percentage, "retry must not change the score")
	assert.ElementsMatch(t, []domain.MissedCard{
		{Term: "camshaft", Definition: "opens valves"},
		{Term: "crank", Definition: "turns motion"},
	}, set.Progress.IncorrectFlashcards)
	assert.Equal(t, result.Missed, set.Progress.IncorrectFlashcards)

	assert.True(t, result.Retried)
	assert.Equal(t, 1, result.RetryCorrect)
	require.Len(t, p.asked, 6)
	assert.ElementsMatch(t, []string{"piston", "turbo", "camshaft", "crank"}, p.asked[:4])
	assert.Equal(t, []string{result.Missed[0].Term, result.Missed[1].Term}, p.asked[4:], "retry follows miss order")

	out := f.out.String()
	assert.Contains(t, out, "You only built 50% of your car")
	assert.Contains(t, out, "Let's try again!:")
	assert.Contains(t, out, "The correct answer is: turns motion")
	assert.Equal(t, 1, f.persister.saves)
}

func TestStudyScoreForEveryK(t *testing.T) {
	t.Parallel()

	cards := map[string]string{"a": "1", "b": "2", "c": "3"}
	terms := []string{"a", "b", "c"}

	for k := 0; k <= len(terms); k++ {
		f := newFixture(t, uint64(k))
		set := f.createSet(t, "Digits", cards)

		answers := map[string][]string{}
		for i, term := range terms {
			if i < k {
				answers[term] = []string{cards[term]}
			} else {
				answers[term] = []string{"wrong", "wrong"}
			}
		}

		result, err := f.service.Study(context.Background(), newScriptedPrompter(answers))

		require.NoError(t, err)
		assert.InDelta(t, float64(k)/3*100, set.Progress.Percentage, 1e-9)
		assert.Len(t, set.Progress.IncorrectFlashcards, len(terms)-k)
		assert.Equal(t, k < len(terms), result.Retried)
	}
}

func TestStudyEmptySetIsSkipped(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 1)
	set := f.createSet(t, "Empty", nil)
	set.Progress.Percentage = 42
	p := newScriptedPrompter(nil)

	result, err := f.service.Study(context.Background(), p)

	require.NoError(t, err)
	assert.Zero(t, result.Total)
	assert.Equal(t, 42.0, set.Progress.Percentage)
	assert.Empty(t, p.asked)
	assert.Zero(t, f.persister.saves)
	assert.Contains(t, f.out.String(), "has no flashcards yet")
}

// TestStudyReplacesPreviousMisses verifies misses describe only the latest session.
func TestStudyReplacesPreviousMisses(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 3)
	set := f.createSet(t, "Engine101", map[string]string{"piston": "moves", "turbo": "boost"})

	_, err := f.service.Study(context.Background(), newScriptedPrompter(map[string][]string{
		"piston": {"x", "x"},
		"turbo":  {"x", "x"},
	}))
	require.NoError(t, err)
	require.Len(t, set.Progress.IncorrectFlashcards, 2)
	assert.Equal(t, 0.0, set.Progress.Percentage)

	_, err = f.service.Study(context.Background(), newScriptedPrompter(map[string][]string{
		"piston": {"moves"},
		"turbo":  {"x", "boost"},
	}))
	require.NoError(t, err)
	assert.Equal(t, []domain.MissedCard{{Term: "turbo", Definition: "boost"}}, set.Progress.IncorrectFlashcards)
	assert.Equal(t, 50.0, set.Progress.Percentage)
	assert.Equal(t, 2, f.persister.saves)
}

func TestStudyOrderIsShuffledPermutation(t *testing.T) {
	t.Parallel()

	cards := map[string]string{}
	for _, term := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		cards[term] = term
	}

	orders := func(seed uint64) [][]string {
		f := newFixture(t, seed)
		f.createSet(t, "Letters", cards)

		var all [][]string
		for i := 0; i < 3; i++ {
			answers := map[string][]string{}
			for term := range cards {
				answers[term] = []string{term}
			}
			p := newScriptedPrompter(answers)
			_, err := f.service.Study(context.Background(), p)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, p.asked)
			all = append(all, p.asked)
		}
		return all
	}

	first := orders(42)
	assert.Equal(t, first, orders(42), "same seed gives the same sequence of orders")
	assert.False(t, slices.Equal(first[0], first[1]) && slices.Equal(first[1], first[2]),
		"each session reshuffles")
}

func TestStudyAbortedMidSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 1)
	set := f.createSet(t, "Engine101", map[string]string{"piston": "moves", "turbo": "boost"})
	set.Progress.Percentage = 75
	set.Progress.RecordMiss("old", "miss")

	// No answers at all: the first prompt hits end of input
	result, err := f.service.Study(context.Background(), newScriptedPrompter(map[string][]string{}))

	assert.ErrorIs(t, err, io.EOF)
	assert.Nil(t, result)
	assert.Equal(t, 75.0, set.Progress.Percentage, "progress untouched")
	assert.Len(t, set.Progress.IncorrectFlashcards, 1)
	assert.Zero(t, f.persister.saves)
}

func TestStudyRetryInterruptedStillSaves(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 1)
	set := f.createSet(t, "Engine101", map[string]string{"piston": "moves"})

	result, err := f.service.Study(context.Background(), newScriptedPrompter(map[string][]string{
		"piston": {"wrong"},
	}))

	assert.ErrorIs(t, err, io.EOF)
	require.NotNil(t, result)
	assert.Equal(t, 0.0, set.Progress.Percentage)
	assert.Len(t, set.Progress.IncorrectFlashcards, 1)
	assert.Equal(t, 1, f.persister.saves)
}

func TestStudySaveFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 1)
	f.persister.err = errors.New("disk full")
	set := f.createSet(t, "Engine101", map[string]string{"piston": "moves"})

	result, err := f.service.Study(context.Background(), newScriptedPrompter(map[string][]string{
		"piston": {"moves"},
	}))

	assert.ErrorIs(t, err, ErrSaveFailed)
	require.NotNil(t, result)
	assert.Equal(t, 100.0, set.Progress.Percentage)
}

func TestStudyLogsSessionID(t *testing.T) {
	t.Parallel()

	l, buf := logger.NewTestLogger(t)
	sets := store.NewSetStore()
	sets.Create("Engine101")
	_, err := sets.AddCard("piston", "moves")
	require.NoError(t, err)
	svc := NewService(sets, &recordingPersister{}, io.Discard, rand.New(rand.NewPCG(1, 1)), l)

	result, err := svc.Study(context.Background(), newScriptedPrompter(map[string][]string{"piston": {"moves"}}))
	require.NoError(t, err)

	logger.AssertLogContains(t, buf, "study session completed")
	logger.AssertLogContains(t, buf, result.SessionID.String())
}

func TestNewServicePanicsOnMissingDependencies(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewService(nil, &recordingPersister{}, nil, nil, nil) })
	assert.Panics(t, func() { NewService(store.NewSetStore(), nil, nil, nil, nil) })
	assert.NotPanics(t, func() { NewService(store.NewSetStore(), &recordingPersister{}, nil, nil, nil) })
}

func TestFormatPercentage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "50", formatPercentage(50))
	assert.Equal(t, "0", formatPercentage(0))
	assert.Equal(t, "12.5", formatPercentage(12.5))
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/phrazzld/turbotrainer/internal/service/study"
	"github.com/phrazzld/turbotrainer/internal/store"
)

// Menu choices.
const (
	ChoiceCreate = "1"
	ChoiceSelect = "2"
	ChoiceAdd    = "3"
	ChoiceStudy  = "4"
	ChoiceQuit   = "5"
)

// Menu text and messages.
const (
	MenuText = "\n Game Menu:\n" +
		"1. Create New Flashcard Set\n" +
		"2. Choose Flashcard Set\n" +
		"3. Add Flashcard\n" +
		"4. Study Flashcards\n" +
		"5. Quit\n"

	PromptChoice     = "Enter your choice (1, 2, 3, 4, or 5): "
	PromptNewSet     = "Enter the name for the new flashcard set: "
	PromptChooseSet  = "Enter the name of the flashcard set you want to choose: "
	PromptTerm       = "Enter the term: "
	PromptDefinition = "Enter the definition: "

	MsgCreated       = "Created flashcard set: %s\n"
	MsgSelected      = "Selected flashcard set: %s\n"
	MsgSetMissing    = "The flashcard set '%s' does not exist.\n"
	MsgCardAdded     = "Flashcard added to the set: %s\n"
	MsgNoSetSelected = "No flashcard set selected. Please create or choose a flashcard set."
	MsgInvalidChoice = "Invalid choice. Please enter 1, 2, 3, 4, or 5."
	MsgSaveFailed    = "Could not save your progress: %v\n"
	MsgGoodbye       = "Exiting TurboTrainer. Goodbye!"
)

// Studier runs a study session over the current set.
type Studier interface {
	Study(ctx context.Context, p study.Prompter) (*study.Result, error)
}

// Menu is the game's main loop.
type Menu struct {
	console   *Console
	sets      *store.SetStore
	studier   Studier
	persister store.Persister
	logger    *slog.Logger
}

// NewMenu creates a Menu.
func NewMenu(
	console *Console,
	sets *store.SetStore,
	studier Studier,
	persister store.Persister,
	l *slog.Logger,
) *Menu {
	if l == nil {
		l = slog.Default()
	}
	return &Menu{
		console:   console,
		sets:      sets,
		studier:   studier,
		persister: persister,
		logger:    l.With(slog.String("component", "menu")),
	}
}

// Run shows the menu until the user quits or input runs out.
// Both end the loop the same way: the store is saved and a goodbye printed.
// Only a failure to save on exit, or an unexpected input error, is returned.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.console.Printf("%s", MenuText)

		choice, err := m.console.ReadLine(ctx, PromptChoice)
		if err == nil {
			err = m.dispatch(ctx, strings.TrimSpace(choice))
		}

		switch {
		case errors.Is(err, errQuit):
			return m.quit(ctx)
		case errors.Is(err, io.EOF):
			m.logger.Debug("input closed, quitting")
			m.console.Println("")
			return m.quit(ctx)
		case err != nil:
			return err
		}
	}
}

// errQuit signals that the user chose to quit.
var errQuit = errors.New("quit")

func (m *Menu) dispatch(ctx context.Context, choice string) error {
	m.logger.Debug("menu choice", slog.String("choice", choice))

	switch choice {
	case ChoiceCreate:
		return m.createSet(ctx)
	case ChoiceSelect:
		return m.selectSet(ctx)
	case ChoiceAdd:
		return m.addCard(ctx)
	case ChoiceStudy:
		return m.study(ctx)
	case ChoiceQuit:
		return errQuit
	default:
		m.console.Println(MsgInvalidChoice)
		return nil
	}
}

func (m *Menu) createSet(ctx context.Context) error {
	name, err := m.console.ReadLine(ctx, PromptNewSet)
	if err != nil {
		return err
	}
	m.sets.Create(name)
	m.console.Printf(MsgCreated, name)
	return nil
}

func (m *Menu) selectSet(ctx context.Context) error {
	name, err := m.console.ReadLine(ctx, PromptChooseSet)
	if err != nil {
		return err
	}

	if _, err := m.sets.Select(name); err != nil {
		if store.IsNotFoundError(err) {
			m.console.Printf(MsgSetMissing, name)
			return nil
		}
		return err
	}

	m.console.Printf(MsgSelected, name)
	return nil
}

func (m *Menu) addCard(ctx context.Context) error {
	term, err := m.console.ReadLine(ctx, PromptTerm)
	if err != nil {
		return err
	}
	definition, err := m.console.ReadLine(ctx, PromptDefinition)
	if err != nil {
		return err
	}

	set, err := m.sets.AddCard(term, definition)
	if err != nil {
		if errors.Is(err, store.ErrNoSetSelected) {
			m.console.Println(MsgNoSetSelected)
			return nil
		}
		return err
	}

	m.console.Printf(MsgCardAdded, set.Name)
	return nil
}

func (m *Menu) study(ctx context.Context) error {
	_, err := m.studier.Study(ctx, m.console)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNoSetSelected):
		m.console.Println(MsgNoSetSelected)
		return nil
	case errors.Is(err, study.ErrSaveFailed):
		m.logger.Error("progress not saved after study", slog.String("error", err.Error()))
		m.console.Printf(MsgSaveFailed, err)
		return nil
	default:
		return err
	}
}

func (m *Menu) quit(ctx context.Context) error {
	if err := m.persister.Save(ctx, m.sets.Sets()); err != nil {
		m.console.Printf(MsgSaveFailed, err)
		return fmt.Errorf("failed to save progress on exit: %w", err)
	}
	m.console.Println(MsgGoodbye)
	return nil
}

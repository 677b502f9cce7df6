package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeRoot runs the root command with input and returns stdout, stderr and the error.
func executeRoot(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	// A nil slice would make cobra fall back to os.Args, i.e. the test binary's flags
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func useProgressFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flashcard_game_progress.json")
	t.Setenv("TURBO_STORAGE_PATH", path)
	t.Setenv("TURBO_LOG_LEVEL", "warn")
	return path
}

func TestRootCommandPlaysAndPersists(t *testing.T) {
	path := useProgressFile(t)

	input := "1\nEngine101\n3\npiston\npart that moves up and down\n4\nPart That Moves Up And Down\n5\n"
	out, _, err := executeRoot(t, input)

	require.NoError(t, err)
	assert.Contains(t, out, "Congratulations!")
	assert.Contains(t, out, "Exiting TurboTrainer. Goodbye!")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Engine101": {
		"flashcards": {"piston": "part that moves up and down"},
		"progress": {"percentage": 100, "incorrect_flashcards": []}
	}}`, string(data))
}

// TestRootCommandResumesSavedProgress verifies sets saved by one run are selectable in the next.
func TestRootCommandResumesSavedProgress(t *testing.T) {
	useProgressFile(t)

	_, _, err := executeRoot(t, "1\nBrakes\n3\ncaliper\nsqueezes the pads\n5\n")
	require.NoError(t, err)

	out, _, err := executeRoot(t, "2\nBrakes\n4\nwrong\nsqueezes the pads\n5\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Selected flashcard set: Brakes")
	assert.Contains(t, out, "You only built 0% of your car")
}

func TestRootCommandCorruptProgressFile(t *testing.T) {
	path := useProgressFile(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, errOut, err := executeRoot(t, "5\n")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt")
	assert.Contains(t, errOut, "Error:")

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "{not json", string(data), "corrupt file must not be overwritten")
}

func TestRootCommandRejectsArguments(t *testing.T) {
	useProgressFile(t)

	_, _, err := executeRoot(t, "", "extra")

	assert.Error(t, err)
}

func TestRootCommandInvalidConfig(t *testing.T) {
	useProgressFile(t)
	t.Setenv("TURBO_LOG_LEVEL", "loud")

	_, _, err := executeRoot(t, "5\n")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Console reads answers line by line and writes prompts to the terminal.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole creates a Console over in and out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Out returns the writer prompts and messages are written to.
func (c *Console) Out() io.Writer {
	return c.out
}

// ReadLine prints prompt and returns the next input line without its line ending.
// A final line without a newline is returned normally; io.EOF is only
// returned when no input is left.
func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(c.out, prompt)

	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Ask implements study.Prompter.
func (c *Console) Ask(ctx context.Context, term string) (string, error) {
	return c.ReadLine(ctx, fmt.Sprintf("What is the definition of '%s'? ", term))
}

// Printf writes a formatted message.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Println writes a message followed by a newline.
func (c *Console) Println(msg string) {
	fmt.Fprintln(c.out, msg)
}

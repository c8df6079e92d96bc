// Package terminal implements the interactive boundary on the process
// terminal. Prompts go to stdout; input comes from stdin, with echo
// suppressed for password reads when stdin is a terminal. When input is
// piped, hidden reads degrade to plain line reads since there is no echo to
// suppress.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal implements interfaces.Interactor. Reads block until the user
// responds; no timeout is imposed.
type Terminal struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
}

// New returns a Terminal on stdin and stdout.
func New() *Terminal {
	return NewWithStreams(os.Stdin, os.Stdout)
}

// NewWithStreams returns a Terminal on the given streams. Hidden reads are
// only possible when in is a terminal device.
func NewWithStreams(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:     in,
		out:    out,
		reader: bufio.NewReader(in),
	}
}

// Prompt displays text verbatim, without appending a newline. Challenge
// prompts usually carry their own trailing space or colon.
func (t *Terminal) Prompt(text string) {
	fmt.Fprint(t.out, text)
}

// ReadLine reads one line of visible input. The trailing newline is
// stripped; a final unterminated line is accepted.
func (t *Terminal) ReadLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadPassword reads one line with echo suppressed when the input is a
// terminal, falling back to a visible read otherwise.
func (t *Terminal) ReadPassword() (string, error) {
	f, ok := t.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return t.ReadLine()
	}

	password, err := term.ReadPassword(int(f.Fd()))
	// The user's enter keystroke is not echoed during a hidden read.
	fmt.Fprintln(t.out)
	if err != nil {
		return "", err
	}
	return string(password), nil
}

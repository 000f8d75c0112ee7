// Package prompt reads option values interactively, one line per question.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrInvalidBool is returned when a boolean answer is neither empty nor a
// recognised boolean literal.
var ErrInvalidBool = errors.New("not a valid boolean")

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter reading from in and writing labels to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// readLine shows label and returns the next input line without its line
// terminator. End of input yields an empty answer.
func (p *Prompter) readLine(label string) (string, error) {
	if _, err := fmt.Fprint(p.out, label); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// String returns the answer as typed, or def when the answer is blank.
func (p *Prompter) String(label, def string) (string, error) {
	line, err := p.readLine(label)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) == "" {
		return def, nil
	}
	return line, nil
}

// Bool accepts "true" or "false" in any letter case, or returns def when
// the answer is blank.
func (p *Prompter) Bool(label string, def bool) (bool, error) {
	line, err := p.readLine(label)
	if err != nil {
		return false, err
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		return def, nil
	}
	switch {
	case strings.EqualFold(answer, "true"):
		return true, nil
	case strings.EqualFold(answer, "false"):
		return false, nil
	default:
		return false, fmt.Errorf("%q is %w (expected true or false)", answer, ErrInvalidBool)
	}
}

// Path returns the cleaned answer, or def when blank.
func (p *Prompter) Path(label, def string) (string, error) {
	line, err := p.readLine(label)
	if err != nil {
		return "", err
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		return def, nil
	}
	return filepath.Clean(answer), nil
}

// Package prompt collects input the user did not pass on the command line.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ErrNoInput is returned when input ends before a value was entered.
var ErrNoInput = errors.New("no input available")

// Prompter reads answers from one input stream and writes labels to another.
type Prompter struct {
	fd          uintptr
	in          *bufio.Reader
	interactive bool
	out         io.Writer
}

// New prompts on stdin. Password input is hidden when stdin is a terminal.
func New(stdin *os.File, out io.Writer) *Prompter {
	fd := stdin.Fd()
	return &Prompter{
		fd:          fd,
		in:          bufio.NewReader(stdin),
		interactive: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		out:         out,
	}
}

// NewFromReader prompts on a plain reader; nothing is hidden.
func NewFromReader(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Line prints label and returns the next line without its line ending.
func (p *Prompter) Line(label string) (string, error) {
	if _, err := fmt.Fprint(p.out, label); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return p.readLine()
}

// Password prints label and reads a line without echoing it.
func (p *Prompter) Password(label string) (string, error) {
	if _, err := fmt.Fprint(p.out, label); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	if !p.interactive {
		return p.readLine()
	}

	secret, err := term.ReadPassword(int(p.fd))
	_, _ = fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(secret), nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", ErrNoInput
	}
	return strings.TrimRight(line, "\r\n"), nil
}

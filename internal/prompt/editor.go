package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	clog "github.com/charmbracelet/log"
)

// DefaultEditor is used when no editor variable is set.
const DefaultEditor = "vi"

// ResolveEditor returns the editor command git itself would pick:
// $GIT_EDITOR, then $VISUAL, then $EDITOR.
func ResolveEditor(getenv func(string) string) string {
	for _, key := range []string{"GIT_EDITOR", "VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
	}
	return DefaultEditor
}

// Editor runs an external editor on a temporary file.
type Editor struct {
	Command string // shell command; the file path is appended as "$1"
	Stderr  io.Writer
	Stdin   io.Reader
	Stdout  io.Writer
	log     *clog.Logger
}

// NewEditor attaches command to the process terminal.
func NewEditor(command string) *Editor {
	return &Editor{
		Command: command,
		Stderr:  os.Stderr,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		log:     clog.Default().WithPrefix("editor"),
	}
}

// Edit opens the editor on a file seeded with instructions and returns what
// the user wrote. Lines starting with "#" are dropped and the result is trimmed.
func (e *Editor) Edit(ctx context.Context, instructions string) (string, error) {
	f, err := os.CreateTemp("", "git-pr-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && e.log != nil {
			e.log.Warn("failed to remove temp file", "path", path, "error", rmErr)
		}
	}()

	seed := "\n"
	for _, line := range strings.Split(strings.TrimSpace(instructions), "\n") {
		seed += "# " + line + "\n"
	}
	if _, err := f.WriteString(seed); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if e.log != nil {
		e.log.Debug("Launching editor", "command", e.Command, "file", path)
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", e.Command+` "$1"`, "sh", path)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %q failed: %w", e.Command, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read temp file: %w", err)
	}
	return stripComments(string(content)), nil
}

func stripComments(text string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String())
}

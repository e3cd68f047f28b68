package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
)

// GitCli provides git operations by executing real git commands via the git CLI.
type GitCli struct {
	log        *clog.Logger
	timeout    time.Duration
	workingDir string
}

var _ Git = &GitCli{}

// New creates a new GitCli instance that executes git commands in the specified working directory.
func New(workingDir string, timeout time.Duration) Git {
	return &GitCli{
		log:        clog.Default().WithPrefix("git"),
		timeout:    timeout,
		workingDir: workingDir,
	}
}

// commandError is returned when git ran and exited non-zero.
type commandError struct {
	args     []string
	exitCode int
	stderr   string
	err      error
}

func (e *commandError) Error() string {
	return fmt.Sprintf("git %s failed: %v: %s", strings.Join(e.args, " "), e.err, e.stderr)
}

func (e *commandError) Unwrap() error { return e.err }

func (g *GitCli) executeGitCommand(args ...string) (string, error) {
	g.log.Debug("Executing git command", "cmd", "git", "args", args, "workingDir", g.workingDir)

	ctx := context.Background()
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.workingDir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			g.log.Warn("git command timed out", "args", args, "timeout", g.timeout, "error", err)
			return "", fmt.Errorf("git %s timed out after %s", strings.Join(args, " "), g.timeout)
		}
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		g.log.Debug("Git command failed", "args", args, "stderr", stderr.String(), "error", err)
		return "", &commandError{
			args:     args,
			exitCode: exitCode,
			stderr:   strings.TrimSpace(stderr.String()),
			err:      err,
		}
	}

	output := strings.TrimSpace(stdout.String())
	g.log.Debug("Git command succeeded", "args", args, "output", output)
	return output, nil
}

// exitCode returns git's exit status carried by err, or -1.
func exitCode(err error) int {
	var cmdErr *commandError
	if errors.As(err, &cmdErr) {
		return cmdErr.exitCode
	}
	return -1
}

func (g *GitCli) GetWorktreeRoot() (string, error) {
	output, err := g.executeGitCommand("rev-parse", "--show-toplevel")
	if err != nil {
		if strings.Contains(err.Error(), "not a git repo") {
			// Not in a git repo - this is a valid state, not an error
			return "", nil
		}
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return output, nil
}

func (g *GitCli) GetCurrentBranch() (string, error) {
	output, err := g.executeGitCommand("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return output, nil
}

func (g *GitCli) GetCommitSubject() (string, error) {
	output, err := g.executeGitCommand("log", "-1", "--format=%s")
	if err != nil {
		return "", fmt.Errorf("failed to get commit subject: %w", err)
	}
	return output, nil
}

func (g *GitCli) ListRemotes() ([]Remote, error) {
	output, err := g.executeGitCommand("remote", "-v")
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}
	return parseRemotes(output), nil
}

// parseRemotes parses `git remote -v` output:
//
//	origin	git@github.com:owner/name.git (fetch)
//	origin	git@github.com:owner/name.git (push)
//
// Malformed lines are skipped.
func parseRemotes(output string) []Remote {
	remotes := []Remote{}
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}
		direction := strings.TrimSuffix(strings.TrimPrefix(fields[2], "("), ")")
		remotes = append(remotes, Remote{
			Direction: RemoteDirection(direction),
			Name:      fields[0],
			URL:       fields[1],
		})
	}
	return remotes
}

func (g *GitCli) GetConfig(key string) (string, error) {
	output, err := g.executeGitCommand("config", "--get", key)
	if err != nil {
		// exit status 1: the key is not set
		if exitCode(err) == 1 {
			g.log.Debug("Config key not set", "key", key)
			return "", nil
		}
		return "", fmt.Errorf("failed to read config %s: %w", key, err)
	}
	return output, nil
}

func (g *GitCli) SetGlobalConfig(key, value string) error {
	if _, err := g.executeGitCommand("config", "--global", key, value); err != nil {
		return fmt.Errorf("failed to write config %s: %w", key, err)
	}
	return nil
}

func (g *GitCli) BranchExists(branchName string) (bool, error) {
	_, err := g.executeGitCommand("show-ref", "--verify", "--quiet", "refs/heads/"+branchName)
	if err == nil {
		return true, nil
	}
	if exitCode(err) == 1 {
		return false, nil
	}
	return false, fmt.Errorf("failed to check branch %s: %w", branchName, err)
}

func (g *GitCli) FetchRef(source, refspec string) error {
	if _, err := g.executeGitCommand("fetch", source, refspec); err != nil {
		return fmt.Errorf("failed to fetch %s from %s: %w", refspec, source, err)
	}
	return nil
}

func (g *GitCli) Checkout(branchName string) error {
	if _, err := g.executeGitCommand("checkout", branchName); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", branchName, err)
	}
	return nil
}

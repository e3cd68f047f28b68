package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmcampanini/git-pr/internal/dispatch"
	"github.com/jmcampanini/git-pr/internal/forge"
)

// runCreate opens a pull request from the current branch against the
// upstream default branch. The title defaults to the HEAD commit subject.
func (a *app) runCreate(ctx context.Context, args []string) (int, error) {
	if err := maxArgs(dispatch.VerbCreate, args, 2); err != nil {
		return ExitFailure, err
	}

	branch, err := a.git.GetCurrentBranch()
	if err != nil {
		return ExitFailure, &forge.EnvironmentError{Message: "failed to determine the current branch", Err: err}
	}
	if branch == "HEAD" || branch == "" {
		return ExitFailure, &forge.EnvironmentError{Message: "HEAD is detached; check out the branch to propose first"}
	}

	var title, body string
	if len(args) > 0 {
		title = strings.TrimSpace(args[0])
	}
	if len(args) > 1 {
		body = args[1]
	}
	if title == "" {
		title, err = a.git.GetCommitSubject()
		if err != nil {
			return ExitFailure, fmt.Errorf("failed to read the title from HEAD: %w", err)
		}
	}
	if title == "" {
		return ExitFailure, forge.NewUsageError("missing title: git-pr create <title> [body]")
	}

	res, err := a.resolve(ctx)
	if err != nil {
		return ExitFailure, err
	}

	base, err := a.baseBranch(ctx, res.Upstream, res.DefaultBranch)
	if err != nil {
		return ExitFailure, err
	}

	req := forge.NewPullRequest{
		Base:  base,
		Body:  body,
		Head:  res.Local.Owner() + ":" + branch,
		Title: title,
	}
	var pr forge.PullRequest
	if err := a.api.Create(ctx, forge.CreatePullRequestPath(res.Upstream), req, nil, &pr); err != nil {
		return ExitFailure, fmt.Errorf("failed to create pull request: %w", err)
	}

	if err := a.printf("%s\n", pr.HTMLURL); err != nil {
		return ExitFailure, err
	}
	return ExitOK, nil
}

// baseBranch returns known, or asks the forge when the resolution did not
// carry a default branch (a repository override skips metadata).
func (a *app) baseBranch(ctx context.Context, repo forge.RepositoryID, known string) (string, error) {
	if known != "" {
		return known, nil
	}
	var meta forge.Repository
	if err := a.api.Read(ctx, forge.RepositoryPath(repo), &meta); err != nil {
		return "", fmt.Errorf("failed to fetch repository %s: %w", repo, err)
	}
	if meta.DefaultBranch == "" {
		return "", fmt.Errorf("repository %s has no default branch", repo)
	}
	return meta.DefaultBranch, nil
}

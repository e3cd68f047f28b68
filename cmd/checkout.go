package cmd

import (
	"context"
	"fmt"

	"github.com/jmcampanini/git-pr/internal/dispatch"
	"github.com/jmcampanini/git-pr/internal/forge"
	"github.com/jmcampanini/git-pr/internal/naming"
)

// runCheckout fetches a pull request's head into a local branch and switches to it.
// An existing local branch is switched to as is.
func (a *app) runCheckout(ctx context.Context, args []string) (int, error) {
	number, err := parseNumber(dispatch.VerbCheckout, args)
	if err != nil {
		return ExitFailure, err
	}
	if err := maxArgs(dispatch.VerbCheckout, args, 1); err != nil {
		return ExitFailure, err
	}

	namer, err := naming.NewCheckoutNamer(a.cfg.Checkout, a.cfg.Slugify)
	if err != nil {
		return ExitFailure, fmt.Errorf("failed to create branch namer: %w", err)
	}

	repo, err := a.repository(ctx)
	if err != nil {
		return ExitFailure, err
	}

	var pr forge.PullRequest
	if err := a.api.Read(ctx, forge.PullRequestPath(repo, number), &pr); err != nil {
		return ExitFailure, readFailed(err, number, repo)
	}

	branch, err := namer.BranchName(pr.Number, pr.Head.Ref, pr.Title)
	if err != nil {
		return ExitFailure, err
	}

	exists, err := a.git.BranchExists(branch)
	if err != nil {
		return ExitFailure, fmt.Errorf("failed to check branch existence: %w", err)
	}

	if exists {
		_, _ = fmt.Fprintf(a.errOut, "Branch %s already exists; not updating it\n", branch)
	} else {
		source := a.cloneURL(repo, pr)
		refspec := fmt.Sprintf("pull/%d/head:%s", pr.Number, branch)
		if err := a.git.FetchRef(source, refspec); err != nil {
			return ExitFailure, fmt.Errorf("failed to fetch pull request #%d: %w", pr.Number, err)
		}
	}

	if err := a.git.Checkout(branch); err != nil {
		return ExitFailure, fmt.Errorf("failed to check out %s: %w", branch, err)
	}

	if pr.DisplayState() != forge.PRStateOpen.String() {
		_, _ = fmt.Fprintf(a.errOut, "Note: pull request #%d is %s\n", pr.Number, pr.DisplayState())
	}
	if err := a.printf("Switched to %s (#%d %s)\n", branch, pr.Number, pr.Title); err != nil {
		return ExitFailure, err
	}
	return ExitOK, nil
}

// cloneURL is the base repository's clone URL; pull/<n>/head refs only exist there.
func (a *app) cloneURL(repo forge.RepositoryID, pr forge.PullRequest) string {
	if pr.Base.Repo != nil && pr.Base.Repo.CloneURL != "" {
		return pr.Base.Repo.CloneURL
	}
	return fmt.Sprintf("https://%s/%s.git", a.cfg.Forge.Host, repo)
}

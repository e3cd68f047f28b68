package cmd

import (
	"context"
	"fmt"

	"github.com/jmcampanini/git-pr/internal/dispatch"
	"github.com/jmcampanini/git-pr/internal/forge"
)

func (a *app) runClose(ctx context.Context, args []string) (int, error) {
	return a.setState(ctx, dispatch.VerbClose, args, forge.PRStateClosed)
}

func (a *app) runOpen(ctx context.Context, args []string) (int, error) {
	return a.setState(ctx, dispatch.VerbOpen, args, forge.PRStateOpen)
}

// setState closes or reopens a pull request.
func (a *app) setState(ctx context.Context, verb dispatch.Verb, args []string, state forge.PRState) (int, error) {
	number, err := parseNumber(verb, args)
	if err != nil {
		return ExitFailure, err
	}
	if err := maxArgs(verb, args, 1); err != nil {
		return ExitFailure, err
	}

	repo, err := a.repository(ctx)
	if err != nil {
		return ExitFailure, err
	}

	var pr forge.PullRequest
	if err := a.api.Update(ctx, forge.PullRequestPath(repo, number), forge.StateChange{State: state}, &pr); err != nil {
		return ExitFailure, fmt.Errorf("failed to %s pull request #%d: %w", verb, number, err)
	}

	if err := a.printf("Pull request #%d is %s: %s\n", pr.Number, pr.DisplayState(), pr.HTMLURL); err != nil {
		return ExitFailure, err
	}
	return ExitOK, nil
}

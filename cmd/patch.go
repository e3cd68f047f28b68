package cmd

import (
	"context"
	"fmt"

	"github.com/jmcampanini/git-pr/internal/dispatch"
	"github.com/jmcampanini/git-pr/internal/forge"
)

// runPatch writes a pull request as an mbox patch suitable for git am.
func (a *app) runPatch(ctx context.Context, args []string) (int, error) {
	number, err := parseNumber(dispatch.VerbPatch, args)
	if err != nil {
		return ExitFailure, err
	}
	if err := maxArgs(dispatch.VerbPatch, args, 1); err != nil {
		return ExitFailure, err
	}

	repo, err := a.repository(ctx)
	if err != nil {
		return ExitFailure, err
	}

	patch, err := a.api.ReadRaw(ctx, forge.PullRequestPath(repo, number), forge.PatchMimetype)
	if err != nil {
		return ExitFailure, fmt.Errorf("failed to get patch for pull request #%d: %w", number, err)
	}

	if _, err := a.out.Write(patch); err != nil {
		return ExitFailure, err
	}
	return ExitOK, nil
}

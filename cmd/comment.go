package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmcampanini/git-pr/internal/dispatch"
	"github.com/jmcampanini/git-pr/internal/forge"
)

// runComment adds a comment to a pull request's conversation. Without text
// on the command line the comment is written in an editor.
func (a *app) runComment(ctx context.Context, args []string) (int, error) {
	number, err := parseNumber(dispatch.VerbComment, args)
	if err != nil {
		return ExitFailure, err
	}

	repo, err := a.repository(ctx)
	if err != nil {
		return ExitFailure, err
	}

	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		// Fail before the user writes a comment that cannot be posted.
		token, err := a.store.Token()
		if err != nil {
			return ExitFailure, err
		}
		if token == "" {
			return ExitFailure, forge.ErrAuthRequired
		}
		instructions := fmt.Sprintf("Comment on pull request #%d of %s.\nLines starting with '#' are ignored; an empty comment aborts.", number, repo)
		text, err = a.editor.Edit(ctx, instructions)
		if err != nil {
			return ExitFailure, err
		}
	}
	if text == "" {
		return ExitFailure, forge.NewUsageError("aborting: empty comment")
	}

	var comment forge.Comment
	if err := a.api.Create(ctx, forge.IssueCommentsPath(repo, number), forge.NewComment{Body: text}, nil, &comment); err != nil {
		return ExitFailure, fmt.Errorf("failed to comment on pull request #%d: %w", number, err)
	}

	if err := a.printf("%s\n", comment.HTMLURL); err != nil {
		return ExitFailure, err
	}
	return ExitOK, nil
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/jmcampanini/git-pr/internal/dispatch"
	"github.com/jmcampanini/git-pr/internal/forge"
)

// runShow prints one pull request followed by its conversation.
func (a *app) runShow(ctx context.Context, args []string) (int, error) {
	number, err := parseNumber(dispatch.VerbShow, args)
	if err != nil {
		return ExitFailure, err
	}
	if err := maxArgs(dispatch.VerbShow, args, 1); err != nil {
		return ExitFailure, err
	}

	repo, err := a.repository(ctx)
	if err != nil {
		return ExitFailure, err
	}

	var pr forge.PullRequest
	if err := a.api.Read(ctx, forge.PullRequestPath(repo, number), &pr); err != nil {
		return ExitFailure, readFailed(err, number, repo)
	}

	// comments_url is absolute; the gateway accepts it as is.
	commentsPath := pr.CommentsURL
	if commentsPath == "" {
		commentsPath = forge.IssueCommentsPath(repo, number)
	}
	var comments []forge.Comment
	if err := a.api.Read(ctx, commentsPath, &comments); err != nil {
		return ExitFailure, fmt.Errorf("failed to get comments of pull request #%d: %w", number, err)
	}

	if err := a.outputPR(pr, comments); err != nil {
		return ExitFailure, err
	}
	return ExitOK, nil
}

func (a *app) outputPR(pr forge.PullRequest, comments []forge.Comment) error {
	titleStyle := a.style().Bold(true).Foreground(lipgloss.Color("99"))
	labelStyle := a.style().Foreground(lipgloss.Color("245"))

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("#%d %s", pr.Number, pr.Title)))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", 29))
	sb.WriteString("\n")

	field := func(label, value string) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-8s", label)))
		sb.WriteString(value)
		sb.WriteString("\n")
	}
	field("State:", pr.DisplayState())
	field("Author:", pr.User.Login)
	field("Branch:", fmt.Sprintf("%s into %s", branchLabel(pr.Head), branchLabel(pr.Base)))
	field("Created:", humanize.Time(pr.CreatedAt))
	if pr.HTMLURL != "" {
		field("URL:", pr.HTMLURL)
	}

	if body := strings.TrimSpace(pr.Body); body != "" {
		sb.WriteString("\n")
		sb.WriteString(body)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if len(comments) == 0 {
		sb.WriteString("No comments.\n")
	} else {
		sb.WriteString(titleStyle.Render(english.Plural(len(comments), "comment", "comments")))
		sb.WriteString("\n")
		for _, c := range comments {
			sb.WriteString("\n")
			sb.WriteString(labelStyle.Render(fmt.Sprintf("%s commented %s:", c.User.Login, humanize.Time(c.CreatedAt))))
			sb.WriteString("\n")
			for _, line := range strings.Split(strings.TrimSpace(c.Body), "\n") {
				sb.WriteString("  ")
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
	}

	return a.printf("%s", sb.String())
}

// branchLabel prefers the "owner:branch" label and falls back to the ref.
func branchLabel(b forge.Branch) string {
	if b.Label != "" {
		return b.Label
	}
	return b.Ref
}

package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/jmcampanini/git-pr/internal/dispatch"
	"github.com/jmcampanini/git-pr/internal/forge"
)

// runList prints the pull requests in one state, open by default.
func (a *app) runList(ctx context.Context, args []string) (int, error) {
	if err := maxArgs(dispatch.VerbList, args, 1); err != nil {
		return ExitFailure, err
	}
	state := forge.PRStateOpen
	if len(args) == 1 {
		parsed, err := forge.ParsePRState(args[0])
		if err != nil {
			return ExitFailure, err
		}
		state = parsed
	}

	repo, err := a.repository(ctx)
	if err != nil {
		return ExitFailure, err
	}

	var prs []forge.PullRequest
	if err := a.api.Read(ctx, forge.PullRequestsPath(repo, state), &prs); err != nil {
		return ExitFailure, fmt.Errorf("failed to list pull requests: %w", err)
	}

	if err := a.outputPRTable(state, prs); err != nil {
		return ExitFailure, err
	}
	return ExitOK, nil
}

func (a *app) outputPRTable(state forge.PRState, prs []forge.PullRequest) error {
	if len(prs) == 0 {
		return a.printf("No %s pull requests found.\n", state)
	}

	purple := lipgloss.Color("99")
	gray := lipgloss.Color("245")
	lightGray := lipgloss.Color("241")

	headerStyle := a.style().Foreground(purple).Bold(true).Align(lipgloss.Center)
	cellStyle := a.style().Padding(0, 1)
	oddRowStyle := cellStyle.Foreground(gray)
	evenRowStyle := cellStyle.Foreground(lightGray)

	rows := make([][]string, len(prs))
	for i, pr := range prs {
		rows[i] = []string{
			strconv.Itoa(pr.Number),
			truncateString(pr.Title, 50),
			pr.User.Login,
			truncateString(pr.Head.Ref, 30),
			humanize.Time(pr.CreatedAt),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(a.style().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 0:
				return evenRowStyle
			default:
				return oddRowStyle
			}
		}).
		Headers("#", "Title", "Author", "Branch", "Created").
		Rows(rows...)

	return a.printf("%s\n", t)
}

// truncateString truncates s to maxLen runes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

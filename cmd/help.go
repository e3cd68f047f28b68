package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmcampanini/git-pr/internal/dispatch"
)

var verbDescriptions = map[dispatch.Verb]string{
	dispatch.VerbCheckout: "checkout <number>          Fetch a pull request into a local branch and switch to it",
	dispatch.VerbClose:    "close <number>             Close a pull request",
	dispatch.VerbComment:  "comment <number> [text]    Comment on a pull request; opens an editor without text",
	dispatch.VerbCreate:   "create [title] [body]      Open a pull request from the current branch",
	dispatch.VerbHelp:     "help                       Show this message",
	dispatch.VerbList:     "list [open|closed]         List pull requests (the default verb)",
	dispatch.VerbLogin:    "login [user] [password]    Store an API token in the global git config",
	dispatch.VerbOpen:     "open <number>              Reopen a closed pull request",
	dispatch.VerbPatch:    "patch <number>             Print a pull request as a patch for git am",
	dispatch.VerbShow:     "show <number>              Show a pull request and its comments",
}

// verbSummary lists the verbs in dispatch order.
func verbSummary() string {
	var sb strings.Builder
	sb.WriteString("Verbs:\n")
	for _, v := range dispatch.Verbs {
		sb.WriteString("  ")
		sb.WriteString(verbDescriptions[v])
		sb.WriteString("\n")
	}
	return sb.String()
}

func usage() string {
	return "usage: git-pr [--debug] [--print-config] [<verb> [<args>...]]\n\n" + verbSummary()
}

// runHelp prints usage and reports that usage was shown. Unknown verbs land
// here with the full argument vector.
func (a *app) runHelp(_ context.Context, args []string) (int, error) {
	if len(args) > 0 && !dispatch.IsKnown(dispatch.Verb(args[0])) {
		_, _ = fmt.Fprintf(a.errOut, "unknown command %q\n\n", args[0])
	}
	if err := a.printf("%s", usage()); err != nil {
		return ExitFailure, err
	}
	return ExitUsageShown, nil
}

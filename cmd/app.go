package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/jmcampanini/git-pr/internal/auth"
	"github.com/jmcampanini/git-pr/internal/config"
	"github.com/jmcampanini/git-pr/internal/dispatch"
	"github.com/jmcampanini/git-pr/internal/forge"
	"github.com/jmcampanini/git-pr/internal/git"
	"github.com/jmcampanini/git-pr/internal/prompt"
	"github.com/jmcampanini/git-pr/internal/resolve"
	"github.com/spf13/cobra"
)

// forgeAPI is the part of forge.Gateway the verbs use.
type forgeAPI interface {
	Create(ctx context.Context, path string, payload any, override forge.Credentials, out any) error
	Read(ctx context.Context, path string, out any) error
	ReadRaw(ctx context.Context, path, mimetype string) ([]byte, error)
	Update(ctx context.Context, path string, payload any, out any) error
}

type credentialStore interface {
	Password() (string, error)
	SaveToken(token string) error
	Token() (string, error)
	User() (string, error)
}

type repositoryResolver interface {
	Resolve(ctx context.Context) (resolve.Resolution, error)
}

type prompter interface {
	Line(label string) (string, error)
	Password(label string) (string, error)
}

type textEditor interface {
	Edit(ctx context.Context, instructions string) (string, error)
}

var (
	_ forgeAPI           = &forge.Gateway{}
	_ credentialStore    = &auth.Store{}
	_ repositoryResolver = &resolve.Resolver{}
	_ prompter           = &prompt.Prompter{}
	_ textEditor         = &prompt.Editor{}
)

// app holds everything one invocation needs. It is built once and the
// repository is resolved at most once.
type app struct {
	api      forgeAPI
	cfg      config.Config
	editor   textEditor
	errOut   io.Writer
	git      git.Git
	out      io.Writer
	prompter prompter
	resolver repositoryResolver
	store    credentialStore

	resolution *resolve.Resolution
	renderer   *lipgloss.Renderer
}

func newAppFromEnv(cmd *cobra.Command, cfg config.Config, gitClient git.Git) *app {
	store := auth.NewStore(gitClient, cfg.Forge.ConfigSection)
	transport := forge.NewHTTPTransport(cfg.HTTP.Timeout, cfg.HTTP.UserAgent)
	gateway := forge.NewGateway(cfg.Forge.APIURL, store, transport)
	resolver := resolve.New(gitClient, gateway, resolve.Options{
		Host:     cfg.Forge.Host,
		Override: os.Getenv(cfg.Forge.RepositoryEnv),
	})

	return &app{
		api:      gateway,
		cfg:      cfg,
		editor:   prompt.NewEditor(prompt.ResolveEditor(os.Getenv)),
		errOut:   cmd.ErrOrStderr(),
		git:      gitClient,
		out:      cmd.OutOrStdout(),
		prompter: prompt.New(os.Stdin, cmd.ErrOrStderr()),
		resolver: resolver,
		store:    store,
	}
}

func (a *app) handlers() map[dispatch.Verb]dispatch.Handler {
	return map[dispatch.Verb]dispatch.Handler{
		dispatch.VerbCheckout: a.runCheckout,
		dispatch.VerbClose:    a.runClose,
		dispatch.VerbComment:  a.runComment,
		dispatch.VerbCreate:   a.runCreate,
		dispatch.VerbHelp:     a.runHelp,
		dispatch.VerbList:     a.runList,
		dispatch.VerbLogin:    a.runLogin,
		dispatch.VerbOpen:     a.runOpen,
		dispatch.VerbPatch:    a.runPatch,
		dispatch.VerbShow:     a.runShow,
	}
}

// resolve returns the repository resolution, computing it on first use.
func (a *app) resolve(ctx context.Context) (resolve.Resolution, error) {
	if a.resolution != nil {
		return *a.resolution, nil
	}
	res, err := a.resolver.Resolve(ctx)
	if err != nil {
		return resolve.Resolution{}, err
	}
	a.resolution = &res
	return res, nil
}

func (a *app) repository(ctx context.Context) (forge.RepositoryID, error) {
	res, err := a.resolve(ctx)
	if err != nil {
		return "", err
	}
	return res.Upstream, nil
}

// style returns a style bound to the output stream, so colors are dropped
// when output is not a terminal.
func (a *app) style() lipgloss.Style {
	if a.renderer == nil {
		a.renderer = lipgloss.NewRenderer(a.out)
	}
	return a.renderer.NewStyle()
}

// parseNumber validates the pull request number argument of verb.
func parseNumber(verb dispatch.Verb, args []string) (int, error) {
	if len(args) == 0 {
		return 0, forge.NewUsageError("missing pull request number: git-pr %s <number>", verb)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, forge.NewUsageError("invalid pull request number %q: expected a positive integer", args[0])
	}
	return n, nil
}

// maxArgs rejects arguments a verb does not take.
func maxArgs(verb dispatch.Verb, args []string, limit int) error {
	if len(args) > limit {
		return forge.NewUsageError("too many arguments for %s: %q", verb, args[limit:])
	}
	return nil
}

// readFailed wraps an error from reading pull request number, naming a
// missing pull request plainly.
func readFailed(err error, number int, repo forge.RepositoryID) error {
	if apiErr, ok := forge.AsAPIError(err); ok && apiErr.IsNotFound() {
		return fmt.Errorf("pull request #%d not found in %s: %w", number, repo, err)
	}
	return fmt.Errorf("failed to get pull request #%d: %w", number, err)
}

func (a *app) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(a.out, format, args...)
	return err
}

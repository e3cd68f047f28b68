package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	clog "github.com/charmbracelet/log"
	"github.com/jmcampanini/git-pr/internal/config"
	"github.com/jmcampanini/git-pr/internal/dispatch"
	"github.com/jmcampanini/git-pr/internal/forge"
	"github.com/jmcampanini/git-pr/internal/git"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "n/a"

// Exit statuses.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitUsageShown = 2
)

var (
	debugFlag       bool
	printConfigFlag bool
	exitStatus      = ExitOK
)

// errUsageShown reports that a flag error was answered with usage.
var errUsageShown = errors.New("usage shown")

var rootCmd = &cobra.Command{
	Use:   "git-pr [<verb> [<args>...]]",
	Short: "Work with pull requests of the current repository",
	Long: `git-pr lists, shows, creates and updates pull requests on the forge that
hosts the current checkout. When the checkout is a fork, every verb acts on
the parent repository.

` + verbSummary(),
	Args:          cobra.ArbitraryArgs,
	RunE:          runRoot,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "Log git commands and forge requests to stderr")
	rootCmd.Flags().BoolVar(&printConfigFlag, "print-config", false, "Print the effective configuration as TOML and exit")
	// Everything after the verb belongs to the verb.
	rootCmd.Flags().SetInterspersed(false)
	// Unknown flags get the same answer as unknown verbs.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%v\n\n", err)
		_, _ = fmt.Fprint(cmd.OutOrStdout(), usage())
		return errUsageShown
	})
}

// Execute runs git-pr and returns the process exit status.
func Execute() int {
	exitStatus = ExitOK
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errUsageShown) {
			return ExitUsageShown
		}
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "git-pr: %v\n", err)
		return ExitFailure
	}
	return exitStatus
}

func runRoot(cmd *cobra.Command, args []string) error {
	if debugFlag || os.Getenv("GIT_PR_DEBUG") == "1" {
		clog.SetLevel(clog.DebugLevel)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, repoRoot, err := loadConfig(cwd)
	if err != nil {
		return err
	}
	if cfg.Debug {
		clog.SetLevel(clog.DebugLevel)
	}

	if printConfigFlag {
		return config.Encode(cmd.OutOrStdout(), cfg)
	}

	workDir := repoRoot
	if workDir == "" {
		workDir = cwd
	}
	a := newAppFromEnv(cmd, cfg, git.New(workDir, cfg.Git.Timeout))

	d, err := newDispatcher(a)
	if err != nil {
		return err
	}

	status, err := d.Dispatch(cmd.Context(), args)
	if err != nil {
		return err
	}
	exitStatus = status
	return nil
}

func newDispatcher(a *app) (*dispatch.Dispatcher, error) {
	return dispatch.New(a.handlers())
}

// loadConfig discovers and loads git-pr.toml files. Outside a checkout only
// the user-level and cwd files apply.
func loadConfig(cwd string) (config.Config, string, error) {
	gitClient := git.New(cwd, config.DefaultConfig().Git.Timeout)

	repoRoot, err := gitClient.GetWorktreeRoot()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return config.Config{}, "", &forge.EnvironmentError{Message: "git is not available", Err: err}
		}
		return config.Config{}, "", &forge.EnvironmentError{Message: "failed to inspect git checkout", Err: err}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config.Config{}, "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	result, err := config.NewDefaultLoader().Load(config.ConfigPaths(cwd, repoRoot, homeDir))
	if err != nil {
		return config.Config{}, "", fmt.Errorf("failed to load config: %w", err)
	}
	clog.Debug("Loaded config", "sources", result.SourcePaths)

	return result.Config, repoRoot, nil
}

package git

// RemoteDirection is the direction column of `git remote -v`.
type RemoteDirection string

const (
	RemoteDirectionFetch RemoteDirection = "fetch"
	RemoteDirectionPush  RemoteDirection = "push"
)

// Remote is one line of `git remote -v`.
type Remote struct {
	Direction RemoteDirection
	Name      string // e.g., "origin"
	URL       string // e.g., "git@github.com:owner/name.git"
}

// Git is the version-control capability used by git-pr.
// Every call runs git fresh; nothing is cached between calls.
type Git interface {

	// GetWorktreeRoot returns the absolute path to the root of the git tree.
	// If not in a git repository, returns ("", nil).
	// Returns an error only if the git command itself fails (e.g., git not installed).
	GetWorktreeRoot() (string, error)

	// GetCurrentBranch returns the current branch name.
	// Returns "HEAD" if in detached HEAD state.
	GetCurrentBranch() (string, error)

	// GetCommitSubject returns the first line of the commit message for HEAD.
	GetCommitSubject() (string, error)

	// ListRemotes returns every remote entry, fetch and push, in git's order.
	ListRemotes() ([]Remote, error)

	// GetConfig returns the value of key from the merged git configuration.
	// Returns ("", nil) when the key is not set.
	GetConfig(key string) (string, error)

	// SetGlobalConfig writes key=value into the user's global git configuration.
	// Will mutate the user's git configuration.
	SetGlobalConfig(key, value string) error

	// BranchExists checks if a local branch with the given name exists.
	BranchExists(branchName string) (bool, error)

	// FetchRef fetches refspec from a repository URL or remote name.
	// Will mutate the current git state.
	FetchRef(source, refspec string) error

	// Checkout switches the working tree to an existing branch.
	// Will mutate the current git state.
	Checkout(branchName string) error
}

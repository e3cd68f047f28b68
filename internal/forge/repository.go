package forge

import (
	"fmt"
	"strings"
)

// RepositoryID identifies a forge repository as "owner/name".
type RepositoryID string

// ParseRepositoryID validates s as "owner/name".
func ParseRepositoryID(s string) (RepositoryID, error) {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("invalid repository %q: expected owner/name", s)
	}
	return RepositoryID(s), nil
}

func (r RepositoryID) String() string { return string(r) }

// Owner returns the part before the slash.
func (r RepositoryID) Owner() string {
	owner, _, _ := strings.Cut(string(r), "/")
	return owner
}

// User is the subset of a forge account used by git-pr.
type User struct {
	Login string `json:"login"`
}

// Repository is the repository metadata used to resolve forks.
type Repository struct {
	CloneURL      string      `json:"clone_url"`
	DefaultBranch string      `json:"default_branch"`
	Fork          bool        `json:"fork"`
	FullName      string      `json:"full_name"`
	Owner         User        `json:"owner"`
	Parent        *Repository `json:"parent,omitempty"`
}

// RepositoryPath is the resource path of a repository.
func RepositoryPath(repo RepositoryID) string {
	return fmt.Sprintf("repos/%s", repo)
}

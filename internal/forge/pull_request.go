package forge

import (
	"fmt"
	"net/url"
	"time"
)

type PRState string

const (
	PRStateOpen   PRState = "open"
	PRStateClosed PRState = "closed"
)

func (s PRState) String() string {
	return string(s)
}

func (s PRState) IsValid() bool {
	switch s {
	case PRStateOpen, PRStateClosed:
		return true
	}
	return false
}

// ParsePRState accepts the states the list verb can filter on.
func ParsePRState(s string) (PRState, error) {
	state := PRState(s)
	if !state.IsValid() {
		return "", NewUsageError("invalid state %q: expected %s or %s", s, PRStateOpen, PRStateClosed)
	}
	return state, nil
}

// Branch is one side (head or base) of a pull request.
type Branch struct {
	Label string      `json:"label"` // e.g., "alice:feature"
	Ref   string      `json:"ref"`   // e.g., "feature"
	Repo  *Repository `json:"repo"`  // nil when the head repository was deleted
	SHA   string      `json:"sha"`
}

type PullRequest struct {
	Base        Branch     `json:"base"`
	Body        string     `json:"body"`
	Comments    int        `json:"comments"`
	CommentsURL string     `json:"comments_url"`
	CreatedAt   time.Time  `json:"created_at"`
	Head        Branch     `json:"head"`
	HTMLURL     string     `json:"html_url"`
	Merged      bool       `json:"merged"`
	MergedAt    *time.Time `json:"merged_at"`
	Number      int        `json:"number"`
	State       PRState    `json:"state"`
	Title       string     `json:"title"`
	UpdatedAt   time.Time  `json:"updated_at"`
	User        User       `json:"user"`
}

// DisplayState returns "merged" for merged pull requests, the API state otherwise.
func (pr PullRequest) DisplayState() string {
	if pr.Merged || pr.MergedAt != nil {
		return "merged"
	}
	return pr.State.String()
}

type Comment struct {
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	HTMLURL   string    `json:"html_url"`
	ID        int64     `json:"id"`
	User      User      `json:"user"`
}

// NewPullRequest is the payload that opens a pull request.
type NewPullRequest struct {
	Base  string `json:"base"`
	Body  string `json:"body,omitempty"`
	Head  string `json:"head"` // "owner:branch"
	Title string `json:"title"`
}

// NewComment is the payload that adds an issue comment.
type NewComment struct {
	Body string `json:"body"`
}

// StateChange is the payload that closes or reopens a pull request.
type StateChange struct {
	State PRState `json:"state"`
}

// AuthorizationRequest asks the forge for a new API token.
type AuthorizationRequest struct {
	Note    string   `json:"note"`
	NoteURL string   `json:"note_url,omitempty"`
	Scopes  []string `json:"scopes"`
}

type Authorization struct {
	ID     int64    `json:"id"`
	Note   string   `json:"note"`
	Scopes []string `json:"scopes"`
	Token  string   `json:"token"`
}

// AuthorizationsPath is where login exchanges credentials for a token.
const AuthorizationsPath = "authorizations"

func PullRequestsPath(repo RepositoryID, state PRState) string {
	return fmt.Sprintf("repos/%s/pulls?state=%s", repo, url.QueryEscape(state.String()))
}

func PullRequestPath(repo RepositoryID, number int) string {
	return fmt.Sprintf("repos/%s/pulls/%d", repo, number)
}

func CreatePullRequestPath(repo RepositoryID) string {
	return fmt.Sprintf("repos/%s/pulls", repo)
}

// IssueCommentsPath is the conversation thread of a pull request.
func IssueCommentsPath(repo RepositoryID, number int) string {
	return fmt.Sprintf("repos/%s/issues/%d/comments", repo, number)
}

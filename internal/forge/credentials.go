package forge

import (
	"net/http"
)

// Credentials is the authentication attached to one request.
// It is one of NoCredentials, TokenCredentials or BasicCredentials.
type Credentials interface {
	// Scheme names the credential kind for logging; it never includes secrets.
	Scheme() string

	apply(req *http.Request)
}

// NoCredentials sends the request anonymously.
type NoCredentials struct{}

// TokenCredentials sends "Authorization: token <Token>".
type TokenCredentials struct {
	Token string
}

// BasicCredentials sends HTTP basic authentication. Only the login exchange uses it.
type BasicCredentials struct {
	Password string
	User     string
}

var (
	_ Credentials = NoCredentials{}
	_ Credentials = TokenCredentials{}
	_ Credentials = BasicCredentials{}
)

func (NoCredentials) Scheme() string    { return "none" }
func (TokenCredentials) Scheme() string { return "token" }
func (BasicCredentials) Scheme() string { return "basic" }

func (NoCredentials) apply(*http.Request) {}

func (c TokenCredentials) apply(req *http.Request) {
	req.Header.Set("Authorization", "token "+c.Token)
}

func (c BasicCredentials) apply(req *http.Request) {
	req.SetBasicAuth(c.User, c.Password)
}

// TokenStore supplies the persisted API token.
// An empty token with a nil error means no token is stored.
type TokenStore interface {
	Token() (string, error)
}

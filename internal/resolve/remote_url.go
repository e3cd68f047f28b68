package resolve

import (
	"net/url"
	"strings"

	"github.com/jmcampanini/git-pr/internal/forge"
)

// ParseRemoteURL extracts "owner/name" from a git remote URL pointing at host.
// Handles SCP-style (git@host:owner/name.git) and URL-style
// (https://host/owner/name.git, ssh://git@host/owner/name, git://host/...) remotes,
// with or without the .git suffix. Returns false for other hosts or shapes.
func ParseRemoteURL(remoteURL, host string) (forge.RepositoryID, bool) {
	remoteHost, path, ok := splitRemoteURL(remoteURL)
	if !ok || !strings.EqualFold(remoteHost, host) {
		return "", false
	}

	path = strings.Trim(path, "/")
	path = strings.TrimSuffix(path, ".git")

	id, err := forge.ParseRepositoryID(path)
	if err != nil {
		return "", false
	}
	return id, true
}

// splitRemoteURL returns the hostname and path of a remote URL.
func splitRemoteURL(remoteURL string) (host, path string, ok bool) {
	if strings.Contains(remoteURL, "://") {
		parsed, err := url.Parse(remoteURL)
		if err != nil || parsed.Hostname() == "" {
			return "", "", false
		}
		return parsed.Hostname(), parsed.Path, true
	}

	// SCP-style: [user@]host:path, where no slash comes before the colon
	colon := strings.Index(remoteURL, ":")
	if colon <= 0 {
		return "", "", false
	}
	if slash := strings.Index(remoteURL, "/"); slash >= 0 && slash < colon {
		return "", "", false
	}
	host = remoteURL[:colon]
	if at := strings.LastIndex(host, "@"); at >= 0 {
		host = host[at+1:]
	}
	if host == "" {
		return "", "", false
	}
	return host, remoteURL[colon+1:], true
}

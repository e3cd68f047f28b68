package config

import "time"

// DefaultConfig returns sensible defaults for all configuration.
func DefaultConfig() Config {
	return Config{
		Checkout: CheckoutConfig{
			BranchTemplate: "pr/{{.Number}}",
		},
		Forge: ForgeConfig{
			APIURL:        "https://api.github.com/",
			ConfigSection: "git-pr",
			Host:          "github.com",
			RepositoryEnv: "GIT_PR_REPO",
		},
		Git: GitConfig{
			Timeout: 5 * time.Second,
		},
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "git-pr",
		},
		Login: LoginConfig{
			Note:   "git-pr",
			Scopes: []string{"repo"},
		},
		Slugify: SlugifyConfig{
			CollapseDashes:     true,
			HashLength:         4,
			Lowercase:          true,
			MaxLength:          40,
			ReplaceNonAlphanum: true,
			TrimDashes:         true,
		},
	}
}

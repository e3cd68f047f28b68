package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"text/template"
	"time"
)

// Config represents the complete git-pr configuration.
type Config struct {
	Checkout CheckoutConfig `toml:"checkout"`
	Debug    bool           `toml:"debug"`
	Forge    ForgeConfig    `toml:"forge"`
	Git      GitConfig      `toml:"git"`
	HTTP     HTTPConfig     `toml:"http"`
	Login    LoginConfig    `toml:"login"`
	Slugify  SlugifyConfig  `toml:"slugify"`
}

// Validate checks that all config values are valid.
// Returns an error describing the first invalid value found.
func (c Config) Validate() error {
	if c.Forge.APIURL == "" {
		return errors.New("forge.api_url cannot be empty")
	}
	u, err := url.Parse(c.Forge.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("forge.api_url must be an absolute http(s) URL")
	}
	if !strings.HasSuffix(c.Forge.APIURL, "/") {
		return errors.New("forge.api_url must end with a slash")
	}
	if c.Forge.Host == "" {
		return errors.New("forge.host cannot be empty")
	}
	if c.Forge.ConfigSection == "" {
		return errors.New("forge.config_section cannot be empty")
	}
	if c.Git.Timeout < 0 {
		return errors.New("git.timeout cannot be negative")
	}
	if c.HTTP.Timeout < 0 {
		return errors.New("http.timeout cannot be negative")
	}
	if c.Checkout.BranchTemplate == "" {
		return errors.New("checkout.branch_template cannot be empty")
	}
	if _, err := template.New("branch").Parse(c.Checkout.BranchTemplate); err != nil {
		return fmt.Errorf("checkout.branch_template is not a valid template: %w", err)
	}
	if c.Slugify.HashLength < 0 {
		return errors.New("slugify.hash_length cannot be negative")
	}
	if c.Slugify.MaxLength < 0 {
		return errors.New("slugify.max_length cannot be negative")
	}
	if c.Slugify.MaxLength > 0 && c.Slugify.HashLength > c.Slugify.MaxLength-2 {
		return errors.New("slugify.hash_length must be at least 2 less than slugify.max_length")
	}
	return nil
}

// CheckoutConfig configures local branches created by the checkout verb.
type CheckoutConfig struct {
	// BranchTemplate is a text/template producing the local branch name.
	// Fields: .Number, .HeadRef, .TitleSlug
	BranchTemplate string `toml:"branch_template"` // e.g., "pr/{{.Number}}"
}

// ForgeConfig identifies the forge and where its state lives locally.
type ForgeConfig struct {
	APIURL        string `toml:"api_url"`        // e.g., "https://api.github.com/"
	ConfigSection string `toml:"config_section"` // git config section holding token/user/password
	Host          string `toml:"host"`           // hostname matched against remote URLs
	RepositoryEnv string `toml:"repository_env"` // env var overriding remote discovery
}

// GitConfig configures git command execution.
type GitConfig struct {
	Timeout time.Duration `toml:"timeout"` // Timeout for git commands (e.g., "5s")
}

// HTTPConfig configures the forge transport.
type HTTPConfig struct {
	Timeout   time.Duration `toml:"timeout"` // 0 disables the client timeout
	UserAgent string        `toml:"user_agent"`
}

// LoginConfig configures the token requested by the login verb.
type LoginConfig struct {
	Note   string   `toml:"note"`
	Scopes []string `toml:"scopes"`
}

// SlugifyConfig configures slug generation for {{.TitleSlug}}.
type SlugifyConfig struct {
	CollapseDashes     bool `toml:"collapse_dashes"`
	HashLength         int  `toml:"hash_length"`
	Lowercase          bool `toml:"lowercase"`
	MaxLength          int  `toml:"max_length"`
	ReplaceNonAlphanum bool `toml:"replace_non_alphanum"`
	TrimDashes         bool `toml:"trim_dashes"`
}

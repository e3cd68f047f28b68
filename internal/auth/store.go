// Package auth persists the forge credentials in the user's git configuration.
package auth

import (
	"errors"
	"fmt"

	clog "github.com/charmbracelet/log"
	"github.com/jmcampanini/git-pr/internal/forge"
)

// ConfigStore is the subset of git.Git the store needs.
type ConfigStore interface {
	GetConfig(key string) (string, error)
	SetGlobalConfig(key, value string) error
}

// Store reads <section>.token, <section>.user and <section>.password.
// Values are read on every call and never cached.
type Store struct {
	config  ConfigStore
	log     *clog.Logger
	section string
}

var _ forge.TokenStore = &Store{}

func NewStore(config ConfigStore, section string) *Store {
	return &Store{
		config:  config,
		log:     clog.Default().WithPrefix("auth"),
		section: section,
	}
}

func (s *Store) key(name string) string {
	return s.section + "." + name
}

// Token returns the stored API token, or "" when none is stored.
func (s *Store) Token() (string, error) {
	token, err := s.config.GetConfig(s.key("token"))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", s.key("token"), err)
	}
	return token, nil
}

// SaveToken writes token to the global git configuration.
func (s *Store) SaveToken(token string) error {
	if token == "" {
		return errors.New("refusing to store an empty token")
	}
	if err := s.config.SetGlobalConfig(s.key("token"), token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	s.log.Debug("Stored token", "key", s.key("token"))
	return nil
}

// User returns the configured login name, or "".
func (s *Store) User() (string, error) {
	user, err := s.config.GetConfig(s.key("user"))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", s.key("user"), err)
	}
	return user, nil
}

// Password returns the configured password, or "".
func (s *Store) Password() (string, error) {
	password, err := s.config.GetConfig(s.key("password"))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", s.key("password"), err)
	}
	return password, nil
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmcampanini/git-pr/internal/dispatch"
	"github.com/jmcampanini/git-pr/internal/forge"
)

// runLogin exchanges a username and password for an API token and stores it
// in the global git configuration.
func (a *app) runLogin(ctx context.Context, args []string) (int, error) {
	if err := maxArgs(dispatch.VerbLogin, args, 2); err != nil {
		return ExitFailure, err
	}

	user, err := a.loginValue(args, 0, "username", a.store.User, a.prompter.Line)
	if err != nil {
		return ExitFailure, err
	}
	if user == "" {
		return ExitFailure, forge.NewUsageError("missing username: git-pr login <user> [password]")
	}

	password, err := a.loginValue(args, 1, "password", a.store.Password, a.prompter.Password)
	if err != nil {
		return ExitFailure, err
	}
	if password == "" {
		return ExitFailure, forge.NewUsageError("missing password for %s", user)
	}

	req := forge.AuthorizationRequest{
		Note:   a.cfg.Login.Note,
		Scopes: a.cfg.Login.Scopes,
	}
	var authz forge.Authorization
	creds := forge.BasicCredentials{User: user, Password: password}
	if err := a.api.Create(ctx, forge.AuthorizationsPath, req, creds, &authz); err != nil {
		return ExitFailure, fmt.Errorf("failed to log in as %s: %w", user, err)
	}
	if authz.Token == "" {
		return ExitFailure, errors.New("the forge did not return a token")
	}

	if err := a.store.SaveToken(authz.Token); err != nil {
		return ExitFailure, err
	}

	if err := a.printf("Logged in as %s; token stored in git config %s.token\n", user, a.cfg.Forge.ConfigSection); err != nil {
		return ExitFailure, err
	}
	return ExitOK, nil
}

// loginValue takes args[i], then the stored value, then asks.
func (a *app) loginValue(args []string, i int, what string, stored func() (string, error), ask func(string) (string, error)) (string, error) {
	if len(args) > i && args[i] != "" {
		return args[i], nil
	}
	value, err := stored()
	if err != nil {
		return "", err
	}
	if value != "" {
		return value, nil
	}
	value, err = ask(strings.ToUpper(what[:1]) + what[1:] + ": ")
	if err != nil {
		return "", &forge.EnvironmentError{Message: "failed to read " + what, Err: err}
	}
	return value, nil
}

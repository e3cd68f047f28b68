package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/jmcampanini/git-pr/internal/config"
	"github.com/jmcampanini/git-pr/internal/forge"
	"github.com/jmcampanini/git-pr/internal/git"
	"github.com/jmcampanini/git-pr/internal/resolve"
	"github.com/stretchr/testify/require"
)

// mockGit implements git.Git for testing
type mockGit struct {
	branchExistsFn     func(branchName string) (bool, error)
	checkoutFn         func(branchName string) error
	fetchRefFn         func(source, refspec string) error
	getCommitSubjectFn func() (string, error)
	getConfigFn        func(key string) (string, error)
	getCurrentBranchFn func() (string, error)
	listRemotesFn      func() ([]git.Remote, error)
	setGlobalConfigFn  func(key, value string) error
}

var _ git.Git = &mockGit{}

func (m *mockGit) GetWorktreeRoot() (string, error) {
	return "/repo", nil
}

func (m *mockGit) GetCurrentBranch() (string, error) {
	if m.getCurrentBranchFn != nil {
		return m.getCurrentBranchFn()
	}
	return "main", nil
}

func (m *mockGit) GetCommitSubject() (string, error) {
	if m.getCommitSubjectFn != nil {
		return m.getCommitSubjectFn()
	}
	return "", nil
}

func (m *mockGit) ListRemotes() ([]git.Remote, error) {
	if m.listRemotesFn != nil {
		return m.listRemotesFn()
	}
	return nil, nil
}

func (m *mockGit) GetConfig(key string) (string, error) {
	if m.getConfigFn != nil {
		return m.getConfigFn(key)
	}
	return "", nil
}

func (m *mockGit) SetGlobalConfig(key, value string) error {
	if m.setGlobalConfigFn != nil {
		return m.setGlobalConfigFn(key, value)
	}
	return nil
}

func (m *mockGit) BranchExists(branchName string) (bool, error) {
	if m.branchExistsFn != nil {
		return m.branchExistsFn(branchName)
	}
	return false, nil
}

func (m *mockGit) FetchRef(source, refspec string) error {
	if m.fetchRefFn != nil {
		return m.fetchRefFn(source, refspec)
	}
	return nil
}

func (m *mockGit) Checkout(branchName string) error {
	if m.checkoutFn != nil {
		return m.checkoutFn(branchName)
	}
	return nil
}

// mockForge implements forgeAPI for testing
type mockForge struct {
	createFn  func(path string, payload any, override forge.Credentials) (any, error)
	readFn    func(path string) (any, error)
	readRawFn func(path, mimetype string) ([]byte, error)
	updateFn  func(path string, payload any) (any, error)
	calls     int
}

// fill copies a canned response into out the way the gateway decodes JSON.
func fill(value any, out any) error {
	if value == nil || out == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (m *mockForge) Read(_ context.Context, path string, out any) error {
	m.calls++
	if m.readFn == nil {
		panic("unexpected Read " + path)
	}
	value, err := m.readFn(path)
	if err != nil {
		return err
	}
	return fill(value, out)
}

func (m *mockForge) ReadRaw(_ context.Context, path, mimetype string) ([]byte, error) {
	m.calls++
	if m.readRawFn == nil {
		panic("unexpected ReadRaw " + path)
	}
	return m.readRawFn(path, mimetype)
}

func (m *mockForge) Create(_ context.Context, path string, payload any, override forge.Credentials, out any) error {
	m.calls++
	if m.createFn == nil {
		panic("unexpected Create " + path)
	}
	value, err := m.createFn(path, payload, override)
	if err != nil {
		return err
	}
	return fill(value, out)
}

func (m *mockForge) Update(_ context.Context, path string, payload any, out any) error {
	m.calls++
	if m.updateFn == nil {
		panic("unexpected Update " + path)
	}
	value, err := m.updateFn(path, payload)
	if err != nil {
		return err
	}
	return fill(value, out)
}

// mockResolver implements repositoryResolver for testing
type mockResolver struct {
	resolution resolve.Resolution
	err        error
	calls      int
}

func (m *mockResolver) Resolve(context.Context) (resolve.Resolution, error) {
	m.calls++
	return m.resolution, m.err
}

// mockStore implements credentialStore for testing
type mockStore struct {
	password string
	saved    string
	token    string
	user     string
}

func (m *mockStore) Password() (string, error) { return m.password, nil }
func (m *mockStore) Token() (string, error)    { return m.token, nil }
func (m *mockStore) User() (string, error)     { return m.user, nil }
func (m *mockStore) SaveToken(token string) error {
	m.saved = token
	return nil
}

// mockPrompter implements prompter for testing
type mockPrompter struct {
	answers map[string]string
	asked   []string
}

func (m *mockPrompter) Line(label string) (string, error) {
	m.asked = append(m.asked, label)
	return m.answers[label], nil
}

func (m *mockPrompter) Password(label string) (string, error) {
	m.asked = append(m.asked, label)
	return m.answers[label], nil
}

// mockEditor implements textEditor for testing
type mockEditor struct {
	text  string
	err   error
	calls int
}

func (m *mockEditor) Edit(context.Context, string) (string, error) {
	m.calls++
	return m.text, m.err
}

// testApp bundles an app with its mocks and output buffers.
type testApp struct {
	*app
	editor   *mockEditor
	forge    *mockForge
	git      *mockGit
	prompter *mockPrompter
	resolver *mockResolver
	stderr   *bytes.Buffer
	stdout   *bytes.Buffer
	store    *mockStore
}

func defaultTestConfig() config.Config {
	return config.DefaultConfig()
}

// newTestApp returns an app acting on acme/widgets from alice's fork.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ta := &testApp{
		editor:   &mockEditor{},
		forge:    &mockForge{},
		git:      &mockGit{},
		prompter: &mockPrompter{answers: map[string]string{}},
		resolver: &mockResolver{resolution: resolve.Resolution{
			DefaultBranch: "main",
			Fork:          true,
			Local:         "alice/widgets",
			Upstream:      "acme/widgets",
		}},
		stderr: &bytes.Buffer{},
		stdout: &bytes.Buffer{},
		store:  &mockStore{token: "stored-token"},
	}
	ta.app = &app{
		api:      ta.forge,
		cfg:      defaultTestConfig(),
		editor:   ta.editor,
		errOut:   ta.stderr,
		git:      ta.git,
		out:      ta.stdout,
		prompter: ta.prompter,
		resolver: ta.resolver,
		store:    ta.store,
	}
	return ta
}

// run dispatches args through the app's handler table.
func (ta *testApp) run(t *testing.T, args ...string) (int, error) {
	t.Helper()
	d, err := newDispatcher(ta.app)
	require.NoError(t, err)
	return d.Dispatch(context.Background(), args)
}

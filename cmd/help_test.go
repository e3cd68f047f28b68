package cmd

import (
	"testing"

	"github.com/jmcampanini/git-pr/internal/dispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{name: "explicit help", args: []string{"help"}},
		{name: "help about a verb", args: []string{"help", "list"}},
		{name: "unknown verb", args: []string{"bogus"}, wantStderr: "unknown command \"bogus\"\n"},
		{name: "unknown verb with arguments", args: []string{"merge", "7"}, wantStderr: "unknown command \"merge\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t)

			status, err := ta.run(t, tt.args...)
			require.NoError(t, err)

			assert.Equal(t, ExitUsageShown, status)
			assert.Contains(t, ta.stdout.String(), "usage: git-pr")
			for _, v := range dispatch.Verbs {
				assert.Contains(t, ta.stdout.String(), "  "+string(v))
			}
			if tt.wantStderr != "" {
				assert.Contains(t, ta.stderr.String(), tt.wantStderr)
			} else {
				assert.Empty(t, ta.stderr.String())
			}
			assert.Zero(t, ta.forge.calls)
			assert.Zero(t, ta.resolver.calls)
		})
	}
}

func TestVerbSummary_DescribesEveryVerb(t *testing.T) {
	for _, v := range dispatch.Verbs {
		desc, ok := verbDescriptions[v]
		require.True(t, ok, "missing description for %s", v)
		assert.Contains(t, desc, string(v))
	}
}

package naming

import (
	"testing"

	"github.com/jmcampanini/git-pr/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckoutNamer(t *testing.T) {
	tests := []struct {
		name      string
		template  string
		errSubstr string
	}{
		{name: "number", template: "pr/{{.Number}}"},
		{name: "head ref", template: "{{.HeadRef}}"},
		{name: "all fields", template: "pr-{{.Number}}-{{.TitleSlug}}"},
		{name: "invalid syntax", template: "pr/{{.Number", errSubstr: "invalid branch_template"},
		{name: "unknown field", template: "{{.Title}}", errSubstr: "invalid field"},
		{name: "leading dash", template: "-{{.Number}}", errSubstr: "invalid branch name"},
		{name: "double dots", template: "pr..{{.Number}}", errSubstr: "invalid branch name"},
		{name: "empty output", template: "", errSubstr: "invalid branch name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			namer, err := NewCheckoutNamer(config.CheckoutConfig{BranchTemplate: tt.template}, config.DefaultConfig().Slugify)
			if tt.errSubstr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
				assert.Nil(t, namer)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, namer)
		})
	}
}

func TestCheckoutNamer_BranchName(t *testing.T) {
	tests := []struct {
		name     string
		template string
		number   int
		headRef  string
		title    string
		want     string
		wantErr  bool
	}{
		{name: "default template", template: "pr/{{.Number}}", number: 42, headRef: "feature", title: "Add things", want: "pr/42"},
		{name: "head ref", template: "review/{{.HeadRef}}", number: 7, headRef: "fix/bug", title: "Fix", want: "review/fix/bug"},
		{name: "title slug", template: "pr-{{.Number}}-{{.TitleSlug}}", number: 3, headRef: "x", title: "Fix the Login Page!", want: "pr-3-fix-the-login-page"},
		{name: "head ref that yields an invalid name", template: "{{.HeadRef}}", number: 1, headRef: "-weird", title: "t", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			namer, err := NewCheckoutNamer(config.CheckoutConfig{BranchTemplate: tt.template}, config.DefaultConfig().Slugify)
			require.NoError(t, err)

			got, err := namer.BranchName(tt.number, tt.headRef, tt.title)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsValidBranchName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"main", true},
		{"pr/123", true},
		{"feature/add-auth", true},
		{"feature_add_auth", true},
		{"", false},
		{"-feature", false},
		{"feature..test", false},
		{"feature/", false},
		{"feature.lock", false},
		{"has space", false},
		{"tab\there", false},
		{"del\x7f", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidBranchName(tt.name))
		})
	}
}

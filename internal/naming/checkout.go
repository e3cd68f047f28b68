// Package naming derives local branch names for checked-out pull requests.
package naming

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/jmcampanini/git-pr/internal/config"
)

// CheckoutData is the data available to checkout.branch_template.
type CheckoutData struct {
	HeadRef   string // head branch on the author's side (e.g., "feature/add-auth")
	Number    int
	TitleSlug string // slugified title
}

// CheckoutNamer produces local branch names for the checkout verb.
type CheckoutNamer struct {
	slugifyOpts SlugifyOptions
	tmpl        *template.Template
}

// NewCheckoutNamer parses the branch template and verifies that it renders a
// usable branch name for sample data.
func NewCheckoutNamer(checkoutCfg config.CheckoutConfig, slugCfg config.SlugifyConfig) (*CheckoutNamer, error) {
	tmpl, err := template.New("branch").Option("missingkey=error").Parse(checkoutCfg.BranchTemplate)
	if err != nil {
		return nil, fmt.Errorf("invalid branch_template: %w", err)
	}

	n := &CheckoutNamer{
		slugifyOpts: SlugifyOptionsFromConfig(slugCfg),
		tmpl:        tmpl,
	}

	sample, err := n.render(CheckoutData{HeadRef: "feature/sample", Number: 1, TitleSlug: "sample-title"})
	if err != nil {
		return nil, fmt.Errorf("branch_template uses invalid field: %w", err)
	}
	if !IsValidBranchName(sample) {
		return nil, fmt.Errorf("branch_template produces invalid branch name: %q", sample)
	}

	return n, nil
}

// BranchName renders the local branch for pull request number with the given
// head branch and title.
func (n *CheckoutNamer) BranchName(number int, headRef, title string) (string, error) {
	name, err := n.render(CheckoutData{
		HeadRef:   headRef,
		Number:    number,
		TitleSlug: Slugify(title, n.slugifyOpts),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate branch name: %w", err)
	}
	if !IsValidBranchName(name) {
		return "", fmt.Errorf("generated branch name %q is not a valid git branch", name)
	}
	return name, nil
}

func (n *CheckoutNamer) render(data CheckoutData) (string, error) {
	var buf bytes.Buffer
	if err := n.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// IsValidBranchName rejects the common mistakes: empty names, a leading "-",
// "..", control characters, whitespace and a trailing "/" or ".lock".
// git itself remains the final judge.
func IsValidBranchName(name string) bool {
	if name == "" || strings.HasPrefix(name, "-") {
		return false
	}
	if strings.Contains(name, "..") || strings.HasSuffix(name, "/") || strings.HasSuffix(name, ".lock") {
		return false
	}
	for _, r := range name {
		if r < 32 || r == 127 || r == ' ' {
			return false
		}
	}
	return true
}

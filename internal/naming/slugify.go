package naming

import (
	"hash/fnv"
	"regexp"
	"strings"

	"github.com/jmcampanini/git-pr/internal/config"
)

// SlugifyOptions controls Slugify. The zero value returns the input unchanged.
type SlugifyOptions struct {
	CollapseDashes     bool
	HashLength         int // length of the suffix added when truncating
	Lowercase          bool
	MaxLength          int // 0 means no limit
	ReplaceNonAlphaNum bool
	TrimDashes         bool
}

// SlugifyOptionsFromConfig maps the [slugify] config section onto SlugifyOptions.
func SlugifyOptionsFromConfig(cfg config.SlugifyConfig) SlugifyOptions {
	return SlugifyOptions{
		CollapseDashes:     cfg.CollapseDashes,
		HashLength:         cfg.HashLength,
		Lowercase:          cfg.Lowercase,
		MaxLength:          cfg.MaxLength,
		ReplaceNonAlphaNum: cfg.ReplaceNonAlphanum,
		TrimDashes:         cfg.TrimDashes,
	}
}

var (
	nonAlphaNumRegex     = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	consecutiveDashRegex = regexp.MustCompile(`-{2,}`)
)

// Slugify turns a pull request title into a fragment usable in a branch name.
// Over-long results are cut and suffixed with a short hash of the input so
// distinct titles stay distinct.
func Slugify(input string, opts SlugifyOptions) string {
	slug := input
	if opts.Lowercase {
		slug = strings.ToLower(slug)
	}
	if opts.ReplaceNonAlphaNum {
		slug = nonAlphaNumRegex.ReplaceAllString(slug, "-")
	}
	if opts.CollapseDashes {
		slug = consecutiveDashRegex.ReplaceAllString(slug, "-")
	}
	if opts.TrimDashes {
		slug = strings.Trim(slug, "-")
	}
	if slug == "" {
		return ""
	}

	if opts.MaxLength > 0 && len(slug) > opts.MaxLength {
		slug = truncate(slug, hashSuffix(input, opts.HashLength), opts.MaxLength)
	}
	return slug
}

// hashSuffix returns length base36 digits of the FNV-64a hash of s.
func hashSuffix(s string, length int) string {
	if length <= 0 {
		return ""
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	sum := h.Sum64()

	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	out := make([]byte, length)
	for i := range out {
		out[i] = digits[sum%36]
		sum /= 36
	}
	return string(out)
}

func truncate(slug, hash string, maxLength int) string {
	if hash == "" {
		return strings.TrimRight(slug[:maxLength], "-")
	}

	keep := maxLength - len(hash) - 1
	prefix := ""
	if keep > 0 {
		prefix = strings.TrimRight(slug[:min(keep, len(slug))], "-")
	}
	if prefix == "" {
		return hash[:min(len(hash), maxLength)]
	}
	return prefix + "-" + hash
}

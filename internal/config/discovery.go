package config

import (
	"os"
	"path/filepath"
)

const configFileName = "git-pr.toml"

// ConfigPaths returns ordered list of config file paths to check.
// Paths are ordered from lowest to highest priority, so that when decoded
// sequentially, each subsequent file overrides values from previous files.
//
// Order (lowest to highest priority):
//  1. File in XDG config directory (~/.config/git-pr/git-pr.toml)
//  2. Files walking up from the repository root toward the home directory
//  3. File in the repository root
//  4. File in current working directory (if different from the repository root)
//
// An empty repoRoot (not inside a checkout) only yields the XDG file and cwd.
func ConfigPaths(cwd, repoRoot, homeDir string) []string {
	var paths []string
	seen := make(map[string]bool)

	addPath := func(dir string) {
		if dir == "" {
			return
		}
		path := filepath.Join(dir, configFileName)
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}

	if xdgConfigDir, err := os.UserConfigDir(); err == nil {
		addPath(filepath.Join(xdgConfigDir, "git-pr"))
	}

	if repoRoot != "" && homeDir != "" {
		var ancestors []string
		current := filepath.Dir(repoRoot)
		for current != "" && len(current) >= len(homeDir) {
			ancestors = append(ancestors, current)
			if current == homeDir {
				break
			}
			parent := filepath.Dir(current)
			if parent == current {
				break // reached filesystem root
			}
			current = parent
		}

		// home first (lowest priority), closest to repoRoot last
		for i := len(ancestors) - 1; i >= 0; i-- {
			addPath(ancestors[i])
		}
	}

	addPath(repoRoot)
	addPath(cwd)

	return paths
}

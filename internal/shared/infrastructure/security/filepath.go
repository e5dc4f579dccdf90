// Package security guards the file paths OptiFlow writes to on behalf of a user.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// forbiddenChars are shell metacharacters that never belong in an export path.
var forbiddenChars = []string{";", "&", "|", "$", "`", "<", ">", "\n", "\r"}

// CleanPath cleans path, makes it absolute and resolves symlinks of an
// existing target. A path naming a directory is rejected.
func CleanPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}
	for _, char := range forbiddenChars {
		if strings.Contains(path, char) {
			return "", fmt.Errorf("file path contains forbidden character %q: %s", char, path)
		}
	}

	cleanPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(cleanPath)
	switch {
	case os.IsNotExist(err):
		return cleanPath, nil
	case err != nil:
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("failed to stat file path: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("file path is a directory: %s", path)
	}
	return resolved, nil
}

// WriteFile writes data to a cleaned path with owner-only permissions.
// The parent directory must already exist.
func WriteFile(path string, data []byte) (string, error) {
	cleanPath, err := CleanPath(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(filepath.Dir(cleanPath)); err != nil {
		return "", fmt.Errorf("parent directory not available: %w", err)
	}
	// #nosec G306 - path is validated above
	if err := os.WriteFile(cleanPath, data, 0o600); err != nil {
		return "", err
	}
	return cleanPath, nil
}

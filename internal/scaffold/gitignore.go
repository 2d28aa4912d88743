package scaffold

import (
	"os"
	"strings"
)

// GitignoreResult indicates what happened to .gitignore.
type GitignoreResult string

const (
	GitignoreCreated   GitignoreResult = "created"
	GitignoreUpdated   GitignoreResult = "updated"
	GitignoreUnchanged GitignoreResult = "unchanged"
)

// EnsureGitignore ensures the configuration-folder entry is in the
// .gitignore at path. Creates the file if missing, appends the entry
// exactly once otherwise, and leaves every other line alone.
func EnsureGitignore(path string) (GitignoreResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		if err := os.WriteFile(path, []byte(IgnoreEntry+"\n"), 0644); err != nil {
			return "", err
		}
		return GitignoreCreated, nil
	}

	if hasIgnoreEntry(string(content)) {
		return GitignoreUnchanged, nil
	}

	newContent := string(content)
	if len(newContent) > 0 && !strings.HasSuffix(newContent, "\n") {
		newContent += "\n"
	}
	newContent += IgnoreEntry + "\n"

	if err := os.WriteFile(path, []byte(newContent), 0644); err != nil {
		return "", err
	}
	return GitignoreUpdated, nil
}

// hasIgnoreEntry checks for the configuration-folder entry. ".claude/" and
// ".claude" are treated as equivalent.
func hasIgnoreEntry(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == IgnoreEntry || trimmed == strings.TrimSuffix(IgnoreEntry, "/") {
			return true
		}
	}
	return false
}

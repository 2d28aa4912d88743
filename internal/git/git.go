// Package git wraps the git operations quill needs behind a CommandRunner,
// so the bootstrap sequence can be tested without a real repository.
package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harwell/quill/internal/exec"
)

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// Init initializes a repository at dir with the given initial branch.
// Falls back to plain `git init` plus a branch rename for older git versions
// that lack --initial-branch.
func Init(ctx context.Context, cr exec.CommandRunner, dir, branch string) error {
	res, err := cr.Run(ctx, "git", []string{"init", "--initial-branch=" + branch}, exec.RunOpts{Dir: dir})
	if err != nil {
		return fmt.Errorf("failed to run git init: %w", err)
	}
	if res.ExitCode == 0 {
		return nil
	}

	res, err = cr.Run(ctx, "git", []string{"init"}, exec.RunOpts{Dir: dir})
	if err != nil {
		return fmt.Errorf("failed to run git init: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("git init failed: %s", strings.TrimSpace(res.Stderr))
	}

	// Rename the default branch; harmless if it is already the target.
	res, err = cr.Run(ctx, "git", []string{"branch", "-M", branch}, exec.RunOpts{Dir: dir})
	if err != nil {
		return fmt.Errorf("failed to rename branch: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("git branch -M %s failed: %s", branch, strings.TrimSpace(res.Stderr))
	}
	return nil
}

// CurrentBranch returns the checked-out branch name, or "" for a repository
// with no commits yet.
func CurrentBranch(ctx context.Context, cr exec.CommandRunner, dir string) (string, error) {
	res, err := cr.Run(ctx, "git", []string{"rev-parse", "--abbrev-ref", "HEAD"}, exec.RunOpts{Dir: dir})
	if err != nil {
		return "", fmt.Errorf("failed to run git rev-parse: %w", err)
	}
	if res.ExitCode != 0 {
		return "", nil
	}
	return strings.TrimSpace(res.Stdout), nil
}

// HasRemote reports whether the named remote is configured.
// Never returns an error: a missing remote and a failed git invocation
// both read as "not configured".
func HasRemote(ctx context.Context, cr exec.CommandRunner, dir, name string) bool {
	res, err := cr.Run(ctx, "git", []string{"config", "--get", "remote." + name + ".url"}, exec.RunOpts{Dir: dir})
	if err != nil || res.ExitCode != 0 {
		return false
	}
	return strings.TrimSpace(res.Stdout) != ""
}

// AddRemote registers a remote with the given URL.
func AddRemote(ctx context.Context, cr exec.CommandRunner, dir, name, url string) error {
	res, err := cr.Run(ctx, "git", []string{"remote", "add", name, url}, exec.RunOpts{Dir: dir})
	if err != nil {
		return fmt.Errorf("failed to run git remote add: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("git remote add failed: %s", strings.TrimSpace(res.Stderr))
	}
	return nil
}

// AddAll stages every change under dir.
func AddAll(ctx context.Context, cr exec.CommandRunner, dir string) error {
	res, err := cr.Run(ctx, "git", []string{"add", "-A"}, exec.RunOpts{Dir: dir})
	if err != nil {
		return fmt.Errorf("failed to run git add: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("git add failed: %s", strings.TrimSpace(res.Stderr))
	}
	return nil
}

// HasStagedChanges reports whether the index differs from HEAD.
// `git diff --cached --quiet` exits 1 when differences exist. In a repository
// with no commits HEAD is unresolvable, so any staged file counts as a change
// there (`git status --porcelain`).
func HasStagedChanges(ctx context.Context, cr exec.CommandRunner, dir string) (bool, error) {
	res, err := cr.Run(ctx, "git", []string{"diff", "--cached", "--quiet"}, exec.RunOpts{Dir: dir})
	if err != nil {
		return false, fmt.Errorf("failed to run git diff: %w", err)
	}
	if res.ExitCode == 0 {
		return false, nil
	}
	if res.ExitCode == 1 {
		return true, nil
	}

	// HEAD missing (fresh repo): fall back to porcelain status.
	res, err = cr.Run(ctx, "git", []string{"status", "--porcelain"}, exec.RunOpts{Dir: dir})
	if err != nil {
		return false, fmt.Errorf("failed to run git status: %w", err)
	}
	return strings.TrimSpace(res.Stdout) != "", nil
}

// Commit records the staged changes with the given message.
func Commit(ctx context.Context, cr exec.CommandRunner, dir, message string) error {
	res, err := cr.Run(ctx, "git", []string{"commit", "-m", message}, exec.RunOpts{Dir: dir})
	if err != nil {
		return fmt.Errorf("failed to run git commit: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("git commit failed: %s", strings.TrimSpace(res.Stderr))
	}
	return nil
}

// Push pushes branch to the named remote, setting the upstream.
func Push(ctx context.Context, cr exec.CommandRunner, dir, remote, branch string) error {
	res, err := cr.Run(ctx, "git", []string{"push", "-u", remote, branch}, exec.RunOpts{Dir: dir})
	if err != nil {
		return fmt.Errorf("failed to run git push: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("git push failed: %s", strings.TrimSpace(res.Stderr))
	}
	return nil
}

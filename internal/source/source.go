// Package source parses the source strings accepted by `quill import`:
// GitHub shorthand (owner/repo, owner/repo:path, owner/repo@ref), full URLs,
// and local paths.
package source

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Type represents the source type
type Type string

const (
	TypeGitHub Type = "github"
	TypeURL    Type = "url"
	TypeLocal  Type = "local"
)

// Source represents a parsed rules source
type Source struct {
	Type     Type
	Host     string // GitHub host (github.com or GHE hostname)
	Owner    string // GitHub owner
	Repo     string // GitHub repo
	Path     string // Subpath within repo or local path
	URL      string // Full URL for URL type
	Ref      string // Git ref (branch, tag, commit)
	Original string // Original input string
}

var (
	// Matches owner/repo or owner/repo:path
	githubShorthand = regexp.MustCompile(`^([a-zA-Z0-9_-]+)/([a-zA-Z0-9_.-]+)(?::(.+))?$`)

	// Matches owner/repo@ref or owner/repo:path@ref
	githubWithRef = regexp.MustCompile(`^([a-zA-Z0-9_-]+)/([a-zA-Z0-9_.-]+)(?::([^@]+))?@(.+)$`)
)

// Parse parses a source string into a Source struct
func Parse(input string) (*Source, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty source")
	}

	if isLocalPath(input) {
		absPath, err := filepath.Abs(input)
		if err != nil {
			return nil, fmt.Errorf("invalid local path: %w", err)
		}
		return &Source{
			Type:     TypeLocal,
			Path:     absPath,
			Original: input,
		}, nil
	}

	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return parseURL(input)
	}

	if matches := githubWithRef.FindStringSubmatch(input); matches != nil {
		return &Source{
			Type:     TypeGitHub,
			Host:     "github.com",
			Owner:    matches[1],
			Repo:     matches[2],
			Path:     matches[3],
			Ref:      matches[4],
			Original: input,
		}, nil
	}

	if matches := githubShorthand.FindStringSubmatch(input); matches != nil {
		return &Source{
			Type:     TypeGitHub,
			Host:     "github.com",
			Owner:    matches[1],
			Repo:     matches[2],
			Path:     matches[3],
			Ref:      "main",
			Original: input,
		}, nil
	}

	return nil, fmt.Errorf("unable to parse source: %s", input)
}

// isLocalPath reports whether input names something on the local filesystem.
// Explicit path prefixes always count; a bare name counts only if it exists.
func isLocalPath(input string) bool {
	if strings.HasPrefix(input, "/") || strings.HasPrefix(input, "./") ||
		strings.HasPrefix(input, "../") || strings.HasPrefix(input, "~") {
		return true
	}
	if _, err := os.Stat(input); err == nil {
		return true
	}
	return false
}

// parseURL parses a full URL into a Source
func parseURL(input string) (*Source, error) {
	u, err := url.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	// github.com/owner/repo[/tree|blob/ref[/path]]
	if u.Host == "github.com" {
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid GitHub URL: %s", input)
		}
		src := &Source{
			Type:     TypeGitHub,
			Host:     "github.com",
			Owner:    parts[0],
			Repo:     strings.TrimSuffix(parts[1], ".git"),
			Ref:      "main",
			URL:      input,
			Original: input,
		}
		if len(parts) >= 4 && (parts[2] == "blob" || parts[2] == "tree") {
			src.Ref = parts[3]
			if len(parts) > 4 {
				src.Path = strings.Join(parts[4:], "/")
			}
		}
		return src, nil
	}

	// raw.githubusercontent.com/owner/repo/ref/path
	if u.Host == "raw.githubusercontent.com" {
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) < 4 {
			return nil, fmt.Errorf("invalid raw GitHub URL: %s", input)
		}
		return &Source{
			Type:     TypeGitHub,
			Host:     "github.com",
			Owner:    parts[0],
			Repo:     parts[1],
			Ref:      parts[2],
			Path:     strings.Join(parts[3:], "/"),
			URL:      input,
			Original: input,
		}, nil
	}

	// Generic URL
	return &Source{
		Type:     TypeURL,
		URL:      input,
		Original: input,
	}, nil
}

// String returns a short display form.
func (s *Source) String() string {
	switch s.Type {
	case TypeGitHub:
		out := s.Owner + "/" + s.Repo
		if s.Path != "" {
			out += ":" + s.Path
		}
		if s.Ref != "" && s.Ref != "main" {
			out += "@" + s.Ref
		}
		return out
	case TypeLocal:
		return s.Path
	default:
		return s.URL
	}
}

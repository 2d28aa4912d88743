// Package fetch downloads rule documents from remote sources for
// `quill import`. GitHub sources go through the authenticated API client
// when a token is available; plain URLs use a direct HTTP fetch.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-github/v67/github"

	"github.com/harwell/quill/internal/ghclient"
	"github.com/harwell/quill/internal/source"
)

// RuleDoc is one fetched rule document.
type RuleDoc struct {
	Name    string
	Content []byte
}

// Client handles fetching rule documents from remote sources
type Client struct {
	http *http.Client
	gh   *ghclient.Client
}

// NewClient creates a new fetch client
func NewClient() *Client {
	return &Client{
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		gh: ghclient.New(),
	}
}

// FetchURL fetches content from a URL. GitHub URLs that fail a direct
// fetch (private repositories, GHE hosts) are retried through the API
// client.
func (c *Client) FetchURL(rawURL string) ([]byte, error) {
	resp, err := c.http.Get(rawURL)
	if err == nil {
		defer resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			return io.ReadAll(resp.Body)
		}
	}

	if strings.Contains(rawURL, "github.com") || strings.Contains(rawURL, "githubusercontent.com") {
		if content, ghErr := c.fetchWithGitHub(rawURL); ghErr == nil {
			return content, nil
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	return nil, fmt.Errorf("failed to fetch %s: status %d", rawURL, resp.StatusCode)
}

// fetchWithGitHub fetches file content through the API client
func (c *Client) fetchWithGitHub(rawURL string) ([]byte, error) {
	owner, repo, filePath, hostname, err := ghclient.ParseGitHubURL(rawURL)
	if err != nil {
		return nil, err
	}

	client := c.gh
	if hostname != "" {
		client = ghclient.NewForHost(hostname)
	}

	return client.GetContents(context.Background(), owner, repo, filePath, nil)
}

// FetchRuleDocs resolves a source to its Markdown rule documents.
// A directory source yields every .md file in it (non-recursive, matching
// how a rules library is laid out); a file source yields that one document.
func (c *Client) FetchRuleDocs(ctx context.Context, src *source.Source) ([]RuleDoc, error) {
	switch src.Type {
	case source.TypeLocal:
		return readLocalDocs(src.Path)
	case source.TypeGitHub:
		return c.fetchGitHubDocs(ctx, src)
	case source.TypeURL:
		return c.fetchURLDoc(src.URL)
	default:
		return nil, fmt.Errorf("unsupported source type: %s", src.Type)
	}
}

func readLocalDocs(localPath string) ([]RuleDoc, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return nil, fmt.Errorf("local source %s: %w", localPath, err)
	}

	if !info.IsDir() {
		content, err := os.ReadFile(localPath)
		if err != nil {
			return nil, err
		}
		return []RuleDoc{{Name: filepath.Base(localPath), Content: content}}, nil
	}

	entries, err := os.ReadDir(localPath)
	if err != nil {
		return nil, err
	}

	var docs []RuleDoc
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(localPath, e.Name()))
		if err != nil {
			return nil, err
		}
		docs = append(docs, RuleDoc{Name: e.Name(), Content: content})
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no .md rule documents found in %s", localPath)
	}
	return docs, nil
}

func (c *Client) fetchGitHubDocs(ctx context.Context, src *source.Source) ([]RuleDoc, error) {
	opts := &github.RepositoryContentGetOptions{Ref: src.Ref}

	// A path ending in .md is a single document.
	if strings.HasSuffix(src.Path, ".md") {
		content, err := c.gh.GetContents(ctx, src.Owner, src.Repo, src.Path, opts)
		if err != nil {
			return nil, err
		}
		return []RuleDoc{{Name: path.Base(src.Path), Content: content}}, nil
	}

	entries, err := c.gh.ListContents(ctx, src.Owner, src.Repo, src.Path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", src.String(), err)
	}

	var docs []RuleDoc
	for _, e := range entries {
		if e.GetType() != "file" || !strings.HasSuffix(e.GetName(), ".md") {
			continue
		}
		content, err := c.gh.GetContents(ctx, src.Owner, src.Repo, e.GetPath(), opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", e.GetPath(), err)
		}
		docs = append(docs, RuleDoc{Name: e.GetName(), Content: content})
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no .md rule documents found at %s", src.String())
	}
	return docs, nil
}

func (c *Client) fetchURLDoc(rawURL string) ([]RuleDoc, error) {
	content, err := c.FetchURL(rawURL)
	if err != nil {
		return nil, err
	}

	name := "imported.md"
	if u, err := url.Parse(rawURL); err == nil {
		if base := path.Base(u.Path); base != "" && base != "/" && base != "." {
			name = base
		}
	}
	if !strings.HasSuffix(name, ".md") {
		name += ".md"
	}
	return []RuleDoc{{Name: name, Content: content}}, nil
}

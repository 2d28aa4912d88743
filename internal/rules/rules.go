// Package rules manages the library of rule documents: Markdown files
// holding coding conventions for AI assistants. A library lives either in a
// directory on disk or in the embedded starter set shipped with the binary.
package rules

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RuleFile is a single rule document, identified by its filename.
type RuleFile struct {
	Name string
	Size int64
}

// Library is a source of rule documents.
type Library struct {
	dir  string // disk location; empty means the embedded starter set
	fsys fs.FS
}

// AtDir returns a library backed by a directory on disk.
func AtDir(dir string) Library {
	return Library{dir: dir, fsys: os.DirFS(dir)}
}

// Embedded returns the starter library compiled into the binary.
func Embedded() Library {
	sub, err := fs.Sub(starterFS, "starter")
	if err != nil {
		// The starter directory is part of the build; this cannot fail.
		panic(err)
	}
	return Library{fsys: sub}
}

// IsEmbedded reports whether the library is the embedded starter set.
func (l Library) IsEmbedded() bool {
	return l.dir == ""
}

// Source describes where the library lives, for display.
func (l Library) Source() string {
	if l.IsEmbedded() {
		return "built-in starter rules"
	}
	return l.dir
}

// isRuleDoc reports whether name is a rule document. Template placeholders
// (*.tmpl) and non-Markdown files are not rule documents.
func isRuleDoc(name string) bool {
	if strings.HasSuffix(name, ".tmpl") {
		return false
	}
	return strings.HasSuffix(name, ".md")
}

// List enumerates the rule documents in the library, sorted by name.
func (l Library) List() ([]RuleFile, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read rules library %s: %w", l.Source(), err)
	}

	var files []RuleFile
	for _, e := range entries {
		if e.IsDir() || !isRuleDoc(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		files = append(files, RuleFile{Name: e.Name(), Size: info.Size()})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Read returns the content of the named rule document.
func (l Library) Read(name string) ([]byte, error) {
	return fs.ReadFile(l.fsys, name)
}

// Action classifies what SyncTo did with one rule document.
type Action string

const (
	ActionCopied    Action = "copied"    // did not exist at the destination
	ActionUpdated   Action = "updated"   // existed with different content
	ActionUnchanged Action = "unchanged" // existed with identical content
)

// FileResult is the per-document outcome of a sync.
type FileResult struct {
	Name   string
	Action Action
	Err    error
}

// Stats accumulates sync outcomes.
type Stats struct {
	Copied    int
	Updated   int
	Unchanged int
	Errors    int
}

// Add folds one FileResult into the stats.
func (s *Stats) Add(r FileResult) {
	switch {
	case r.Err != nil:
		s.Errors++
	case r.Action == ActionCopied:
		s.Copied++
	case r.Action == ActionUpdated:
		s.Updated++
	default:
		s.Unchanged++
	}
}

// Total returns the number of documents accounted for.
func (s Stats) Total() int {
	return s.Copied + s.Updated + s.Unchanged + s.Errors
}

// SyncTo copies every rule document into dstDir, overwriting existing copies.
// Identical files are left untouched and reported as unchanged. With dryRun
// set, nothing is written and results report what would happen.
func (l Library) SyncTo(dstDir string, dryRun bool) ([]FileResult, Stats, error) {
	files, err := l.List()
	if err != nil {
		return nil, Stats{}, err
	}

	var results []FileResult
	var stats Stats

	for _, f := range files {
		res := l.syncOne(f.Name, dstDir, dryRun)
		stats.Add(res)
		results = append(results, res)
	}

	return results, stats, nil
}

func (l Library) syncOne(name, dstDir string, dryRun bool) FileResult {
	content, err := l.Read(name)
	if err != nil {
		return FileResult{Name: name, Err: err}
	}

	dst := filepath.Join(dstDir, name)
	action := ActionCopied

	if existing, err := os.ReadFile(dst); err == nil {
		if hashContent(existing) == hashContent(content) {
			return FileResult{Name: name, Action: ActionUnchanged}
		}
		action = ActionUpdated
	}

	if !dryRun {
		if err := os.WriteFile(dst, content, 0644); err != nil {
			return FileResult{Name: name, Err: err}
		}
	}

	return FileResult{Name: name, Action: action}
}

func hashContent(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])
}

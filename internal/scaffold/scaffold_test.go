package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRender_Todo(t *testing.T) {
	data := TemplateData{ProjectName: "knowledge", Date: "2026-08-31"}

	content, err := Render(TodoFile, data)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	got := string(content)
	if !strings.Contains(got, "# TODO — knowledge") {
		t.Errorf("rendered TODO missing project heading:\n%s", got)
	}
	for _, section := range []string{"## Current", "## Backlog", "## Completed", "## Decisions"} {
		if !strings.Contains(got, section) {
			t.Errorf("rendered TODO missing section %q", section)
		}
	}
	if !strings.Contains(got, "2026-08-31") {
		t.Error("rendered TODO missing date")
	}
}

func TestRender_Project(t *testing.T) {
	data := TemplateData{ProjectName: "knowledge", Date: "2026-08-31"}

	content, err := Render(ProjectFile, data)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(content), "# knowledge") {
		t.Errorf("rendered PROJECT missing title:\n%s", content)
	}
}

func TestEnsureFile_CreatesWhenAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TODO.md")

	created, err := EnsureFile(path, []byte("template content"))
	if err != nil {
		t.Fatalf("EnsureFile() error = %v", err)
	}
	if !created {
		t.Error("created = false, want true")
	}

	got, _ := os.ReadFile(path)
	if string(got) != "template content" {
		t.Errorf("content = %q", got)
	}
}

func TestEnsureFile_PreservesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TODO.md")
	if err := os.WriteFile(path, []byte("X"), 0644); err != nil {
		t.Fatal(err)
	}

	created, err := EnsureFile(path, []byte("template content"))
	if err != nil {
		t.Fatalf("EnsureFile() error = %v", err)
	}
	if created {
		t.Error("created = true, want false")
	}

	got, _ := os.ReadFile(path)
	if string(got) != "X" {
		t.Errorf("content = %q, want untouched %q", got, "X")
	}
}

func TestEnsureGitignore(t *testing.T) {
	tests := []struct {
		name       string
		existing   string // "" means no file
		hasFile    bool
		want       GitignoreResult
		wantOutput string
	}{
		{
			name:       "no file",
			hasFile:    false,
			want:       GitignoreCreated,
			wantOutput: ".claude/\n",
		},
		{
			name:       "entry missing",
			existing:   "node_modules/\ndist/\n",
			hasFile:    true,
			want:       GitignoreUpdated,
			wantOutput: "node_modules/\ndist/\n.claude/\n",
		},
		{
			name:       "entry missing no trailing newline",
			existing:   "node_modules/",
			hasFile:    true,
			want:       GitignoreUpdated,
			wantOutput: "node_modules/\n.claude/\n",
		},
		{
			name:       "entry present",
			existing:   "node_modules/\n.claude/\n",
			hasFile:    true,
			want:       GitignoreUnchanged,
			wantOutput: "node_modules/\n.claude/\n",
		},
		{
			name:       "entry present without slash",
			existing:   ".claude\n",
			hasFile:    true,
			want:       GitignoreUnchanged,
			wantOutput: ".claude\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".gitignore")
			if tt.hasFile {
				if err := os.WriteFile(path, []byte(tt.existing), 0644); err != nil {
					t.Fatal(err)
				}
			}

			got, err := EnsureGitignore(path)
			if err != nil {
				t.Fatalf("EnsureGitignore() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("result = %v, want %v", got, tt.want)
			}

			content, _ := os.ReadFile(path)
			if string(content) != tt.wantOutput {
				t.Errorf("content = %q, want %q", content, tt.wantOutput)
			}
		})
	}
}

func TestEnsureGitignore_IdempotentAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitignore")
	if err := os.WriteFile(path, []byte("dist/\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := EnsureGitignore(path); err != nil {
		t.Fatal(err)
	}
	res, err := EnsureGitignore(path)
	if err != nil {
		t.Fatal(err)
	}
	if res != GitignoreUnchanged {
		t.Errorf("second run = %v, want unchanged", res)
	}

	content, _ := os.ReadFile(path)
	if strings.Count(string(content), ".claude/") != 1 {
		t.Errorf("duplicate entries in %q", content)
	}
}

package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harwell/quill/internal/exec"
	"github.com/harwell/quill/internal/ghclient"
	"github.com/harwell/quill/internal/rules"
	"github.com/harwell/quill/internal/scaffold"
)

type stubHost struct {
	authed   bool
	repo     *ghclient.Repo
	err      error
	requests []string // project names EnsureRepo was called with
}

func (s *stubHost) IsAuthenticated() bool { return s.authed }

func (s *stubHost) EnsureRepo(_ context.Context, name, _ string, _ bool) (*ghclient.Repo, error) {
	s.requests = append(s.requests, name)
	if s.err != nil {
		return nil, s.err
	}
	if s.repo != nil {
		return s.repo, nil
	}
	return &ghclient.Repo{
		FullName: "someone/" + name,
		CloneURL: "https://github.com/someone/" + name + ".git",
		HTMLURL:  "https://github.com/someone/" + name,
	}, nil
}

func testLibrary(t *testing.T) rules.Library {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"universal.md": "# Universal\n",
		"python.md":    "# Python\n",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return rules.AtDir(dir)
}

func newRunner(t *testing.T, opts Options) *Runner {
	t.Helper()
	r, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func TestRun_EmptyTarget(t *testing.T) {
	target := t.TempDir()
	stub := exec.NewStubRunner()
	stub.Responses["git diff"] = exec.CmdResult{ExitCode: 1} // staged changes
	host := &stubHost{authed: true}
	var out bytes.Buffer

	r := newRunner(t, Options{
		Target:  target,
		Library: testLibrary(t),
		Runner:  stub,
		Host:    host,
		Branch:  "main",
		Out:     &out,
	})

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	configDir := filepath.Join(target, scaffold.ConfigFolder)

	// Rules copied
	if report.RuleStats.Copied != 2 {
		t.Errorf("RuleStats = %+v, want 2 copied", report.RuleStats)
	}
	for _, name := range []string{"universal.md", "python.md"} {
		if _, err := os.Stat(filepath.Join(configDir, name)); err != nil {
			t.Errorf("rule %s not copied: %v", name, err)
		}
	}

	// Tracking files created
	if !report.TodoCreated || !report.ProjectCreated {
		t.Errorf("TodoCreated = %v, ProjectCreated = %v, want both true", report.TodoCreated, report.ProjectCreated)
	}
	todo, err := os.ReadFile(filepath.Join(configDir, scaffold.TodoFile))
	if err != nil {
		t.Fatalf("TODO.md missing: %v", err)
	}
	if !strings.Contains(string(todo), filepath.Base(target)) {
		t.Error("TODO.md not parameterized by project name")
	}

	// Ignore entry
	if report.Gitignore != scaffold.GitignoreCreated {
		t.Errorf("Gitignore = %v, want created", report.Gitignore)
	}
	ignore, _ := os.ReadFile(filepath.Join(target, ".gitignore"))
	if string(ignore) != ".claude/\n" {
		t.Errorf(".gitignore = %q", ignore)
	}

	// Local repository initialized
	if !report.GitInitialized {
		t.Error("GitInitialized = false")
	}

	// Remote created and pushed
	if len(host.requests) != 1 || host.requests[0] != filepath.Base(target) {
		t.Errorf("EnsureRepo calls = %v", host.requests)
	}
	if !report.Remote.Pushed {
		t.Errorf("Remote = %+v, want pushed", report.Remote)
	}

	lines := stub.CommandLines()
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"git init", "git remote add origin", "git add -A", "git commit", "git push -u origin main"} {
		if !strings.Contains(joined, want) {
			t.Errorf("command %q not run; got:\n%s", want, joined)
		}
	}
}

func TestRun_Idempotent(t *testing.T) {
	target := t.TempDir()
	lib := testLibrary(t)

	// Simulate an already-initialized target.
	configDir := filepath.Join(target, scaffold.ConfigFolder)
	if err := os.MkdirAll(filepath.Join(target, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, scaffold.TodoFile), []byte("X"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(target, ".gitignore"), []byte("dist/\n.claude/\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stub := exec.NewStubRunner()
	r := newRunner(t, Options{
		Target:  target,
		Library: lib,
		Runner:  stub,
		Host:    &stubHost{authed: false},
		Out:     &bytes.Buffer{},
	})

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Existing TODO.md untouched
	if report.TodoCreated {
		t.Error("TodoCreated = true for pre-existing TODO.md")
	}
	todo, _ := os.ReadFile(filepath.Join(configDir, scaffold.TodoFile))
	if string(todo) != "X" {
		t.Errorf("TODO.md = %q, want preserved %q", todo, "X")
	}

	// No duplicate ignore entry
	ignore, _ := os.ReadFile(filepath.Join(target, ".gitignore"))
	if strings.Count(string(ignore), ".claude/") != 1 {
		t.Errorf(".gitignore = %q, want single entry", ignore)
	}
	if report.Gitignore != scaffold.GitignoreUnchanged {
		t.Errorf("Gitignore = %v, want unchanged", report.Gitignore)
	}

	// Existing repository left alone
	if report.GitInitialized {
		t.Error("GitInitialized = true for existing repository")
	}
	for _, line := range stub.CommandLines() {
		if strings.HasPrefix(line, "git init") {
			t.Errorf("git init run against existing repository")
		}
	}
}

func TestNew_InvalidTarget(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := New(Options{Target: missing, Library: rules.Embedded()})
	if !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("New() error = %v, want ErrInvalidTarget", err)
	}

	// Fails before any mutation: the path still does not exist.
	if _, statErr := os.Stat(missing); !os.IsNotExist(statErr) {
		t.Error("invalid target was created")
	}
}

func TestNew_TargetIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := New(Options{Target: file, Library: rules.Embedded()})
	if !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("New() error = %v, want ErrInvalidTarget", err)
	}
}

func TestNew_DefaultProjectName(t *testing.T) {
	target := t.TempDir()
	r := newRunner(t, Options{Target: target, Library: rules.Embedded()})
	if r.opts.ProjectName != filepath.Base(target) {
		t.Errorf("ProjectName = %q, want %q", r.opts.ProjectName, filepath.Base(target))
	}
}

func TestRun_UnauthenticatedRemoteDegrades(t *testing.T) {
	target := t.TempDir()
	stub := exec.NewStubRunner()
	host := &stubHost{authed: false}
	var out bytes.Buffer

	r := newRunner(t, Options{
		Target:  target,
		Library: testLibrary(t),
		Runner:  stub,
		Host:    host,
		Out:     &out,
	})

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v, want remote skip to be non-fatal", err)
	}

	if !report.Remote.Skipped || report.Remote.Reason != "not authenticated" {
		t.Errorf("Remote = %+v, want skipped/not authenticated", report.Remote)
	}
	if len(host.requests) != 0 {
		t.Errorf("EnsureRepo called despite missing auth: %v", host.requests)
	}

	// Local guarantees still hold.
	if !report.GitInitialized {
		t.Error("local repository not initialized")
	}
	if _, err := os.Stat(filepath.Join(target, scaffold.ConfigFolder, "universal.md")); err != nil {
		t.Error("rules not copied")
	}
	if !strings.Contains(out.String(), "skipping remote setup") {
		t.Errorf("output missing skip warning:\n%s", out.String())
	}
}

func TestRun_RemoteCreateFailureIsWarning(t *testing.T) {
	target := t.TempDir()
	stub := exec.NewStubRunner()
	host := &stubHost{authed: true, err: errors.New("boom")}

	r := newRunner(t, Options{
		Target:  target,
		Library: testLibrary(t),
		Runner:  stub,
		Host:    host,
		Out:     &bytes.Buffer{},
	})

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v, want remote failure to be non-fatal", err)
	}
	if report.Remote.Pushed {
		t.Error("Pushed = true after create failure")
	}
	if report.Remote.Reason != "boom" {
		t.Errorf("Reason = %q, want boom", report.Remote.Reason)
	}
}

func TestRun_ExistingOriginSkipsCreation(t *testing.T) {
	target := t.TempDir()
	stub := exec.NewStubRunner()
	stub.Responses["git config"] = exec.CmdResult{Stdout: "git@github.com:someone/proj.git\n"}
	host := &stubHost{authed: true}

	r := newRunner(t, Options{
		Target:  target,
		Library: testLibrary(t),
		Runner:  stub,
		Host:    host,
		Out:     &bytes.Buffer{},
	})

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(host.requests) != 0 {
		t.Errorf("EnsureRepo called despite existing origin: %v", host.requests)
	}
	if !report.Remote.Attempted {
		t.Error("Attempted = false")
	}
	// Clean index: stub git diff exits 0, so no commit happens.
	joined := strings.Join(stub.CommandLines(), "\n")
	if strings.Contains(joined, "git commit") {
		t.Errorf("commit run with clean index:\n%s", joined)
	}
}

func TestRun_AttachesExistingRemoteRepo(t *testing.T) {
	target := t.TempDir()
	stub := exec.NewStubRunner()
	host := &stubHost{
		authed: true,
		repo: &ghclient.Repo{
			FullName: "someone/proj",
			CloneURL: "https://github.com/someone/proj.git",
			HTMLURL:  "https://github.com/someone/proj",
			Existed:  true,
		},
	}
	var out bytes.Buffer

	r := newRunner(t, Options{
		Target:  target,
		Library: testLibrary(t),
		Runner:  stub,
		Host:    host,
		Out:     &out,
	})

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.Remote.Existed {
		t.Error("Existed = false, want attach to existing repository")
	}
	if !strings.Contains(out.String(), "already exists, attaching") {
		t.Errorf("output missing attach note:\n%s", out.String())
	}
}

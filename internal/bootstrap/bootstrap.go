// Package bootstrap runs the project setup sequence: configuration folder,
// rule documents, tracking files, ignore entry, local repository, and a
// best-effort remote. Every step is independently idempotent, so re-running
// against an initialized project only fills in what is missing.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/harwell/quill/internal/exec"
	"github.com/harwell/quill/internal/ghclient"
	"github.com/harwell/quill/internal/git"
	"github.com/harwell/quill/internal/rules"
	"github.com/harwell/quill/internal/scaffold"
	"github.com/harwell/quill/internal/ui"
)

// ErrInvalidTarget means the target directory does not exist or cannot be
// resolved. Nothing is mutated when this is returned.
var ErrInvalidTarget = errors.New("invalid target directory")

// RemoteHost is the slice of the hosting API the remote step needs.
type RemoteHost interface {
	IsAuthenticated() bool
	EnsureRepo(ctx context.Context, name, description string, private bool) (*ghclient.Repo, error)
}

// Options configures a bootstrap run.
type Options struct {
	Target      string // required; must exist
	ProjectName string // defaults to the target's base name
	Library     rules.Library
	Runner      exec.CommandRunner
	Host        RemoteHost // nil skips the remote step entirely
	Branch      string     // initial/default branch name
	Private     bool       // visibility of a created remote repository
	Out         io.Writer  // step log; defaults to os.Stdout
}

// RemoteStatus reports what the best-effort remote step did.
type RemoteStatus struct {
	Attempted bool
	Skipped   bool
	Reason    string // why it was skipped or degraded
	RepoURL   string // HTML URL when a repository was created or attached
	Existed   bool   // repository already existed on the host
	Pushed    bool
}

// Report summarizes a completed run.
type Report struct {
	Target         string
	ProjectName    string
	RuleStats      rules.Stats
	TodoCreated    bool
	ProjectCreated bool
	Gitignore      scaffold.GitignoreResult
	GitInitialized bool
	Remote         RemoteStatus
}

// Runner executes the bootstrap sequence against a validated target.
type Runner struct {
	opts Options
}

// New validates the options and returns a Runner. The target is resolved to
// an absolute path and must already exist; this is the only fatal
// precondition, checked before any mutation.
func New(opts Options) (*Runner, error) {
	if opts.Target == "" {
		return nil, fmt.Errorf("%w: no target given", ErrInvalidTarget)
	}

	abs, err := filepath.Abs(opts.Target)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTarget, opts.Target, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidTarget, abs)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidTarget, abs)
	}

	opts.Target = abs
	if opts.ProjectName == "" {
		opts.ProjectName = filepath.Base(abs)
	}
	if opts.Runner == nil {
		opts.Runner = exec.NewRealRunner()
	}
	if opts.Branch == "" {
		opts.Branch = "main"
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	return &Runner{opts: opts}, nil
}

func (r *Runner) step(n int, message string) {
	fmt.Fprintln(r.opts.Out, ui.StepLine(n, message))
}

func (r *Runner) note(message string) {
	fmt.Fprintln(r.opts.Out, ui.Muted.Render("      "+message))
}

func (r *Runner) warn(message string) {
	fmt.Fprintln(r.opts.Out, ui.WarningLine(message))
}

// Run executes the sequence. Steps 1-6 are local guarantees; step 7 is
// best-effort and degrades to a warning instead of failing the run.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		Target:      r.opts.Target,
		ProjectName: r.opts.ProjectName,
	}

	configDir := filepath.Join(r.opts.Target, scaffold.ConfigFolder)

	// 1. Configuration folder
	r.step(1, "Ensuring "+scaffold.ConfigFolder+"/ exists")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", configDir, err)
	}

	// 2. Rule documents
	r.step(2, "Syncing rule documents from "+r.opts.Library.Source())
	results, stats, err := r.opts.Library.SyncTo(configDir, false)
	if err != nil {
		return nil, err
	}
	report.RuleStats = stats
	for _, res := range results {
		if res.Err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", res.Name, res.Err)
		}
	}
	r.note(fmt.Sprintf("%d copied, %d updated, %d unchanged", stats.Copied, stats.Updated, stats.Unchanged))

	// 3. Progress log
	r.step(3, "Ensuring "+scaffold.TodoFile+" exists")
	data := scaffold.NewTemplateData(r.opts.ProjectName)
	report.TodoCreated, err = r.ensureTemplate(configDir, scaffold.TodoFile, data)
	if err != nil {
		return nil, err
	}
	r.noteCreated(scaffold.TodoFile, report.TodoCreated)

	// 4. Project doc
	r.step(4, "Ensuring "+scaffold.ProjectFile+" exists")
	report.ProjectCreated, err = r.ensureTemplate(configDir, scaffold.ProjectFile, data)
	if err != nil {
		return nil, err
	}
	r.noteCreated(scaffold.ProjectFile, report.ProjectCreated)

	// 5. Ignore entry
	r.step(5, "Ensuring .gitignore excludes "+scaffold.IgnoreEntry)
	report.Gitignore, err = scaffold.EnsureGitignore(filepath.Join(r.opts.Target, ".gitignore"))
	if err != nil {
		return nil, err
	}
	r.note(string(report.Gitignore))

	// 6. Local repository
	r.step(6, "Ensuring a git repository exists")
	if git.IsRepo(r.opts.Target) {
		r.note("repository already initialized")
	} else {
		if err := git.Init(ctx, r.opts.Runner, r.opts.Target, r.opts.Branch); err != nil {
			return nil, err
		}
		report.GitInitialized = true
		r.note("initialized with branch " + r.opts.Branch)
	}

	// 7. Remote, best-effort
	r.step(7, "Setting up a remote repository (best effort)")
	report.Remote = r.runRemote(ctx)

	return report, nil
}

func (r *Runner) ensureTemplate(configDir, name string, data scaffold.TemplateData) (bool, error) {
	content, err := scaffold.Render(name, data)
	if err != nil {
		return false, err
	}
	created, err := scaffold.EnsureFile(filepath.Join(configDir, name), content)
	if err != nil {
		return false, fmt.Errorf("failed to ensure %s: %w", name, err)
	}
	return created, nil
}

func (r *Runner) noteCreated(name string, created bool) {
	if created {
		r.note("created " + name)
	} else {
		r.note(name + " already present, left untouched")
	}
}

// runRemote never fails the run: every error path turns into a skipped or
// degraded status with a warning on the step log.
func (r *Runner) runRemote(ctx context.Context) RemoteStatus {
	if r.opts.Host == nil {
		r.note("remote step disabled")
		return RemoteStatus{Skipped: true, Reason: "disabled"}
	}

	if !r.opts.Host.IsAuthenticated() {
		r.warn("not authenticated with GitHub; skipping remote setup")
		r.note("set GITHUB_TOKEN or run `gh auth login`, then re-run quill inscribe")
		return RemoteStatus{Skipped: true, Reason: "not authenticated"}
	}

	status := RemoteStatus{Attempted: true}

	if !git.HasRemote(ctx, r.opts.Runner, r.opts.Target, "origin") {
		repo, err := r.opts.Host.EnsureRepo(ctx, r.opts.ProjectName, "Bootstrapped with quill", r.opts.Private)
		if err != nil {
			r.warn("could not create remote repository: " + err.Error())
			status.Reason = err.Error()
			return status
		}
		status.RepoURL = repo.HTMLURL
		status.Existed = repo.Existed
		if repo.Existed {
			r.note("repository " + repo.FullName + " already exists, attaching to it")
		} else {
			r.note("created " + repo.FullName)
		}

		if err := git.AddRemote(ctx, r.opts.Runner, r.opts.Target, "origin", repo.CloneURL); err != nil {
			r.warn(err.Error())
			status.Reason = err.Error()
			return status
		}
	} else {
		r.note("origin remote already registered")
	}

	if err := git.AddAll(ctx, r.opts.Runner, r.opts.Target); err != nil {
		r.warn(err.Error())
		status.Reason = err.Error()
		return status
	}

	staged, err := git.HasStagedChanges(ctx, r.opts.Runner, r.opts.Target)
	if err != nil {
		r.warn(err.Error())
		status.Reason = err.Error()
		return status
	}
	if !staged {
		r.note("nothing to commit")
		return status
	}

	if err := git.Commit(ctx, r.opts.Runner, r.opts.Target, "Initial project setup"); err != nil {
		r.warn(err.Error())
		status.Reason = err.Error()
		return status
	}

	// A pre-existing repository may be on a different branch than the
	// configured default; push whatever is checked out.
	branch := r.opts.Branch
	if cur, err := git.CurrentBranch(ctx, r.opts.Runner, r.opts.Target); err == nil && cur != "" && cur != "HEAD" {
		branch = cur
	}
	if err := git.Push(ctx, r.opts.Runner, r.opts.Target, "origin", branch); err != nil {
		r.warn("push failed: " + err.Error())
		status.Reason = err.Error()
		return status
	}

	status.Pushed = true
	r.note("pushed to origin/" + branch)
	return status
}

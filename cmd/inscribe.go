package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harwell/quill/internal/bootstrap"
	"github.com/harwell/quill/internal/ghclient"
	"github.com/harwell/quill/internal/ui"
)

var inscribeCmd = &cobra.Command{
	Use:     "inscribe [target-directory] [project-name]",
	Aliases: []string{"setup", "bootstrap"},
	Short:   "Set up a project with rules, scaffolding, and a repository",
	Long: `Bootstrap a project for AI-assisted development.

Runs an idempotent checklist against the target directory:
  1. Ensure the .claude/ configuration folder exists
  2. Copy every rule document from the library into it
  3. Create .claude/TODO.md from a template (if absent)
  4. Create .claude/PROJECT.md from a template (if absent)
  5. Ensure .gitignore excludes .claude/
  6. Initialize a git repository (if absent)
  7. Create a GitHub repository and push (best effort)

The target defaults to the current directory; the project name defaults
to the target's base name. Re-running is safe: existing files, history,
and ignore entries are preserved.

Examples:
  quill inscribe
  quill inscribe ../knowledge
  quill inscribe ../knowledge knowledge-base --private
  quill setup . --no-remote`,
	Args: cobra.MaximumNArgs(2),
	Run:  runInscribe,
}

var (
	inscribeNoRemote bool
	inscribePrivate  bool
	inscribeBranch   string
)

func init() {
	inscribeCmd.Flags().BoolVar(&inscribeNoRemote, "no-remote", false, "Skip the GitHub repository step")
	inscribeCmd.Flags().BoolVar(&inscribePrivate, "private", false, "Create the GitHub repository as private")
	inscribeCmd.Flags().StringVar(&inscribeBranch, "branch", "", "Initial branch name (default from config)")
}

func runInscribe(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	projectName := ""
	if len(args) > 1 {
		projectName = args[1]
	}

	branch := inscribeBranch
	if branch == "" {
		branch = cfg.DefaultBranch
	}
	private := inscribePrivate || cfg.Private

	opts := bootstrap.Options{
		Target:      target,
		ProjectName: projectName,
		Library:     resolveLibrary(cfg),
		Branch:      branch,
		Private:     private,
		Out:         os.Stdout,
	}
	if !inscribeNoRemote {
		opts.Host = ghclient.New()
	}

	runner, err := bootstrap.New(opts)
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Println()
	fmt.Println(ui.SectionHeader("Inscribing Project", 56))
	fmt.Println()

	report, err := runner.Run(context.Background())
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Println()
	fmt.Println(ui.Divider(50))
	fmt.Println()
	fmt.Println(ui.SuccessLine(fmt.Sprintf("%s is ready", report.ProjectName)))
	fmt.Println(ui.Muted.Render(fmt.Sprintf("  %d rule documents in %s", report.RuleStats.Total(), report.Target)))

	switch {
	case report.Remote.Pushed:
		fmt.Println(ui.Muted.Render("  Remote: " + report.Remote.RepoURL))
	case report.Remote.Skipped && report.Remote.Reason == "not authenticated":
		fmt.Println(ui.Muted.Render("  Local setup is complete; re-run after `gh auth login` to add a remote."))
	}

	fmt.Println(ui.PageFooter())
}

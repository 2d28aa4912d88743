package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harwell/quill/internal/rules"
	"github.com/harwell/quill/internal/scaffold"
	"github.com/harwell/quill/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync [target-directory]",
	Short: "Re-sync rule documents into project .claude/ folders",
	Long: `Sync the rules library into a project's .claude/ folder.

With --all, scans the given directory (default: current directory) for
projects that already have a .claude/ folder and syncs every one of them.
Unchanged documents are skipped; changed ones are overwritten from the
library.

Examples:
  quill sync                    # Sync the current project
  quill sync ../knowledge       # Sync a specific project
  quill sync --all ..           # Sync every sibling project
  quill sync --all .. --dry-run # Show what would change`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSync,
}

var (
	syncAll     bool
	syncDry     bool
	syncVerbose bool
)

func init() {
	syncCmd.Flags().BoolVar(&syncAll, "all", false, "Sync every project with a .claude/ folder under the target")
	syncCmd.Flags().BoolVar(&syncDry, "dry-run", false, "Show what would be synced without copying")
	syncCmd.Flags().BoolVarP(&syncVerbose, "verbose", "v", false, "Show per-file detail")
}

func runSync(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	lib := resolveLibrary(cfg)

	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		exitWithError(err.Error())
	}

	var projects []string
	if syncAll {
		projects, err = findProjects(target)
		if err != nil {
			exitWithError(err.Error())
		}
		if len(projects) == 0 {
			fmt.Println()
			fmt.Println(ui.Muted.Render("  No projects with a " + scaffold.ConfigFolder + "/ folder found under " + target))
			fmt.Println()
			return
		}
	} else {
		projects = []string{target}
	}

	fmt.Println()
	fmt.Println(ui.SectionHeader("Syncing Rules", 56))
	fmt.Println()
	fmt.Println(ui.Muted.Render("  Library: " + lib.Source()))
	if syncDry {
		fmt.Println(ui.Warning.Render("  Dry run: no files will be copied"))
	}
	fmt.Println()

	var total rules.Stats
	for _, project := range projects {
		configDir := filepath.Join(project, scaffold.ConfigFolder)
		if !syncDry {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				exitWithError(fmt.Sprintf("failed to create %s: %v", configDir, err))
			}
		}

		results, stats, err := lib.SyncTo(configDir, syncDry)
		if err != nil {
			exitWithError(err.Error())
		}

		fmt.Printf("  %s %s\n", ui.Highlight.Render(filepath.Base(project)), ui.Dim.Render(summarize(stats)))
		if syncVerbose {
			for _, r := range results {
				if r.Err != nil {
					fmt.Println(ui.ErrorLine(fmt.Sprintf("  %s: %v", r.Name, r.Err)))
					continue
				}
				fmt.Println(ui.Muted.Render(fmt.Sprintf("    %s (%s)", r.Name, r.Action)))
			}
		}

		total.Copied += stats.Copied
		total.Updated += stats.Updated
		total.Unchanged += stats.Unchanged
		total.Errors += stats.Errors
	}

	fmt.Println()
	fmt.Println(ui.Divider(50))
	fmt.Println()
	if syncDry {
		fmt.Println(ui.InfoLine("Dry run complete: " + summarize(total)))
	} else if total.Errors > 0 {
		fmt.Println(ui.WarningLine(fmt.Sprintf("Synced %d project(s) with %d error(s)", len(projects), total.Errors)))
	} else {
		fmt.Println(ui.SuccessLine(fmt.Sprintf("Synced %d project(s): %s", len(projects), summarize(total))))
	}
	fmt.Println()
}

// findProjects returns the immediate subdirectories of parent that already
// have a configuration folder, sorted by name. Hidden directories are
// skipped.
func findProjects(parent string) ([]string, error) {
	entries, err := os.ReadDir(parent)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", parent, err)
	}

	var projects []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		candidate := filepath.Join(parent, e.Name())
		if info, err := os.Stat(filepath.Join(candidate, scaffold.ConfigFolder)); err == nil && info.IsDir() {
			projects = append(projects, candidate)
		}
	}

	sort.Strings(projects)
	return projects, nil
}

func summarize(s rules.Stats) string {
	parts := []string{}
	if s.Copied > 0 {
		parts = append(parts, fmt.Sprintf("%d copied", s.Copied))
	}
	if s.Updated > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", s.Updated))
	}
	if s.Unchanged > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", s.Unchanged))
	}
	if s.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", s.Errors))
	}
	if len(parts) == 0 {
		return "no rule documents"
	}
	return strings.Join(parts, ", ")
}

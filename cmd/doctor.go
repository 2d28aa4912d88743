package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harwell/quill/internal/detect"
	"github.com/harwell/quill/internal/ghclient"
	"github.com/harwell/quill/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that quill's environment is ready",
	Long: `Verify the tools and credentials quill relies on.

Checks that git is installed, that the rules library resolves, and
whether a GitHub token is available for the remote bootstrap step.`,
	Run: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	lib := resolveLibrary(cfg)

	fmt.Println()
	fmt.Println(ui.SectionHeader("Diagnosing", 56))
	fmt.Println()

	// Required tooling
	results := detect.VerifyAll([]detect.Requirement{
		{Type: detect.TypeCommand, Value: "git", Hint: "Install git; quill cannot initialize repositories without it"},
	})
	for _, r := range results {
		if r.Satisfied {
			fmt.Println(ui.SuccessLine(r.Requirement.Value + " found"))
		} else {
			fmt.Println(ui.ErrorLine(r.Message))
		}
	}

	// Rules library
	files, err := lib.List()
	if err != nil {
		fmt.Println(ui.ErrorLine(fmt.Sprintf("rules library: %v", err)))
	} else {
		fmt.Println(ui.SuccessLine(fmt.Sprintf("rules library: %s (%d documents)", lib.Source(), len(files))))
	}

	// GitHub authentication (optional, degrades the remote step only)
	if ghclient.New().IsAuthenticated() {
		fmt.Println(ui.SuccessLine("GitHub token found"))
	} else {
		fmt.Println(ui.WarningLine("No GitHub token; `quill inscribe` will skip the remote step"))
		fmt.Println(ui.Muted.Render("    Set GITHUB_TOKEN or run `gh auth login`"))
	}

	if detect.HasUnsatisfied(results) {
		fmt.Println()
		fmt.Println(ui.WarningLine("Some requirements are missing"))
	}
	fmt.Println(ui.PageFooter())
}

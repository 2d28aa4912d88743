package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harwell/quill/internal/ui"
)

var rulesCmd = &cobra.Command{
	Use:     "rules",
	Aliases: []string{"list", "ls"},
	Short:   "List the rule documents in the library",
	Run:     runRules,
}

func runRules(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	lib := resolveLibrary(cfg)

	files, err := lib.List()
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Println()
	fmt.Println(ui.SectionHeader("Rules Library", 56))
	fmt.Println()
	fmt.Println(ui.Muted.Render("  Source: " + lib.Source()))
	fmt.Println()

	if len(files) == 0 {
		fmt.Println(ui.Muted.Render("  The library is empty."))
		fmt.Println(ui.Muted.Render("  Use `quill import <source>` to add rule documents."))
		fmt.Println(ui.PageFooter())
		return
	}

	for _, f := range files {
		fmt.Printf("  %s %s\n",
			ui.Highlight.Render(f.Name),
			ui.Dim.Render(fmt.Sprintf("%d bytes", f.Size)))
	}

	fmt.Println()
	fmt.Println(ui.Muted.Render(fmt.Sprintf("  %d rule document(s)", len(files))))
	fmt.Println(ui.PageFooter())
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harwell/quill/internal/ui"
)

var peekCmd = &cobra.Command{
	Use:     "peek <rule>",
	Aliases: []string{"show", "cat"},
	Short:   "Print a rule document from the library",
	Long: `Print a rule document without copying it anywhere.

The .md extension is optional.

Examples:
  quill peek universal
  quill peek clean-architecture.md`,
	Args: cobra.ExactArgs(1),
	Run:  runPeek,
}

func init() {
	rootCmd.AddCommand(peekCmd)
}

func runPeek(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	lib := resolveLibrary(cfg)

	name := args[0]
	if !strings.HasSuffix(name, ".md") {
		name += ".md"
	}

	content, err := lib.Read(name)
	if err != nil {
		exitWithError(fmt.Sprintf("no rule document %q in %s", name, lib.Source()))
	}

	fmt.Println()
	fmt.Println(ui.SectionHeader(name, 56))
	fmt.Println()
	fmt.Println(string(content))
}

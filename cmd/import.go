package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harwell/quill/internal/config"
	"github.com/harwell/quill/internal/fetch"
	"github.com/harwell/quill/internal/rules"
	"github.com/harwell/quill/internal/source"
	"github.com/harwell/quill/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import <source>",
	Short: "Import rule documents into the library",
	Long: `Import rule documents from a shared conventions repository.

Sources can be GitHub shorthand, a URL, or a local path:
  quill import acme/conventions            # Repository root
  quill import acme/conventions:rules      # A path within it
  quill import acme/conventions@v2         # A branch or tag
  quill import https://raw.githubusercontent.com/acme/conventions/main/go.md
  quill import ../team-rules               # Local directory

Documents land in the rules library directory. When no library exists on
disk yet, one is created under the quill config directory and recorded in
the config file.`,
	Args: cobra.ExactArgs(1),
	Run:  runImport,
}

var importForce bool

func init() {
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "Overwrite documents that already exist in the library")
}

func runImport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	src, err := source.Parse(args[0])
	if err != nil {
		exitWithError(err.Error())
	}

	libDir, err := importDestination(cfg)
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Println()
	fmt.Println(ui.SectionHeader("Importing Rules", 56))
	fmt.Println()
	fmt.Println(ui.Muted.Render("  From: " + src.String()))
	fmt.Println(ui.Muted.Render("  Into: " + libDir))
	fmt.Println()

	client := fetch.NewClient()
	docs, err := client.FetchRuleDocs(context.Background(), src)
	if err != nil {
		exitWithError(err.Error())
	}

	var imported, skipped int
	for _, doc := range docs {
		dst := filepath.Join(libDir, doc.Name)
		if _, err := os.Stat(dst); err == nil && !importForce {
			fmt.Println(ui.Muted.Render("    " + doc.Name + " (exists, use --force)"))
			skipped++
			continue
		}
		if err := os.WriteFile(dst, doc.Content, 0644); err != nil {
			exitWithError(fmt.Sprintf("failed to write %s: %v", doc.Name, err))
		}
		fmt.Println(ui.SuccessLine("  " + doc.Name))
		imported++
	}

	fmt.Println()
	if imported > 0 {
		fmt.Println(ui.SuccessLine(fmt.Sprintf("Imported %d document(s)", imported)))
	}
	if skipped > 0 {
		fmt.Println(ui.Muted.Render(fmt.Sprintf("  Skipped %d existing document(s)", skipped)))
	}
	fmt.Println(ui.PageFooter())
}

// importDestination returns the on-disk library directory, creating the
// default one (and pointing the config at it) when the library is currently
// the embedded starter set.
func importDestination(cfg *config.Config) (string, error) {
	lib := resolveLibrary(cfg)
	if !lib.IsEmbedded() {
		return lib.Source(), nil
	}

	paths, err := config.GetPaths()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(paths.UserConfigDir, "rules")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	// Seed the new library with the starter rules so nothing is lost.
	if _, _, err := rules.Embedded().SyncTo(dir, false); err != nil {
		return "", err
	}

	cfg.RulesDir = dir
	if err := config.Save(paths.ConfigFile, cfg); err != nil {
		return "", err
	}
	fmt.Println(ui.InfoLine("Created rules library at " + dir))

	return dir, nil
}

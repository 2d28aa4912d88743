package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harwell/quill/internal/config"
	"github.com/harwell/quill/internal/rules"
	"github.com/harwell/quill/internal/ui"
)

var (
	// Version is set at build time
	Version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Conventions manager for AI coding assistants",
	Long: ui.Logo() + `

  Keep your coding-convention rule documents in every project's
  .claude/ folder, and bootstrap new projects in one pass.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var rulesDirFlag string

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rulesDirFlag, "rules", "", "Rules library directory (overrides config and QUILL_RULES)")

	rootCmd.AddCommand(inscribeCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quill %s\n", Version)
	},
}

// loadConfig reads the user config, falling back to defaults on a fresh
// machine.
func loadConfig() *config.Config {
	paths, err := config.GetPaths()
	if err != nil {
		return config.Default()
	}
	cfg, err := config.Load(paths.ConfigFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.WarningLine(fmt.Sprintf("ignoring config: %v", err)))
		return config.Default()
	}
	return cfg
}

// resolveLibrary picks the rules library honoring the --rules flag
func resolveLibrary(cfg *config.Config) rules.Library {
	lib, err := rules.Resolve(rulesDirFlag, cfg)
	if err != nil {
		exitWithError(err.Error())
	}
	return lib
}

// exitWithError prints an error and exits
func exitWithError(msg string) {
	fmt.Fprintln(os.Stderr, ui.Error.Render("Error: "+msg))
	os.Exit(1)
}

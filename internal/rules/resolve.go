package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harwell/quill/internal/config"
)

// EnvRulesDir overrides the library location when set.
const EnvRulesDir = "QUILL_RULES"

// Resolve picks the rules library. Resolution order: explicit path (flag),
// QUILL_RULES, rules_dir from the config file, a rules/ directory next to
// the executable, then the embedded starter set. An explicit path that does
// not exist is an error; the other candidates are best-effort and skipped
// silently when missing.
func Resolve(explicit string, cfg *config.Config) (Library, error) {
	if explicit != "" {
		if abs, err := filepath.Abs(explicit); err == nil {
			explicit = abs
		}
		if !isDir(explicit) {
			return Library{}, fmt.Errorf("rules directory %s does not exist", explicit)
		}
		return AtDir(explicit), nil
	}

	for _, dir := range []string{os.Getenv(EnvRulesDir), cfg.RulesDir} {
		if dir == "" {
			continue
		}
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		if isDir(dir) {
			return AtDir(dir), nil
		}
	}

	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), "rules")
		if isDir(candidate) {
			return AtDir(candidate), nil
		}
	}

	return Embedded(), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

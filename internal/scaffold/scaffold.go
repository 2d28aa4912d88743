// Package scaffold materializes the tracking files quill places in a
// project's configuration folder, and keeps the folder out of version
// control. Everything here is create-if-absent: existing files are never
// touched.
package scaffold

import (
	"bytes"
	"embed"
	"os"
	"text/template"
	"time"
)

const (
	// ConfigFolder is the per-project configuration directory name.
	ConfigFolder = ".claude"
	// IgnoreEntry is the .gitignore line that excludes the folder.
	IgnoreEntry = ".claude/"

	// TodoFile tracks progress inside the configuration folder.
	TodoFile = "TODO.md"
	// ProjectFile describes the project inside the configuration folder.
	ProjectFile = "PROJECT.md"
)

//go:embed templates
var templatesFS embed.FS

// TemplateData parameterizes the scaffolding templates.
type TemplateData struct {
	ProjectName string
	Date        string
}

// NewTemplateData builds template data for a project, dated today.
func NewTemplateData(projectName string) TemplateData {
	return TemplateData{
		ProjectName: projectName,
		Date:        time.Now().Format("2006-01-02"),
	}
}

// Render executes the named template (TodoFile or ProjectFile).
func Render(name string, data TemplateData) ([]byte, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/"+name+".tmpl")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EnsureFile writes content to path only if the file does not exist.
// Returns true when the file was created.
func EnsureFile(path string, content []byte) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return false, err
	}
	return true, nil
}

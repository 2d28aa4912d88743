// Package detect verifies the environment requirements quill depends on:
// binaries that must exist on PATH. Used by `quill doctor`.
package detect

import (
	"os/exec"
)

// RequirementType represents the kind of requirement checked
type RequirementType string

const (
	TypeCommand RequirementType = "command" // Binary must exist on PATH
)

// Requirement represents one environment requirement
type Requirement struct {
	Type  RequirementType
	Value string // command name
	Hint  string // how to satisfy it, shown when unsatisfied
}

// VerifyResult contains the result of verifying a requirement
type VerifyResult struct {
	Requirement Requirement
	Satisfied   bool
	Message     string // help message if not satisfied
}

// Verify checks if a requirement is satisfied
func Verify(req Requirement) VerifyResult {
	result := VerifyResult{Requirement: req}

	switch req.Type {
	case TypeCommand:
		_, err := exec.LookPath(req.Value)
		result.Satisfied = err == nil
		if !result.Satisfied {
			result.Message = "Command not found: " + req.Value
		}
	}

	if !result.Satisfied && req.Hint != "" {
		result.Message += "\n  " + req.Hint
	}

	return result
}

// VerifyAll checks a list of requirements
func VerifyAll(reqs []Requirement) []VerifyResult {
	results := make([]VerifyResult, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, Verify(req))
	}
	return results
}

// HasUnsatisfied returns true if any result is unsatisfied
func HasUnsatisfied(results []VerifyResult) bool {
	for _, r := range results {
		if !r.Satisfied {
			return true
		}
	}
	return false
}

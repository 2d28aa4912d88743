package rules

import "embed"

// The starter rules ship inside the binary so a fresh install can inscribe a
// project without any library on disk.
//
//go:embed starter
var starterFS embed.FS

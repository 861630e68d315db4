package output

import (
	"io"

	"github.com/rohankatakam/healthrisk/internal/models"
)

// Formatter defines output formatting interface
type Formatter interface {
	Format(snap models.Snapshot, w io.Writer) error
}

// VerbosityLevel determines output detail
type VerbosityLevel int

const (
	VerbosityQuiet    VerbosityLevel = iota // One-line summary
	VerbosityStandard                       // Table + recommendations + ALE series
	VerbosityJSON                           // Machine-readable JSON
	VerbosityYAML                           // Machine-readable YAML
)

// NewFormatter creates appropriate formatter based on level
func NewFormatter(level VerbosityLevel) Formatter {
	switch level {
	case VerbosityQuiet:
		return &QuietFormatter{}
	case VerbosityStandard:
		return &StandardFormatter{}
	case VerbosityJSON:
		return &JSONFormatter{}
	case VerbosityYAML:
		return &YAMLFormatter{}
	default:
		return &StandardFormatter{}
	}
}

package output

import (
	"os"
	"strings"

	"github.com/rohankatakam/healthrisk/internal/errors"
)

// ParseVerbosity maps an --output flag value onto a level
func ParseVerbosity(name string) (VerbosityLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "standard", "table":
		return VerbosityStandard, nil
	case "quiet", "q":
		return VerbosityQuiet, nil
	case "json":
		return VerbosityJSON, nil
	case "yaml", "yml":
		return VerbosityYAML, nil
	}
	return VerbosityStandard, errors.ConfigErrorf("unknown output format %q (want standard, quiet, json or yaml)", name).
		WithContext("field", "output.format")
}

// GetDefaultVerbosity returns appropriate default based on environment
func GetDefaultVerbosity() VerbosityLevel {
	// Pipelines want one line per run
	if os.Getenv("CI") == "true" {
		return VerbosityQuiet
	}

	return VerbosityStandard
}

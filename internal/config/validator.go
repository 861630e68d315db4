package config

import (
	"fmt"
	"strings"

	"github.com/rohankatakam/healthrisk/internal/errors"
	"github.com/sirupsen/logrus"
)

var outputFormats = []string{"standard", "table", "quiet", "q", "json", "yaml", "yml"}

// ValidationResult holds validation results
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// AddError adds an error to the validation result
func (vr *ValidationResult) AddError(format string, args ...interface{}) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, fmt.Sprintf(format, args...))
}

// AddWarning adds a warning to the validation result
func (vr *ValidationResult) AddWarning(format string, args ...interface{}) {
	vr.Warnings = append(vr.Warnings, fmt.Sprintf(format, args...))
}

// HasErrors returns true if there are any errors
func (vr *ValidationResult) HasErrors() bool {
	return !vr.Valid || len(vr.Errors) > 0
}

// Error returns a formatted error message
func (vr *ValidationResult) Error() string {
	if !vr.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Configuration validation failed:\n")
	for _, err := range vr.Errors {
		sb.WriteString(fmt.Sprintf("  ❌ %s\n", err))
	}

	if len(vr.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, warn := range vr.Warnings {
			sb.WriteString(fmt.Sprintf("  ⚠️  %s\n", warn))
		}
	}

	return sb.String()
}

// Validate checks every section of the configuration
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{Valid: true}

	c.validateEngine(result)
	c.validateOutput(result)
	c.validateLogging(result)

	return result
}

// Require returns a config error when Validate finds any errors
func (c *Config) Require() error {
	result := c.Validate()
	if result.HasErrors() {
		return errors.ConfigError(result.Error())
	}
	return nil
}

func (c *Config) validateEngine(result *ValidationResult) {
	if strings.TrimSpace(c.Engine.Currency) == "" {
		result.AddError("engine.currency must not be empty")
	}
	if !c.Engine.TrackControlEffectiveness {
		result.AddWarning("engine.track_control_effectiveness is off, control effectiveness will not be validated")
	}
}

func (c *Config) validateOutput(result *ValidationResult) {
	format := strings.ToLower(strings.TrimSpace(c.Output.Format))
	if format == "" {
		return
	}
	for _, f := range outputFormats {
		if format == f {
			return
		}
	}
	result.AddError("output.format %q is not one of standard, quiet, json, yaml", c.Output.Format)
}

func (c *Config) validateLogging(result *ValidationResult) {
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		result.AddError("logging.level %q is not a valid level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		result.AddError("logging.format %q must be text or json", c.Logging.Format)
	}
}

package risk

import (
	"fmt"
	"math"
	"strings"
)

// ValidationOptions selects which optional checks apply
type ValidationOptions struct {
	// TrackControlEffectiveness enables the [0,100] effectiveness check.
	// The control-free variant of the engine leaves it off; effectiveness
	// must still be finite so residual risk stays a number.
	TrackControlEffectiveness bool
}

// DefaultValidationOptions tracks control effectiveness
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{TrackControlEffectiveness: true}
}

// ValidationResult holds validation results
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// AddError adds an error to the validation result
func (vr *ValidationResult) AddError(format string, args ...interface{}) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, fmt.Sprintf(format, args...))
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
	return "invalid risk entry: " + strings.Join(vr.Errors, "; ")
}

// Validate checks every field rule and reports each one that fails
func Validate(r *Record, opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{Valid: true}
	if r == nil {
		result.AddError("no risk record")
		return result
	}

	if strings.TrimSpace(r.in.Threat) == "" {
		result.AddError("threat is required")
	}
	if !r.in.ComplianceRule.IsSet() {
		result.AddError("compliance rule is not selected")
	}
	if !r.in.LifecycleStep.IsSet() {
		result.AddError("lifecycle step is not selected")
	}
	if r.in.Impact < MinScore || r.in.Impact > MaxScore {
		result.AddError("impact %d must be between %d and %d", r.in.Impact, MinScore, MaxScore)
	}
	if r.in.Likelihood < MinScore || r.in.Likelihood > MaxScore {
		result.AddError("likelihood %d must be between %d and %d", r.in.Likelihood, MinScore, MaxScore)
	}
	// NaN fails these comparisons and is rejected along with negatives
	sle, aro := r.in.SingleLossExpectancy, r.in.AnnualizedRateOfOccurrence
	switch {
	case math.IsInf(sle, 0):
		result.AddError("single loss expectancy %v must be finite", sle)
	case !(sle >= 0):
		result.AddError("single loss expectancy %v must not be negative", sle)
	}
	switch {
	case math.IsInf(aro, 0):
		result.AddError("annualized rate of occurrence %v must be finite", aro)
	case !(aro >= 0):
		result.AddError("annualized rate of occurrence %v must not be negative", aro)
	}
	if !math.IsInf(sle, 0) && !math.IsInf(aro, 0) && math.IsInf(r.ale, 0) {
		result.AddError("annualized loss expectancy of %v × %v is not a finite amount", sle, aro)
	}

	eff := r.in.ControlEffectiveness
	switch {
	case math.IsNaN(eff) || math.IsInf(eff, 0):
		result.AddError("control effectiveness %v must be finite", eff)
	case opts.TrackControlEffectiveness && (eff < MinEffectiveness || eff > MaxEffectiveness):
		result.AddError("control effectiveness %v must be between %v and %v", eff, MinEffectiveness, MaxEffectiveness)
	}

	return result
}

// IsValid reports whether r may enter the register. It never panics.
func IsValid(r *Record) bool {
	return !Validate(r, DefaultValidationOptions()).HasErrors()
}

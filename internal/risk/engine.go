package risk

import (
	"github.com/rohankatakam/healthrisk/internal/models"
)

// Engine applies configured options to the pure scoring functions
type Engine struct {
	currency   string
	validation ValidationOptions
}

// NewEngine creates an engine that tracks control effectiveness and
// quotes ALE thresholds in the default currency
func NewEngine() *Engine {
	return &Engine{
		currency:   DefaultCurrency,
		validation: DefaultValidationOptions(),
	}
}

// WithCurrency overrides the currency symbol used in recommendation text
func (e *Engine) WithCurrency(symbol string) *Engine {
	e.currency = symbol
	return e
}

// WithControlEffectiveness switches between the tracked and control-free variants
func (e *Engine) WithControlEffectiveness(track bool) *Engine {
	e.validation.TrackControlEffectiveness = track
	return e
}

func (e *Engine) Currency() string { return e.currency }

func (e *Engine) TracksControlEffectiveness() bool {
	return e.validation.TrackControlEffectiveness
}

// Validate reports every failed rule for r
func (e *Engine) Validate(r *Record) *ValidationResult {
	return Validate(r, e.validation)
}

// IsValid reports whether r passes every rule
func (e *Engine) IsValid(r *Record) bool {
	return !e.Validate(r).HasErrors()
}

// Update changes one field of r under this engine's validation options
func (e *Engine) Update(r *Record, field, value string) error {
	return r.UpdateWith(field, value, e.validation)
}

// Recommend returns the newline-terminated recommendation text
func (e *Engine) Recommend(r *Record) string {
	return joinLines(RecommendationLines(r, e.currency))
}

// Assess projects r onto a table row. ID and AddedAt are left for the caller.
func (e *Engine) Assess(r *Record) models.Assessment {
	return models.Assessment{
		Threat:                     r.in.Threat,
		ComplianceRule:             r.in.ComplianceRule.String(),
		LifecycleStep:              r.in.LifecycleStep.String(),
		Impact:                     r.in.Impact,
		Likelihood:                 r.in.Likelihood,
		RiskPriorityNumber:         r.rpn,
		SingleLossExpectancy:       r.in.SingleLossExpectancy,
		AnnualizedRateOfOccurrence: r.in.AnnualizedRateOfOccurrence,
		AnnualizedLossExpectancy:   r.ale,
		ControlMeasures:            r.in.ControlMeasures,
		ControlEffectiveness:       r.in.ControlEffectiveness,
		ResidualRisk:               r.residual,
		Level:                      r.Level(),
		Recommendations:            RecommendationLines(r, e.currency),
	}
}

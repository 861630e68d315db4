package risk

import (
	"math"

	"github.com/rohankatakam/healthrisk/internal/errors"
)

// Input holds the user-supplied fields of a risk record
type Input struct {
	Threat                     string         `json:"threat" yaml:"threat"`
	ComplianceRule             ComplianceRule `json:"compliance_rule" yaml:"compliance_rule"`
	LifecycleStep              LifecycleStep  `json:"lifecycle_step" yaml:"lifecycle_step"`
	Impact                     int            `json:"impact" yaml:"impact"`
	Likelihood                 int            `json:"likelihood" yaml:"likelihood"`
	SingleLossExpectancy       float64        `json:"single_loss_expectancy" yaml:"single_loss_expectancy"`
	AnnualizedRateOfOccurrence float64        `json:"annualized_rate_of_occurrence" yaml:"annualized_rate_of_occurrence"`
	ControlMeasures            string         `json:"control_measures,omitempty" yaml:"control_measures,omitempty"`
	ControlEffectiveness       float64        `json:"control_effectiveness" yaml:"control_effectiveness"`
}

// Record is a risk assessment with its derived scores.
//
// Inputs are only reachable through New and the setters, so the derived
// fields always match the current inputs.
type Record struct {
	in Input

	rpn      int
	ale      float64
	residual float64
}

// New builds a record and computes RPN, ALE and residual risk.
// It does not validate; see Validate and IsValid.
func New(in Input) *Record {
	r := &Record{in: in}
	r.updateRiskPriorityNumber()
	r.updateAnnualizedLossExpectancy()
	return r
}

// Input returns a copy of the record's user-supplied fields
func (r *Record) Input() Input { return r.in }

func (r *Record) Threat() string                      { return r.in.Threat }
func (r *Record) ComplianceRule() ComplianceRule      { return r.in.ComplianceRule }
func (r *Record) LifecycleStep() LifecycleStep        { return r.in.LifecycleStep }
func (r *Record) Impact() int                         { return r.in.Impact }
func (r *Record) Likelihood() int                     { return r.in.Likelihood }
func (r *Record) SingleLossExpectancy() float64       { return r.in.SingleLossExpectancy }
func (r *Record) AnnualizedRateOfOccurrence() float64 { return r.in.AnnualizedRateOfOccurrence }
func (r *Record) ControlMeasures() string             { return r.in.ControlMeasures }
func (r *Record) ControlEffectiveness() float64       { return r.in.ControlEffectiveness }

// RiskPriorityNumber is impact × likelihood
func (r *Record) RiskPriorityNumber() int { return r.rpn }

// AnnualizedLossExpectancy is SLE × ARO
func (r *Record) AnnualizedLossExpectancy() float64 { return r.ale }

// ResidualRisk is the RPN left after controls: RPN × (1 − effectiveness/100)
func (r *Record) ResidualRisk() float64 { return r.residual }

func (r *Record) SetThreat(threat string)               { r.in.Threat = threat }
func (r *Record) SetComplianceRule(rule ComplianceRule) { r.in.ComplianceRule = rule }
func (r *Record) SetLifecycleStep(step LifecycleStep)   { r.in.LifecycleStep = step }
func (r *Record) SetControlMeasures(measures string)    { r.in.ControlMeasures = measures }

// SetImpact rejects values outside [1,10] and leaves the record unchanged
func (r *Record) SetImpact(v int) error {
	if err := checkScore("impact", v); err != nil {
		return err
	}
	r.in.Impact = v
	r.updateRiskPriorityNumber()
	return nil
}

// SetLikelihood rejects values outside [1,10] and leaves the record unchanged
func (r *Record) SetLikelihood(v int) error {
	if err := checkScore("likelihood", v); err != nil {
		return err
	}
	r.in.Likelihood = v
	r.updateRiskPriorityNumber()
	return nil
}

// SetSingleLossExpectancy rejects negative or non-finite amounts and any
// amount whose ALE would overflow
func (r *Record) SetSingleLossExpectancy(v float64) error {
	if err := checkNonNegative("single_loss_expectancy", v); err != nil {
		return err
	}
	if err := checkLossExpectancy(v, r.in.AnnualizedRateOfOccurrence); err != nil {
		return err
	}
	r.in.SingleLossExpectancy = v
	r.updateAnnualizedLossExpectancy()
	return nil
}

func (r *Record) SetAnnualizedRateOfOccurrence(v float64) error {
	if err := checkNonNegative("annualized_rate_of_occurrence", v); err != nil {
		return err
	}
	if err := checkLossExpectancy(r.in.SingleLossExpectancy, v); err != nil {
		return err
	}
	r.in.AnnualizedRateOfOccurrence = v
	r.updateAnnualizedLossExpectancy()
	return nil
}

// SetControlEffectiveness takes a percentage in [0,100]
func (r *Record) SetControlEffectiveness(v float64) error {
	return r.setControlEffectiveness(v, DefaultValidationOptions())
}

// setControlEffectiveness applies the [0,100] range only when opts track
// control effectiveness; a non-finite value is always rejected
func (r *Record) setControlEffectiveness(v float64, opts ValidationOptions) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.ValidationErrorf("control effectiveness %v must be finite", v).
			WithContext("field", "control_effectiveness")
	}
	if opts.TrackControlEffectiveness && (v < MinEffectiveness || v > MaxEffectiveness) {
		return errors.ValidationErrorf("control effectiveness %v must be between %v and %v",
			v, MinEffectiveness, MaxEffectiveness).WithContext("field", "control_effectiveness")
	}
	r.in.ControlEffectiveness = v
	r.updateResidualRisk()
	return nil
}

// updateRiskPriorityNumber also refreshes residual risk, which depends on RPN
func (r *Record) updateRiskPriorityNumber() {
	r.rpn = RiskPriorityNumber(r.in.Impact, r.in.Likelihood)
	r.updateResidualRisk()
}

func (r *Record) updateAnnualizedLossExpectancy() {
	r.ale = AnnualizedLossExpectancy(r.in.SingleLossExpectancy, r.in.AnnualizedRateOfOccurrence)
}

func (r *Record) updateResidualRisk() {
	r.residual = ResidualRisk(r.rpn, r.in.ControlEffectiveness)
}

func checkScore(field string, v int) error {
	if v < MinScore || v > MaxScore {
		return errors.ValidationErrorf("%s %d must be between %d and %d", field, v, MinScore, MaxScore).
			WithContext("field", field)
	}
	return nil
}

func checkNonNegative(field string, v float64) error {
	if math.IsInf(v, 0) {
		return errors.ValidationErrorf("%s %v must be finite", field, v).
			WithContext("field", field)
	}
	if math.IsNaN(v) || v < 0 {
		return errors.ValidationErrorf("%s %v must not be negative", field, v).
			WithContext("field", field)
	}
	return nil
}

func checkLossExpectancy(sle, aro float64) error {
	if ale := AnnualizedLossExpectancy(sle, aro); math.IsInf(ale, 0) {
		return errors.ValidationErrorf("annualized loss expectancy of %v × %v is not a finite amount", sle, aro).
			WithContext("field", "annualized_loss_expectancy")
	}
	return nil
}

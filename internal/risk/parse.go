package risk

import (
	"math"
	"strconv"
	"strings"

	"github.com/rohankatakam/healthrisk/internal/errors"
)

// RawInput is a form submission as typed by the user
type RawInput struct {
	Threat                     string
	ComplianceRule             string
	LifecycleStep              string
	Impact                     string
	Likelihood                 string
	SingleLossExpectancy       string
	AnnualizedRateOfOccurrence string
	ControlMeasures            string
	ControlEffectiveness       string
}

// ParseInput converts raw text fields into an Input. The first field that
// cannot be parsed is reported and no Input is produced. Range checks are
// left to Validate; an empty rule or step parses as "not selected" and an
// empty effectiveness parses as 0.
func ParseInput(raw RawInput) (Input, error) {
	var in Input
	var err error

	in.Threat = raw.Threat
	in.ControlMeasures = raw.ControlMeasures

	if in.ComplianceRule, err = ParseComplianceRule(raw.ComplianceRule); err != nil {
		return Input{}, err
	}
	if in.LifecycleStep, err = ParseLifecycleStep(raw.LifecycleStep); err != nil {
		return Input{}, err
	}
	if in.Impact, err = parseInt("impact", raw.Impact); err != nil {
		return Input{}, err
	}
	if in.Likelihood, err = parseInt("likelihood", raw.Likelihood); err != nil {
		return Input{}, err
	}
	if in.SingleLossExpectancy, err = parseFloat("single_loss_expectancy", raw.SingleLossExpectancy); err != nil {
		return Input{}, err
	}
	if in.AnnualizedRateOfOccurrence, err = parseFloat("annualized_rate_of_occurrence", raw.AnnualizedRateOfOccurrence); err != nil {
		return Input{}, err
	}
	if strings.TrimSpace(raw.ControlEffectiveness) != "" {
		if in.ControlEffectiveness, err = parseFloat("control_effectiveness", raw.ControlEffectiveness); err != nil {
			return Input{}, err
		}
	}

	return in, nil
}

func parseInt(field, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.ParseError(err, field)
	}
	return v, nil
}

func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.ParseError(err, field)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.ParseErrorf("invalid value for %s: %q is not a finite number", field, s).
			WithContext("field", field)
	}
	return v, nil
}

// Field names accepted by Update, matching the JSON names of Input
const (
	FieldThreat                     = "threat"
	FieldComplianceRule             = "compliance_rule"
	FieldLifecycleStep              = "lifecycle_step"
	FieldImpact                     = "impact"
	FieldLikelihood                 = "likelihood"
	FieldSingleLossExpectancy       = "single_loss_expectancy"
	FieldAnnualizedRateOfOccurrence = "annualized_rate_of_occurrence"
	FieldControlMeasures            = "control_measures"
	FieldControlEffectiveness       = "control_effectiveness"
)

// Update parses value for the named field and applies it through the
// matching setter. On any error the record is left unchanged.
func (r *Record) Update(field, value string) error {
	return r.UpdateWith(field, value, DefaultValidationOptions())
}

// UpdateWith is Update with the range checks of opts, so an engine that does
// not track control effectiveness accepts any finite effectiveness.
func (r *Record) UpdateWith(field, value string, opts ValidationOptions) error {
	switch field {
	case FieldThreat:
		r.SetThreat(value)
	case FieldControlMeasures:
		r.SetControlMeasures(value)
	case FieldComplianceRule:
		rule, err := ParseComplianceRule(value)
		if err != nil {
			return err
		}
		r.SetComplianceRule(rule)
	case FieldLifecycleStep:
		step, err := ParseLifecycleStep(value)
		if err != nil {
			return err
		}
		r.SetLifecycleStep(step)
	case FieldImpact, FieldLikelihood:
		v, err := parseInt(field, value)
		if err != nil {
			return err
		}
		if field == FieldImpact {
			return r.SetImpact(v)
		}
		return r.SetLikelihood(v)
	case FieldSingleLossExpectancy, FieldAnnualizedRateOfOccurrence, FieldControlEffectiveness:
		v, err := parseFloat(field, value)
		if err != nil {
			return err
		}
		switch field {
		case FieldSingleLossExpectancy:
			return r.SetSingleLossExpectancy(v)
		case FieldAnnualizedRateOfOccurrence:
			return r.SetAnnualizedRateOfOccurrence(v)
		default:
			return r.setControlEffectiveness(v, opts)
		}
	default:
		return errors.ParseErrorf("unknown field %q", field).WithContext("field", field)
	}
	return nil
}

package risk

import (
	"math"
	"testing"

	"github.com/rohankatakam/healthrisk/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() Input {
	return Input{
		Threat:                     "Unauthorised access to patient records",
		ComplianceRule:             SecurityRule,
		LifecycleStep:              StepImplement,
		Impact:                     7,
		Likelihood:                 5,
		SingleLossExpectancy:       50000,
		AnnualizedRateOfOccurrence: 0.2,
	}
}

func TestNew_ComputesDerivedFields(t *testing.T) {
	r := New(validInput())

	assert.Equal(t, 35, r.RiskPriorityNumber())
	assert.Equal(t, 10000.0, r.AnnualizedLossExpectancy())
	assert.Equal(t, 35.0, r.ResidualRisk())
	assert.Equal(t, "Unauthorised access to patient records", r.Threat())
	assert.Equal(t, SecurityRule, r.ComplianceRule())
	assert.Equal(t, StepImplement, r.LifecycleStep())
}

func TestNew_ResidualRiskWithControls(t *testing.T) {
	in := validInput()
	in.Impact = 10
	in.Likelihood = 9
	in.ControlEffectiveness = 10

	r := New(in)

	assert.Equal(t, 90, r.RiskPriorityNumber())
	assert.Equal(t, 81.0, r.ResidualRisk())
}

func TestNew_DoesNotValidate(t *testing.T) {
	in := validInput()
	in.Impact = 11

	r := New(in)

	assert.Equal(t, 55, r.RiskPriorityNumber(), "derived fields follow inputs even when out of range")
	assert.False(t, IsValid(r))
}

func TestSetters_RecomputeDerivedFields(t *testing.T) {
	r := New(validInput())

	require.NoError(t, r.SetImpact(10))
	assert.Equal(t, 50, r.RiskPriorityNumber())
	assert.Equal(t, 50.0, r.ResidualRisk())

	require.NoError(t, r.SetLikelihood(9))
	assert.Equal(t, 90, r.RiskPriorityNumber())

	require.NoError(t, r.SetControlEffectiveness(10))
	assert.Equal(t, 81.0, r.ResidualRisk())

	require.NoError(t, r.SetImpact(5))
	assert.Equal(t, 45, r.RiskPriorityNumber())
	assert.InDelta(t, 40.5, r.ResidualRisk(), 1e-9, "residual risk follows RPN changes")

	require.NoError(t, r.SetSingleLossExpectancy(200000))
	assert.InDelta(t, 40000.0, r.AnnualizedLossExpectancy(), 1e-9)

	require.NoError(t, r.SetAnnualizedRateOfOccurrence(1.5))
	assert.Equal(t, 300000.0, r.AnnualizedLossExpectancy())
}

func TestSetters_RejectOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		set  func(r *Record) error
	}{
		{"impact above 10", func(r *Record) error { return r.SetImpact(11) }},
		{"impact below 1", func(r *Record) error { return r.SetImpact(0) }},
		{"likelihood above 10", func(r *Record) error { return r.SetLikelihood(11) }},
		{"likelihood below 1", func(r *Record) error { return r.SetLikelihood(-3) }},
		{"negative SLE", func(r *Record) error { return r.SetSingleLossExpectancy(-1) }},
		{"NaN SLE", func(r *Record) error { return r.SetSingleLossExpectancy(math.NaN()) }},
		{"negative ARO", func(r *Record) error { return r.SetAnnualizedRateOfOccurrence(-0.5) }},
		{"infinite SLE", func(r *Record) error { return r.SetSingleLossExpectancy(math.Inf(1)) }},
		{"infinite effectiveness", func(r *Record) error { return r.SetControlEffectiveness(math.Inf(-1)) }},
		{"effectiveness above 100", func(r *Record) error { return r.SetControlEffectiveness(100.5) }},
		{"effectiveness below 0", func(r *Record) error { return r.SetControlEffectiveness(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(validInput())
			before := *r

			err := tt.set(r)

			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
			assert.Equal(t, before, *r, "rejected mutation must leave the record untouched")
		})
	}
}

func TestSetters_RejectALEOverflow(t *testing.T) {
	in := validInput()
	in.SingleLossExpectancy, in.AnnualizedRateOfOccurrence = 1e308, 1
	r := New(in)
	before := *r

	err := r.SetAnnualizedRateOfOccurrence(10)

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, before, *r)

	in = validInput()
	in.AnnualizedRateOfOccurrence = 10
	r = New(in)

	assert.Error(t, r.SetSingleLossExpectancy(1e308))
	assert.Equal(t, 500000.0, r.AnnualizedLossExpectancy())
}

func TestPlainSetters(t *testing.T) {
	r := New(validInput())

	r.SetThreat("Ransomware on imaging server")
	r.SetComplianceRule(BreachNotificationRule)
	r.SetLifecycleStep(StepMonitor)
	r.SetControlMeasures("Offline backups")

	in := r.Input()
	assert.Equal(t, "Ransomware on imaging server", in.Threat)
	assert.Equal(t, BreachNotificationRule, in.ComplianceRule)
	assert.Equal(t, StepMonitor, in.LifecycleStep)
	assert.Equal(t, "Offline backups", r.ControlMeasures())
	assert.Equal(t, 35, r.RiskPriorityNumber())
}

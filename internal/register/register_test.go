package register

import (
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rohankatakam/healthrisk/internal/errors"
	"github.com/rohankatakam/healthrisk/internal/models"
	"github.com/rohankatakam/healthrisk/internal/risk"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func record(threat string, impact, likelihood int, sle, aro float64) *risk.Record {
	return risk.New(risk.Input{
		Threat:                     threat,
		ComplianceRule:             risk.PrivacyRule,
		LifecycleStep:              risk.StepSelect,
		Impact:                     impact,
		Likelihood:                 likelihood,
		SingleLossExpectancy:       sle,
		AnnualizedRateOfOccurrence: aro,
	})
}

func TestAdd_AppendsInOrder(t *testing.T) {
	reg := New(risk.NewEngine(), quietLogger())
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return fixed }

	first, err := reg.Add(record("Lost laptop", 7, 5, 50000, 0.2))
	require.NoError(t, err)
	_, err = reg.Add(record("Phishing", 6, 8, 20000, 3))
	require.NoError(t, err)

	assert.Equal(t, 2, reg.Len())
	_, parseErr := uuid.Parse(first.ID)
	assert.NoError(t, parseErr)
	assert.Equal(t, fixed, first.AddedAt)
	assert.Equal(t, 35, first.RiskPriorityNumber)

	snap := reg.Snapshot()
	require.Len(t, snap.Assessments, 2)
	assert.Equal(t, "Lost laptop", snap.Assessments[0].Threat)
	assert.Equal(t, "Phishing", snap.Assessments[1].Threat)
	assert.Equal(t, first.ID, snap.Assessments[0].ID)
	assert.NotEqual(t, snap.Assessments[0].ID, snap.Assessments[1].ID)
	assert.Equal(t, []models.ChartPoint{
		{Label: "Lost laptop", Value: 10000},
		{Label: "Phishing", Value: 60000},
	}, snap.ALESeries)
	assert.Equal(t, "R", snap.Currency)
}

func TestAdd_RejectsInvalidRecord(t *testing.T) {
	reg := New(risk.NewEngine(), quietLogger())
	published := 0
	reg.Subscribe(func(models.Snapshot) { published++ })

	_, err := reg.Add(record("Invalid Risk", 11, 5, 1000, 0.1))

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Contains(t, err.Error(), "impact 11 must be between 1 and 10")
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 0, published)
	assert.Empty(t, reg.Snapshot().Assessments)
}

func TestAdd_RejectsNil(t *testing.T) {
	reg := New(risk.NewEngine(), quietLogger())

	_, err := reg.Add(nil)

	require.Error(t, err)
	assert.Equal(t, 0, reg.Len())
}

func TestAdd_RejectionLeavesPriorStateUntouched(t *testing.T) {
	reg := New(risk.NewEngine(), quietLogger())
	_, err := reg.Add(record("Lost laptop", 7, 5, 50000, 0.2))
	require.NoError(t, err)
	before := reg.Snapshot()

	_, err = reg.Add(record("", 5, 5, 100, 1))
	require.Error(t, err)

	assert.Equal(t, before, reg.Snapshot())
}

func TestSubscribe_PublishesAfterEachAdd(t *testing.T) {
	reg := New(risk.NewEngine(), quietLogger())
	var sizes []int
	reg.Subscribe(func(s models.Snapshot) { sizes = append(sizes, len(s.Assessments)) })

	for i := 0; i < 3; i++ {
		_, err := reg.Add(record("Threat", 2, 2, 10, 1))
		require.NoError(t, err)
	}

	assert.Equal(t, []int{1, 2, 3}, sizes)
}

func TestRefresh_RepublishesMutatedRecord(t *testing.T) {
	reg := New(risk.NewEngine(), quietLogger())
	_, err := reg.Add(record("Lost laptop", 7, 5, 50000, 0.2))
	require.NoError(t, err)

	var last models.Snapshot
	reg.Subscribe(func(s models.Snapshot) { last = s })

	require.NoError(t, reg.Records()[0].SetLikelihood(10))
	require.NoError(t, reg.Refresh())

	require.Len(t, last.Assessments, 1)
	assert.Equal(t, 70, last.Assessments[0].RiskPriorityNumber)
}

func TestRefresh_RejectsInvalidatedRecord(t *testing.T) {
	reg := New(risk.NewEngine(), quietLogger())
	_, err := reg.Add(record("Lost laptop", 7, 5, 50000, 0.2))
	require.NoError(t, err)
	_, err = reg.Add(record("Phishing", 6, 8, 20000, 3))
	require.NoError(t, err)

	published := 0
	reg.Subscribe(func(models.Snapshot) { published++ })

	reg.Records()[1].SetComplianceRule(risk.ComplianceRuleUnset)
	err = reg.Refresh()

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Contains(t, err.Error(), "entry 2 is no longer valid")
	assert.Contains(t, err.Error(), "compliance rule is not selected")
	assert.Equal(t, 0, published)

	reg.Records()[1].SetComplianceRule(risk.SecurityRule)
	assert.NoError(t, reg.Refresh())
	assert.Equal(t, 1, published)
}

func TestControlFreeEngine(t *testing.T) {
	reg := New(risk.NewEngine().WithControlEffectiveness(false), quietLogger())
	in := record("Vendor access", 3, 3, 100, 1).Input()
	in.ControlEffectiveness = 500

	_, err := reg.Add(risk.New(in))

	assert.NoError(t, err)
}

func TestChartSeries_Empty(t *testing.T) {
	assert.Empty(t, ChartSeries(nil))
}

func TestReplace(t *testing.T) {
	reg := New(risk.NewEngine(), quietLogger())
	first, err := reg.Add(record("Lost laptop", 7, 5, 50000, 0.2))
	require.NoError(t, err)
	_, err = reg.Add(record("Phishing", 6, 8, 20000, 3))
	require.NoError(t, err)

	published := 0
	reg.Subscribe(func(models.Snapshot) { published++ })

	row, err := reg.Replace(0, record("Lost laptop", 10, 9, 50000, 0.2))

	require.NoError(t, err)
	assert.Equal(t, first.ID, row.ID)
	assert.Equal(t, first.AddedAt, row.AddedAt)
	assert.Equal(t, 90, row.RiskPriorityNumber)
	assert.Equal(t, 1, published)
	assert.Equal(t, 90, reg.Snapshot().Assessments[0].RiskPriorityNumber)
	assert.Equal(t, "Phishing", reg.Snapshot().Assessments[1].Threat)
}

func TestReplace_Rejects(t *testing.T) {
	reg := New(risk.NewEngine(), quietLogger())
	_, err := reg.Add(record("Lost laptop", 7, 5, 50000, 0.2))
	require.NoError(t, err)
	before := reg.Snapshot()

	_, err = reg.Replace(0, record("Lost laptop", 7, 5, -1, 0.2))
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	_, err = reg.Replace(3, record("Lost laptop", 7, 5, 50000, 0.2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entry at position 4")

	assert.Equal(t, before, reg.Snapshot())
}

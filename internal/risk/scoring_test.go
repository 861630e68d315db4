package risk

import (
	"testing"

	"github.com/rohankatakam/healthrisk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskPriorityNumber_AllScores(t *testing.T) {
	for impact := MinScore; impact <= MaxScore; impact++ {
		for likelihood := MinScore; likelihood <= MaxScore; likelihood++ {
			rpn := RiskPriorityNumber(impact, likelihood)
			assert.Equal(t, impact*likelihood, rpn)
			assert.GreaterOrEqual(t, rpn, 1)
			assert.LessOrEqual(t, rpn, 100)
		}
	}
}

func TestLevelForRPN(t *testing.T) {
	tests := []struct {
		rpn  int
		want models.RiskLevel
	}{
		{1, models.RiskLevelLow},
		{20, models.RiskLevelLow},
		{21, models.RiskLevelMedium},
		{70, models.RiskLevelMedium},
		{71, models.RiskLevelHigh},
		{100, models.RiskLevelHigh},
		{200, models.RiskLevelHigh},
		{201, models.RiskLevelCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForRPN(tt.rpn), "LevelForRPN(%d)", tt.rpn)
	}
}

func TestCategorize_AgreesWithRecommendationTier(t *testing.T) {
	tierLine := map[models.RiskLevel]string{
		models.RiskLevelLow:      "Low risk. Regular monitoring is sufficient.",
		models.RiskLevelMedium:   "Medium risk. Monitor and plan mitigation strategies.",
		models.RiskLevelHigh:     "High risk. Prompt attention is necessary.",
		models.RiskLevelCritical: "Critical risk identified. Immediate action required.",
	}

	for impact := MinScore; impact <= MaxScore; impact++ {
		for likelihood := MinScore; likelihood <= MaxScore; likelihood++ {
			in := validInput()
			in.Impact = impact
			in.Likelihood = likelihood
			r := New(in)

			level := Categorize(impact, likelihood)
			assert.Equal(t, r.Level(), level)
			assert.Equal(t, tierLine[level], RecommendationLines(r, DefaultCurrency)[0])
		}
	}
}

func TestAnnualizedLossExpectancy(t *testing.T) {
	assert.Equal(t, 10000.0, AnnualizedLossExpectancy(50000, 0.2))
	assert.Equal(t, 0.0, AnnualizedLossExpectancy(0, 12))
	assert.Equal(t, 0.0, AnnualizedLossExpectancy(75000, 0))
}

func TestAnnualizedLossExpectancy_Monotonic(t *testing.T) {
	values := []float64{0, 0.1, 0.5, 1, 2, 10, 1000, 50000, 250000}

	for _, fixed := range values {
		prevBySLE := AnnualizedLossExpectancy(values[0], fixed)
		prevByARO := AnnualizedLossExpectancy(fixed, values[0])
		for _, v := range values[1:] {
			bySLE := AnnualizedLossExpectancy(v, fixed)
			byARO := AnnualizedLossExpectancy(fixed, v)
			assert.GreaterOrEqual(t, bySLE, prevBySLE)
			assert.GreaterOrEqual(t, byARO, prevByARO)
			prevBySLE, prevByARO = bySLE, byARO
		}
	}
}

func TestResidualRisk(t *testing.T) {
	for rpn := 1; rpn <= 100; rpn++ {
		assert.Equal(t, float64(rpn), ResidualRisk(rpn, 0))
		assert.Equal(t, 0.0, ResidualRisk(rpn, 100))
		for eff := 0.0; eff <= 100; eff += 12.5 {
			got := ResidualRisk(rpn, eff)
			assert.InDelta(t, float64(rpn)*(1-eff/100), got, 1e-9)
		}
	}
	assert.Equal(t, 81.0, ResidualRisk(90, 10))
}

func TestMatrix(t *testing.T) {
	grid := Matrix()

	require.Len(t, grid, 10)
	for _, row := range grid {
		require.Len(t, row, 10)
	}

	top := grid[0]
	assert.Equal(t, 10, top[0].Likelihood)
	assert.Equal(t, 1, top[0].Impact)
	assert.Equal(t, 10, top[9].Impact)

	bottom := grid[9]
	assert.Equal(t, models.MatrixCell{Impact: 1, Likelihood: 1, Score: 1, Level: models.RiskLevelLow}, bottom[0])

	corner := top[9]
	assert.Equal(t, 100, corner.Score)
	assert.Equal(t, models.RiskLevelHigh, corner.Level)

	for _, row := range grid {
		for _, cell := range row {
			assert.Equal(t, Categorize(cell.Impact, cell.Likelihood), cell.Level)
		}
	}
}

func TestRecord_MatrixCell(t *testing.T) {
	r := New(validInput())

	cell := r.MatrixCell()

	assert.Equal(t, models.MatrixCell{Impact: 7, Likelihood: 5, Score: 35, Level: models.RiskLevelMedium}, cell)
}

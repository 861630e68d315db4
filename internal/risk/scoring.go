package risk

import (
	"github.com/rohankatakam/healthrisk/internal/models"
)

// Input bounds
const (
	MinScore         = 1
	MaxScore         = 10
	MinEffectiveness = 0.0
	MaxEffectiveness = 100.0
)

// RPN tier thresholds, shared by the recommendation text and the matrix.
// A value must be strictly greater than the threshold to reach the tier.
const (
	CriticalRPNThreshold = 200
	HighRPNThreshold     = 70
	MediumRPNThreshold   = 20
)

// ALE tier thresholds (currency units per year)
const (
	SignificantALEThreshold = 100_000.0
	ElevatedALEThreshold    = 50_000.0
)

// RiskPriorityNumber multiplies impact by likelihood
func RiskPriorityNumber(impact, likelihood int) int {
	return impact * likelihood
}

// AnnualizedLossExpectancy multiplies single loss expectancy by the
// annualized rate of occurrence
func AnnualizedLossExpectancy(sle, aro float64) float64 {
	return sle * aro
}

// ResidualRisk scales rpn by the share of risk the controls leave in place.
// Computed as rpn×(100−effectiveness)/100 so whole percentages stay exact.
func ResidualRisk(rpn int, effectiveness float64) float64 {
	return float64(rpn) * (MaxEffectiveness - effectiveness) / MaxEffectiveness
}

// LevelForRPN maps a risk priority number onto the four-tier scale
func LevelForRPN(rpn int) models.RiskLevel {
	switch {
	case rpn > CriticalRPNThreshold:
		return models.RiskLevelCritical
	case rpn > HighRPNThreshold:
		return models.RiskLevelHigh
	case rpn > MediumRPNThreshold:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}

// Categorize labels an impact/likelihood pair for the risk matrix
func Categorize(impact, likelihood int) models.RiskLevel {
	return LevelForRPN(RiskPriorityNumber(impact, likelihood))
}

// Matrix returns the 10×10 reference grid. Rows run from likelihood 10 down
// to 1, columns from impact 1 up to 10.
func Matrix() [][]models.MatrixCell {
	grid := make([][]models.MatrixCell, 0, MaxScore)
	for likelihood := MaxScore; likelihood >= MinScore; likelihood-- {
		row := make([]models.MatrixCell, 0, MaxScore)
		for impact := MinScore; impact <= MaxScore; impact++ {
			row = append(row, matrixCell(impact, likelihood))
		}
		grid = append(grid, row)
	}
	return grid
}

// MatrixCell returns the grid cell this record highlights
func (r *Record) MatrixCell() models.MatrixCell {
	return matrixCell(r.in.Impact, r.in.Likelihood)
}

// Level is the record's tier on the RPN scale
func (r *Record) Level() models.RiskLevel {
	return LevelForRPN(r.rpn)
}

func matrixCell(impact, likelihood int) models.MatrixCell {
	return models.MatrixCell{
		Impact:     impact,
		Likelihood: likelihood,
		Score:      RiskPriorityNumber(impact, likelihood),
		Level:      Categorize(impact, likelihood),
	}
}

package models

import (
	"time"
)

// RiskLevel represents the risk severity
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// Assessment is the table-row projection of a scored risk record
type Assessment struct {
	ID                         string    `json:"id" yaml:"id"`
	Threat                     string    `json:"threat" yaml:"threat"`
	ComplianceRule             string    `json:"compliance_rule" yaml:"compliance_rule"`
	LifecycleStep              string    `json:"lifecycle_step" yaml:"lifecycle_step"`
	Impact                     int       `json:"impact" yaml:"impact"`
	Likelihood                 int       `json:"likelihood" yaml:"likelihood"`
	RiskPriorityNumber         int       `json:"risk_priority_number" yaml:"risk_priority_number"`
	SingleLossExpectancy       float64   `json:"single_loss_expectancy" yaml:"single_loss_expectancy"`
	AnnualizedRateOfOccurrence float64   `json:"annualized_rate_of_occurrence" yaml:"annualized_rate_of_occurrence"`
	AnnualizedLossExpectancy   float64   `json:"annualized_loss_expectancy" yaml:"annualized_loss_expectancy"`
	ControlMeasures            string    `json:"control_measures,omitempty" yaml:"control_measures,omitempty"`
	ControlEffectiveness       float64   `json:"control_effectiveness" yaml:"control_effectiveness"`
	ResidualRisk               float64   `json:"residual_risk" yaml:"residual_risk"`
	Level                      RiskLevel `json:"level" yaml:"level"`
	Recommendations            []string  `json:"recommendations" yaml:"recommendations"`
	AddedAt                    time.Time `json:"added_at" yaml:"added_at"`
}

// ChartPoint is one bar of the ALE chart: threat label → ALE value
type ChartPoint struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

// MatrixCell is one cell of the impact-by-likelihood reference grid
type MatrixCell struct {
	Impact     int       `json:"impact" yaml:"impact"`
	Likelihood int       `json:"likelihood" yaml:"likelihood"`
	Score      int       `json:"score" yaml:"score"`
	Level      RiskLevel `json:"level" yaml:"level"`
}

// Snapshot is what the register publishes after every accepted record
type Snapshot struct {
	Currency    string       `json:"currency" yaml:"currency"`
	Assessments []Assessment `json:"assessments" yaml:"assessments"`
	ALESeries   []ChartPoint `json:"ale_series" yaml:"ale_series"`
}

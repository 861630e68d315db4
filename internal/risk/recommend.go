package risk

import (
	"strings"

	"github.com/rohankatakam/healthrisk/internal/models"
)

// DefaultCurrency prefixes the ALE amounts in recommendation text
const DefaultCurrency = "R"

// HighFactorThreshold flags impact or likelihood strictly above it
const HighFactorThreshold = 7

var complianceAdvice = map[ComplianceRule]string{
	PrivacyRule:            "Ensure all PHI disclosures are compliant with the Privacy Rule.",
	SecurityRule:           "Strengthen technical safeguards to protect ePHI.",
	BreachNotificationRule: "Develop a robust breach response plan in line with notification requirements.",
}

var lifecycleAdvice = map[LifecycleStep]string{
	StepCategorize: "Review system categorisations to ensure appropriate risk levels.",
	StepSelect:     "Select security controls tailored to mitigate identified risks.",
	StepImplement:  "Implement the chosen security controls effectively.",
	StepAssess:     "Regularly assess the effectiveness of security controls.",
	StepAuthorize:  "Obtain necessary authorisations before system operation.",
	StepMonitor:    "Continuously monitor security controls and system operations.",
}

// RecommendationLines evaluates the rule groups in their fixed order:
// RPN tier, ALE tier, high impact, high likelihood, compliance rule,
// lifecycle step. Residual risk is not consulted.
func RecommendationLines(r *Record, currency string) []string {
	lines := make([]string, 0, 6)

	switch LevelForRPN(r.rpn) {
	case models.RiskLevelCritical:
		lines = append(lines, "Critical risk identified. Immediate action required.")
	case models.RiskLevelHigh:
		lines = append(lines, "High risk. Prompt attention is necessary.")
	case models.RiskLevelMedium:
		lines = append(lines, "Medium risk. Monitor and plan mitigation strategies.")
	default:
		lines = append(lines, "Low risk. Regular monitoring is sufficient.")
	}

	switch {
	case r.ale > SignificantALEThreshold:
		lines = append(lines, "ALE exceeds "+currency+"100,000. Consider investing in significant risk mitigation measures.")
	case r.ale > ElevatedALEThreshold:
		lines = append(lines, "ALE exceeds "+currency+"50,000. Evaluate cost-effective mitigation strategies.")
	default:
		lines = append(lines, "ALE is within acceptable limits. Maintain current controls.")
	}

	if r.in.Impact > HighFactorThreshold {
		lines = append(lines, "High impact risk. Prioritise impact reduction measures.")
	}
	if r.in.Likelihood > HighFactorThreshold {
		lines = append(lines, "High likelihood risk. Implement measures to reduce occurrence.")
	}

	// unset rule or step only happens on records that fail validation
	if advice, ok := complianceAdvice[r.in.ComplianceRule]; ok {
		lines = append(lines, advice)
	}
	if advice, ok := lifecycleAdvice[r.in.LifecycleStep]; ok {
		lines = append(lines, advice)
	}

	return lines
}

// GenerateRecommendation joins the recommendation lines, each terminated by
// a newline, using the default currency symbol
func GenerateRecommendation(r *Record) string {
	return joinLines(RecommendationLines(r, DefaultCurrency))
}

func joinLines(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

package output

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/rohankatakam/healthrisk/internal/models"
)

// StandardFormatter outputs the risk table, recommendations and ALE series (default)
type StandardFormatter struct{}

func (f *StandardFormatter) Format(snap models.Snapshot, w io.Writer) error {
	fmt.Fprintf(w, "🩺 Healthcare Risk Analysis\n")
	fmt.Fprintf(w, "Risks recorded: %d\n", len(snap.Assessments))

	if len(snap.Assessments) == 0 {
		return nil
	}
	fmt.Fprintf(w, "Highest level: %s\n\n", HighestLevel(snap.Assessments))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tThreat\tHIPAA Rule\tRMF Step\tImpact\tLikelihood\tRPN\tSLE\tARO\tALE\tResidual\tLevel")
	for i, a := range snap.Assessments {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			a.Threat,
			a.ComplianceRule,
			a.LifecycleStep,
			a.Impact,
			a.Likelihood,
			a.RiskPriorityNumber,
			FormatCurrency(snap.Currency, a.SingleLossExpectancy),
			strconv.FormatFloat(a.AnnualizedRateOfOccurrence, 'f', -1, 64),
			FormatCurrency(snap.Currency, a.AnnualizedLossExpectancy),
			strconv.FormatFloat(a.ResidualRisk, 'f', 1, 64),
			a.Level,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nRecommendations:\n")
	for i, a := range snap.Assessments {
		fmt.Fprintf(w, "%d. %s %s\n", i+1, levelEmoji(a.Level), a.Threat)
		if a.ControlMeasures != "" {
			fmt.Fprintf(w, "   Controls: %s (%.0f%% effective)\n", a.ControlMeasures, a.ControlEffectiveness)
		}
		for _, rec := range a.Recommendations {
			fmt.Fprintf(w, "   - %s\n", rec)
		}
	}

	fmt.Fprintf(w, "\nAnnualised Loss Expectancy (ALE):\n")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, p := range snap.ALESeries {
		fmt.Fprintf(tw, "  %s\t%s\t\n", p.Label, FormatCurrency(snap.Currency, p.Value))
	}
	return tw.Flush()
}

func levelEmoji(level models.RiskLevel) string {
	switch level {
	case models.RiskLevelCritical, models.RiskLevelHigh:
		return "🔴"
	case models.RiskLevelMedium:
		return "⚠️ "
	case models.RiskLevelLow:
		return "ℹ️ "
	default:
		return "•"
	}
}

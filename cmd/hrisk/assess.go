package main

import (
	"github.com/rohankatakam/healthrisk/internal/risk"
	"github.com/spf13/cobra"
)

var assessInput risk.RawInput

// assessCmd scores a single threat and prints the result
var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Score one threat and print recommendations",
	Long: `Scores a single threat entry: RPN (impact × likelihood), ALE (SLE × ARO),
residual risk after controls, risk level and recommendations.

Examples:
  hrisk assess --threat "Ransomware" --rule security --step monitor \
    --impact 10 --likelihood 9 --sle 250000 --aro 0.5 \
    --controls "Offline backups" --effectiveness 10`,
	Args: cobra.NoArgs,
	RunE: runAssess,
}

func init() {
	f := assessCmd.Flags()
	f.StringVar(&assessInput.Threat, "threat", "", "threat description")
	f.StringVar(&assessInput.ComplianceRule, "rule", "", "HIPAA rule: privacy, security or breach")
	f.StringVar(&assessInput.LifecycleStep, "step", "", "RMF step: categorize, select, implement, assess, authorize or monitor")
	f.StringVar(&assessInput.Impact, "impact", "", "impact score (1-10)")
	f.StringVar(&assessInput.Likelihood, "likelihood", "", "likelihood score (1-10)")
	f.StringVar(&assessInput.SingleLossExpectancy, "sle", "", "single loss expectancy")
	f.StringVar(&assessInput.AnnualizedRateOfOccurrence, "aro", "", "annualized rate of occurrence")
	f.StringVar(&assessInput.ControlMeasures, "controls", "", "control measures in place")
	f.StringVar(&assessInput.ControlEffectiveness, "effectiveness", "", "control effectiveness percentage (0-100)")
}

func runAssess(cmd *cobra.Command, args []string) error {
	formatter, err := newFormatter()
	if err != nil {
		return err
	}

	in, err := risk.ParseInput(assessInput)
	if err != nil {
		return err
	}

	reg := newRegister()
	if _, err := reg.Add(risk.New(in)); err != nil {
		return err
	}

	return render(formatter, reg.Snapshot(), cmd.OutOrStdout())
}

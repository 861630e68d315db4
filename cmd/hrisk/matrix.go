package main

import (
	"github.com/rohankatakam/healthrisk/internal/errors"
	"github.com/rohankatakam/healthrisk/internal/models"
	"github.com/rohankatakam/healthrisk/internal/output"
	"github.com/rohankatakam/healthrisk/internal/risk"
	"github.com/spf13/cobra"
)

var (
	matrixImpact     int
	matrixLikelihood int
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print the impact × likelihood risk matrix",
	Long: `Prints the 10×10 reference grid of risk levels. Pass both --impact and
--likelihood to mark a cell.`,
	Args: cobra.NoArgs,
	RunE: runMatrix,
}

func init() {
	matrixCmd.Flags().IntVar(&matrixImpact, "impact", 0, "impact score to highlight (1-10)")
	matrixCmd.Flags().IntVar(&matrixLikelihood, "likelihood", 0, "likelihood score to highlight (1-10)")
	matrixCmd.MarkFlagsRequiredTogether("impact", "likelihood")
}

func runMatrix(cmd *cobra.Command, args []string) error {
	var highlight *models.MatrixCell
	if cmd.Flags().Changed("impact") {
		r := risk.New(risk.Input{Impact: risk.MinScore, Likelihood: risk.MinScore})
		if err := r.SetImpact(matrixImpact); err != nil {
			return err
		}
		if err := r.SetLikelihood(matrixLikelihood); err != nil {
			return err
		}
		cell := r.MatrixCell()
		highlight = &cell
	}

	if err := output.FormatMatrix(cmd.OutOrStdout(), risk.Matrix(), highlight); err != nil {
		return errors.InternalError(err, "failed to render matrix")
	}
	return nil
}

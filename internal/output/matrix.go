package output

import (
	"fmt"
	"io"

	"github.com/rohankatakam/healthrisk/internal/models"
)

var levelCode = map[models.RiskLevel]string{
	models.RiskLevelLow:      "L",
	models.RiskLevelMedium:   "M",
	models.RiskLevelHigh:     "H",
	models.RiskLevelCritical: "C",
}

// FormatMatrix prints the impact-by-likelihood grid, rows top-down from the
// highest likelihood. The highlighted cell, if any, is bracketed.
func FormatMatrix(w io.Writer, grid [][]models.MatrixCell, highlight *models.MatrixCell) error {
	fmt.Fprintf(w, "Risk matrix (rows: likelihood, columns: impact)\n")

	if len(grid) == 0 {
		return nil
	}

	fmt.Fprintf(w, "%4s", "")
	for _, cell := range grid[0] {
		fmt.Fprintf(w, "%4d", cell.Impact)
	}
	fmt.Fprintln(w)

	for _, row := range grid {
		if len(row) == 0 {
			continue
		}
		fmt.Fprintf(w, "%4d", row[0].Likelihood)
		for _, cell := range row {
			code := levelCode[cell.Level]
			if highlight != nil && cell.Impact == highlight.Impact && cell.Likelihood == highlight.Likelihood {
				code = "[" + code + "]"
			}
			fmt.Fprintf(w, "%4s", code)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\nL=LOW (RPN ≤ 20)  M=MEDIUM (≤ 70)  H=HIGH (≤ 200)  C=CRITICAL (> 200)\n")
	if highlight != nil {
		fmt.Fprintf(w, "Selected: impact %d × likelihood %d = RPN %d (%s)\n",
			highlight.Impact, highlight.Likelihood, highlight.Score, highlight.Level)
	}
	return nil
}

package output

import (
	"fmt"
	"io"

	"github.com/rohankatakam/healthrisk/internal/models"
)

// QuietFormatter outputs one-line summary
type QuietFormatter struct{}

func (f *QuietFormatter) Format(snap models.Snapshot, w io.Writer) error {
	if len(snap.Assessments) == 0 {
		fmt.Fprintf(w, "No risks recorded\n")
		return nil
	}

	highest := HighestLevel(snap.Assessments)
	total := 0.0
	for _, a := range snap.Assessments {
		total += a.AnnualizedLossExpectancy
	}

	icon := "✅"
	if highest == models.RiskLevelHigh || highest == models.RiskLevelCritical {
		icon = "⚠️ "
	}

	fmt.Fprintf(w, "%s %d risks, highest %s, total ALE %s\n",
		icon, len(snap.Assessments), highest, FormatCurrency(snap.Currency, total))
	return nil
}

var levelRank = map[models.RiskLevel]int{
	models.RiskLevelLow:      0,
	models.RiskLevelMedium:   1,
	models.RiskLevelHigh:     2,
	models.RiskLevelCritical: 3,
}

// HighestLevel returns the most severe level among rows (LOW when empty)
func HighestLevel(rows []models.Assessment) models.RiskLevel {
	highest := models.RiskLevelLow
	for _, a := range rows {
		if levelRank[a.Level] > levelRank[highest] {
			highest = a.Level
		}
	}
	return highest
}

package output

import (
	"github.com/dustin/go-humanize"
)

// FormatCurrency renders an amount with thousands separators and two
// decimals, e.g. FormatCurrency("R", 10000) == "R10,000.00"
func FormatCurrency(symbol string, amount float64) string {
	if amount < 0 {
		return "-" + symbol + humanize.FormatFloat("#,###.##", -amount)
	}
	return symbol + humanize.FormatFloat("#,###.##", amount)
}

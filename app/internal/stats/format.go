package stats

import (
	"fmt"
	"strings"
)

const (
	// BarLength is the default number of cells in a progress bar.
	BarLength = 15

	filledCell = "▓"
	emptyCell  = "░"
)

// Bar is a rendered progress bar.
type Bar struct {
	Filled     int
	Length     int
	Percentage float64
}

// ProgressBar computes a bar for current out of total. The percentage is
// clamped to [0, 100] and the filled cell count is truncated, not rounded.
func ProgressBar(current, total float64, length int) Bar {
	var pct float64
	if total != 0 {
		pct = current / total * 100
	}
	pct = min(max(pct, 0), 100)
	return Bar{
		Filled:     int(float64(length) * pct / 100),
		Length:     length,
		Percentage: pct,
	}
}

// Label is the percentage with one decimal, e.g. "50.0%".
func (b Bar) Label() string {
	return fmt.Sprintf("%.1f%%", b.Percentage)
}

// Cells renders the glyphs without the label.
func (b Bar) Cells() string {
	return strings.Repeat(filledCell, b.Filled) + strings.Repeat(emptyCell, b.Length-b.Filled)
}

// String renders glyphs followed by the label.
func (b Bar) String() string {
	return b.Cells() + " " + b.Label()
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"AUD": "A$",
	"CAD": "C$",
}

// CurrencySymbol returns the symbol for an ISO currency code, "$" if unknown.
func CurrencySymbol(code string) string {
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return "$"
}

// FormatCurrency renders amount with the code's symbol and two decimals.
func FormatCurrency(amount float64, code string) string {
	return fmt.Sprintf("%s%.2f", CurrencySymbol(code), amount)
}

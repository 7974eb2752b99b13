package currency

import (
	"strings"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

const (
	thousandSep = "."
	decimalSep  = ","

	// maxFraction matches the id-ID locale default of at most three fraction digits.
	maxFraction = 3
)

// Format renders an amount with Indonesian digit grouping, e.g. 1.234.567 or
// 1.234,5. Fraction digits are kept only when non-zero, up to three.
func Format(amount decimal.Decimal) string {
	rounded := amount.Round(maxFraction)
	return accounting.FormatNumberDecimal(rounded, fractionDigits(rounded), thousandSep, decimalSep)
}

// FormatRp is Format with the "Rp " prefix used on the dashboard.
func FormatRp(amount decimal.Decimal) string {
	return "Rp " + Format(amount)
}

func fractionDigits(d decimal.Decimal) int {
	s := d.String()
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

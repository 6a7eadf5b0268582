// Package money formats integer Rupiah amounts for display.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// Format renders an amount in Rupiah with localized digit grouping,
// e.g. 2499000 -> "Rp2.499.000". Negative amounts carry the sign
// ahead of the currency prefix, e.g. -15000 -> "-Rp15.000".
func Format(amount int64) string {
	if amount < 0 {
		return "-" + Format(-amount)
	}
	return printer.Sprintf("Rp%d", amount)
}

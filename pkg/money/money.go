// Package money formats decimal amounts for display.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Format renders an amount with the symbol of the given ISO 4217 code,
// e.g. Format(decimal.NewFromInt(250), "INR") -> "₹ 250.00".
// Unknown codes fall back to "CODE 250.00".
func Format(amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %s", code, amount.StringFixed(2))
	}
	return fmt.Sprintf("%v %s", currency.Symbol(unit), amount.StringFixed(2))
}

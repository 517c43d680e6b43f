package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ToCents converts a dollar amount to integer minor units for the payment
// gateway. Amounts are carried as decimals everywhere else.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred)
}

func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

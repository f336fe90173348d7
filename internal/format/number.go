// Package format renders market values into the display strings used by the
// dashboard views.
package format

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder is rendered in place of NaN and infinite values.
const Placeholder = "-"

var printer = message.NewPrinter(language.AmericanEnglish)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// fixed2 rounds the exact binary value to 2 decimals.
func fixed2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Fixed renders value with exactly decimals fractional digits and en-US
// thousands separators, e.g. Fixed(97432.18, 2) == "97,432.18".
// Halves round away from zero.
func Fixed(value float64, decimals int) string {
	if !finite(value) {
		return Placeholder
	}
	if decimals < 0 {
		decimals = 0
	}
	rounded := decimal.NewFromFloat(value).Round(int32(decimals)).InexactFloat64()
	return printer.Sprint(number.Decimal(rounded, number.Scale(decimals)))
}

// AbbreviatedCurrency renders value with a leading "$" and a T/B/M/K suffix.
// Thresholds are checked high to low and every branch keeps 2 decimals.
func AbbreviatedCurrency(value float64) string {
	if !finite(value) {
		return Placeholder
	}

	switch {
	case value >= 1e12:
		return "$" + fixed2(value/1e12) + "T"
	case value >= 1e9:
		return "$" + fixed2(value/1e9) + "B"
	case value >= 1e6:
		return "$" + fixed2(value/1e6) + "M"
	case value >= 1e3:
		return "$" + fixed2(value/1e3) + "K"
	}
	return "$" + fixed2(value)
}

// SignedPercent renders value with 2 decimals and a "%" suffix. Non-negative
// values (zero included) carry a leading "+"; negative values keep their minus.
func SignedPercent(value float64) string {
	if !finite(value) {
		return Placeholder
	}
	return signed(value) + "%"
}

// SignedFixed renders value like Fixed with a "+" prefix when non-negative.
func SignedFixed(value float64, decimals int) string {
	if !finite(value) {
		return Placeholder
	}
	if value >= 0 {
		return "+" + Fixed(value, decimals)
	}
	return Fixed(value, decimals)
}

// USD renders "$" followed by Fixed(value, 2).
func USD(value float64) string {
	if !finite(value) {
		return Placeholder
	}
	return "$" + Fixed(value, 2)
}

// Price renders a ticker price: 4 decimals below 10, otherwise 2.
func Price(value float64) string {
	if value < 10 {
		return Fixed(value, 4)
	}
	return Fixed(value, 2)
}

// signed keeps the minus on tiny negatives that round to zero.
func signed(value float64) string {
	if value >= 0 {
		return "+" + fixed2(math.Abs(value))
	}
	return fixed2(value)
}

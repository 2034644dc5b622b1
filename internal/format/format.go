// Package format renders net-worth figures for the status bar.
//
// All functions are pure and total over float64: any value in, a
// printable string out. Percent rounding is half away from zero.
package format

import (
	"math"
	"strconv"
	"strings"

	money "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// usdFormatter renders whole-dollar amounts with thousands separators
// and no fractional digits, e.g. 1234567 -> "$1,234,567".
var usdFormatter = newUSDFormatter()

func newUSDFormatter() *money.Formatter {
	cur := money.GetCurrency(money.USD)
	return money.NewFormatter(0, cur.Decimal, cur.Thousand, cur.Grapheme, "$1")
}

// CompactUSD formats a dollar amount in the abbreviated style used for
// the Compact title, e.g. 1234567 -> "$1.2M", -500 -> "-$500".
//
// Magnitudes at or above 1000 are bucketed into K/M/B/T with one decimal
// place; a trailing ".0" is dropped so 1_000_000 renders as "$1M".
// Values below 1000 render with no decimals and no suffix.
func CompactUSD(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
	}
	abs := math.Abs(value)

	var shown float64
	var suffix string
	switch {
	case abs >= 1e12:
		shown, suffix = abs/1e12, "T"
	case abs >= 1e9:
		shown, suffix = abs/1e9, "B"
	case abs >= 1e6:
		shown, suffix = abs/1e6, "M"
	case abs >= 1e3:
		shown, suffix = abs/1e3, "K"
	default:
		shown = abs
	}

	var compact string
	if suffix != "" {
		compact = strings.TrimSuffix(strconv.FormatFloat(shown, 'f', 1, 64), ".0") + suffix
	} else {
		compact = strconv.FormatFloat(shown, 'f', 0, 64)
	}

	return sign + "$" + compact
}

// FullUSD formats a dollar amount as locale currency with thousands
// separators and zero fractional digits, e.g. 1234567 -> "$1,234,567".
// The negative convention comes from the currency formatter ("-$500").
func FullUSD(value float64) string {
	dollars := decimal.NewFromFloat(value).Round(0).IntPart()
	return usdFormatter.Format(dollars)
}

// SignedPercent rounds a percentage to the nearest integer, half away
// from zero, and prefixes "+" for non-negative results: 2.4 -> "+2%",
// -3.6 -> "-4%". Negative values carry their own minus sign.
func SignedPercent(value float64) string {
	rounded := decimal.NewFromFloat(value).Round(0).IntPart()
	if rounded >= 0 {
		return "+" + strconv.FormatInt(rounded, 10) + "%"
	}
	return strconv.FormatInt(rounded, 10) + "%"
}

// SignedDelta formats an intraday change with an explicit sign and a
// compact magnitude: 2400 -> "+$2.4K", -2400 -> "-$2.4K", 0 -> "+$0".
func SignedDelta(value float64) string {
	sign := "+"
	if value < 0 {
		sign = "-"
	}
	magnitude := strings.TrimPrefix(CompactUSD(math.Abs(value)), "$")
	return sign + "$" + magnitude
}

// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatMoney formats an amount with two decimals and thousands separators.
// e.g., 1234.5 -> "$1,234.50", -20 -> "-$20.00"
func FormatMoney(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatCompactMoney formats an amount with human-readable suffixes.
// e.g., 950 -> "$950", 1234 -> "$1.2K", 2500000 -> "$2.5M"
func FormatCompactMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("%s$%.1fB", sign, v/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%s$%.1fK", sign, v/1_000)
	default:
		return fmt.Sprintf("%s$%.0f", sign, math.Round(v))
	}
}

// FormatDelta formats a signed money amount with an explicit sign.
func FormatDelta(v float64) string {
	if v >= 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatPercent formats a value already expressed in percent.
// e.g., 30 -> "30.0%"
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatRatio formats a plain ratio with two decimals.
func FormatRatio(r float64) string {
	return fmt.Sprintf("%.2f", r)
}

// FormatMonths formats a runway in months.
func FormatMonths(m float64) string {
	if m == 1 {
		return "1.0 month"
	}
	return fmt.Sprintf("%.1f months", m)
}

// FormatScore formats a 0-100 health score.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.0f/100", score)
}

// FormatCount adds comma separators to an integer.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

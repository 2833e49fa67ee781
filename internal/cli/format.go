// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/theirongolddev/spendlog/internal/model"
)

// FormatAmount formats a money value with two decimals, thousands separators
// and the given currency prefix.
// e.g., 1234.5 -> "$1,234.50", 17.5 -> "$17.50"
func FormatAmount(d decimal.Decimal, currency string) string {
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}

	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		// Beyond int64; skip the separators.
		return sign(neg) + currency + whole + "." + frac
	}
	return sign(neg) + currency + humanize.Comma(n) + "." + frac
}

func sign(neg bool) string {
	if neg {
		return "-"
	}
	return ""
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// FormatDate renders a stored YYYY-MM-DD date as "Thu 15 Oct". Unparseable
// dates are returned as stored.
func FormatDate(date string) string {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s %02d %s", FormatDayOfWeek(int(t.Weekday())), t.Day(), t.Month().String()[:3])
}

// FormatCount pluralises a record count.
// e.g., 1 -> "1 expense", 1200 -> "1,200 expenses"
func FormatCount(n int) string {
	if n == 1 {
		return "1 expense"
	}
	return FormatNumber(int64(n)) + " expenses"
}

// Truncate shortens s to max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

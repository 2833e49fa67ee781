// Package model defines domain types for spendlog expenses and summaries.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical on-disk calendar date format.
const DateLayout = "2006-01-02"

// Expense is one persisted spending event.
type Expense struct {
	ID       int64
	Amount   decimal.Decimal
	Category string
	Note     string // empty means absent
	Date     string // YYYY-MM-DD, set once at creation
}

// HasNote reports whether the expense carries a note.
func (e Expense) HasNote() bool {
	return e.Note != ""
}

// Day parses Date as a calendar day at midnight in loc.
// ok is false when the date is missing or malformed.
func (e Expense) Day(loc *time.Location) (time.Time, bool) {
	if e.Date == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(DateLayout, e.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// FormatDate renders t as a canonical calendar date in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

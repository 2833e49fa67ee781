package pipeline

import (
	"time"

	"github.com/theirongolddev/spendlog/internal/model"
)

// startOfDay truncates t to local midnight in t's location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns Monday 00:00 of the week containing now.
func WeekStart(now time.Time) time.Time {
	today := startOfDay(now)
	offset := (int(today.Weekday()) + 6) % 7 // Monday = 0
	return today.AddDate(0, 0, -offset)
}

// Window returns the inclusive bounds of filter at now. Both are zero for FilterAll.
// until is the last instant of the final day.
func Window(filter model.Filter, now time.Time) (since, until time.Time) {
	switch filter {
	case model.FilterWeek:
		since = WeekStart(now)
		until = since.AddDate(0, 0, 7).Add(-time.Nanosecond)
	case model.FilterMonth:
		since = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		until = since.AddDate(0, 1, 0).Add(-time.Nanosecond)
	}
	return since, until
}

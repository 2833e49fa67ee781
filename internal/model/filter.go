package model

import (
	"errors"
	"fmt"
	"strings"
)

// Filter selects the time window that participates in aggregation.
type Filter int

const (
	FilterAll Filter = iota
	FilterWeek
	FilterMonth
)

// ErrUnknownFilter is returned by ParseFilter for names other than all, week, month.
var ErrUnknownFilter = errors.New("unknown filter")

// Filters lists every selector in display order.
var Filters = []Filter{FilterAll, FilterWeek, FilterMonth}

// String returns the config/flag name of the filter.
func (f Filter) String() string {
	switch f {
	case FilterWeek:
		return "week"
	case FilterMonth:
		return "month"
	default:
		return "all"
	}
}

// Title is the short tab label for the filter.
func (f Filter) Title() string {
	switch f {
	case FilterWeek:
		return "This Week"
	case FilterMonth:
		return "This Month"
	default:
		return "All"
	}
}

// Label is the heading shown above the filtered total.
func (f Filter) Label() string {
	switch f {
	case FilterWeek:
		return "Total This Week"
	case FilterMonth:
		return "Total This Month"
	default:
		return "All Time Total"
	}
}

// Next cycles All -> Week -> Month -> All.
func (f Filter) Next() Filter {
	return Filters[(int(f)+1)%len(Filters)]
}

// ParseFilter parses a filter name, case-insensitively.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "week":
		return FilterWeek, nil
	case "month":
		return FilterMonth, nil
	}
	return FilterAll, fmt.Errorf("%w: %q (want all, week or month)", ErrUnknownFilter, s)
}

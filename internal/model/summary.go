package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UncategorizedLabel buckets expenses whose category is empty.
const UncategorizedLabel = "Uncategorized"

// CategoryTotal is the summed amount for one category.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
	Count    int
}

// Summary is the derived view of a record set under one filter.
type Summary struct {
	Filter     Filter
	Label      string
	Expenses   []Expense // filtered, order preserved
	Total      decimal.Decimal
	ByCategory []CategoryTotal
}

// Empty reports whether no expense matched the filter.
func (s Summary) Empty() bool {
	return len(s.Expenses) == 0
}

// CategoryMap returns the category totals keyed by name.
func (s Summary) CategoryMap() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(s.ByCategory))
	for _, c := range s.ByCategory {
		m[c.Category] = c.Amount
	}
	return m
}

// DailyTotal holds the spend for a single calendar day.
type DailyTotal struct {
	Date  time.Time
	Total decimal.Decimal
	Count int
}

// BudgetStatus compares this month's spend with a configured limit.
type BudgetStatus struct {
	Limit       decimal.Decimal
	Spent       decimal.Decimal
	Remaining   decimal.Decimal
	UsedPercent float64 // 0-1, may exceed 1 when over budget
	DaysLeft    int
}

// Over reports whether spend exceeds the limit.
func (b BudgetStatus) Over() bool {
	return b.Spent.GreaterThan(b.Limit)
}

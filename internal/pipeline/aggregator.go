// Package pipeline filters expenses by time window and computes totals.
package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/spendlog/internal/model"

	"github.com/shopspring/decimal"
)

// FilterByWindow returns the expenses that fall in filter's window at now.
// FilterAll returns the input slice unchanged. Undated records never match Week or Month.
func FilterByWindow(expenses []model.Expense, filter model.Filter, now time.Time) []model.Expense {
	if filter == model.FilterAll {
		return expenses
	}

	since, until := Window(filter, now)
	loc := now.Location()

	var result []model.Expense
	for _, e := range expenses {
		day, ok := e.Day(loc)
		if !ok {
			continue
		}
		if day.Before(since) || day.After(until) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// Total sums the amounts of expenses.
func Total(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// AggregateCategories sums amounts per category, largest first.
// Blank categories are reported as model.UncategorizedLabel.
func AggregateCategories(expenses []model.Expense) []model.CategoryTotal {
	catMap := make(map[string]*model.CategoryTotal)

	for _, e := range expenses {
		name := strings.TrimSpace(e.Category)
		if name == "" {
			name = model.UncategorizedLabel
		}
		ct, ok := catMap[name]
		if !ok {
			ct = &model.CategoryTotal{Category: name, Amount: decimal.Zero}
			catMap[name] = ct
		}
		ct.Amount = ct.Amount.Add(e.Amount)
		ct.Count++
	}

	cats := make([]model.CategoryTotal, 0, len(catMap))
	for _, ct := range catMap {
		cats = append(cats, *ct)
	}
	sort.Slice(cats, func(i, j int) bool {
		if c := cats[i].Amount.Cmp(cats[j].Amount); c != 0 {
			return c > 0
		}
		return cats[i].Category < cats[j].Category
	})
	return cats
}

// Aggregate derives the filtered list, total, category totals and label.
func Aggregate(expenses []model.Expense, filter model.Filter, now time.Time) model.Summary {
	filtered := FilterByWindow(expenses, filter, now)
	return model.Summary{
		Filter:     filter,
		Label:      filter.Label(),
		Expenses:   filtered,
		Total:      Total(filtered),
		ByCategory: AggregateCategories(filtered),
	}
}

// AggregateDays computes per-day totals for the expenses in filter's window, newest first.
// Undated records are skipped.
func AggregateDays(expenses []model.Expense, filter model.Filter, now time.Time) []model.DailyTotal {
	filtered := FilterByWindow(expenses, filter, now)
	loc := now.Location()

	dayMap := make(map[string]*model.DailyTotal)
	for _, e := range filtered {
		day, ok := e.Day(loc)
		if !ok {
			continue
		}
		key := model.FormatDate(day)
		dt, ok := dayMap[key]
		if !ok {
			dt = &model.DailyTotal{Date: day, Total: decimal.Zero}
			dayMap[key] = dt
		}
		dt.Total = dt.Total.Add(e.Amount)
		dt.Count++
	}

	days := make([]model.DailyTotal, 0, len(dayMap))
	for _, dt := range dayMap {
		days = append(days, *dt)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	return days
}

// FilterByCategory returns expenses whose category contains substr, ignoring case.
func FilterByCategory(expenses []model.Expense, substr string) []model.Expense {
	if substr == "" {
		return expenses
	}
	var result []model.Expense
	for _, e := range expenses {
		if containsIgnoreCase(e.Category, substr) {
			result = append(result, e)
		}
	}
	return result
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

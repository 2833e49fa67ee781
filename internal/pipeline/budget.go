package pipeline

import (
	"time"

	"github.com/theirongolddev/spendlog/internal/model"

	"github.com/shopspring/decimal"
)

// Budget compares this month's spend against limit.
func Budget(expenses []model.Expense, limit decimal.Decimal, now time.Time) model.BudgetStatus {
	spent := Total(FilterByWindow(expenses, model.FilterMonth, now))

	_, monthEnd := Window(model.FilterMonth, now)
	daysLeft := monthEnd.Day() - now.Day()

	status := model.BudgetStatus{
		Limit:     limit,
		Spent:     spent,
		Remaining: limit.Sub(spent),
		DaysLeft:  daysLeft,
	}
	if limit.IsPositive() {
		status.UsedPercent = spent.Div(limit).InexactFloat64()
	}
	return status
}

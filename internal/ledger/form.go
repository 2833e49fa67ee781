package ledger

import (
	"errors"
	"math"
	"strings"

	"github.com/theirongolddev/spendlog/internal/model"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("amount must be a number greater than zero")
	ErrEmptyCategory = errors.New("category is required")
)

// Form holds the raw text of the add/edit inputs.
type Form struct {
	Amount   string
	Category string
	Note     string
}

// Draft is a validated Form ready for storage.
type Draft struct {
	Amount   decimal.Decimal
	Category string
	Note     string // empty means absent
}

// IsZero reports whether every field is blank.
func (f Form) IsZero() bool {
	return f == Form{}
}

// FormFromExpense preloads a Form with the editable fields of e.
func FormFromExpense(e model.Expense) Form {
	return Form{
		Amount:   e.Amount.String(),
		Category: e.Category,
		Note:     e.Note,
	}
}

// ParseAmount accepts a decimal string strictly greater than zero.
// The amount is stored as REAL, so the float64 it becomes must also be
// finite and positive.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	if f := d.InexactFloat64(); math.IsInf(f, 0) || math.IsNaN(f) || f <= 0 {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseForm validates f. The amount is checked before the category.
func ParseForm(f Form) (Draft, error) {
	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return Draft{}, err
	}
	category := strings.TrimSpace(f.Category)
	if category == "" {
		return Draft{}, ErrEmptyCategory
	}
	return Draft{
		Amount:   amount,
		Category: category,
		Note:     strings.TrimSpace(f.Note),
	}, nil
}

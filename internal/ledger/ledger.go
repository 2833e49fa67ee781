// Package ledger implements the expense commands: a validation gate in front of
// the store, followed by a full reload of the record set.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	applog "github.com/theirongolddev/spendlog/internal/log"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/pipeline"

	"github.com/shopspring/decimal"
)

// Storage is the subset of the store the commands need.
type Storage interface {
	ListAll(ctx context.Context) ([]model.Expense, error)
	Insert(ctx context.Context, amount decimal.Decimal, category, note, date string) (int64, error)
	Update(ctx context.Context, id int64, amount decimal.Decimal, category, note string) error
	Delete(ctx context.Context, id int64) error
}

// State is everything the screen shows. Handlers never mutate their input.
type State struct {
	Form      Form
	Editing   bool
	EditingID int64
	Filter    model.Filter
	Expenses  []model.Expense // full set, newest first
}

// Service runs commands against a Storage.
type Service struct {
	store Storage
	clock func() time.Time
	loc   *time.Location
	log   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for "today" and filter windows.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithLocation sets the zone in which calendar dates are computed.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService creates a Service backed by store.
func NewService(store Storage, opts ...Option) *Service {
	s := &Service{
		store: store,
		clock: time.Now,
		loc:   time.Local,
		log:   applog.WithComponent(nil, applog.ComponentLedger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the current time in the service's location.
func (s *Service) Now() time.Time {
	return s.clock().In(s.loc)
}

// Today returns the current calendar date as YYYY-MM-DD.
func (s *Service) Today() string {
	return model.FormatDate(s.Now())
}

// Reload replaces st.Expenses with the full stored set.
func (s *Service) Reload(ctx context.Context, st State) (State, error) {
	expenses, err := s.store.ListAll(ctx)
	if err != nil {
		return st, fmt.Errorf("reloading expenses: %w", err)
	}
	st.Expenses = expenses
	s.log.DebugContext(ctx, "expenses reloaded", applog.FieldOperation, applog.OpList,
		applog.FieldCount, len(expenses), applog.FieldFilter, st.Filter.String())
	return st, nil
}

func (s *Service) rejected(ctx context.Context, op string, err error) {
	s.log.DebugContext(ctx, "command ignored", applog.FieldOperation, op, applog.FieldReason, err.Error())
}

// Add validates the form and inserts a new expense dated today.
// Invalid input returns st unchanged and a nil error.
func (s *Service) Add(ctx context.Context, st State) (State, error) {
	draft, err := ParseForm(st.Form)
	if err != nil {
		s.rejected(ctx, applog.OpAdd, err)
		return st, nil
	}

	date := s.Today()
	id, err := s.store.Insert(ctx, draft.Amount, draft.Category, draft.Note, date)
	if err != nil {
		return st, fmt.Errorf("adding expense: %w", err)
	}
	s.log.InfoContext(ctx, "expense added", applog.FieldID, id, applog.FieldCategory, draft.Category, applog.FieldDate, date)

	st.Form = Form{}
	return s.Reload(ctx, st)
}

// StartEditing loads e into the form and remembers its id.
func (s *Service) StartEditing(st State, e model.Expense) State {
	st.Form = FormFromExpense(e)
	st.Editing = true
	st.EditingID = e.ID
	return st
}

// SaveEdit validates the form and rewrites the remembered expense.
// Without a remembered id, or with invalid input, st is returned unchanged.
func (s *Service) SaveEdit(ctx context.Context, st State) (State, error) {
	if !st.Editing {
		s.rejected(ctx, applog.OpUpdate, errors.New("no expense selected"))
		return st, nil
	}
	draft, err := ParseForm(st.Form)
	if err != nil {
		s.rejected(ctx, applog.OpUpdate, err)
		return st, nil
	}

	if err := s.store.Update(ctx, st.EditingID, draft.Amount, draft.Category, draft.Note); err != nil {
		return st, fmt.Errorf("saving expense %d: %w", st.EditingID, err)
	}
	s.log.InfoContext(ctx, "expense updated", applog.FieldID, st.EditingID, applog.FieldCategory, draft.Category)

	st = s.CancelEdit(st)
	return s.Reload(ctx, st)
}

// CancelEdit forgets the remembered id and clears the form.
func (s *Service) CancelEdit(st State) State {
	st.Editing = false
	st.EditingID = 0
	st.Form = Form{}
	return st
}

// Delete removes the expense with id and reloads.
func (s *Service) Delete(ctx context.Context, st State, id int64) (State, error) {
	if err := s.store.Delete(ctx, id); err != nil {
		return st, fmt.Errorf("deleting expense %d: %w", id, err)
	}
	s.log.InfoContext(ctx, "expense deleted", applog.FieldID, id)
	return s.Reload(ctx, st)
}

// SetFilter changes the active time window.
func (s *Service) SetFilter(st State, f model.Filter) State {
	st.Filter = f
	s.log.Debug("filter changed", applog.FieldFilter, f.String())
	return st
}

// View computes the derived summary for st at the current time.
func (s *Service) View(st State) model.Summary {
	return pipeline.Aggregate(st.Expenses, st.Filter, s.Now())
}

// Find returns the loaded expense with id.
func (st State) Find(id int64) (model.Expense, bool) {
	for _, e := range st.Expenses {
		if e.ID == id {
			return e, true
		}
	}
	return model.Expense{}, false
}

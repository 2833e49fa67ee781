// Package store provides the SQLite-backed expense table.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	applog "github.com/theirongolddev/spendlog/internal/log"
	"github.com/theirongolddev/spendlog/internal/model"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver
)

// Store owns the expenses table. It is the single source of truth for records.
type Store struct {
	db   *sql.DB
	path string
	log  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for mutation tracing.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func dsn(dbPath string) string {
	return dbPath + "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)"
}

// Open opens or creates the expense database at the given path and ensures its schema.
func Open(ctx context.Context, dbPath string, opts ...Option) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	s := &Store{db: db, path: dbPath, log: applog.WithComponent(nil, applog.ComponentStorage)}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	s.log.DebugContext(ctx, "database opened", applog.FieldPath, dbPath)
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// EnsureSchema creates the expenses table if it is absent. Safe to call repeatedly.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := runMigrations(s.path, s.log); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}

// ListAll returns every expense, newest date first, then newest insert first.
func (s *Store) ListAll(ctx context.Context) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, amount, category, note, date FROM expenses ORDER BY date DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Expense
	for rows.Next() {
		var (
			e        model.Expense
			amount   any
			category sql.NullString
			note     sql.NullString
			date     sql.NullString
		)
		if err := rows.Scan(&e.ID, &amount, &category, &note, &date); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}
		e.Amount = amountFromColumn(amount)
		e.Category = category.String
		e.Note = note.String
		e.Date = date.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// amountFromColumn converts whatever SQLite returned for amount into a decimal.
// Values that are not numeric or not finite load as zero.
func amountFromColumn(v any) decimal.Decimal {
	switch x := v.(type) {
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case int64:
		return decimal.NewFromInt(x)
	case []byte:
		return parseAmountText(string(x))
	case string:
		return parseAmountText(x)
	default:
		return decimal.Zero
	}
}

func parseAmountText(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func nullableNote(note string) sql.NullString {
	return sql.NullString{String: note, Valid: note != ""}
}

// Insert appends a new expense and returns its id.
func (s *Store) Insert(ctx context.Context, amount decimal.Decimal, category, note, date string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO expenses (amount, category, note, date) VALUES (?, ?, ?, ?)",
		amount.InexactFloat64(), category, nullableNote(note), date)
	if err != nil {
		return 0, fmt.Errorf("inserting expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}
	s.log.DebugContext(ctx, "expense inserted", applog.FieldID, id, applog.FieldCategory, category, applog.FieldDate, date)
	return id, nil
}

// Update rewrites amount, category and note of the expense with the given id.
// An unknown id is not an error.
func (s *Store) Update(ctx context.Context, id int64, amount decimal.Decimal, category, note string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET amount = ?, category = ?, note = ? WHERE id = ?",
		amount.InexactFloat64(), category, nullableNote(note), id)
	if err != nil {
		return fmt.Errorf("updating expense %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	s.log.DebugContext(ctx, "expense updated", applog.FieldID, id, applog.FieldRows, n)
	return nil
}

// Delete removes the expense with the given id. An unknown id is not an error.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting expense %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	s.log.DebugContext(ctx, "expense deleted", applog.FieldID, id, applog.FieldRows, n)
	return nil
}

// Count returns the number of stored expenses.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM expenses").Scan(&count)
	return count, err
}

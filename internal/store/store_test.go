package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "expenses.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustInsert(t *testing.T, s *Store, amount, category, note, date string) int64 {
	t.Helper()
	id, err := s.Insert(context.Background(), decimal.RequireFromString(amount), category, note, date)
	if err != nil {
		t.Fatalf("Insert(%s, %s): %v", amount, category, err)
	}
	return id
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("third EnsureSchema: %v", err)
	}

	var tables int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'expenses'").Scan(&tables)
	if err != nil {
		t.Fatal(err)
	}
	if tables != 1 {
		t.Fatalf("expenses tables = %d, want 1", tables)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	mustInsert(t, s, "3.20", "Coffee", "", "2026-10-01")
	_ = s.Close()

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s.Close() }()

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("Count = %d, want 1", n)
	}
}

func TestListAll_OrderByDateThenID(t *testing.T) {
	s := openTestStore(t)

	a := mustInsert(t, s, "1", "A", "", "2026-10-10")
	b := mustInsert(t, s, "2", "B", "", "2026-10-12")
	c := mustInsert(t, s, "3", "C", "", "2026-10-10")
	d := mustInsert(t, s, "4", "D", "", "2026-09-30")

	got, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := []int64{b, c, a, d}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: id = %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestInsert_NoteAbsentWhenEmpty(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id := mustInsert(t, s, "12.50", "Food", "", "2026-10-15")

	var isNull bool
	if err := s.db.QueryRowContext(ctx, "SELECT note IS NULL FROM expenses WHERE id = ?", id).Scan(&isNull); err != nil {
		t.Fatal(err)
	}
	if !isNull {
		t.Fatal("empty note should be stored as NULL")
	}

	rows, err := s.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].HasNote() {
		t.Fatalf("Note = %q, want absent", rows[0].Note)
	}
	if !rows[0].Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("Amount = %s, want 12.5", rows[0].Amount)
	}
}

func TestUpdate_RewritesMutableFieldsOnly(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id := mustInsert(t, s, "10.00", "Food", "lunch", "2026-10-01")
	if err := s.Update(ctx, id, decimal.RequireFromString("25.00"), "Dining", ""); err != nil {
		t.Fatalf("Update: %v", err)
	}

	rows, err := s.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	got := rows[0]
	if got.ID != id || got.Category != "Dining" || got.HasNote() || got.Date != "2026-10-01" {
		t.Fatalf("unexpected row after update: %+v", got)
	}
	if !got.Amount.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("Amount = %s, want 25", got.Amount)
	}
}

func TestUpdateAndDelete_MissingIDIsNoop(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	mustInsert(t, s, "5", "Food", "", "2026-10-01")

	if err := s.Update(ctx, 999, decimal.NewFromInt(1), "X", ""); err != nil {
		t.Fatalf("Update missing id: %v", err)
	}
	if err := s.Delete(ctx, 999); err != nil {
		t.Fatalf("Delete missing id: %v", err)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("Count = %d, want 1", n)
	}
}

func TestDelete_RemovesRow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	keep := mustInsert(t, s, "5", "Food", "", "2026-10-01")
	drop := mustInsert(t, s, "7", "Fuel", "", "2026-10-02")

	if err := s.Delete(ctx, drop); err != nil {
		t.Fatal(err)
	}
	rows, err := s.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].ID != keep {
		t.Fatalf("rows after delete = %+v", rows)
	}
}

func TestListAll_NonNumericAmountLoadsAsZero(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO expenses (amount, category, date) VALUES ('abc', 'Junk', '2026-10-01')"); err != nil {
		t.Fatal(err)
	}

	rows, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll should tolerate bad amounts: %v", err)
	}
	if len(rows) != 1 || !rows[0].Amount.IsZero() {
		t.Fatalf("rows = %+v, want one zero-amount row", rows)
	}
}

func TestListAll_InfiniteAmountLoadsAsZero(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO expenses (amount, category, date) VALUES (?, 'Huge', '2026-10-01')", math.Inf(1)); err != nil {
		t.Fatal(err)
	}
	good := mustInsert(t, s, "5", "Food", "", "2026-10-02")

	rows, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != good {
		t.Fatalf("rows = %+v", rows)
	}
	if !rows[1].Amount.IsZero() {
		t.Fatalf("infinite amount loaded as %s, want 0", rows[1].Amount)
	}
}

func TestAmountFromColumn(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{float64(12.5), "12.5"},
		{int64(7), "7"},
		{"3.25", "3.25"},
		{[]byte(" 4 "), "4"},
		{"n/a", "0"},
		{nil, "0"},
		{math.Inf(1), "0"},
		{math.Inf(-1), "0"},
		{math.NaN(), "0"},
	}
	for _, tc := range cases {
		got := amountFromColumn(tc.in)
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("amountFromColumn(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

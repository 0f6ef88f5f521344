package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"bilancio/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound reports that the targeted row does not exist in the selected
// variant's table. The other table is never consulted.
var ErrNotFound = errors.New("transaction not found")

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert adds one row to the variant's table and returns the assigned id.
// The date text is stored exactly as given.
func (r *SQLiteRepository) Insert(ctx context.Context, kind core.Kind, date string, amount core.Money, note string) (int64, error) {
	id, err := r.queries.CreateTransaction(ctx, kind, date, amount.Cents, sql.NullString{String: note, Valid: true})
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", kind, err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"kind", kind,
		"id", id,
		"date", date,
		"amount_cents", amount.Cents)

	return id, nil
}

// Delete removes the row with the given id from the variant's table.
// A missing row yields ErrNotFound, repeatedly so.
func (r *SQLiteRepository) Delete(ctx context.Context, kind core.Kind, id int64) error {
	affected, err := r.queries.DeleteTransaction(ctx, kind, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted", "kind", kind, "id", id)
	return nil
}

// ListByKind reads every row of one variant table in insertion order.
func (r *SQLiteRepository) ListByKind(ctx context.Context, kind core.Kind) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}

	items := make([]core.Transaction, len(rows))
	for i, row := range rows {
		items[i] = toTransaction(kind, row)
	}
	return items, nil
}

// SumMonth totals the variant's amounts for one calendar month. Months with
// no rows sum to zero.
func (r *SQLiteRepository) SumMonth(ctx context.Context, kind core.Kind, year, month int) (core.Money, error) {
	yearMonth := fmt.Sprintf("%04d-%02d", year, month)
	total, err := r.queries.SumMonth(ctx, kind, yearMonth)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum %s for %s: %w", kind, yearMonth, err)
	}
	return core.Money{Cents: total}, nil
}

func toTransaction(kind core.Kind, row TransactionRow) core.Transaction {
	tx := core.Transaction{
		ID:      row.ID,
		Kind:    kind,
		RawDate: row.Date,
		Amount:  core.Money{Cents: row.AmountCents},
	}
	// Date stays zero when the stored text isn't a canonical date.
	if t, err := time.Parse(core.DateLayout, row.Date); err == nil {
		tx.Date = t
	}
	if row.Category.Valid {
		c := row.Category.String
		tx.Category = &c
	}
	if row.Note.Valid {
		n := row.Note.String
		tx.Note = &n
	}
	return tx
}

package storage

import (
	"context"
	"database/sql"
	"fmt"

	"bilancio/internal/core"
)

// DBTX is the subset of *sql.DB the query layer needs.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// TransactionRow mirrors the column shape shared by both variant tables.
type TransactionRow struct {
	ID          int64
	Date        string
	AmountCents int64
	Category    sql.NullString
	Note        sql.NullString
}

// tableFor resolves the variant table name. The switch is exhaustive over
// the closed Kind set, so no user input ever reaches the SQL text.
func tableFor(kind core.Kind) string {
	switch kind {
	case core.KindIncome:
		return "income"
	case core.KindExpense:
		return "expense"
	default:
		panic("storage: unknown transaction kind " + string(kind))
	}
}

func (q *Queries) CreateTransaction(ctx context.Context, kind core.Kind, date string, amountCents int64, note sql.NullString) (int64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (date, amount_cents, note) VALUES (?, ?, ?)`, tableFor(kind))
	res, err := q.db.ExecContext(ctx, query, date, amountCents, note)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (q *Queries) DeleteTransaction(ctx context.Context, kind core.Kind, id int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, tableFor(kind))
	res, err := q.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) ListTransactions(ctx context.Context, kind core.Kind) ([]TransactionRow, error) {
	query := fmt.Sprintf(`SELECT id, date, amount_cents, category, note FROM %s`, tableFor(kind))
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []TransactionRow
	for rows.Next() {
		var r TransactionRow
		if err := rows.Scan(&r.ID, &r.Date, &r.AmountCents, &r.Category, &r.Note); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

func (q *Queries) SumMonth(ctx context.Context, kind core.Kind, yearMonth string) (int64, error) {
	query := fmt.Sprintf(`SELECT COALESCE(SUM(amount_cents), 0) FROM %s WHERE strftime('%%Y-%%m', date) = ?`, tableFor(kind))
	var total int64
	err := q.db.QueryRowContext(ctx, query, yearMonth).Scan(&total)
	return total, err
}

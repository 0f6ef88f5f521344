// Package services holds the business logic that mediates between the HTTP
// surface and the record store.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"bilancio/internal/core"
	"bilancio/internal/storage"
)

// TransactionService mediates all reads and writes against the two variant
// tables and presents a unified transaction view.
type TransactionService struct {
	repo *storage.SQLiteRepository
}

func NewTransactionService(repo *storage.SQLiteRepository) *TransactionService {
	return &TransactionService{repo: repo}
}

// Create inserts one transaction into the variant's table. An empty date
// defaults to today; a non-empty date must be canonical YYYY-MM-DD text.
func (s *TransactionService) Create(ctx context.Context, kind core.Kind, amount core.Money, note, date string) (int64, error) {
	if date == "" {
		date = time.Now().Format(core.DateLayout)
	} else if _, err := time.Parse(core.DateLayout, date); err != nil {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidDate, date)
	}

	id, err := s.repo.Insert(ctx, kind, date, amount, note)
	if err != nil {
		return 0, fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction created",
		"kind", kind,
		"id", id,
		"amount_cents", amount.Cents,
		"date", date)

	return id, nil
}

// Delete removes one transaction by (kind, id). The lookup never crosses
// into the other variant's table; a missing row is storage.ErrNotFound and
// repeating the call yields the same result.
func (s *TransactionService) Delete(ctx context.Context, kind core.Kind, id int64) error {
	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction deleted", "kind", kind, "id", id)
	return nil
}

// List returns every transaction of both variants in one sequence, sorted
// descending by the *stored date text*, not the parsed date. The sort is
// stable over the concatenation order (all incomes before all expenses), so
// ties keep incomes first. Full scan, no pagination.
func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	all, err := s.merged(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].RawDate > all[j].RawDate
	})
	return all, nil
}

// MonthlySummary sums both variants over one calendar month. Months with no
// rows total zero; the balance is exact to the cent.
func (s *TransactionService) MonthlySummary(ctx context.Context, year, month int) (core.MonthlySummary, error) {
	income, err := s.repo.SumMonth(ctx, core.KindIncome, year, month)
	if err != nil {
		return core.MonthlySummary{}, fmt.Errorf("sum income: %w", err)
	}
	expense, err := s.repo.SumMonth(ctx, core.KindExpense, year, month)
	if err != nil {
		return core.MonthlySummary{}, fmt.Errorf("sum expense: %w", err)
	}

	return core.MonthlySummary{
		Year:    year,
		Month:   month,
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}, nil
}

// ListChronological returns the same merged set as List but ordered by the
// parsed date, newest first. The spreadsheet export depends on this ordering
// while the list endpoint keeps its textual one; the two are deliberately
// distinct contracts.
func (s *TransactionService) ListChronological(ctx context.Context) ([]core.Transaction, error) {
	all, err := s.merged(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date.After(all[j].Date)
	})
	return all, nil
}

func (s *TransactionService) merged(ctx context.Context) ([]core.Transaction, error) {
	incomes, err := s.repo.ListByKind(ctx, core.KindIncome)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	expenses, err := s.repo.ListByKind(ctx, core.KindExpense)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	all := make([]core.Transaction, 0, len(incomes)+len(expenses))
	all = append(all, incomes...)
	all = append(all, expenses...)
	return all, nil
}

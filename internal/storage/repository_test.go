package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"bilancio/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestInsertAndListByKind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Insert(ctx, core.KindIncome, "2024-06-01", core.Money{Cents: 10000}, "salary")
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	items, err := repo.ListByKind(ctx, core.KindIncome)
	require.NoError(t, err)
	require.Len(t, items, 1)

	tx := items[0]
	require.Equal(t, int64(1), tx.ID)
	require.Equal(t, core.KindIncome, tx.Kind)
	require.Equal(t, "2024-06-01", tx.RawDate)
	require.False(t, tx.Date.IsZero())
	require.Equal(t, int64(10000), tx.Amount.Cents)
	require.NotNil(t, tx.Note)
	require.Equal(t, "salary", *tx.Note)
	require.Nil(t, tx.Category)

	// The other variant's table stays empty.
	expenses, err := repo.ListByKind(ctx, core.KindExpense)
	require.NoError(t, err)
	require.Empty(t, expenses)
}

func TestIDsAreScopedPerVariant(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	incomeID, err := repo.Insert(ctx, core.KindIncome, "2024-06-01", core.Money{Cents: 100}, "")
	require.NoError(t, err)
	expenseID, err := repo.Insert(ctx, core.KindExpense, "2024-06-02", core.Money{Cents: 200}, "")
	require.NoError(t, err)

	// Same id in both tables, distinct entities.
	require.Equal(t, incomeID, expenseID)

	require.NoError(t, repo.Delete(ctx, core.KindIncome, incomeID))
	expenses, err := repo.ListByKind(ctx, core.KindExpense)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
}

func TestDeleteNotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Insert(ctx, core.KindIncome, "2024-06-01", core.Money{Cents: 100}, "")
	require.NoError(t, err)

	// Deleting an expense id that only exists as an income is NotFound,
	// never a cross-variant deletion.
	err = repo.Delete(ctx, core.KindExpense, id)
	require.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, repo.Delete(ctx, core.KindIncome, id))
	err = repo.Delete(ctx, core.KindIncome, id)
	require.True(t, errors.Is(err, ErrNotFound))
	// Repeating still yields NotFound, no error amplification.
	err = repo.Delete(ctx, core.KindIncome, id)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestSumMonth(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, core.KindIncome, "2024-06-01", core.Money{Cents: 10000}, "")
	require.NoError(t, err)
	_, err = repo.Insert(ctx, core.KindIncome, "2024-06-30", core.Money{Cents: 2550}, "")
	require.NoError(t, err)
	_, err = repo.Insert(ctx, core.KindIncome, "2024-07-01", core.Money{Cents: 99999}, "")
	require.NoError(t, err)

	total, err := repo.SumMonth(ctx, core.KindIncome, 2024, 6)
	require.NoError(t, err)
	require.Equal(t, int64(12550), total.Cents)

	// Empty month sums to zero, not an error.
	total, err = repo.SumMonth(ctx, core.KindExpense, 2024, 6)
	require.NoError(t, err)
	require.Equal(t, int64(0), total.Cents)
}

func TestNonCanonicalDateTextSurvivesRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, core.KindIncome, "June 02, 2024", core.Money{Cents: 100}, "")
	require.NoError(t, err)

	items, err := repo.ListByKind(ctx, core.KindIncome)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "June 02, 2024", items[0].RawDate)
	require.True(t, items[0].Date.IsZero())
}

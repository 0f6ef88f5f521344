package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bilancio/internal/core"
)

type fakeLister struct {
	txs []core.Transaction
	err error
}

func (f fakeLister) ListChronological(ctx context.Context) ([]core.Transaction, error) {
	return f.txs, f.err
}

func strPtr(s string) *string { return &s }

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(core.DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestBuildWorkbook(t *testing.T) {
	exporter := NewExcelExporter(fakeLister{txs: []core.Transaction{
		{
			ID:      2,
			Kind:    core.KindExpense,
			Date:    mustDate(t, "2024-06-15"),
			RawDate: "2024-06-15",
			Amount:  core.Money{Cents: 4000},
			Note:    strPtr("dinner"),
		},
		{
			ID:      1,
			Kind:    core.KindIncome,
			Date:    mustDate(t, "2024-06-01"),
			RawDate: "2024-06-01",
			Amount:  core.Money{Cents: 10000},
			Note:    strPtr("salary"),
		},
	}})

	file, err := exporter.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, "transactions.xlsx", file.Name)
	require.Equal(t, ContentType, file.ContentType)
	require.NotEmpty(t, file.Data)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 records

	require.Equal(t, []string{"Date", "Type", "Amount", "Description/Note"}, rows[0])
	// Most recent date first.
	require.Equal(t, []string{"2024-06-15", "Expense", "40.00", "dinner"}, rows[1])
	require.Equal(t, []string{"2024-06-01", "Income", "100.00", "salary"}, rows[2])
}

func TestBuildRendersAbsentDateAndNoteAsEmpty(t *testing.T) {
	exporter := NewExcelExporter(fakeLister{txs: []core.Transaction{
		{
			ID:      1,
			Kind:    core.KindIncome,
			RawDate: "June 02, 2024", // unparseable, Date stays zero
			Amount:  core.Money{Cents: 100},
		},
	}})

	file, err := exporter.Build(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	date, err := f.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	require.Equal(t, "", date)
	kind, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	require.Equal(t, "Income", kind)
	note, err := f.GetCellValue(sheetName, "D2")
	require.NoError(t, err)
	require.Equal(t, "", note)
}

func TestBuildEmptySetStillHasHeader(t *testing.T) {
	exporter := NewExcelExporter(fakeLister{})

	file, err := exporter.Build(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

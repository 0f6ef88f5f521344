// Package export materializes the merged transaction set into a spreadsheet
// document.
package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"bilancio/internal/core"
)

const (
	FileName    = "transactions.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetName = "Transactions"
)

// File is a built spreadsheet payload with its suggested filename and MIME
// type.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// TransactionLister supplies the export's row set, ordered by true
// chronological date descending.
type TransactionLister interface {
	ListChronological(ctx context.Context) ([]core.Transaction, error)
}

type ExcelExporter struct {
	lister TransactionLister
}

func NewExcelExporter(lister TransactionLister) *ExcelExporter {
	return &ExcelExporter{lister: lister}
}

// Build renders the entire transaction set into an XLSX workbook with a
// fixed header row. No pagination; every row is always included.
func (e *ExcelExporter) Build(ctx context.Context) (File, error) {
	txs, err := e.lister.ListChronological(ctx)
	if err != nil {
		return File{}, fmt.Errorf("list transactions: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return File{}, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"Date", "Type", "Amount", "Description/Note"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return File{}, fmt.Errorf("write header: %w", err)
		}
	}

	for idx, tx := range txs {
		row := idx + 2

		dateStr := ""
		if !tx.Date.IsZero() {
			dateStr = tx.Date.Format(core.DateLayout)
		}
		note := ""
		if tx.Note != nil {
			note = *tx.Note
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), dateStr)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), tx.Kind.Label())
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), tx.Amount.String())
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), note)
	}

	f.SetColWidth(sheetName, "A", "A", 15)
	f.SetColWidth(sheetName, "B", "B", 10)
	f.SetColWidth(sheetName, "C", "C", 15)
	f.SetColWidth(sheetName, "D", "D", 30)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return File{}, fmt.Errorf("write workbook: %w", err)
	}

	slog.InfoContext(ctx, "Export built", "rows", len(txs), "bytes", buf.Len())

	return File{
		Name:        FileName,
		ContentType: ContentType,
		Data:        buf.Bytes(),
	}, nil
}

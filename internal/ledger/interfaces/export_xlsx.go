package interfaces

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	ledger "facilityops/internal/ledger/domain"
)

const exportSheet = "DPH Export"

// totalsMarker labels the totals row in the date column.
const totalsMarker = "Celkové súčty"

var exportHeaders = []string{
	"5% Základ", "5% Daň", "19% Základ", "19% Daň",
	"0% Základ", "23% Základ", "23% Daň", "Kredit", "Tržba spolu", "Dátum",
}

// XLSXRenderer renders a facility ledger into the export workbook.
type XLSXRenderer struct{}

// Render builds the export workbook: one row per entry ascending by date, a
// totals row, a blank spacer, and a metadata row. The metadata row reuses
// the first three columns for facility id, reference code and month name;
// downstream bookkeeping depends on that exact shape.
func (XLSXRenderer) Render(facilityID string, entries []ledger.Entry, month time.Time) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ledger.ErrNoData
	}

	sorted := make([]ledger.Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", exportSheet)

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	totals := make([]decimal.Decimal, 9)
	for i, entry := range sorted {
		row := i + 2
		values := entryColumns(entry)
		for col, value := range values {
			totals[col] = totals[col].Add(decimal.NewFromFloat(value))
			if err := setCell(f, col+1, row, value); err != nil {
				return nil, err
			}
		}
		if err := setCell(f, len(values)+1, row, ledger.DisplayDate(entry.Date)); err != nil {
			return nil, err
		}
	}

	totalsRow := len(sorted) + 2
	for col, total := range totals {
		value, _ := total.Round(2).Float64()
		if err := setCell(f, col+1, totalsRow, value); err != nil {
			return nil, err
		}
	}
	if err := setCell(f, len(totals)+1, totalsRow, totalsMarker); err != nil {
		return nil, err
	}

	metaRow := totalsRow + 2
	if err := setCell(f, 1, metaRow, facilityID); err != nil {
		return nil, err
	}
	if err := setCell(f, 2, metaRow, sorted[0].ReferenceCode); err != nil {
		return nil, err
	}
	if err := setCell(f, 3, metaRow, ledger.MonthName(month.Month())); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(exportSheet, "A", "I", 15); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(exportSheet, "J", "J", 20); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func entryColumns(entry ledger.Entry) [9]float64 {
	return [9]float64{
		entry.Base5, entry.Tax5,
		entry.Base19, entry.Tax19,
		entry.Base0,
		entry.Base23, entry.Tax23,
		entry.CreditCard,
		entry.GrandTotal,
	}
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell %d,%d: %w", col, row, err)
	}
	return f.SetCellValue(exportSheet, cell, value)
}

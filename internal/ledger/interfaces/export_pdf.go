package interfaces

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	ledger "facilityops/internal/ledger/domain"
)

// BuildLedgerPDF renders a printable month summary of the current ledger.
// Used for on-site review before an export, not for the FTP upload.
func BuildLedgerPDF(facilityID string, entries []ledger.Entry, month time.Time) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ledger.ErrNoData
	}

	sorted := make([]ledger.Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "DPH - mesacny prehlad")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Prevadzka: %s", facilityID))
	pdf.Ln(5)
	if code := sorted[0].ReferenceCode; code != "" {
		pdf.Cell(0, 6, fmt.Sprintf("DKP: %s", code))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Mesiac: %s %d", ledger.MonthName(month.Month()), month.Year()))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Datum", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Trzba spolu", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Kredit", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)

	grandTotal := decimal.Zero
	creditTotal := decimal.Zero
	for _, entry := range sorted {
		grandTotal = grandTotal.Add(decimal.NewFromFloat(entry.GrandTotal))
		creditTotal = creditTotal.Add(decimal.NewFromFloat(entry.CreditCard))
		pdf.CellFormat(40, 6, ledger.DisplayDate(entry.Date), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", entry.GrandTotal), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", entry.CreditCard), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 10)
	grand, _ := grandTotal.Round(2).Float64()
	credit, _ := creditTotal.Round(2).Float64()
	pdf.CellFormat(40, 6, "Spolu", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", grand), "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", credit), "1", 0, "R", false, 0, "")
	pdf.Ln(8)

	if missing := ledger.FindMissingDays(sorted); len(missing) > 0 {
		pdf.SetFont("Arial", "", 9)
		pdf.Cell(0, 5, fmt.Sprintf("Chybajuce dni: %d", len(missing)))
		pdf.Ln(5)
		for _, day := range missing {
			pdf.Cell(0, 5, day)
			pdf.Ln(4)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

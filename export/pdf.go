package export

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"

	"github.com/cruisedesk/boardkit/types"
)

// PDF renders the snapshot as a printable A4 run sheet: a header with the
// company and date, one block per resource column and the unassigned pool
// at the end.
func PDF(w io.Writer, snap *types.BoardSnapshot) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Assignment Board %s", snap.Date), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, snap.CompanyID, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, col := range snap.Columns {
		writePDFColumn(pdf, col)
	}

	if len(snap.Unassigned) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Unassigned", "B", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, it := range snap.Unassigned {
			pdf.CellFormat(0, 6, pdfItemLine(it), "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}

	return nil
}

func writePDFColumn(pdf *gofpdf.Fpdf, col types.ColumnSnapshot) {
	used := 0
	for _, it := range col.Items {
		used += it.Guests.Total()
	}

	title := fmt.Sprintf("%s (%d/%d)", col.Resource.Name, used, col.Resource.Capacity)
	if col.Lock.Locked {
		title += " [locked]"
	}
	if col.Lock.ProgramBinding != "" {
		title += fmt.Sprintf(" [program: %s]", col.Lock.ProgramBinding)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, it := range col.Items {
		pdf.CellFormat(0, 6, pdfItemLine(it), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func pdfItemLine(it types.Item) string {
	line := fmt.Sprintf("  %s - %d pax", it.ID, it.Guests.Total())
	if it.GroupKey != "" {
		line += fmt.Sprintf(" (%s)", it.GroupKey)
	}

	return line
}

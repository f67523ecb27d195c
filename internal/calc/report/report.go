package report

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"Poolcalc/internal/repo"
)

const title = "Pool Calculation Report"

// Render writes a one-page A4 report of the calculation to w.
func Render(w io.Writer, rec repo.Record, now time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(55, 7, tr(label+":"))
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 7, tr(value))
		pdf.Ln(7)
	}

	line("Pool shape", rec.ShapeType)
	line("Material", rec.Material)
	line("Floor area", squareMeters(rec.FloorArea))
	line("Wall area", squareMeters(rec.WallArea))
	line("Total area", squareMeters(rec.TotalArea))
	coils := "N/A"
	if rec.CoilsRequired > 0 {
		coils = fmt.Sprintf("%d", rec.CoilsRequired)
	}
	line("Coils required", coils)
	line("Waste", fmt.Sprintf("%s (%.2f%%)", squareMeters(rec.WasteAreaM2), rec.WastePercent))
	if rec.Supplier != "" {
		line("Supplier", rec.Supplier)
	}
	pdf.Ln(5)

	calculated := rec.CreatedAt
	if calculated.IsZero() {
		calculated = now
	}
	line("Calculated on", calculated.Format("02/01/2006"))
	line("Report date", now.Format("02/01/2006"))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// Filename is the download name used for a report generated at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("pool_calculation_%d.pdf", now.UnixMilli())
}

func squareMeters(v float64) string {
	return fmt.Sprintf("%.2f m²", v)
}

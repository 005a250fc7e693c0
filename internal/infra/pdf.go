package infra

// pdf.go renders the end-of-shift report with go-pdf/fpdf:
//   - route header and shift window
//   - petty cash at start and finish
//   - sales per payment method and total
//   - inventory operations of the shift
//   - closing stock per product
//
// The output file is saved to storagePath/shift_{work_day_id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"routevendor/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateShiftReportPDF writes the report PDF and returns its path.
// storagePath is created if needed.
func GenerateShiftReportPDF(report *dto.ShiftReport, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	filePath := filepath.Join(storagePath, fmt.Sprintf("shift_%s.pdf", report.WorkDayID))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 8, "Reporte de jornada", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Ruta: "+report.RouteName, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, report.StartDate+"  -  "+report.FinishDate, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	half := contentW / 2
	row := func(label, value string) {
		pdf.CellFormat(half, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(half, 6, value, "", 1, "R", false, 0, "")
	}
	separator := func() {
		pdf.Ln(2)
		pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
		pdf.Ln(2)
	}

	// ── Petty cash ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 10)
	row("Caja inicial:", "$"+report.StartPettyCash.StringFixed(2))
	row("Caja final:", "$"+report.FinalPettyCash.StringFixed(2))
	separator()

	// ── Sales ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Ventas", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	row("Transacciones activas:", fmt.Sprintf("%d", report.TransaccionesActivas))
	row("Transacciones canceladas:", fmt.Sprintf("%d", report.TransaccionesCanceladas))

	metodos := make([]string, 0, len(report.VentasPorMetodo))
	for m := range report.VentasPorMetodo {
		metodos = append(metodos, m)
	}
	sort.Strings(metodos)
	for _, m := range metodos {
		row("  "+m+":", "$"+report.VentasPorMetodo[m].StringFixed(2))
	}
	pdf.SetFont("Helvetica", "B", 10)
	row("TOTAL:", "$"+report.TotalVentas.StringFixed(2))
	separator()

	// ── Inventory operations ─────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Inventarios", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.45, 6, "Tipo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.2, 6, "Estado", "B", 0, "C", false, 0, "")
	pdf.CellFormat(contentW*0.2, 6, "Fecha", "B", 0, "C", false, 0, "")
	pdf.CellFormat(contentW*0.15, 6, "Lineas", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, inv := range report.Inventarios {
		pdf.CellFormat(contentW*0.45, 5, inv.Tipo, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.2, 5, inv.Estado, "", 0, "C", false, 0, "")
		pdf.CellFormat(contentW*0.2, 5, inv.Date, "", 0, "C", false, 0, "")
		pdf.CellFormat(contentW*0.15, 5, fmt.Sprintf("%d", inv.Lineas), "", 1, "R", false, 0, "")
	}
	separator()

	// ── Closing stock ────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Stock final", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.5, 6, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.25, 6, "Precio", "B", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.25, 6, "Stock", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, s := range report.Stock {
		pdf.CellFormat(contentW*0.5, 5, s.ProductID, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.25, 5, "$"+s.Price.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(contentW*0.25, 5, fmt.Sprintf("%d", s.Stock), "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

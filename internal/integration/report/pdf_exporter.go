package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/link-financer/backend/internal/application/usecase/dashboard"
)

// PDFExporter renders a chart report as a one-page A4 table.
type PDFExporter struct{}

// NewPDFExporter creates a new PDFExporter instance.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Format implements dashboard.ReportExporter.
func (e *PDFExporter) Format() dashboard.ExportFormat {
	return dashboard.ExportFormatPDF
}

// ContentType implements dashboard.ReportExporter.
func (e *PDFExporter) ContentType() string {
	return "application/pdf"
}

// Render implements dashboard.ReportExporter.
func (e *PDFExporter) Render(report dashboard.ChartReport) ([]byte, error) {
	if report.Chart == nil {
		return nil, fmt.Errorf("report has no chart")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(report.Title, true)
	pdf.SetCreationDate(report.GeneratedAt)
	// Core fonts are cp1252; translate so month names keep their accents.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFillColor(31, 78, 121)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 14, tr(report.Title), "", 1, "C", true, 0, "")
	pdf.Ln(4)

	widths := []float64{40, 36, 36, 36, 36}
	pdf.SetFillColor(221, 235, 247)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 11)
	for i, header := range chartHeaders {
		pdf.CellFormat(widths[i], 8, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, bucket := range report.Chart.Buckets {
		balance := bucket.IncomeTotal.Sub(bucket.ExpenseTotal).Sub(bucket.WithdrawalTotal)
		pdf.CellFormat(widths[0], 7, tr(bucket.Month), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, money(bucket.IncomeTotal), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, money(bucket.ExpenseTotal), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, money(bucket.WithdrawalTotal), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, money(balance), "1", 1, "R", false, 0, "")
	}

	summary := report.Chart.Summary
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(widths[0], 8, "Total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(widths[1], 8, money(summary.TotalIncome), "1", 0, "R", true, 0, "")
	pdf.CellFormat(widths[2], 8, money(summary.TotalExpense), "1", 0, "R", true, 0, "")
	pdf.CellFormat(widths[3], 8, money(summary.TotalWithdrawal), "1", 0, "R", true, 0, "")
	pdf.CellFormat(widths[4], 8, money(summary.Balance), "1", 1, "R", true, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	lines := []string{
		fmt.Sprintf("Comprometimento da receita: %d%%", summary.ExpenseRatio),
		"Receita média mensal: " + money(summary.AverageMonthlyIncome),
	}
	if summary.PeakExpenseMonth != "" {
		lines = append(lines, "Mês de maior despesa: "+summary.PeakExpenseMonth)
	}
	lines = append(lines, "Gerado em "+report.GeneratedAt.Format("02/01/2006 15:04"))
	for _, line := range lines {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func money(value decimal.Decimal) string {
	return value.StringFixed(2)
}

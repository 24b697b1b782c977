// Package report renders dashboard charts as downloadable files.
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/link-financer/backend/internal/application/usecase/dashboard"
)

const (
	chartSheet   = "Resumo mensal"
	summarySheet = "Indicadores"

	colorPrimary = "#1F4E79"
)

var chartHeaders = []string{"Mês", "Receitas", "Despesas", "Sangrias", "Saldo"}

// XLSXExporter renders a chart report as an Excel workbook.
type XLSXExporter struct{}

// NewXLSXExporter creates a new XLSXExporter instance.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Format implements dashboard.ReportExporter.
func (e *XLSXExporter) Format() dashboard.ExportFormat {
	return dashboard.ExportFormatXLSX
}

// ContentType implements dashboard.ReportExporter.
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render writes one row per month followed by a totals row, plus a sheet with the summary.
func (e *XLSXExporter) Render(report dashboard.ChartReport) ([]byte, error) {
	if report.Chart == nil {
		return nil, fmt.Errorf("report has no chart")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", chartSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{colorPrimary}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: colorPrimary, Style: 2},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}

	_ = f.MergeCell(chartSheet, "A1", "E1")
	_ = f.SetCellValue(chartSheet, "A1", report.Title)
	_ = f.SetCellStyle(chartSheet, "A1", "E1", titleStyle)
	_ = f.SetRowHeight(chartSheet, 1, 30)

	for i, header := range chartHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(chartSheet, cell, header)
	}
	_ = f.SetCellStyle(chartSheet, "A2", "E2", headerStyle)

	row := 3
	for _, bucket := range report.Chart.Buckets {
		balance := bucket.IncomeTotal.Sub(bucket.ExpenseTotal).Sub(bucket.WithdrawalTotal)
		values := []interface{}{
			bucket.Month,
			bucket.IncomeTotal.InexactFloat64(),
			bucket.ExpenseTotal.InexactFloat64(),
			bucket.WithdrawalTotal.InexactFloat64(),
			balance.InexactFloat64(),
		}
		if err := f.SetSheetRow(chartSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		_ = f.SetCellStyle(chartSheet, fmt.Sprintf("B%d", row), fmt.Sprintf("E%d", row), moneyStyle)
		row++
	}

	summary := report.Chart.Summary
	totals := []interface{}{
		"Total",
		summary.TotalIncome.InexactFloat64(),
		summary.TotalExpense.InexactFloat64(),
		summary.TotalWithdrawal.InexactFloat64(),
		summary.Balance.InexactFloat64(),
	}
	if err := f.SetSheetRow(chartSheet, fmt.Sprintf("A%d", row), &totals); err != nil {
		return nil, fmt.Errorf("write totals: %w", err)
	}
	_ = f.SetCellStyle(chartSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), headerStyle)

	_ = f.SetColWidth(chartSheet, "A", "A", 16)
	_ = f.SetColWidth(chartSheet, "B", "E", 14)

	if err := e.writeSummary(f, report, headerStyle); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *XLSXExporter) writeSummary(f *excelize.File, report dashboard.ChartReport, labelStyle int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	summary := report.Chart.Summary
	rows := [][]interface{}{
		{"Receita total", summary.TotalIncome.InexactFloat64()},
		{"Despesa total", summary.TotalExpense.InexactFloat64()},
		{"Sangrias", summary.TotalWithdrawal.InexactFloat64()},
		{"Saldo", summary.Balance.InexactFloat64()},
		{"Comprometimento da receita (%)", summary.ExpenseRatio},
		{"Receita média mensal", summary.AverageMonthlyIncome.InexactFloat64()},
		{"Mês de maior despesa", summary.PeakExpenseMonth},
		{"Gerado em", report.GeneratedAt.Format("02/01/2006 15:04")},
	}

	for i, values := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
		_ = f.SetCellStyle(summarySheet, cell, cell, labelStyle)
	}

	_ = f.SetColWidth(summarySheet, "A", "A", 32)
	_ = f.SetColWidth(summarySheet, "B", "B", 16)
	return nil
}

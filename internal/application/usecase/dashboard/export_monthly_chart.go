package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/link-financer/backend/internal/domain/error"
)

// ExportFormat names a downloadable report format.
type ExportFormat string

const (
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatPDF  ExportFormat = "pdf"
)

// ChartReport is what a ReportExporter renders.
type ChartReport struct {
	Title       string
	Chart       *MonthlyChart
	GeneratedAt time.Time
}

// ReportExporter renders a chart report into a file format.
type ReportExporter interface {
	Format() ExportFormat
	ContentType() string
	Render(report ChartReport) ([]byte, error)
}

// ExportMonthlyChartInput represents the input for exporting the monthly chart.
type ExportMonthlyChartInput struct {
	UserID uuid.UUID
	Year   *int
	Locale string
	Format string
}

// ExportMonthlyChartOutput is a rendered report ready to be downloaded.
type ExportMonthlyChartOutput struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportMonthlyChartUseCase renders the monthly chart as a downloadable file.
type ExportMonthlyChartUseCase struct {
	getMonthlyChart *GetMonthlyChartUseCase
	exporters       map[ExportFormat]ReportExporter
	now             func() time.Time
}

// NewExportMonthlyChartUseCase creates a new ExportMonthlyChartUseCase instance.
func NewExportMonthlyChartUseCase(
	getMonthlyChart *GetMonthlyChartUseCase,
	exporters ...ReportExporter,
) *ExportMonthlyChartUseCase {
	byFormat := make(map[ExportFormat]ReportExporter, len(exporters))
	for _, exporter := range exporters {
		byFormat[exporter.Format()] = exporter
	}
	return &ExportMonthlyChartUseCase{
		getMonthlyChart: getMonthlyChart,
		exporters:       byFormat,
		now:             time.Now,
	}
}

// Execute builds the chart and renders it in the requested format.
func (uc *ExportMonthlyChartUseCase) Execute(
	ctx context.Context,
	input ExportMonthlyChartInput,
) (*ExportMonthlyChartOutput, error) {
	format := ExportFormat(strings.ToLower(strings.TrimSpace(input.Format)))
	if format == "" {
		format = ExportFormatXLSX
	}

	exporter, ok := uc.exporters[format]
	if !ok {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeUnsupportedExportFormat,
			"format must be one of: xlsx, pdf",
			domainerror.ErrUnsupportedExportFormat,
		)
	}

	chart, err := uc.getMonthlyChart.Execute(ctx, GetMonthlyChartInput{
		UserID: input.UserID,
		Year:   input.Year,
		Locale: input.Locale,
	})
	if err != nil {
		return nil, err
	}

	period := "historico"
	if input.Year != nil {
		period = fmt.Sprintf("%d", *input.Year)
	}

	content, err := exporter.Render(ChartReport{
		Title:       "Resumo mensal " + period,
		Chart:       chart,
		GeneratedAt: uc.now(),
	})
	if err != nil {
		slog.Error("Failed to render monthly chart report",
			"userID", input.UserID,
			"format", format,
			"error", err,
		)
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeExportFailed,
			"failed to render report",
			fmt.Errorf("%w: %v", domainerror.ErrExportFailed, err),
		)
	}

	return &ExportMonthlyChartOutput{
		FileName:    fmt.Sprintf("resumo-mensal-%s.%s", period, format),
		ContentType: exporter.ContentType(),
		Content:     content,
	}, nil
}

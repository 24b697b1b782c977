package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/link-financer/backend/internal/application/usecase/dashboard"
	domainerror "github.com/link-financer/backend/internal/domain/error"
	"github.com/link-financer/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getMonthlyChartUseCase      *dashboard.GetMonthlyChartUseCase
	exportMonthlyChartUseCase   *dashboard.ExportMonthlyChartUseCase
	getCategoryBreakdownUseCase *dashboard.GetCategoryBreakdownUseCase
	getDataRangeUseCase         *dashboard.GetDataRangeUseCase
	now                         func() time.Time
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	getMonthlyChartUseCase *dashboard.GetMonthlyChartUseCase,
	exportMonthlyChartUseCase *dashboard.ExportMonthlyChartUseCase,
	getCategoryBreakdownUseCase *dashboard.GetCategoryBreakdownUseCase,
	getDataRangeUseCase *dashboard.GetDataRangeUseCase,
	now func() time.Time,
) *DashboardController {
	if now == nil {
		now = time.Now
	}
	return &DashboardController{
		getMonthlyChartUseCase:      getMonthlyChartUseCase,
		exportMonthlyChartUseCase:   exportMonthlyChartUseCase,
		getCategoryBreakdownUseCase: getCategoryBreakdownUseCase,
		getDataRangeUseCase:         getDataRangeUseCase,
		now:                         now,
	}
}

// GetMonthlyChart handles GET /dashboard/monthly-chart requests.
func (c *DashboardController) GetMonthlyChart(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	year, ok := c.parseYear(ctx)
	if !ok {
		return
	}

	chart, err := c.getMonthlyChartUseCase.Execute(ctx.Request.Context(), dashboard.GetMonthlyChartInput{
		UserID: userID,
		Year:   year,
		Locale: ctx.Query("locale"),
	})
	if err != nil {
		respondDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyChartResponse(chart))
}

// ExportMonthlyChart handles GET /dashboard/monthly-chart/export requests.
func (c *DashboardController) ExportMonthlyChart(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	year, ok := c.parseYear(ctx)
	if !ok {
		return
	}

	output, err := c.exportMonthlyChartUseCase.Execute(ctx.Request.Context(), dashboard.ExportMonthlyChartInput{
		UserID: userID,
		Year:   year,
		Locale: ctx.Query("locale"),
		Format: ctx.Query("format"),
	})
	if err != nil {
		respondDashboardError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.FileName))
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}

// GetCategoryBreakdown handles GET /dashboard/category-breakdown requests.
// Without a month query the current month is used.
func (c *DashboardController) GetCategoryBreakdown(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	month := c.now()
	if monthStr := ctx.Query("month"); monthStr != "" {
		parsed, err := dashboard.ParseYearMonth(monthStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid month format, expected YYYY-MM",
				Code:  string(domainerror.ErrCodeInvalidMonth),
			})
			return
		}
		month = parsed
	}

	output, err := c.getCategoryBreakdownUseCase.Execute(ctx.Request.Context(), dashboard.GetCategoryBreakdownInput{
		UserID: userID,
		Month:  month,
	})
	if err != nil {
		respondDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(output))
}

// GetDataRange handles GET /dashboard/data-range requests.
func (c *DashboardController) GetDataRange(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	output, err := c.getDataRangeUseCase.Execute(ctx.Request.Context(), dashboard.GetDataRangeInput{
		UserID: userID,
	})
	if err != nil {
		respondDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDataRangeResponse(output))
}

// parseYear reads the optional year query. A missing year means all history.
func (c *DashboardController) parseYear(ctx *gin.Context) (*int, bool) {
	yearStr := ctx.Query("year")
	if yearStr == "" {
		return nil, true
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid year, expected a four digit number",
			Code:  string(domainerror.ErrCodeInvalidYear),
		})
		return nil, false
	}
	return &year, true
}

// respondDashboardError handles dashboard errors and returns appropriate HTTP responses.
func respondDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		ctx.JSON(statusCodeForDashboardError(dashErr.Code), dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeDashboardInternalError),
	})
}

// statusCodeForDashboardError maps dashboard error codes to HTTP status codes.
func statusCodeForDashboardError(code domainerror.DashboardErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidYear,
		domainerror.ErrCodeInvalidMonth,
		domainerror.ErrCodeUnsupportedLocale,
		domainerror.ErrCodeUnsupportedExportFormat,
		domainerror.ErrCodeInvalidAggregationBody:
		return http.StatusBadRequest
	case domainerror.ErrCodeTooManyTransactions:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

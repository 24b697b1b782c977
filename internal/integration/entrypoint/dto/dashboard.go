package dto

import (
	"github.com/link-financer/backend/internal/application/usecase/dashboard"
)

// MonthBucketResponse represents one calendar month of the chart.
type MonthBucketResponse struct {
	Month           string `json:"month"`
	IncomeTotal     string `json:"income_total"`
	ExpenseTotal    string `json:"expense_total"`
	WithdrawalTotal string `json:"withdrawal_total"`
}

// ChartSummaryResponse represents the indicators derived from the twelve buckets.
type ChartSummaryResponse struct {
	TotalIncome          string `json:"total_income"`
	TotalExpense         string `json:"total_expense"`
	TotalWithdrawal      string `json:"total_withdrawal"`
	Balance              string `json:"balance"`
	ExpenseRatio         int64  `json:"expense_ratio"`
	AverageMonthlyIncome string `json:"average_monthly_income"`
	PeakExpenseMonth     string `json:"peak_expense_month,omitempty"`
}

// MonthlyChartData represents the data section of the monthly chart response.
type MonthlyChartData struct {
	Year    *int                  `json:"year,omitempty"`
	Locale  string                `json:"locale"`
	Buckets []MonthBucketResponse `json:"buckets"`
	Summary ChartSummaryResponse  `json:"summary"`
}

// MonthlyChartResponse represents the response for the monthly chart API.
type MonthlyChartResponse struct {
	Data MonthlyChartData `json:"data"`
}

// ToMonthlyChartResponse converts a MonthlyChart to MonthlyChartResponse DTO.
func ToMonthlyChartResponse(chart *dashboard.MonthlyChart) MonthlyChartResponse {
	buckets := make([]MonthBucketResponse, len(chart.Buckets))
	for i, b := range chart.Buckets {
		buckets[i] = MonthBucketResponse{
			Month:           b.Month,
			IncomeTotal:     b.IncomeTotal.String(),
			ExpenseTotal:    b.ExpenseTotal.String(),
			WithdrawalTotal: b.WithdrawalTotal.String(),
		}
	}

	s := chart.Summary
	return MonthlyChartResponse{
		Data: MonthlyChartData{
			Year:    chart.Year,
			Locale:  chart.Locale,
			Buckets: buckets,
			Summary: ChartSummaryResponse{
				TotalIncome:          s.TotalIncome.String(),
				TotalExpense:         s.TotalExpense.String(),
				TotalWithdrawal:      s.TotalWithdrawal.String(),
				Balance:              s.Balance.String(),
				ExpenseRatio:         s.ExpenseRatio,
				AverageMonthlyIncome: s.AverageMonthlyIncome.String(),
				PeakExpenseMonth:     s.PeakExpenseMonth,
			},
		},
	}
}

// DataRangeResponse represents the response for the data range API.
type DataRangeResponse struct {
	Data DataRangeData `json:"data"`
}

// DataRangeData represents the data section of data range response.
type DataRangeData struct {
	OldestDate        *string `json:"oldest_date"`
	NewestDate        *string `json:"newest_date"`
	TotalTransactions int     `json:"total_transactions"`
	AvailableYears    []int   `json:"available_years"`
	HasData           bool    `json:"has_data"`
}

// ToDataRangeResponse converts a GetDataRangeOutput to DataRangeResponse DTO.
func ToDataRangeResponse(output *dashboard.GetDataRangeOutput) DataRangeResponse {
	var oldestDate, newestDate *string
	if output.OldestDate != nil {
		s := output.OldestDate.Format(DateLayout)
		oldestDate = &s
	}
	if output.NewestDate != nil {
		s := output.NewestDate.Format(DateLayout)
		newestDate = &s
	}

	years := output.AvailableYears
	if years == nil {
		years = []int{}
	}

	return DataRangeResponse{
		Data: DataRangeData{
			OldestDate:        oldestDate,
			NewestDate:        newestDate,
			TotalTransactions: output.TotalTransactions,
			AvailableYears:    years,
			HasData:           output.HasData,
		},
	}
}

// CategoryBreakdownResponse represents the response for category breakdown API.
type CategoryBreakdownResponse struct {
	Data CategoryBreakdownData `json:"data"`
}

// CategoryBreakdownData represents the data section of category breakdown response.
type CategoryBreakdownData struct {
	Period        BreakdownPeriodResponse         `json:"period"`
	TotalExpenses string                          `json:"total_expenses"`
	Categories    []CategoryBreakdownItemResponse `json:"categories"`
}

// BreakdownPeriodResponse represents the period information in category breakdown response.
type BreakdownPeriodResponse struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	PeriodLabel string `json:"period_label"`
}

// CategoryBreakdownItemResponse represents a single category in the breakdown.
type CategoryBreakdownItemResponse struct {
	CategoryName     string  `json:"category_name"`
	Amount           string  `json:"amount"`
	Percentage       float64 `json:"percentage"`
	TransactionCount int     `json:"transaction_count"`
	Trend            int64   `json:"trend"`
	Alert            string  `json:"alert,omitempty"`
	IsWithdrawal     bool    `json:"is_withdrawal"`
}

// ToCategoryBreakdownResponse converts a GetCategoryBreakdownOutput to CategoryBreakdownResponse DTO.
func ToCategoryBreakdownResponse(output *dashboard.GetCategoryBreakdownOutput) CategoryBreakdownResponse {
	categories := make([]CategoryBreakdownItemResponse, len(output.Categories))
	for i, c := range output.Categories {
		categories[i] = CategoryBreakdownItemResponse{
			CategoryName:     c.CategoryName,
			Amount:           c.Amount.String(),
			Percentage:       c.Percentage,
			TransactionCount: c.TransactionCount,
			Trend:            c.Trend,
			Alert:            c.Alert,
			IsWithdrawal:     c.IsWithdrawal,
		}
	}

	return CategoryBreakdownResponse{
		Data: CategoryBreakdownData{
			Period: BreakdownPeriodResponse{
				StartDate:   output.Period.StartDate.Format(DateLayout),
				EndDate:     output.Period.EndDate.Format(DateLayout),
				PeriodLabel: output.Period.PeriodLabel,
			},
			TotalExpenses: output.TotalExpenses.String(),
			Categories:    categories,
		},
	}
}

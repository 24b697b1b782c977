package dashboard

import "github.com/shopspring/decimal"

var (
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)
)

// YearSummary holds the headline figures shown above the monthly chart.
type YearSummary struct {
	TotalIncome          decimal.Decimal `json:"total_income"`
	TotalExpense         decimal.Decimal `json:"total_expense"`
	TotalWithdrawal      decimal.Decimal `json:"total_withdrawal"`
	Balance              decimal.Decimal `json:"balance"`
	ExpenseRatio         int64           `json:"expense_ratio"`
	AverageMonthlyIncome decimal.Decimal `json:"average_monthly_income"`
	PeakExpenseMonth     string          `json:"peak_expense_month"`
}

// SummarizeBuckets derives the year summary from aggregated buckets.
// ExpenseRatio is the share of income spent (expenses plus withdrawals), as a
// whole percentage, and is zero when there is no income.
func SummarizeBuckets(buckets []MonthBucket) YearSummary {
	summary := YearSummary{
		TotalIncome:     decimal.Zero,
		TotalExpense:    decimal.Zero,
		TotalWithdrawal: decimal.Zero,
	}

	peak := decimal.Zero
	for _, b := range buckets {
		summary.TotalIncome = summary.TotalIncome.Add(b.IncomeTotal)
		summary.TotalExpense = summary.TotalExpense.Add(b.ExpenseTotal)
		summary.TotalWithdrawal = summary.TotalWithdrawal.Add(b.WithdrawalTotal)

		if b.ExpenseTotal.GreaterThan(peak) {
			peak = b.ExpenseTotal
			summary.PeakExpenseMonth = b.Month
		}
	}

	outflow := summary.TotalExpense.Add(summary.TotalWithdrawal)
	summary.Balance = summary.TotalIncome.Sub(outflow)

	if !summary.TotalIncome.IsZero() {
		summary.ExpenseRatio = outflow.Mul(hundred).Div(summary.TotalIncome).Round(0).IntPart()
	}

	summary.AverageMonthlyIncome = summary.TotalIncome.Div(monthsInYear).Round(2)

	return summary
}

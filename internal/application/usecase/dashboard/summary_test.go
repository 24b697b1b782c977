package dashboard

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/link-financer/backend/internal/domain/valueobject"
)

func bucketsWith(set func(buckets []MonthBucket)) []MonthBucket {
	buckets := make([]MonthBucket, 12)
	for i, name := range valueobject.PortugueseMonthNames {
		buckets[i] = MonthBucket{
			Month:           name,
			IncomeTotal:     decimal.Zero,
			ExpenseTotal:    decimal.Zero,
			WithdrawalTotal: decimal.Zero,
		}
	}
	set(buckets)
	return buckets
}

func TestSummarizeBuckets(t *testing.T) {
	tests := []struct {
		name            string
		buckets         []MonthBucket
		expectedBalance string
		expectedRatio   int64
		expectedAverage string
		expectedPeak    string
	}{
		{
			name:            "all zero",
			buckets:         bucketsWith(func([]MonthBucket) {}),
			expectedBalance: "0",
			expectedRatio:   0,
			expectedAverage: "0",
			expectedPeak:    "",
		},
		{
			name: "example scenario",
			buckets: bucketsWith(func(b []MonthBucket) {
				b[0].IncomeTotal = decimal.NewFromInt(500)
				b[0].ExpenseTotal = decimal.NewFromInt(100)
				b[0].WithdrawalTotal = decimal.NewFromInt(50)
			}),
			expectedBalance: "350",
			expectedRatio:   30,
			expectedAverage: "41.67",
			expectedPeak:    "Janeiro",
		},
		{
			name: "expenses without income keep ratio at zero",
			buckets: bucketsWith(func(b []MonthBucket) {
				b[3].ExpenseTotal = decimal.NewFromInt(80)
			}),
			expectedBalance: "-80",
			expectedRatio:   0,
			expectedAverage: "0",
			expectedPeak:    "Abril",
		},
		{
			name: "first month wins a peak tie",
			buckets: bucketsWith(func(b []MonthBucket) {
				b[1].IncomeTotal = decimal.NewFromInt(1200)
				b[4].ExpenseTotal = decimal.NewFromInt(300)
				b[8].ExpenseTotal = decimal.NewFromInt(300)
			}),
			expectedBalance: "600",
			expectedRatio:   50,
			expectedAverage: "100",
			expectedPeak:    "Maio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := SummarizeBuckets(tt.buckets)

			if !summary.Balance.Equal(decimal.RequireFromString(tt.expectedBalance)) {
				t.Errorf("expected balance %s, got %s", tt.expectedBalance, summary.Balance)
			}
			if summary.ExpenseRatio != tt.expectedRatio {
				t.Errorf("expected ratio %d, got %d", tt.expectedRatio, summary.ExpenseRatio)
			}
			if !summary.AverageMonthlyIncome.Equal(decimal.RequireFromString(tt.expectedAverage)) {
				t.Errorf("expected average %s, got %s", tt.expectedAverage, summary.AverageMonthlyIncome)
			}
			if summary.PeakExpenseMonth != tt.expectedPeak {
				t.Errorf("expected peak %q, got %q", tt.expectedPeak, summary.PeakExpenseMonth)
			}
		})
	}
}

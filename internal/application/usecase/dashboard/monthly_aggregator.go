// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/link-financer/backend/internal/domain/entity"
	"github.com/link-financer/backend/internal/domain/valueobject"
)

// DefaultWithdrawalCategory is the category label that marks a cash withdrawal.
const DefaultWithdrawalCategory = "Sangria"

// AggregationTransaction is a single record fed to the MonthlyAggregator.
type AggregationTransaction struct {
	Type            entity.TransactionType
	Amount          decimal.Decimal
	TransactionDate string
	Category        string
}

// MonthBucket holds the totals of one calendar month.
type MonthBucket struct {
	Month           string          `json:"month"`
	IncomeTotal     decimal.Decimal `json:"income_total"`
	ExpenseTotal    decimal.Decimal `json:"expense_total"`
	WithdrawalTotal decimal.Decimal `json:"withdrawal_total"`
}

// MonthlyAggregator folds transactions into twelve calendar-ordered month buckets.
// It holds no mutable state and is safe for concurrent use.
type MonthlyAggregator struct {
	months             valueobject.MonthNames
	parseDate          valueobject.DateParser
	withdrawalCategory string
	logger             *slog.Logger
}

// AggregatorOption customises a MonthlyAggregator.
type AggregatorOption func(*MonthlyAggregator)

// WithWithdrawalCategory overrides the withdrawal marker.
func WithWithdrawalCategory(category string) AggregatorOption {
	return func(a *MonthlyAggregator) {
		a.withdrawalCategory = category
	}
}

// WithLogger sets the logger used to report skipped records.
func WithLogger(logger *slog.Logger) AggregatorOption {
	return func(a *MonthlyAggregator) {
		a.logger = logger
	}
}

// NewMonthlyAggregator creates a new MonthlyAggregator instance.
func NewMonthlyAggregator(
	months valueobject.MonthNames,
	parseDate valueobject.DateParser,
	opts ...AggregatorOption,
) *MonthlyAggregator {
	a := &MonthlyAggregator{
		months:             months,
		parseDate:          parseDate,
		withdrawalCategory: DefaultWithdrawalCategory,
		logger:             slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.parseDate == nil {
		a.parseDate = valueobject.ParseTransactionDate
	}
	return a
}

// Months returns the month names the aggregator labels buckets with.
func (a *MonthlyAggregator) Months() valueobject.MonthNames {
	return a.months
}

// Aggregate returns exactly twelve buckets, January first.
// Records with an unparseable date are logged and skipped. The year of a date is
// ignored, so multi-year input collapses by month of year.
func (a *MonthlyAggregator) Aggregate(transactions []AggregationTransaction) []MonthBucket {
	buckets := make([]MonthBucket, len(a.months))
	for i, name := range a.months {
		buckets[i] = MonthBucket{
			Month:           name,
			IncomeTotal:     decimal.Zero,
			ExpenseTotal:    decimal.Zero,
			WithdrawalTotal: decimal.Zero,
		}
	}

	for i, txn := range transactions {
		date, err := a.parseDate(txn.TransactionDate)
		if err != nil {
			a.logger.Warn("Skipping transaction with invalid date",
				"index", i,
				"transaction_date", txn.TransactionDate,
				"error", err,
			)
			continue
		}

		bucket := &buckets[int(date.Month())-1]

		// Withdrawal wins over the type tag.
		switch {
		case txn.Category == a.withdrawalCategory:
			bucket.WithdrawalTotal = bucket.WithdrawalTotal.Add(txn.Amount)
		case txn.Type == entity.TransactionTypeExpense:
			bucket.ExpenseTotal = bucket.ExpenseTotal.Add(txn.Amount)
		case txn.Type == entity.TransactionTypeIncome:
			bucket.IncomeTotal = bucket.IncomeTotal.Add(txn.Amount)
		}
	}

	return buckets
}

// ToAggregationTransactions converts stored transactions to aggregator input.
func ToAggregationTransactions(transactions []*entity.Transaction) []AggregationTransaction {
	out := make([]AggregationTransaction, len(transactions))
	for i, txn := range transactions {
		out[i] = AggregationTransaction{
			Type:            txn.Type,
			Amount:          txn.Amount,
			TransactionDate: txn.Date.Format("2006-01-02"),
			Category:        txn.Category,
		}
	}
	return out
}

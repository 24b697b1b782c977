package dashboard

import (
	"context"
	"fmt"

	domainerror "github.com/link-financer/backend/internal/domain/error"
)

// MaxAggregationTransactions bounds the size of a stateless aggregation request.
const MaxAggregationTransactions = 10000

// AggregateTransactionsInput represents the input for aggregating a caller-supplied list.
type AggregateTransactionsInput struct {
	Transactions []AggregationTransaction
	Locale       string
}

// AggregateTransactionsUseCase aggregates raw transactions without touching storage.
type AggregateTransactionsUseCase struct {
	aggregators *AggregatorProvider
}

// NewAggregateTransactionsUseCase creates a new AggregateTransactionsUseCase instance.
func NewAggregateTransactionsUseCase(aggregators *AggregatorProvider) *AggregateTransactionsUseCase {
	return &AggregateTransactionsUseCase{
		aggregators: aggregators,
	}
}

// Execute folds the supplied transactions into a monthly chart.
func (uc *AggregateTransactionsUseCase) Execute(
	_ context.Context,
	input AggregateTransactionsInput,
) (*MonthlyChart, error) {
	if len(input.Transactions) > MaxAggregationTransactions {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeTooManyTransactions,
			fmt.Sprintf("at most %d transactions can be aggregated per request", MaxAggregationTransactions),
			domainerror.ErrTooManyTransactions,
		)
	}

	aggregator, locale, err := uc.aggregators.For(input.Locale)
	if err != nil {
		return nil, err
	}

	buckets := aggregator.Aggregate(input.Transactions)
	return &MonthlyChart{
		Locale:  locale,
		Buckets: buckets,
		Summary: SummarizeBuckets(buckets),
	}, nil
}

package dto

import (
	"github.com/link-financer/backend/internal/application/usecase/dashboard"
	"github.com/link-financer/backend/internal/domain/entity"
)

// AggregationTransactionRequest is one raw record of a stateless aggregation.
// Nothing is validated here; the aggregator decides which records count.
type AggregationTransactionRequest struct {
	Type            FlexibleString `json:"type"`
	Amount          FlexibleAmount `json:"amount"`
	TransactionDate FlexibleString `json:"transaction_date"`
	Category        FlexibleString `json:"category"`
}

// AggregateTransactionsRequest represents the request body for the stateless aggregation API.
type AggregateTransactionsRequest struct {
	Transactions []AggregationTransactionRequest `json:"transactions"`
	Locale       string                          `json:"locale,omitempty"`
}

// ToAggregateTransactionsInput converts the request into use case input.
func (r AggregateTransactionsRequest) ToAggregateTransactionsInput() dashboard.AggregateTransactionsInput {
	transactions := make([]dashboard.AggregationTransaction, len(r.Transactions))
	for i, t := range r.Transactions {
		transactions[i] = dashboard.AggregationTransaction{
			Type:            entity.TransactionType(t.Type),
			Amount:          t.Amount.Decimal,
			TransactionDate: string(t.TransactionDate),
			Category:        string(t.Category),
		}
	}

	return dashboard.AggregateTransactionsInput{
		Transactions: transactions,
		Locale:       r.Locale,
	}
}

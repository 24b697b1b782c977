// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/link-financer/backend/internal/application/adapter"
	"github.com/link-financer/backend/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	Type      *entity.TransactionType
	Search    string
	Page      int
	Limit     int
}

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Date         time.Time
	Description  string
	Amount       decimal.Decimal
	Type         entity.TransactionType
	Category     string
	IsWithdrawal bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// TotalsOutput represents aggregated totals in the output.
type TotalsOutput struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Pagination   PaginationOutput
	Totals       TotalsOutput
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo    adapter.TransactionRepository
	withdrawalCategory string
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
// withdrawalCategory flags rows that the dashboard counts as withdrawals.
func NewListTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	withdrawalCategory string,
) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo:    transactionRepo,
		withdrawalCategory: withdrawalCategory,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	filter := adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Category:  input.Category,
		Type:      input.Type,
		Search:    input.Search,
	}

	result, err := uc.transactionRepo.FindByFilter(ctx, filter, adapter.TransactionPagination{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	totals, err := uc.transactionRepo.GetTotals(ctx, filter)
	if err != nil {
		slog.Warn("Failed to compute transaction totals",
			"userID", input.UserID,
			"error", err,
		)
		totals = &entity.TransactionTotals{
			IncomeTotal:  decimal.Zero,
			ExpenseTotal: decimal.Zero,
			NetTotal:     decimal.Zero,
		}
	}

	output := &ListTransactionsOutput{
		Transactions: make([]*TransactionOutput, len(result.Transactions)),
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
		Totals: TotalsOutput{
			IncomeTotal:  totals.IncomeTotal,
			ExpenseTotal: totals.ExpenseTotal,
			NetTotal:     totals.NetTotal,
		},
	}

	for i, txn := range result.Transactions {
		out := toTransactionOutput(txn)
		out.IsWithdrawal = uc.withdrawalCategory != "" && txn.Category == uc.withdrawalCategory
		output.Transactions[i] = out
	}

	return output, nil
}

func toTransactionOutput(txn *entity.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:          txn.ID,
		UserID:      txn.UserID,
		Date:        txn.Date,
		Description: txn.Description,
		Amount:      txn.Amount,
		Type:        txn.Type,
		Category:    txn.Category,
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}
}

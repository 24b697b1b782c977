package transaction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/link-financer/backend/internal/application/adapter"
	"github.com/link-financer/backend/internal/domain/entity"
	domainerror "github.com/link-financer/backend/internal/domain/error"
)

type fakeTransactionRepository struct {
	byID       map[uuid.UUID]*entity.Transaction
	totalsErr  error
	lastFilter adapter.TransactionFilter
	lastPage   adapter.TransactionPagination
	deleted    []uuid.UUID
	updated    []*entity.Transaction
}

func newFakeTransactionRepository() *fakeTransactionRepository {
	return &fakeTransactionRepository{byID: make(map[uuid.UUID]*entity.Transaction)}
}

func (f *fakeTransactionRepository) Create(_ context.Context, transaction *entity.Transaction) error {
	f.byID[transaction.ID] = transaction
	return nil
}

func (f *fakeTransactionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	txn, ok := f.byID[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	return txn, nil
}

func (f *fakeTransactionRepository) FindByFilter(
	_ context.Context,
	filter adapter.TransactionFilter,
	pagination adapter.TransactionPagination,
) (*entity.TransactionListResult, error) {
	f.lastFilter, f.lastPage = filter, pagination
	result := &entity.TransactionListResult{Page: pagination.Page, Limit: pagination.Limit}
	for _, txn := range f.byID {
		if txn.UserID == filter.UserID {
			result.Transactions = append(result.Transactions, txn)
		}
	}
	result.Total = int64(len(result.Transactions))
	result.TotalPages = 1
	return result, nil
}

func (f *fakeTransactionRepository) GetTotals(_ context.Context, _ adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	if f.totalsErr != nil {
		return nil, f.totalsErr
	}
	return &entity.TransactionTotals{
		IncomeTotal:  decimal.NewFromInt(10),
		ExpenseTotal: decimal.NewFromInt(4),
		NetTotal:     decimal.NewFromInt(6),
	}, nil
}

func (f *fakeTransactionRepository) Update(_ context.Context, transaction *entity.Transaction) error {
	f.updated = append(f.updated, transaction)
	f.byID[transaction.ID] = transaction
	return nil
}

func (f *fakeTransactionRepository) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.byID, id)
	return nil
}

type fakeInvalidator struct {
	users []uuid.UUID
	err   error
}

func (f *fakeInvalidator) Invalidate(_ context.Context, userID uuid.UUID) error {
	f.users = append(f.users, userID)
	return f.err
}

func transactionCode(t *testing.T, err error) domainerror.TransactionErrorCode {
	t.Helper()
	var txnErr *domainerror.TransactionError
	require.True(t, errors.As(err, &txnErr), "expected TransactionError, got %v", err)
	return txnErr.Code
}

func TestCreateTransactionUseCase(t *testing.T) {
	userID := uuid.New()
	date := time.Date(2024, time.January, 25, 0, 0, 0, 0, time.UTC)

	valid := func() CreateTransactionInput {
		return CreateTransactionInput{
			UserID:      userID,
			Date:        date,
			Description: "  Retirada do caixa ",
			Amount:      decimal.NewFromInt(50),
			Type:        entity.TransactionTypeExpense,
			Category:    "Sangria",
		}
	}

	t.Run("creates and invalidates the chart cache", func(t *testing.T) {
		repo := newFakeTransactionRepository()
		cache := &fakeInvalidator{err: errors.New("redis down")}
		uc := NewCreateTransactionUseCase(repo, cache)

		output, err := uc.Execute(context.Background(), valid())
		require.NoError(t, err)

		assert.Equal(t, "Retirada do caixa", output.Transaction.Description)
		assert.Equal(t, "Sangria", output.Transaction.Category)
		assert.Contains(t, repo.byID, output.Transaction.ID)
		assert.Equal(t, []uuid.UUID{userID}, cache.users)
	})

	tests := []struct {
		name     string
		mutate   func(*CreateTransactionInput)
		expected domainerror.TransactionErrorCode
	}{
		{
			name:     "invalid type",
			mutate:   func(in *CreateTransactionInput) { in.Type = "transfer" },
			expected: domainerror.ErrCodeInvalidTransactionType,
		},
		{
			name:     "zero amount",
			mutate:   func(in *CreateTransactionInput) { in.Amount = decimal.Zero },
			expected: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:     "description too long",
			mutate:   func(in *CreateTransactionInput) { in.Description = strings.Repeat("a", MaxDescriptionLength+1) },
			expected: domainerror.ErrCodeDescriptionTooLong,
		},
		{
			name:     "category too long",
			mutate:   func(in *CreateTransactionInput) { in.Category = strings.Repeat("c", MaxCategoryLength+1) },
			expected: domainerror.ErrCodeCategoryTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeTransactionRepository()
			cache := &fakeInvalidator{}
			input := valid()
			tt.mutate(&input)

			_, err := NewCreateTransactionUseCase(repo, cache).Execute(context.Background(), input)
			assert.Equal(t, tt.expected, transactionCode(t, err))
			assert.Empty(t, repo.byID)
			assert.Empty(t, cache.users)
		})
	}
}

func TestListTransactionsUseCase(t *testing.T) {
	userID := uuid.New()
	repo := newFakeTransactionRepository()
	withdrawal := entity.NewTransaction(userID, time.Now(), "caixa", decimal.NewFromInt(20), entity.TransactionTypeExpense, "Sangria")
	repo.byID[withdrawal.ID] = withdrawal

	uc := NewListTransactionsUseCase(repo, "Sangria")

	t.Run("clamps pagination and flags withdrawals", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: userID, Page: 0, Limit: 500})
		require.NoError(t, err)

		assert.Equal(t, adapter.TransactionPagination{Page: 1, Limit: 100}, repo.lastPage)
		require.Len(t, output.Transactions, 1)
		assert.True(t, output.Transactions[0].IsWithdrawal)
		assert.True(t, output.Totals.NetTotal.Equal(decimal.NewFromInt(6)))
	})

	t.Run("totals failure yields zero totals", func(t *testing.T) {
		repo.totalsErr = errors.New("timeout")
		defer func() { repo.totalsErr = nil }()

		output, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: userID})
		require.NoError(t, err)
		assert.True(t, output.Totals.IncomeTotal.IsZero())
		assert.Equal(t, 20, repo.lastPage.Limit)
	})
}

func TestDeleteTransactionUseCase(t *testing.T) {
	owner := uuid.New()

	setup := func() (*fakeTransactionRepository, *fakeInvalidator, *entity.Transaction) {
		repo := newFakeTransactionRepository()
		txn := entity.NewTransaction(owner, time.Now(), "aluguel", decimal.NewFromInt(900), entity.TransactionTypeExpense, "Moradia")
		repo.byID[txn.ID] = txn
		return repo, &fakeInvalidator{}, txn
	}

	t.Run("owner deletes", func(t *testing.T) {
		repo, cache, txn := setup()

		output, err := NewDeleteTransactionUseCase(repo, cache).Execute(context.Background(), DeleteTransactionInput{
			TransactionID: txn.ID,
			UserID:        owner,
		})
		require.NoError(t, err)
		assert.True(t, output.Success)
		assert.Equal(t, []uuid.UUID{txn.ID}, repo.deleted)
		assert.Equal(t, []uuid.UUID{owner}, cache.users)
	})

	t.Run("other user is rejected", func(t *testing.T) {
		repo, cache, txn := setup()

		_, err := NewDeleteTransactionUseCase(repo, cache).Execute(context.Background(), DeleteTransactionInput{
			TransactionID: txn.ID,
			UserID:        uuid.New(),
		})
		assert.Equal(t, domainerror.ErrCodeNotAuthorizedTransaction, transactionCode(t, err))
		assert.Empty(t, repo.deleted)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		repo, cache, _ := setup()

		_, err := NewDeleteTransactionUseCase(repo, cache).Execute(context.Background(), DeleteTransactionInput{
			TransactionID: uuid.New(),
			UserID:        owner,
		})
		assert.Equal(t, domainerror.ErrCodeTransactionNotFound, transactionCode(t, err))
	})
}

func TestUpdateTransactionUseCase(t *testing.T) {
	owner := uuid.New()
	repo := newFakeTransactionRepository()
	txn := entity.NewTransaction(owner, time.Now(), "mercado", decimal.NewFromInt(120), entity.TransactionTypeExpense, "Mercado")
	repo.byID[txn.ID] = txn
	cache := &fakeInvalidator{}
	uc := NewUpdateTransactionUseCase(repo, cache)

	t.Run("recategorises as withdrawal", func(t *testing.T) {
		category := "Sangria"
		output, err := uc.Execute(context.Background(), UpdateTransactionInput{
			TransactionID: txn.ID,
			UserID:        owner,
			Category:      &category,
		})
		require.NoError(t, err)

		assert.Equal(t, "Sangria", output.Transaction.Category)
		assert.Equal(t, "mercado", output.Transaction.Description)
		assert.Len(t, repo.updated, 1)
		assert.Equal(t, []uuid.UUID{owner}, cache.users)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		amount := decimal.NewFromInt(-1)
		_, err := uc.Execute(context.Background(), UpdateTransactionInput{
			TransactionID: txn.ID,
			UserID:        owner,
			Amount:        &amount,
		})
		assert.Equal(t, domainerror.ErrCodeInvalidTransactionAmount, transactionCode(t, err))
	})
}

package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/link-financer/backend/internal/domain/entity"
	domainerror "github.com/link-financer/backend/internal/domain/error"
)

func newTestProvider() *AggregatorProvider {
	return NewAggregatorProvider("pt-BR", "", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func storedTxn(userID uuid.UUID, date string, kind entity.TransactionType, amount int64, category string) *entity.Transaction {
	d, _ := time.Parse("2006-01-02", date)
	return entity.NewTransaction(userID, d, "lançamento", decimal.NewFromInt(amount), kind, category)
}

func dashboardCode(t *testing.T, err error) domainerror.DashboardErrorCode {
	t.Helper()
	var dashErr *domainerror.DashboardError
	require.True(t, errors.As(err, &dashErr), "expected DashboardError, got %v", err)
	return dashErr.Code
}

func TestGetMonthlyChartUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	year := 2024

	newRepo := func() *fakeDashboardRepository {
		return &fakeDashboardRepository{
			transactions: []*entity.Transaction{
				storedTxn(userID, "2024-01-15", entity.TransactionTypeIncome, 500, "Vendas"),
				storedTxn(userID, "2024-01-20", entity.TransactionTypeExpense, 100, "Aluguel"),
				storedTxn(userID, "2024-01-25", entity.TransactionTypeExpense, 50, "Sangria"),
				storedTxn(userID, "2023-01-10", entity.TransactionTypeIncome, 999, "Vendas"),
				storedTxn(uuid.New(), "2024-01-10", entity.TransactionTypeIncome, 777, "Vendas"),
			},
		}
	}

	t.Run("aggregates the requested year and caches the result", func(t *testing.T) {
		repo := newRepo()
		cache := newFakeChartCache()
		uc := NewGetMonthlyChartUseCase(repo, cache, newTestProvider())

		chart, err := uc.Execute(ctx, GetMonthlyChartInput{UserID: userID, Year: &year})
		require.NoError(t, err)

		require.Len(t, chart.Buckets, 12)
		assert.Equal(t, "Janeiro", chart.Buckets[0].Month)
		assert.True(t, chart.Buckets[0].IncomeTotal.Equal(decimal.NewFromInt(500)))
		assert.True(t, chart.Buckets[0].ExpenseTotal.Equal(decimal.NewFromInt(100)))
		assert.True(t, chart.Buckets[0].WithdrawalTotal.Equal(decimal.NewFromInt(50)))
		assert.True(t, chart.Summary.Balance.Equal(decimal.NewFromInt(350)))
		assert.Equal(t, "pt-BR", chart.Locale)

		require.NotNil(t, repo.lastStart)
		assert.Equal(t, 2024, repo.lastStart.Year())

		again, err := uc.Execute(ctx, GetMonthlyChartInput{UserID: userID, Year: &year})
		require.NoError(t, err)
		assert.Same(t, chart, again)
		assert.Equal(t, 1, repo.chartCalls)
	})

	t.Run("without a year the whole history collapses by month", func(t *testing.T) {
		repo := newRepo()
		uc := NewGetMonthlyChartUseCase(repo, nil, newTestProvider())

		chart, err := uc.Execute(ctx, GetMonthlyChartInput{UserID: userID})
		require.NoError(t, err)

		assert.Nil(t, repo.lastStart)
		assert.True(t, chart.Buckets[0].IncomeTotal.Equal(decimal.NewFromInt(1499)))
	})

	t.Run("english locale labels buckets in english", func(t *testing.T) {
		uc := NewGetMonthlyChartUseCase(newRepo(), nil, newTestProvider())

		chart, err := uc.Execute(ctx, GetMonthlyChartInput{UserID: userID, Year: &year, Locale: "en-US"})
		require.NoError(t, err)

		assert.Equal(t, "January", chart.Buckets[0].Month)
		assert.Equal(t, "en-US", chart.Locale)
	})

	t.Run("a write during the fetch keeps the chart out of the cache", func(t *testing.T) {
		repo := newRepo()
		cache := newFakeChartCache()
		repo.onChartFetch = func() {
			_ = cache.Invalidate(ctx, userID)
			repo.onChartFetch = nil
		}
		uc := NewGetMonthlyChartUseCase(repo, cache, newTestProvider())

		_, err := uc.Execute(ctx, GetMonthlyChartInput{UserID: userID, Year: &year})
		require.NoError(t, err)
		assert.Empty(t, cache.charts[userID])

		_, err = uc.Execute(ctx, GetMonthlyChartInput{UserID: userID, Year: &year})
		require.NoError(t, err)
		assert.Len(t, cache.charts[userID], 1)
		assert.Equal(t, 2, repo.chartCalls)
	})

	t.Run("cache failures fall back to the repository", func(t *testing.T) {
		repo := newRepo()
		cache := newFakeChartCache()
		cache.getErr = errors.New("redis down")
		cache.setErr = errors.New("redis down")
		uc := NewGetMonthlyChartUseCase(repo, cache, newTestProvider())

		chart, err := uc.Execute(ctx, GetMonthlyChartInput{UserID: userID, Year: &year})
		require.NoError(t, err)
		assert.NotNil(t, chart)
		assert.Equal(t, 1, repo.chartCalls)
	})

	t.Run("invalid year", func(t *testing.T) {
		bad := 1200
		uc := NewGetMonthlyChartUseCase(newRepo(), nil, newTestProvider())

		_, err := uc.Execute(ctx, GetMonthlyChartInput{UserID: userID, Year: &bad})
		assert.Equal(t, domainerror.ErrCodeInvalidYear, dashboardCode(t, err))
	})

	t.Run("unsupported locale", func(t *testing.T) {
		uc := NewGetMonthlyChartUseCase(newRepo(), nil, newTestProvider())

		_, err := uc.Execute(ctx, GetMonthlyChartInput{UserID: userID, Locale: "fr-FR"})
		assert.Equal(t, domainerror.ErrCodeUnsupportedLocale, dashboardCode(t, err))
	})

	t.Run("repository errors are returned", func(t *testing.T) {
		repo := newRepo()
		repo.err = errRepository
		uc := NewGetMonthlyChartUseCase(repo, nil, newTestProvider())

		_, err := uc.Execute(ctx, GetMonthlyChartInput{UserID: userID})
		assert.ErrorIs(t, err, errRepository)
	})
}

func TestAggregateTransactionsUseCase(t *testing.T) {
	uc := NewAggregateTransactionsUseCase(newTestProvider())

	t.Run("aggregates supplied records", func(t *testing.T) {
		chart, err := uc.Execute(context.Background(), AggregateTransactionsInput{
			Transactions: []AggregationTransaction{
				txn(entity.TransactionTypeIncome, 500, "2024-01-15", "Vendas"),
				txn(entity.TransactionTypeExpense, 100, "2024-01-20", "Aluguel"),
				txn(entity.TransactionTypeExpense, 50, "2024-01-25", "Sangria"),
				txn(entity.TransactionTypeExpense, 500, "31/01/2024", "Aluguel"),
			},
		})
		require.NoError(t, err)

		assert.Nil(t, chart.Year)
		assert.True(t, chart.Summary.TotalExpense.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, int64(30), chart.Summary.ExpenseRatio)
	})

	t.Run("rejects oversized requests", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), AggregateTransactionsInput{
			Transactions: make([]AggregationTransaction, MaxAggregationTransactions+1),
		})
		assert.Equal(t, domainerror.ErrCodeTooManyTransactions, dashboardCode(t, err))
	})
}

func TestGetCategoryBreakdownUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	jan := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	dec := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)

	repo := &fakeDashboardRepository{
		totalsByPeriod: map[time.Time][]RawCategoryTotal{
			jan: {
				{Category: "Aluguel", Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(600), TransactionCount: 1},
				{Category: "Mercado", Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(300), TransactionCount: 4},
				{Category: "Sangria", Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(60), TransactionCount: 1},
				{Category: "Sangria", Type: entity.TransactionTypeIncome, Amount: decimal.NewFromInt(40), TransactionCount: 1},
				{Category: "Vendas", Type: entity.TransactionTypeIncome, Amount: decimal.NewFromInt(5000), TransactionCount: 9},
			},
			dec: {
				{Category: "Aluguel", Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(600), TransactionCount: 1},
				{Category: "Mercado", Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(200), TransactionCount: 3},
			},
		},
	}
	uc := NewGetCategoryBreakdownUseCase(repo, "Sangria", 20)

	output, err := uc.Execute(ctx, GetCategoryBreakdownInput{UserID: userID, Month: jan.AddDate(0, 0, 14)})
	require.NoError(t, err)

	t.Run("january compares against the previous december", func(t *testing.T) {
		require.Len(t, repo.totalsCalls, 2)
		assert.Equal(t, dec, repo.totalsCalls[1].start)
		assert.Equal(t, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), repo.totalsCalls[1].end)
	})

	t.Run("income rows are excluded and withdrawals merged", func(t *testing.T) {
		assert.True(t, output.TotalExpenses.Equal(decimal.NewFromInt(1000)))
		require.Len(t, output.Categories, 3)

		assert.Equal(t, "Aluguel", output.Categories[0].CategoryName)
		assert.Equal(t, 60.0, output.Categories[0].Percentage)
		assert.Equal(t, int64(0), output.Categories[0].Trend)
		assert.Empty(t, output.Categories[0].Alert)

		assert.Equal(t, "Mercado", output.Categories[1].CategoryName)
		assert.Equal(t, int64(50), output.Categories[1].Trend)
		assert.NotEmpty(t, output.Categories[1].Alert)

		withdrawal := output.Categories[2]
		assert.Equal(t, "Sangria", withdrawal.CategoryName)
		assert.True(t, withdrawal.IsWithdrawal)
		assert.True(t, withdrawal.Amount.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, 2, withdrawal.TransactionCount)
		assert.Equal(t, int64(0), withdrawal.Trend)
	})

	t.Run("period label names the month", func(t *testing.T) {
		assert.Equal(t, "Janeiro 2025", output.Period.PeriodLabel)
	})

	t.Run("missing month", func(t *testing.T) {
		_, err := uc.Execute(ctx, GetCategoryBreakdownInput{UserID: userID})
		assert.Equal(t, domainerror.ErrCodeInvalidMonth, dashboardCode(t, err))
	})
}

func TestGetDataRangeUseCase(t *testing.T) {
	t.Run("no data", func(t *testing.T) {
		uc := NewGetDataRangeUseCase(&fakeDashboardRepository{})

		output, err := uc.Execute(context.Background(), GetDataRangeInput{UserID: uuid.New()})
		require.NoError(t, err)
		assert.False(t, output.HasData)
		assert.Empty(t, output.AvailableYears)
	})

	t.Run("lists years newest first", func(t *testing.T) {
		oldest := time.Date(2022, time.March, 3, 0, 0, 0, 0, time.UTC)
		newest := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
		uc := NewGetDataRangeUseCase(&fakeDashboardRepository{
			dateRange: &DateRange{OldestDate: &oldest, NewestDate: &newest, TotalTransactions: 12},
		})

		output, err := uc.Execute(context.Background(), GetDataRangeInput{UserID: uuid.New()})
		require.NoError(t, err)
		assert.True(t, output.HasData)
		assert.Equal(t, []int{2024, 2023, 2022}, output.AvailableYears)
		assert.Equal(t, 12, output.TotalTransactions)
	})
}

func TestExportMonthlyChartUseCase(t *testing.T) {
	userID := uuid.New()
	year := 2024
	repo := &fakeDashboardRepository{
		transactions: []*entity.Transaction{
			storedTxn(userID, "2024-02-02", entity.TransactionTypeIncome, 800, "Vendas"),
		},
	}
	xlsx := &fakeExporter{format: ExportFormatXLSX}
	pdf := &fakeExporter{format: ExportFormatPDF, err: errors.New("font missing")}
	uc := NewExportMonthlyChartUseCase(NewGetMonthlyChartUseCase(repo, nil, newTestProvider()), xlsx, pdf)

	t.Run("renders the requested format", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), ExportMonthlyChartInput{UserID: userID, Year: &year, Format: "XLSX"})
		require.NoError(t, err)

		assert.Equal(t, "resumo-mensal-2024.xlsx", output.FileName)
		assert.Equal(t, []byte("xlsx"), output.Content)
		require.NotNil(t, xlsx.last.Chart)
		assert.True(t, xlsx.last.Chart.Buckets[1].IncomeTotal.Equal(decimal.NewFromInt(800)))
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ExportMonthlyChartInput{UserID: userID, Format: "csv"})
		assert.Equal(t, domainerror.ErrCodeUnsupportedExportFormat, dashboardCode(t, err))
	})

	t.Run("render failure", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ExportMonthlyChartInput{UserID: userID, Format: "pdf"})
		assert.Equal(t, domainerror.ErrCodeExportFailed, dashboardCode(t, err))
		assert.ErrorIs(t, err, domainerror.ErrExportFailed)
	})
}

func TestWarmMonthlyChartsUseCase(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	repo := &fakeDashboardRepository{
		userIDs: []uuid.UUID{first, second},
		transactions: []*entity.Transaction{
			storedTxn(first, "2025-05-05", entity.TransactionTypeIncome, 100, "Vendas"),
			storedTxn(second, "2025-06-06", entity.TransactionTypeExpense, 40, "Mercado"),
		},
	}
	cache := newFakeChartCache()
	now := func() time.Time { return time.Date(2025, time.October, 1, 3, 0, 0, 0, time.UTC) }
	uc := NewWarmMonthlyChartsUseCase(repo, cache, NewGetMonthlyChartUseCase(repo, cache, newTestProvider()), now)

	output, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, output.Users)
	assert.Equal(t, 2, output.Warmed)
	assert.Equal(t, 0, output.Failed)
	assert.ElementsMatch(t, []uuid.UUID{first, second}, cache.invalidated)

	chart, found, err := cache.Get(context.Background(), second, "2025:pt-BR")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, chart.Buckets[5].ExpenseTotal.Equal(decimal.NewFromInt(40)))

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := uc.Execute(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/link-financer/backend/internal/domain/error"
)

// GetMonthlyChartInput represents the input for getting the monthly chart.
type GetMonthlyChartInput struct {
	UserID uuid.UUID
	Year   *int // nil aggregates the whole history by month of year
	Locale string
}

// MonthlyChart is the twelve-bucket chart plus its summary.
type MonthlyChart struct {
	Year    *int          `json:"year,omitempty"`
	Locale  string        `json:"locale"`
	Buckets []MonthBucket `json:"buckets"`
	Summary YearSummary   `json:"summary"`
}

// GetMonthlyChartUseCase handles building the income/expense/withdrawal chart of a user.
type GetMonthlyChartUseCase struct {
	dashboardRepo DashboardRepository
	chartCache    MonthlyChartCache
	aggregators   *AggregatorProvider
}

// NewGetMonthlyChartUseCase creates a new GetMonthlyChartUseCase instance.
// chartCache may be nil, in which case every call hits the repository.
func NewGetMonthlyChartUseCase(
	dashboardRepo DashboardRepository,
	chartCache MonthlyChartCache,
	aggregators *AggregatorProvider,
) *GetMonthlyChartUseCase {
	return &GetMonthlyChartUseCase{
		dashboardRepo: dashboardRepo,
		chartCache:    chartCache,
		aggregators:   aggregators,
	}
}

// Execute retrieves the monthly chart, from cache when possible.
func (uc *GetMonthlyChartUseCase) Execute(
	ctx context.Context,
	input GetMonthlyChartInput,
) (*MonthlyChart, error) {
	if input.Year != nil && !IsValidChartYear(*input.Year) {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidYear,
			fmt.Sprintf("year must be between %d and %d", minChartYear, maxChartYear),
			domainerror.ErrInvalidYear,
		)
	}

	aggregator, locale, err := uc.aggregators.For(input.Locale)
	if err != nil {
		return nil, err
	}

	key := chartCacheKey(input.Year, locale)
	cacheable := uc.chartCache != nil
	var generation int64
	if cacheable {
		cached, found, err := uc.chartCache.Get(ctx, input.UserID, key)
		if err != nil {
			slog.Warn("Monthly chart cache read failed",
				"userID", input.UserID,
				"key", key,
				"error", err,
			)
		} else if found {
			return cached, nil
		}

		// Read before the rows so a write landing in between is detected on Set.
		generation, err = uc.chartCache.Generation(ctx, input.UserID)
		if err != nil {
			slog.Warn("Monthly chart cache generation read failed",
				"userID", input.UserID,
				"error", err,
			)
			cacheable = false
		}
	}

	var startDate, endDate *time.Time
	if input.Year != nil {
		start, end := YearBounds(*input.Year)
		startDate, endDate = &start, &end
	}

	transactions, err := uc.dashboardRepo.FindTransactionsForChart(ctx, input.UserID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get chart transactions: %w", err)
	}

	buckets := aggregator.Aggregate(ToAggregationTransactions(transactions))
	chart := &MonthlyChart{
		Year:    input.Year,
		Locale:  locale,
		Buckets: buckets,
		Summary: SummarizeBuckets(buckets),
	}

	if cacheable {
		if err := uc.chartCache.Set(ctx, input.UserID, generation, key, chart); err != nil {
			slog.Warn("Monthly chart cache write failed",
				"userID", input.UserID,
				"key", key,
				"error", err,
			)
		}
	}

	return chart, nil
}

// chartCacheKey identifies a chart variant within a user's cache entry.
func chartCacheKey(year *int, locale string) string {
	yearKey := "all"
	if year != nil {
		yearKey = strconv.Itoa(*year)
	}
	return yearKey + ":" + locale
}

package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/link-financer/backend/internal/domain/entity"
)

// DashboardRepository defines the interface for dashboard data operations.
type DashboardRepository interface {
	// GetDateRange returns the date range of user's transactions.
	GetDateRange(ctx context.Context, userID uuid.UUID) (*DateRange, error)

	// FindTransactionsForChart returns the user's transactions, optionally bounded by date.
	// Nil bounds mean the whole history.
	FindTransactionsForChart(
		ctx context.Context,
		userID uuid.UUID,
		startDate, endDate *time.Time,
	) ([]*entity.Transaction, error)

	// GetCategoryTotals returns totals grouped by category and type for a period.
	GetCategoryTotals(
		ctx context.Context,
		userID uuid.UUID,
		startDate, endDate time.Time,
	) ([]RawCategoryTotal, error)

	// ListUserIDsWithTransactions returns every user that owns at least one transaction.
	ListUserIDsWithTransactions(ctx context.Context) ([]uuid.UUID, error)
}

// MonthlyChartCache stores computed charts per user.
// Implementations must tolerate concurrent use.
type MonthlyChartCache interface {
	// Get returns the cached chart for key, or found=false on a miss.
	Get(ctx context.Context, userID uuid.UUID, key string) (chart *MonthlyChart, found bool, err error)

	// Generation returns the user's cache generation. Invalidate advances it.
	Generation(ctx context.Context, userID uuid.UUID) (int64, error)

	// Set stores a chart under key only while the user's generation still equals
	// generation, so a chart computed before a write is never stored after it.
	Set(ctx context.Context, userID uuid.UUID, generation int64, key string, chart *MonthlyChart) error

	// Invalidate drops every cached chart of the user.
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// DateRange represents the date boundaries of a user's transaction history.
type DateRange struct {
	OldestDate        *time.Time
	NewestDate        *time.Time
	TotalTransactions int
}

// RawCategoryTotal represents one category/type total from the database.
type RawCategoryTotal struct {
	Category         string
	Type             entity.TransactionType
	Amount           decimal.Decimal
	TransactionCount int
}

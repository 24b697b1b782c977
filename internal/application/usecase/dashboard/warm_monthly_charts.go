package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// WarmMonthlyChartsOutput reports the outcome of a warm-up run.
type WarmMonthlyChartsOutput struct {
	Users  int
	Warmed int
	Failed int
}

// WarmMonthlyChartsUseCase recomputes the current-year chart of every user with transactions.
type WarmMonthlyChartsUseCase struct {
	dashboardRepo   DashboardRepository
	chartCache      MonthlyChartCache
	getMonthlyChart *GetMonthlyChartUseCase
	now             func() time.Time
}

// NewWarmMonthlyChartsUseCase creates a new WarmMonthlyChartsUseCase instance.
func NewWarmMonthlyChartsUseCase(
	dashboardRepo DashboardRepository,
	chartCache MonthlyChartCache,
	getMonthlyChart *GetMonthlyChartUseCase,
	now func() time.Time,
) *WarmMonthlyChartsUseCase {
	if now == nil {
		now = time.Now
	}
	return &WarmMonthlyChartsUseCase{
		dashboardRepo:   dashboardRepo,
		chartCache:      chartCache,
		getMonthlyChart: getMonthlyChart,
		now:             now,
	}
}

// Execute drops each user's cached charts and rebuilds the current-year one.
// A failure for one user is logged and does not stop the run.
func (uc *WarmMonthlyChartsUseCase) Execute(ctx context.Context) (*WarmMonthlyChartsOutput, error) {
	userIDs, err := uc.dashboardRepo.ListUserIDsWithTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with transactions: %w", err)
	}

	year := uc.now().Year()
	output := &WarmMonthlyChartsOutput{Users: len(userIDs)}

	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return output, err
		}

		if uc.chartCache != nil {
			if err := uc.chartCache.Invalidate(ctx, userID); err != nil {
				slog.Warn("Failed to invalidate monthly chart cache",
					"userID", userID,
					"error", err,
				)
			}
		}

		if _, err := uc.getMonthlyChart.Execute(ctx, GetMonthlyChartInput{
			UserID: userID,
			Year:   &year,
		}); err != nil {
			output.Failed++
			slog.Error("Failed to warm monthly chart",
				"userID", userID,
				"year", year,
				"error", err,
			)
			continue
		}
		output.Warmed++
	}

	slog.Info("Monthly chart warm-up finished",
		"users", output.Users,
		"warmed", output.Warmed,
		"failed", output.Failed,
	)

	return output, nil
}

// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/link-financer/backend/config"
	"github.com/link-financer/backend/internal/application/adapter"
	"github.com/link-financer/backend/internal/application/usecase/dashboard"
	"github.com/link-financer/backend/internal/application/usecase/transaction"
	"github.com/link-financer/backend/internal/infra/cache"
	database "github.com/link-financer/backend/internal/infra/db"
	"github.com/link-financer/backend/internal/infra/scheduler"
	"github.com/link-financer/backend/internal/infra/server/router"
	"github.com/link-financer/backend/internal/integration/adapters"
	chartcache "github.com/link-financer/backend/internal/integration/cache"
	"github.com/link-financer/backend/internal/integration/entrypoint/controller"
	"github.com/link-financer/backend/internal/integration/entrypoint/middleware"
	"github.com/link-financer/backend/internal/integration/persistence"
	"github.com/link-financer/backend/internal/integration/report"
)

const (
	// WarmChartsJob is the scheduler name of the chart warm-up job.
	WarmChartsJob = "warm-monthly-charts"
	// CleanupRateLimiterJob is the scheduler name of the rate limiter cleanup job.
	CleanupRateLimiterJob = "cleanup-rate-limiter"

	rateLimiterCleanupSchedule = "@every 10m"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client
	Router      *router.Router
	Scheduler   *scheduler.Scheduler
	RateLimiter *middleware.RateLimiter

	WarmMonthlyCharts *dashboard.WarmMonthlyChartsUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case monthly charts are never cached.
// now may be nil, in which case time.Now is used.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, now func() time.Time) (*Injector, error) {
	if now == nil {
		now = time.Now
	}

	// Create repositories
	transactionRepo := persistence.NewTransactionRepository(db)
	dashboardRepo := persistence.NewDashboardRepository(db)

	// Chart cache stays a nil interface without Redis so use cases skip it.
	var monthlyChartCache dashboard.MonthlyChartCache
	var cacheInvalidator adapter.ChartCacheInvalidator
	if redisClient != nil {
		redisChartCache := chartcache.NewRedisChartCache(redisClient, cfg.Redis.ChartTTL)
		monthlyChartCache = redisChartCache
		cacheInvalidator = redisChartCache
	}

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)
	aggregators := dashboard.NewAggregatorProvider(
		cfg.Aggregation.Locale,
		cfg.Aggregation.WithdrawalCategory,
		slog.Default().With("component", "monthly_aggregator"),
	)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, aggregators.WithdrawalCategory())
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, cacheInvalidator)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, cacheInvalidator)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, cacheInvalidator)

	// Create dashboard use cases
	getMonthlyChartUseCase := dashboard.NewGetMonthlyChartUseCase(dashboardRepo, monthlyChartCache, aggregators)
	exportMonthlyChartUseCase := dashboard.NewExportMonthlyChartUseCase(
		getMonthlyChartUseCase,
		report.NewXLSXExporter(),
		report.NewPDFExporter(),
	)
	getCategoryBreakdownUseCase := dashboard.NewGetCategoryBreakdownUseCase(
		dashboardRepo,
		aggregators.WithdrawalCategory(),
		cfg.Aggregation.TrendAlertThreshold,
	)
	getDataRangeUseCase := dashboard.NewGetDataRangeUseCase(dashboardRepo)
	aggregateTransactionsUseCase := dashboard.NewAggregateTransactionsUseCase(aggregators)
	warmMonthlyChartsUseCase := dashboard.NewWarmMonthlyChartsUseCase(
		dashboardRepo,
		monthlyChartCache,
		getMonthlyChartUseCase,
		now,
	)

	// Create controllers
	var redisHealthCheck func() bool
	if redisClient != nil {
		redisHealthCheck = cache.NewFromClient(redisClient).HealthCheck
	}
	healthController := controller.NewHealthController(
		database.NewFromGorm(db).HealthCheck,
		redisHealthCheck,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)

	dashboardController := controller.NewDashboardController(
		getMonthlyChartUseCase,
		exportMonthlyChartUseCase,
		getCategoryBreakdownUseCase,
		getDataRangeUseCase,
		now,
	)

	aggregationController := controller.NewAggregationController(aggregateTransactionsUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var aggregationRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		aggregationRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		aggregationRateLimiter = middleware.NewRateLimiterWithConfig(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create background jobs
	jobs := scheduler.New(scheduler.DefaultConfig())
	if err := jobs.Register(WarmChartsJob, cfg.Scheduler.WarmCron, func(ctx context.Context) error {
		_, err := warmMonthlyChartsUseCase.Execute(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	if err := jobs.Register(CleanupRateLimiterJob, rateLimiterCleanupSchedule, func(context.Context) error {
		aggregationRateLimiter.Cleanup()
		return nil
	}); err != nil {
		return nil, err
	}

	// Create router
	r := router.NewRouter(
		healthController,
		transactionController,
		dashboardController,
		aggregationController,
		aggregationRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:            cfg,
		DB:                db,
		Redis:             redisClient,
		Router:            r,
		Scheduler:         jobs,
		RateLimiter:       aggregationRateLimiter,
		WarmMonthlyCharts: warmMonthlyChartsUseCase,
	}, nil
}

// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/link-financer/backend/internal/application/usecase/dashboard"
	"github.com/link-financer/backend/internal/domain/entity"
	"github.com/link-financer/backend/internal/integration/persistence/model"
)

// dashboardRepository implements the dashboard.DashboardRepository interface.
// Queries avoid vendor-specific date functions so they run on both Postgres and SQLite.
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository instance.
func NewDashboardRepository(db *gorm.DB) dashboard.DashboardRepository {
	return &dashboardRepository{
		db: db,
	}
}

// GetDateRange returns the date range of user's transactions.
func (r *dashboardRepository) GetDateRange(
	ctx context.Context,
	userID uuid.UUID,
) (*dashboard.DateRange, error) {
	base := r.db.WithContext(ctx).Model(&model.TransactionModel{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	dateRange := &dashboard.DateRange{TotalTransactions: int(total)}
	if total == 0 {
		return dateRange, nil
	}

	var oldest, newest model.TransactionModel
	if err := base.Session(&gorm.Session{}).Order("date ASC").First(&oldest).Error; err != nil {
		return nil, fmt.Errorf("failed to get oldest transaction: %w", err)
	}
	if err := base.Session(&gorm.Session{}).Order("date DESC").First(&newest).Error; err != nil {
		return nil, fmt.Errorf("failed to get newest transaction: %w", err)
	}

	dateRange.OldestDate = &oldest.Date
	dateRange.NewestDate = &newest.Date
	return dateRange, nil
}

// FindTransactionsForChart returns the user's transactions, oldest first.
func (r *dashboardRepository) FindTransactionsForChart(
	ctx context.Context,
	userID uuid.UUID,
	startDate, endDate *time.Time,
) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if startDate != nil {
		query = query.Where("date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("date <= ?", *endDate)
	}

	var transactionModels []model.TransactionModel
	if err := query.Order("date ASC").Find(&transactionModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load chart transactions: %w", err)
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, nil
}

// GetCategoryTotals returns totals grouped by category and type for a period.
func (r *dashboardRepository) GetCategoryTotals(
	ctx context.Context,
	userID uuid.UUID,
	startDate, endDate time.Time,
) ([]dashboard.RawCategoryTotal, error) {
	var results []struct {
		Category         string          `gorm:"column:category"`
		Type             string          `gorm:"column:type"`
		Amount           decimal.Decimal `gorm:"column:amount"`
		TransactionCount int             `gorm:"column:transaction_count"`
	}

	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("category, type, COALESCE(SUM(amount), 0) as amount, COUNT(*) as transaction_count").
		Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", startDate, endDate).
		Group("category, type").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get category totals: %w", err)
	}

	totals := make([]dashboard.RawCategoryTotal, len(results))
	for i, row := range results {
		totals[i] = dashboard.RawCategoryTotal{
			Category:         row.Category,
			Type:             entity.TransactionType(row.Type),
			Amount:           row.Amount,
			TransactionCount: row.TransactionCount,
		}
	}
	return totals, nil
}

// ListUserIDsWithTransactions returns every user that owns at least one transaction.
func (r *dashboardRepository) ListUserIDsWithTransactions(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return ids, nil
}

package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/link-financer/backend/internal/domain/entity"
	domainerror "github.com/link-financer/backend/internal/domain/error"
	"github.com/link-financer/backend/internal/domain/valueobject"
)

// UncategorizedName is the default name for transactions without a category (Portuguese).
const UncategorizedName = "Sem categoria"

// DefaultTrendAlertThreshold is the month-over-month increase, in percent, above which a category is flagged.
const DefaultTrendAlertThreshold = 20

// GetCategoryBreakdownInput represents the input for getting category breakdown.
type GetCategoryBreakdownInput struct {
	UserID uuid.UUID
	Month  time.Time // any instant inside the reference month
}

// CategoryBreakdownItem represents a single category in the breakdown.
type CategoryBreakdownItem struct {
	CategoryName     string          `json:"category_name"`
	Amount           decimal.Decimal `json:"amount"`
	Percentage       float64         `json:"percentage"`
	TransactionCount int             `json:"transaction_count"`
	Trend            int64           `json:"trend"`
	Alert            string          `json:"alert,omitempty"`
	IsWithdrawal     bool            `json:"is_withdrawal"`
}

// GetCategoryBreakdownOutput represents the output of getting category breakdown.
type GetCategoryBreakdownOutput struct {
	Period        BreakdownPeriod         `json:"period"`
	TotalExpenses decimal.Decimal         `json:"total_expenses"`
	Categories    []CategoryBreakdownItem `json:"categories"`
}

// BreakdownPeriod represents the period information for category breakdown.
type BreakdownPeriod struct {
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	PeriodLabel string    `json:"period_label"`
}

// GetCategoryBreakdownUseCase handles getting spending breakdown by category.
type GetCategoryBreakdownUseCase struct {
	dashboardRepo      DashboardRepository
	withdrawalCategory string
	alertThreshold     int64
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(
	dashboardRepo DashboardRepository,
	withdrawalCategory string,
	alertThreshold int,
) *GetCategoryBreakdownUseCase {
	if withdrawalCategory == "" {
		withdrawalCategory = DefaultWithdrawalCategory
	}
	if alertThreshold <= 0 {
		alertThreshold = DefaultTrendAlertThreshold
	}
	return &GetCategoryBreakdownUseCase{
		dashboardRepo:      dashboardRepo,
		withdrawalCategory: withdrawalCategory,
		alertThreshold:     int64(alertThreshold),
	}
}

// Execute retrieves spending breakdown by category for the reference month.
func (uc *GetCategoryBreakdownUseCase) Execute(
	ctx context.Context,
	input GetCategoryBreakdownInput,
) (*GetCategoryBreakdownOutput, error) {
	if input.Month.IsZero() {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidMonth,
			"month is required in YYYY-MM format",
			domainerror.ErrInvalidMonth,
		)
	}

	startDate, endDate := MonthBounds(input.Month)
	current, err := uc.dashboardRepo.GetCategoryTotals(ctx, input.UserID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get category totals: %w", err)
	}

	prevStart, prevEnd := MonthBounds(PreviousMonth(input.Month))
	previous, err := uc.dashboardRepo.GetCategoryTotals(ctx, input.UserID, prevStart, prevEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to get previous month category totals: %w", err)
	}

	currentItems := uc.collapse(current)
	previousItems := uc.collapse(previous)

	totalExpenses := decimal.Zero
	for _, item := range currentItems {
		totalExpenses = totalExpenses.Add(item.Amount)
	}

	categories := make([]CategoryBreakdownItem, 0, len(currentItems))
	for _, item := range currentItems {
		if !totalExpenses.IsZero() {
			pct := item.Amount.Mul(hundred).Div(totalExpenses)
			item.Percentage, _ = pct.Round(2).Float64()
		}

		if prev, ok := previousItems[item.CategoryName]; ok {
			item.Trend = trendPercent(prev.Amount, item.Amount)
		}
		if item.Trend > uc.alertThreshold {
			item.Alert = fmt.Sprintf("Gastos com %s subiram %d%% em relação ao mês anterior",
				item.CategoryName, item.Trend)
		}

		categories = append(categories, *item)
	}

	// Largest first, name as tie-break for a stable response.
	sort.Slice(categories, func(i, j int) bool {
		if !categories[i].Amount.Equal(categories[j].Amount) {
			return categories[i].Amount.GreaterThan(categories[j].Amount)
		}
		return categories[i].CategoryName < categories[j].CategoryName
	})

	return &GetCategoryBreakdownOutput{
		Period: BreakdownPeriod{
			StartDate:   startDate,
			EndDate:     endDate,
			PeriodLabel: GenerateMonthLabel(startDate, valueobject.PortugueseMonthNames),
		},
		TotalExpenses: totalExpenses,
		Categories:    categories,
	}, nil
}

// collapse keeps expense rows and merges every withdrawal row, whatever its type, into one item.
func (uc *GetCategoryBreakdownUseCase) collapse(totals []RawCategoryTotal) map[string]*CategoryBreakdownItem {
	items := make(map[string]*CategoryBreakdownItem, len(totals))
	for _, raw := range totals {
		isWithdrawal := raw.Category == uc.withdrawalCategory
		if !isWithdrawal && raw.Type != entity.TransactionTypeExpense {
			continue
		}

		name := raw.Category
		if name == "" {
			name = UncategorizedName
		}

		item, ok := items[name]
		if !ok {
			item = &CategoryBreakdownItem{
				CategoryName: name,
				Amount:       decimal.Zero,
				IsWithdrawal: isWithdrawal,
			}
			items[name] = item
		}
		item.Amount = item.Amount.Add(raw.Amount)
		item.TransactionCount += raw.TransactionCount
	}
	return items
}

// trendPercent returns the rounded percentage change from previous to current.
// A zero previous amount yields zero.
func trendPercent(previous, current decimal.Decimal) int64 {
	if previous.IsZero() {
		return 0
	}
	return current.Sub(previous).Mul(hundred).Div(previous).Round(0).IntPart()
}

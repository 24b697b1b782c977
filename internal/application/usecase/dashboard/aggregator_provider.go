package dashboard

import (
	"log/slog"

	domainerror "github.com/link-financer/backend/internal/domain/error"
	"github.com/link-financer/backend/internal/domain/valueobject"
)

// AggregatorProvider builds a MonthlyAggregator for a requested locale.
type AggregatorProvider struct {
	defaultLocale      string
	withdrawalCategory string
	logger             *slog.Logger
}

// NewAggregatorProvider creates a new AggregatorProvider instance.
func NewAggregatorProvider(defaultLocale, withdrawalCategory string, logger *slog.Logger) *AggregatorProvider {
	if withdrawalCategory == "" {
		withdrawalCategory = DefaultWithdrawalCategory
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AggregatorProvider{
		defaultLocale:      defaultLocale,
		withdrawalCategory: withdrawalCategory,
		logger:             logger,
	}
}

// WithdrawalCategory returns the configured withdrawal marker.
func (p *AggregatorProvider) WithdrawalCategory() string {
	return p.withdrawalCategory
}

// For returns an aggregator for locale and the canonical locale tag it resolved to.
// An empty locale selects the default one.
func (p *AggregatorProvider) For(locale string) (*MonthlyAggregator, string, error) {
	if locale == "" {
		locale = p.defaultLocale
	}

	months, err := valueobject.MonthNamesForLocale(locale)
	if err != nil {
		return nil, "", domainerror.NewDashboardError(
			domainerror.ErrCodeUnsupportedLocale,
			"locale must be one of: pt-BR, en-US",
			domainerror.ErrUnsupportedLocale,
		)
	}

	canonical := valueobject.LocalePortugueseBR
	if months == valueobject.EnglishMonthNames {
		canonical = valueobject.LocaleEnglishUS
	}

	aggregator := NewMonthlyAggregator(
		months,
		valueobject.ParseTransactionDate,
		WithWithdrawalCategory(p.withdrawalCategory),
		WithLogger(p.logger),
	)
	return aggregator, canonical, nil
}

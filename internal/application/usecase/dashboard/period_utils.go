package dashboard

import (
	"fmt"
	"time"

	"github.com/link-financer/backend/internal/domain/valueobject"
)

const (
	minChartYear = 1970
	maxChartYear = 9999
)

// YearBounds returns the first and last day of a calendar year in UTC.
func YearBounds(year int) (start, end time.Time) {
	start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}

// MonthBounds returns the first and last day of the month containing date.
func MonthBounds(date time.Time) (start, end time.Time) {
	start = time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// PreviousMonth returns the first day of the month before the one containing date.
// January rolls back to December of the previous year.
func PreviousMonth(date time.Time) time.Time {
	start, _ := MonthBounds(date)
	return start.AddDate(0, -1, 0)
}

// ParseYearMonth parses a "YYYY-MM" reference month.
func ParseYearMonth(value string) (time.Time, error) {
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse reference month %q: %w", value, err)
	}
	return t, nil
}

// IsValidChartYear reports whether year is usable as a chart filter.
func IsValidChartYear(year int) bool {
	return year >= minChartYear && year <= maxChartYear
}

// GenerateMonthLabel returns a label such as "Março 2025".
func GenerateMonthLabel(date time.Time, months valueobject.MonthNames) string {
	return fmt.Sprintf("%s %d", months.For(date.Month()), date.Year())
}

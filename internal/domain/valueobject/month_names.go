// Package valueobject contains domain value objects for the LinkFinancer dashboard.
package valueobject

import (
	"errors"
	"strings"
	"time"
)

// ErrUnsupportedLocale is returned when no month names exist for a locale.
var ErrUnsupportedLocale = errors.New("unsupported locale")

const (
	// LocalePortugueseBR labels months in Brazilian Portuguese. It is the default locale.
	LocalePortugueseBR = "pt-BR"
	// LocaleEnglishUS labels months in US English.
	LocaleEnglishUS = "en-US"
)

// MonthNames is the ordered list of month display names, January first.
type MonthNames [12]string

// PortugueseMonthNames are the chart labels used by the dashboard.
var PortugueseMonthNames = MonthNames{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// EnglishMonthNames are the en-US chart labels.
var EnglishMonthNames = MonthNames{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthNamesForLocale returns the month names for a locale tag.
// Matching is case-insensitive and accepts the bare language ("pt", "en").
func MonthNamesForLocale(locale string) (MonthNames, error) {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "pt-br", "pt":
		return PortugueseMonthNames, nil
	case "en-us", "en":
		return EnglishMonthNames, nil
	default:
		return MonthNames{}, ErrUnsupportedLocale
	}
}

// For returns the display name of a calendar month.
func (m MonthNames) For(month time.Month) string {
	return m[int(month)-1]
}

// Index returns the zero-based position of name, or -1 if it is not a month name.
func (m MonthNames) Index(name string) int {
	for i, n := range m {
		if n == name {
			return i
		}
	}
	return -1
}

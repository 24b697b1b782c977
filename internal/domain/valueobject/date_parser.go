package valueobject

import (
	"fmt"
	"strings"
	"time"
)

// DateParser turns a transaction date string into a calendar date.
type DateParser func(value string) (time.Time, error)

// transactionDateLayouts are tried in order by ParseTransactionDate.
var transactionDateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTransactionDate is the default DateParser.
// Dates without an offset are read as UTC; dates with one keep it, so the month is
// the one written in the string.
func ParseTransactionDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty transaction date")
	}

	for _, layout := range transactionDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable transaction date %q", value)
}

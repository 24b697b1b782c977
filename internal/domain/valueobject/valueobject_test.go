package valueobject

import (
	"errors"
	"testing"
	"time"
)

func TestMonthNamesForLocale(t *testing.T) {
	tests := []struct {
		locale  string
		first   string
		wantErr bool
	}{
		{locale: LocalePortugueseBR, first: "Janeiro"},
		{locale: LocaleEnglishUS, first: "January"},
		{locale: "PT", first: "Janeiro"},
		{locale: " en-us ", first: "January"},
		{locale: "en", first: "January"},
		{locale: "fr-FR", wantErr: true},
		{locale: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			names, err := MonthNamesForLocale(tt.locale)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedLocale) {
					t.Fatalf("expected ErrUnsupportedLocale, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if names[0] != tt.first {
				t.Errorf("expected first month %s, got %s", tt.first, names[0])
			}
		})
	}
}

func TestMonthNames_ForAndIndex(t *testing.T) {
	if got := PortugueseMonthNames.For(time.March); got != "Março" {
		t.Errorf("expected Março, got %s", got)
	}
	if got := EnglishMonthNames.For(time.December); got != "December" {
		t.Errorf("expected December, got %s", got)
	}
	if idx := PortugueseMonthNames.Index("Dezembro"); idx != 11 {
		t.Errorf("expected index 11, got %d", idx)
	}
	if idx := PortugueseMonthNames.Index("Smarch"); idx != -1 {
		t.Errorf("expected index -1, got %d", idx)
	}
}

func TestParseTransactionDate(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantMonth time.Month
		wantErr   bool
	}{
		{name: "date only", value: "2024-01-15", wantMonth: time.January},
		{name: "rfc3339", value: "2024-03-01T10:00:00Z", wantMonth: time.March},
		{name: "rfc3339 with offset keeps written month", value: "2024-05-31T23:30:00-03:00", wantMonth: time.May},
		{name: "fractional seconds", value: "2024-07-04T12:00:00.123Z", wantMonth: time.July},
		{name: "local datetime", value: "2024-11-20T08:15:00", wantMonth: time.November},
		{name: "space separated", value: "2024-12-24 18:00:00", wantMonth: time.December},
		{name: "garbage", value: "not-a-date", wantErr: true},
		{name: "empty", value: "  ", wantErr: true},
		{name: "impossible day", value: "2024-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTransactionDate(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Month() != tt.wantMonth {
				t.Errorf("expected month %s, got %s", tt.wantMonth, got.Month())
			}
		})
	}
}

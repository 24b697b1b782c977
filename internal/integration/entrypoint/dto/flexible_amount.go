package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts outside these bounds decode to zero like any other non-numeric value.
const (
	maxAmountExponent = 30
	maxAmountDigits   = 38
)

// FlexibleAmount accepts a JSON number or a numeric string.
// Anything else decodes to zero so a single bad amount never rejects the whole request.
type FlexibleAmount struct {
	decimal.Decimal
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *FlexibleAmount) UnmarshalJSON(data []byte) error {
	a.Decimal = decimal.Zero

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	var raw string
	switch data[0] {
	case '"':
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		raw = string(data)
	default:
		return nil
	}

	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !withinAmountBounds(value) {
		return nil
	}
	a.Decimal = value
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a FlexibleAmount) MarshalJSON() ([]byte, error) {
	return a.Decimal.MarshalJSON()
}

// withinAmountBounds rejects values whose exponent or precision would make
// decimal arithmetic allocate unbounded coefficients.
func withinAmountBounds(value decimal.Decimal) bool {
	exp := value.Exponent()
	if exp > maxAmountExponent || exp < -maxAmountExponent {
		return false
	}
	return value.NumDigits() <= maxAmountDigits
}

// FlexibleString accepts a JSON string. Any other JSON value decodes to "".
type FlexibleString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexibleString) UnmarshalJSON(data []byte) error {
	*s = ""

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	*s = FlexibleString(raw)
	return nil
}

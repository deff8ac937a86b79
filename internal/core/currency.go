// Package core holds the budget domain model and the money
// formatting/parsing utilities shared by the engine, the store and the
// presentation layer.
//
// Money is represented as float64 and persisted in two shapes: plan-level
// fields are raw numbers, day-level fields are fixed 2-decimal strings with
// a literal "R$" prefix. Amount bridges the two on (de)serialization.
package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CurrencyPrefix is the literal prefix of persisted money strings.
const CurrencyPrefix = "R$"

// FormatCurrency renders a money value as its canonical display string,
// e.g. FormatCurrency(12.3) -> "R$ 12.30".
func FormatCurrency(v float64) string {
	return fmt.Sprintf("%s %.2f", CurrencyPrefix, v)
}

// ParseCurrency is the inverse of FormatCurrency: it strips the prefix and
// surrounding whitespace and parses the remainder. Empty or unparseable
// input yields 0; it never errors.
func ParseCurrency(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, CurrencyPrefix)
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Amount is a money value that serializes as its display string. Persisted
// day records carry "R$ X.XX" strings, so loading re-parses them through
// ParseCurrency; bare JSON numbers are tolerated for the mixed layout.
type Amount float64

func (a Amount) String() string {
	return FormatCurrency(float64(a))
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatCurrency(float64(a)))
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Amount(ParseCurrency(s))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*a = Amount(f)
		return nil
	}
	// Store contract: unparseable money degrades to zero, never an error.
	*a = 0
	return nil
}

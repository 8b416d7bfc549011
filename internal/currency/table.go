// Package currency holds the exchange-rate snapshot used for USD
// normalisation. Rates are expressed as units of the currency per one USD,
// so converting an amount to USD divides by the rate.
package currency

import (
	"encoding/json"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const Base = "USD"

// Table is an immutable code -> rate snapshot.
type Table struct {
	rates   map[string]float64
	skipped []string
}

// NewTable copies rates, upper-cases the codes and drops entries that are
// not three-letter codes or whose rate is not a positive finite number.
// The base currency is always present with rate 1.
func NewTable(rates map[string]float64) *Table {
	t := &Table{rates: make(map[string]float64, len(rates)+1)}
	for code, rate := range rates {
		c := strings.ToUpper(strings.TrimSpace(code))
		if !isCode(c) || rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			t.skipped = append(t.skipped, code)
			continue
		}
		t.rates[c] = rate
	}
	t.rates[Base] = 1
	sort.Strings(t.skipped)
	return t
}

// USDOnly is the degraded table used when no snapshot is available.
func USDOnly() *Table {
	return NewTable(nil)
}

func isCode(c string) bool {
	if len(c) != 3 {
		return false
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func (t *Table) Rate(code string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	rate, ok := t.rates[strings.ToUpper(code)]
	return rate, ok
}

// ToUSD converts amount in the given currency. ok is false when the table
// has no rate for the code.
func (t *Table) ToUSD(amount decimal.Decimal, code string) (decimal.Decimal, bool) {
	rate, ok := t.Rate(code)
	if !ok {
		return decimal.Zero, false
	}
	return amount.Div(decimal.NewFromFloat(rate)), true
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rates)
}

// Codes returns the known currency codes in sorted order.
func (t *Table) Codes() []string {
	codes := make([]string, 0, t.Len())
	if t == nil {
		return codes
	}
	for c := range t.rates {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Skipped lists input codes rejected by NewTable.
func (t *Table) Skipped() []string {
	return t.skipped
}

func (t *Table) MarshalBinary() ([]byte, error) {
	return json.Marshal(t.rates)
}

func (t *Table) UnmarshalBinary(data []byte) error {
	var rates map[string]float64
	if err := json.Unmarshal(data, &rates); err != nil {
		return err
	}
	*t = *NewTable(rates)
	return nil
}

package salary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizofreude/data-career-navigator/internal/currency"
	"github.com/pizofreude/data-career-navigator/internal/models"
)

func testTable() *currency.Table {
	return currency.NewTable(map[string]float64{
		"EUR": 0.92,
		"INR": 83,
		"JPY": 150,
		"MYR": 4.5,
		"MXN": 17,
	})
}

func requireValue(t *testing.T, want float64, got *float64) {
	t.Helper()
	require.NotNil(t, got)
	assert.InDelta(t, want, *got, 0.001)
}

func TestParseUSDRange(t *testing.T) {
	p := NewParser(DefaultPolicy())

	res := p.Parse("$80,000 - $100,000/yr", testTable())

	requireValue(t, 80000, res.Min)
	requireValue(t, 100000, res.Max)
	assert.Equal(t, "USD", res.Currency)
	assert.False(t, res.CurrencyAssumed)
	assert.Equal(t, models.PeriodAnnual, res.Period)
	assert.False(t, res.PeriodAssumed)
	requireValue(t, 80000, res.AnnualUSDMin)
	requireValue(t, 100000, res.AnnualUSDMax)
	assert.Equal(t, models.SalaryMissNone, res.Miss)
}

func TestParseHourlyEuro(t *testing.T) {
	p := NewParser(DefaultPolicy())

	res := p.Parse("€45/hr", testTable())

	requireValue(t, 45, res.Min)
	requireValue(t, 45, res.Max)
	assert.Equal(t, "EUR", res.Currency)
	assert.Equal(t, models.PeriodHourly, res.Period)
	requireValue(t, 93600, res.AnnualMin)
	requireValue(t, 101739.13, res.AnnualUSDMin)
	requireValue(t, 101739.13, res.AnnualUSDMax)
}

func TestParseNoAmount(t *testing.T) {
	p := NewParser(DefaultPolicy())

	res := p.Parse("Competitive salary", testTable())

	assert.Nil(t, res.Min)
	assert.Nil(t, res.Max)
	assert.Empty(t, res.Currency)
	assert.Equal(t, models.PeriodNone, res.Period)
	assert.Nil(t, res.AnnualUSDMin)
	assert.Nil(t, res.AnnualUSDMax)
	assert.Equal(t, models.SalaryMissParse, res.Miss)
	assert.False(t, res.HasAmount())
}

func TestParseSingleNumberAssumesUSDAnnual(t *testing.T) {
	p := NewParser(DefaultPolicy())

	res := p.Parse("65000", testTable())

	requireValue(t, 65000, res.Min)
	requireValue(t, 65000, res.Max)
	assert.Equal(t, "USD", res.Currency)
	assert.True(t, res.CurrencyAssumed)
	assert.Equal(t, models.PeriodAnnual, res.Period)
	assert.True(t, res.PeriodAssumed)
	requireValue(t, 65000, res.AnnualUSDMin)
}

func TestParseSwapsReversedRange(t *testing.T) {
	p := NewParser(DefaultPolicy())

	res := p.Parse("$100,000 - $80,000 per year", testTable())

	requireValue(t, 80000, res.Min)
	requireValue(t, 100000, res.Max)
	assert.LessOrEqual(t, *res.AnnualUSDMin, *res.AnnualUSDMax)
}

func TestParseInvalidAmounts(t *testing.T) {
	p := NewParser(DefaultPolicy())

	for _, text := range []string{"-$500 per month", "$0", "-4000", "$500 - -$100", "$500 to -100 per hour"} {
		t.Run(text, func(t *testing.T) {
			res := p.Parse(text, testTable())
			assert.Equal(t, models.SalaryMissInvalid, res.Miss)
			assert.Nil(t, res.Min)
			assert.Nil(t, res.AnnualUSDMin)
		})
	}
}

func TestParseLookupMissKeepsAmounts(t *testing.T) {
	p := NewParser(DefaultPolicy())

	res := p.Parse("₩50,000,000 per year", currency.USDOnly())

	assert.Equal(t, models.SalaryMissLookup, res.Miss)
	assert.Equal(t, "KRW", res.Currency)
	requireValue(t, 50_000_000, res.Min)
	requireValue(t, 50_000_000, res.AnnualMax)
	assert.Nil(t, res.AnnualUSDMin)
	assert.Nil(t, res.AnnualUSDMax)
}

func TestParseImplausible(t *testing.T) {
	p := NewParser(DefaultPolicy())

	res := p.Parse("$5,000,000 per year", testTable())
	assert.Equal(t, models.SalaryMissImplausible, res.Miss)
	requireValue(t, 5_000_000, res.Min)
	assert.Nil(t, res.AnnualUSDMax)

	policy := DefaultPolicy()
	policy.MaxAnnualUSD = 0
	res = NewParser(policy).Parse("$5,000,000 per year", testTable())
	assert.Equal(t, models.SalaryMissNone, res.Miss)
	requireValue(t, 5_000_000, res.AnnualUSDMax)
}

func TestParseFormats(t *testing.T) {
	p := NewParser(DefaultPolicy())

	tests := []struct {
		name     string
		text     string
		min, max float64
		currency string
		period   models.Period
	}{
		{"k multiplier", "$90k - $120k per year", 90_000, 120_000, "USD", models.PeriodAnnual},
		{"shared multiplier", "$80-100k", 80_000, 100_000, "USD", models.PeriodAnnual},
		{"M multiplier", "¥1.2M per year", 1_200_000, 1_200_000, "JPY", models.PeriodAnnual},
		{"european decimals", "€50.000,50 per year", 50000.5, 50000.5, "EUR", models.PeriodAnnual},
		{"indian grouping", "₹12,00,000 per annum", 1_200_000, 1_200_000, "INR", models.PeriodAnnual},
		{"ringgit", "RM 4,500 - RM 7,200 per month", 4_500, 7_200, "MYR", models.PeriodMonthly},
		{"mexican dollar prefix", "MX$235,200 - MX$252,806 a year", 235_200, 252_806, "MXN", models.PeriodAnnual},
		{"iso code suffix", "50,000 - 60,000 EUR annually", 50_000, 60_000, "EUR", models.PeriodAnnual},
		{"weekly", "$1,000 per week", 1_000, 1_000, "USD", models.PeriodWeekly},
		{"daily", "€400/day", 400, 400, "EUR", models.PeriodDaily},
		{"spelled range", "$40 to $50 an hour", 40, 50, "USD", models.PeriodHourly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p.Parse(tt.text, testTable())
			requireValue(t, tt.min, res.Min)
			requireValue(t, tt.max, res.Max)
			assert.Equal(t, tt.currency, res.Currency)
			assert.Equal(t, tt.period, res.Period)
			assert.NotNil(t, res.AnnualUSDMin)
		})
	}
}

func TestParseAnnualisation(t *testing.T) {
	p := NewParser(DefaultPolicy())

	res := p.Parse("$1,000 per week", testTable())
	requireValue(t, 52_000, res.AnnualUSDMin)

	res = p.Parse("€400/day", testTable())
	requireValue(t, 104_000, res.AnnualMin)

	res = p.Parse("¥1.2M per year", testTable())
	requireValue(t, 8_000, res.AnnualUSDMin)

	res = p.Parse("RM 4,500 - RM 7,200 per month", testTable())
	requireValue(t, 54_000, res.AnnualMin)
	requireValue(t, 86_400, res.AnnualMax)
	requireValue(t, 12_000, res.AnnualUSDMin)
	requireValue(t, 19_200, res.AnnualUSDMax)
}

func TestExtractSkipsExperienceNumbers(t *testing.T) {
	p := NewParser(DefaultPolicy())

	res := p.Extract(
		"Data Analyst",
		"We need 5+ years of experience with SQL. Salary: $90k - $120k per year. Apply now",
		testTable(),
	)

	requireValue(t, 90_000, res.Min)
	requireValue(t, 120_000, res.Max)
	assert.Equal(t, "USD", res.Currency)
}

func TestExtractIgnoresFunding(t *testing.T) {
	p := NewParser(DefaultPolicy())

	res := p.Extract(
		"Data Engineer",
		"We raised $50M in our Series B. You bring 3-5 years of experience",
		testTable(),
	)

	assert.Equal(t, models.SalaryMissParse, res.Miss)
	assert.Nil(t, res.Min)
}

func TestExtractFromTitle(t *testing.T) {
	p := NewParser(DefaultPolicy())

	res := p.Extract("Senior Analyst ($60k-$80k)", "Great team", testTable())

	requireValue(t, 60_000, res.Min)
	requireValue(t, 80_000, res.Max)
}

func TestParseIsDeterministic(t *testing.T) {
	p := NewParser(DefaultPolicy())
	text := "€45/hr"

	assert.Equal(t, p.Parse(text, testTable()), p.Parse(text, testTable()))
}

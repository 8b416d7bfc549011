// Package salary extracts a normalised salary range from free text.
package salary

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/pizofreude/data-career-navigator/internal/currency"
	"github.com/pizofreude/data-career-navigator/internal/models"
	"github.com/pizofreude/data-career-navigator/internal/rules"
)

const (
	currencyWindow = 12
	periodWindow   = 20
)

// Policy holds the annualisation constants and the plausibility ceiling.
type Policy struct {
	HoursPerYear  int64
	DaysPerYear   int64
	WeeksPerYear  int64
	MonthsPerYear int64
	// MaxAnnualUSD drops USD figures above it; 0 disables the check.
	MaxAnnualUSD float64
}

func DefaultPolicy() Policy {
	return Policy{
		HoursPerYear:  2080,
		DaysPerYear:   260,
		WeeksPerYear:  52,
		MonthsPerYear: 12,
		MaxAnnualUSD:  1_000_000,
	}
}

func (p Policy) multiplier(period models.Period) decimal.Decimal {
	switch period {
	case models.PeriodHourly:
		return decimal.NewFromInt(p.HoursPerYear)
	case models.PeriodDaily:
		return decimal.NewFromInt(p.DaysPerYear)
	case models.PeriodWeekly:
		return decimal.NewFromInt(p.WeeksPerYear)
	case models.PeriodMonthly:
		return decimal.NewFromInt(p.MonthsPerYear)
	default:
		return decimal.NewFromInt(1)
	}
}

// Parser is stateless after construction and safe for concurrent use.
type Parser struct {
	policy     Policy
	currencies rules.Chain[string, string]
	periods    rules.Chain[string, models.Period]
}

func NewParser(policy Policy) *Parser {
	return &Parser{
		policy:     policy,
		currencies: currencyRules(),
		periods:    periodRules(),
	}
}

func (p *Parser) Policy() Policy {
	return p.policy
}

// Parse reads one salary expression such as "$80,000 - $100,000/yr" or
// "RM 4,500 per month". Failures are reported through SalaryResult.Miss.
func (p *Parser) Parse(text string, table *currency.Table) models.SalaryResult {
	tokens := findAmounts(text)
	if len(tokens) == 0 {
		return models.SalaryResult{Miss: models.SalaryMissParse}
	}

	i := pickToken(text, tokens)
	if i > 0 && isRangeGap(text[tokens[i-1].end:tokens[i].start]) {
		i--
	}
	first := tokens[i]
	if negative(text, first.start) {
		return models.SalaryResult{Miss: models.SalaryMissInvalid}
	}

	low, high := first.value, first.value
	spanEnd := first.end
	if i+1 < len(tokens) {
		next := tokens[i+1]
		if isRangeGap(text[first.end:next.start]) {
			high = next.value
			spanEnd = next.end
			// "$80-100k": the multiplier on the upper bound covers both.
			if first.factor == 1 && next.factor > 1 && first.value.LessThan(decimal.NewFromInt(1_000)) {
				low = first.value.Mul(decimal.NewFromInt(next.factor))
			}
		} else if sign, ok := signBefore(text, next.start); ok && sign >= first.end && isRangeGap(text[first.end:sign]) {
			// "$500 - -$100": a negative upper bound.
			return models.SalaryResult{Miss: models.SalaryMissInvalid}
		}
	}
	if !low.IsPositive() || !high.IsPositive() {
		return models.SalaryResult{Miss: models.SalaryMissInvalid}
	}
	if low.GreaterThan(high) {
		low, high = high, low
	}

	res := models.SalaryResult{
		Min: rounded(low),
		Max: rounded(high),
	}

	code, ok := p.detectCurrency(window(text, first.start-currencyWindow, spanEnd+currencyWindow), text)
	if !ok {
		code = currency.Base
		res.CurrencyAssumed = true
	}
	res.Currency = code

	period, ok := p.detectPeriod(window(text, first.start, spanEnd+periodWindow), text)
	if !ok {
		period = models.PeriodAnnual
		res.PeriodAssumed = true
	}
	res.Period = period

	mult := p.policy.multiplier(period)
	annualLow, annualHigh := low.Mul(mult), high.Mul(mult)
	res.AnnualMin = rounded(annualLow)
	res.AnnualMax = rounded(annualHigh)

	usdLow, okLow := table.ToUSD(annualLow, code)
	usdHigh, okHigh := table.ToUSD(annualHigh, code)
	if !okLow || !okHigh {
		res.Miss = models.SalaryMissLookup
		return res
	}
	if p.policy.MaxAnnualUSD > 0 && usdHigh.Round(2).InexactFloat64() > p.policy.MaxAnnualUSD {
		res.Miss = models.SalaryMissImplausible
		return res
	}
	res.AnnualUSDMin = rounded(usdLow)
	res.AnnualUSDMax = rounded(usdHigh)
	return res
}

func (p *Parser) detectCurrency(near, full string) (string, bool) {
	if code, _, ok := p.currencies.First(near); ok {
		return code, true
	}
	code, _, ok := p.currencies.First(full)
	return code, ok
}

func (p *Parser) detectPeriod(near, full string) (models.Period, bool) {
	if period, _, ok := p.periods.First(near); ok {
		return period, true
	}
	period, _, ok := p.periods.First(full)
	return period, ok
}

var (
	sentenceSplitRe = regexp.MustCompile(`[!?;\n\r]+|\.\s+|\s+[|•]\s+`)
	compensationRe  = regexp.MustCompile(`(?i)\b(?:salary|salaries|compensation|pay|paid|pays|wage|wages|rate|remuneration|base|ctc|stipend|package|earn|earning|ote|per\s+annum)\b`)
	fundingRe       = regexp.MustCompile(`(?i)\b(?:raised|raise|funding|funded|series\s+[a-e]|seed|investors?|valuation|valued|revenue|arr|backed|customers|users)\b`)
)

// Extract finds the salary in a whole posting. Sentences mentioning pay win
// over sentences that merely carry a currency amount; sentences about
// funding are ignored, and so are bare numbers ("5+ years").
func (p *Parser) Extract(title, description string, table *currency.Table) models.SalaryResult {
	sentences := append([]string{title}, sentenceSplitRe.Split(description, -1)...)

	for _, s := range sentences {
		if compensationRe.MatchString(s) && !fundingRe.MatchString(s) && hasAnchoredAmount(s) {
			return p.Parse(s, table)
		}
	}
	for _, s := range sentences {
		if !fundingRe.MatchString(s) && hasCurrencyAmount(s) {
			return p.Parse(s, table)
		}
	}
	return models.SalaryResult{Miss: models.SalaryMissParse}
}

func hasAnchoredAmount(s string) bool {
	for _, t := range findAmounts(s) {
		if anchored(s, t) {
			return true
		}
	}
	return false
}

func hasCurrencyAmount(s string) bool {
	for _, t := range findAmounts(s) {
		if anchoredBefore(s, t.start) {
			return true
		}
	}
	return false
}

// window returns s[from:to] clamped to s and widened to rune boundaries.
func window(s string, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(s) {
		to = len(s)
	}
	for from > 0 && !utf8.RuneStart(s[from]) {
		from--
	}
	for to < len(s) && !utf8.RuneStart(s[to]) {
		to++
	}
	return strings.TrimSpace(s[from:to])
}

func rounded(d decimal.Decimal) *float64 {
	f := d.Round(2).InexactFloat64()
	return &f
}

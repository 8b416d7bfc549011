package models

type Period string

const (
	PeriodNone    Period = ""
	PeriodHourly  Period = "hourly"
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodAnnual  Period = "annual"
)

// SalaryMiss classifies why a SalaryResult lacks some of its fields.
type SalaryMiss string

const (
	SalaryMissNone SalaryMiss = ""
	// SalaryMissParse: no usable amount in the text.
	SalaryMissParse SalaryMiss = "parse"
	// SalaryMissInvalid: an amount was found but is zero or negative.
	SalaryMissInvalid SalaryMiss = "invalid"
	// SalaryMissLookup: the currency has no rate in the table; amounts and
	// currency are kept, USD fields are absent.
	SalaryMissLookup SalaryMiss = "lookup"
	// SalaryMissImplausible: the annual USD figure exceeds the policy ceiling.
	SalaryMissImplausible SalaryMiss = "implausible"
)

// SalaryResult is derived from free text; nil pointers mean absent.
type SalaryResult struct {
	Min             *float64   `json:"min_amount"`
	Max             *float64   `json:"max_amount"`
	Currency        string     `json:"currency,omitempty"`
	CurrencyAssumed bool       `json:"currency_assumed,omitempty"`
	Period          Period     `json:"period,omitempty"`
	PeriodAssumed   bool       `json:"period_assumed,omitempty"`
	AnnualMin       *float64   `json:"annual_min"`
	AnnualMax       *float64   `json:"annual_max"`
	AnnualUSDMin    *float64   `json:"annual_usd_min"`
	AnnualUSDMax    *float64   `json:"annual_usd_max"`
	Miss            SalaryMiss `json:"miss,omitempty"`
}

func (r SalaryResult) HasAmount() bool {
	return r.Min != nil && r.Max != nil
}

func (r SalaryResult) HasUSD() bool {
	return r.AnnualUSDMin != nil && r.AnnualUSDMax != nil
}

// AnnualUSDAvg is the midpoint of the annual USD range, or nil.
func (r SalaryResult) AnnualUSDAvg() *float64 {
	if !r.HasUSD() {
		return nil
	}
	avg := (*r.AnnualUSDMin + *r.AnnualUSDMax) / 2
	return &avg
}

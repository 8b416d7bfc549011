package salary

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pizofreude/data-career-navigator/internal/rules"
)

// isoCodes are matched case-sensitively: lower-case "try" or "php" in prose
// must not read as a currency.
var isoCodes = []string{
	"USD", "EUR", "GBP", "JPY", "CNY", "INR", "CAD", "AUD", "CHF", "SEK", "NOK", "DKK",
	"RUB", "KRW", "SGD", "HKD", "NZD", "MXN", "BRL", "ZAR", "THB", "MYR", "IDR", "PHP",
	"VND", "TWD", "PLN", "CZK", "HUF", "TRY", "ILS", "AED", "SAR", "EGP", "QAR", "KWD",
	"BHD", "OMR", "JOD", "PKR", "LKR", "BDT", "NPR", "NGN", "KES", "GHS", "RON", "UAH",
}

var dollarPrefixes = map[string]string{
	"MX": "MXN",
	"US": "USD",
	"S":  "SGD",
	"C":  "CAD",
	"CA": "CAD",
	"A":  "AUD",
	"AU": "AUD",
	"R":  "BRL",
	"HK": "HKD",
	"NZ": "NZD",
}

// regionalShort need a digit right after them ("RM4,500", "Rp 7.000.000").
var regionalShort = map[string]string{
	"rm": "MYR",
	"rp": "IDR",
	"rs": "INR",
}

var regionalNames = map[string]string{
	"ringgit":          "MYR",
	"rupiah":           "IDR",
	"rupee":            "INR",
	"rupees":           "INR",
	"baht":             "THB",
	"yuan":             "CNY",
	"renminbi":         "CNY",
	"rmb":              "CNY",
	"mexican peso":     "MXN",
	"mexican pesos":    "MXN",
	"peso":             "PHP",
	"pesos":            "PHP",
	"dirham":           "AED",
	"dirhams":          "AED",
	"riyal":            "SAR",
	"riyals":           "SAR",
	"naira":            "NGN",
	"zloty":            "PLN",
	"forint":           "HUF",
	"euro":             "EUR",
	"euros":            "EUR",
	"pounds sterling":  "GBP",
	"singapore dollar": "SGD",
}

var symbols = map[string]string{
	"$": "USD",
	"＄": "USD",
	"€": "EUR",
	"£": "GBP",
	"￡": "GBP",
	"¥": "JPY",
	"￥": "JPY",
	"₹": "INR",
	"₱": "PHP",
	"₩": "KRW",
	"฿": "THB",
	"₫": "VND",
	"₪": "ILS",
	"₺": "TRY",
	"₽": "RUB",
	"₦": "NGN",
	"₵": "GHS",
	"zł": "PLN",
}

var (
	isoCodeRe       = regexp.MustCompile(`\b(` + strings.Join(isoCodes, "|") + `)(?:\b|\d)`)
	dollarPrefixRe  = regexp.MustCompile(`(?i)\b(MX|US|CA|AU|HK|NZ|S|C|A|R)\$`)
	regionalShortRe = regexp.MustCompile(`(?i)\b(rm|rp|rs)\.?\s?\d`)
	regionalNameRe  = regexp.MustCompile(`(?i)\b(` + alternation(regionalNames) + `)\b`)
	symbolRe        = regexp.MustCompile(`(` + alternation(symbols) + `)`)
)

func alternation(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	// Longest first so "mexican peso" wins over "peso".
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return strings.Join(keys, "|")
}

func currencyRules() rules.Chain[string, string] {
	return rules.Chain[string, string]{
		{Name: "dollar-prefix", Match: func(s string) (string, bool) {
			if m := dollarPrefixRe.FindStringSubmatch(s); m != nil {
				return dollarPrefixes[strings.ToUpper(m[1])], true
			}
			return "", false
		}},
		{Name: "iso-code", Match: func(s string) (string, bool) {
			if m := isoCodeRe.FindStringSubmatch(s); m != nil {
				return m[1], true
			}
			return "", false
		}},
		{Name: "regional-short", Match: func(s string) (string, bool) {
			if m := regionalShortRe.FindStringSubmatch(s); m != nil {
				return regionalShort[strings.ToLower(m[1])], true
			}
			return "", false
		}},
		{Name: "regional-name", Match: func(s string) (string, bool) {
			if m := regionalNameRe.FindStringSubmatch(s); m != nil {
				return regionalNames[strings.ToLower(m[1])], true
			}
			return "", false
		}},
		{Name: "symbol", Match: func(s string) (string, bool) {
			if m := symbolRe.FindStringSubmatch(s); m != nil {
				return symbols[m[1]], true
			}
			return "", false
		}},
	}
}

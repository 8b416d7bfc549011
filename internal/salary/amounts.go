package salary

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

type amountToken struct {
	start, end int
	value      decimal.Decimal
	// factor is the k/M multiplier applied to value, 1 when none.
	factor int64
}

var (
	numberRe = regexp.MustCompile(`(\d+(?:[.,]\d+)*)([kKmM])?`)

	// Text allowed between the two numbers of a range, e.g. " - $", " to RM ",
	// "/hr - ", " USD - ".
	rangeGapRe = regexp.MustCompile(`(?i)^\s*(?:[a-z]{3}\s*)?(?:(?:/|per\s+)[a-z.]+\s*)?(?:-|–|—|~|to)\s*(?:[a-z]{0,3}\$|[€£¥₹₱₩฿₫₪₺₽＄]|[a-z]{2,3}\.?)?\s*$`)

	anchorBeforeRe = regexp.MustCompile(`(?:\$|[€£¥₹₱₩฿₫₪₺₽₦₵＄￡￥]|\b(?:` + strings.Join(isoCodes, "|") + `)|\b(?i:rm|rp|rs)\.?)\s?$`)
	anchorAfterRe  = regexp.MustCompile(`^\s?(?:(?:` + strings.Join(isoCodes, "|") + `)\b|(?i:/\s*(?:hr|hour|yr|year|mo|month|day|wk|week)\b|per\s+(?:hour|hr|year|yr|annum|month|day|week)\b|an\s+hour\b|a\s+year\b))`)
)

// findAmounts lists the numeric tokens of text in order. Numbers glued to
// surrounding letters ("H1B", "3rd") are skipped unless a currency code
// precedes them ("RM4,500").
func findAmounts(text string) []amountToken {
	var tokens []amountToken
	for _, m := range numberRe.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[3]
		digits := text[m[2]:m[3]]

		multiplier := ""
		if m[4] >= 0 && !letterAt(text, m[5]) {
			multiplier = strings.ToLower(text[m[4]:m[5]])
			end = m[5]
		}

		if multiplier == "" && letterAt(text, end) {
			continue
		}
		if letterBefore(text, start) && !anchoredBefore(text, start) {
			continue
		}

		value, ok := parseNumber(digits)
		if !ok {
			continue
		}
		factor := int64(1)
		switch multiplier {
		case "k":
			factor = 1_000
		case "m":
			factor = 1_000_000
		}

		tokens = append(tokens, amountToken{
			start:  start,
			end:    end,
			value:  value.Mul(decimal.NewFromInt(factor)),
			factor: factor,
		})
	}
	return tokens
}

// parseNumber resolves thousands and decimal separators:
//   - both "," and "." present: the last one is the decimal mark
//   - repeated "." or ",": thousands grouping (incl. "12,00,000")
//   - a single separator followed by exactly three digits: thousands
//   - otherwise a single separator is the decimal mark
func parseNumber(s string) (decimal.Decimal, bool) {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastDot > lastComma {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		}
	case lastComma >= 0:
		s = resolveSingleSeparator(s, ",")
	case lastDot >= 0:
		s = resolveSingleSeparator(s, ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func resolveSingleSeparator(s, sep string) string {
	if strings.Count(s, sep) > 1 || len(s)-strings.LastIndex(s, sep)-1 == 3 {
		return strings.ReplaceAll(s, sep, "")
	}
	return strings.Replace(s, sep, ".", 1)
}

// pickToken prefers the first amount anchored on a currency or pay period
// marker and falls back to the first amount.
func pickToken(text string, tokens []amountToken) int {
	for i, t := range tokens {
		if anchored(text, t) {
			return i
		}
	}
	return 0
}

func anchored(text string, t amountToken) bool {
	return anchoredBefore(text, t.start) || anchorAfterRe.MatchString(text[t.end:])
}

func anchoredBefore(text string, start int) bool {
	return anchorBeforeRe.MatchString(text[:start])
}

// negative reports a minus sign glued to the amount or to its currency
// marker ("-$500", "-500"). A spaced dash ("Pay - $500") is punctuation.
func negative(text string, start int) bool {
	_, ok := signBefore(text, start)
	return ok
}

// signBefore returns the offset of the minus sign negative detects.
func signBefore(text string, start int) (int, bool) {
	prefix := text[:start]
	if loc := anchorBeforeRe.FindStringIndex(prefix); loc != nil && !strings.HasSuffix(prefix, " ") {
		prefix = prefix[:loc[0]]
	}
	for _, sign := range []string{"-", "−"} {
		if strings.HasSuffix(prefix, sign) {
			return len(prefix) - len(sign), true
		}
	}
	return 0, false
}

func isRangeGap(gap string) bool {
	return rangeGapRe.MatchString(gap)
}

func letterAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsLetter(r)
}

func letterBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return unicode.IsLetter(r)
}

package salary

import (
	"regexp"

	"github.com/pizofreude/data-career-navigator/internal/models"
	"github.com/pizofreude/data-career-navigator/internal/rules"
)

// Checked in this order: shorter pay periods first, so "$45/hr plus annual
// bonus" stays hourly.
var periodPatterns = []struct {
	name   string
	period models.Period
	re     *regexp.Regexp
}{
	{"hourly", models.PeriodHourly, regexp.MustCompile(`(?i)/\s*h(?:ou)?rs?\b|\bper\s+h(?:ou)?rs?\b|\bhourly\b|\ban\s+hour\b|\bp\.h\b`)},
	{"daily", models.PeriodDaily, regexp.MustCompile(`(?i)/\s*day\b|\bper\s+day\b|\bdaily\b|\bper\s+diem\b`)},
	{"weekly", models.PeriodWeekly, regexp.MustCompile(`(?i)/\s*w(?:ee)?k\b|\bper\s+w(?:ee)?k\b|\bweekly\b|\bp\.w\b`)},
	{"monthly", models.PeriodMonthly, regexp.MustCompile(`(?i)/\s*mo(?:nth)?\b|\bper\s+(?:mo(?:nth)?|mth)\b|\bmonthly\b|\ba\s+month\b|\bp\.m\b`)},
	{"annual", models.PeriodAnnual, regexp.MustCompile(`(?i)/\s*y(?:ea)?r\b|\bper\s+y(?:ea)?r\b|\bannum\b|\bannual(?:ly)?\b|\byearly\b|\ba\s+year\b|\bp\.a\b`)},
}

func periodRules() rules.Chain[string, models.Period] {
	chain := make(rules.Chain[string, models.Period], 0, len(periodPatterns))
	for _, p := range periodPatterns {
		p := p
		chain = append(chain, rules.Rule[string, models.Period]{
			Name: p.name,
			Match: func(s string) (models.Period, bool) {
				if p.re.MatchString(s) {
					return p.period, true
				}
				return models.PeriodNone, false
			},
		})
	}
	return chain
}

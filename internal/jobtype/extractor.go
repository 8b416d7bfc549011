// Package jobtype normalises the free-text work type and employment type
// columns into closed enums. The two axes never influence each other.
package jobtype

import (
	"regexp"
	"strings"

	"github.com/pizofreude/data-career-navigator/internal/models"
	"github.com/pizofreude/data-career-navigator/internal/rules"
)

var workSynonyms = map[string]models.WorkArrangement{
	"remote":            models.WorkRemote,
	"fully remote":      models.WorkRemote,
	"100% remote":       models.WorkRemote,
	"remote first":      models.WorkRemote,
	"work from home":    models.WorkRemote,
	"wfh":               models.WorkRemote,
	"telecommute":       models.WorkRemote,
	"hybrid":            models.WorkHybrid,
	"partially remote":  models.WorkHybrid,
	"flexible location": models.WorkHybrid,
	"on site":           models.WorkOnSite,
	"onsite":            models.WorkOnSite,
	"in office":         models.WorkOnSite,
	"office based":      models.WorkOnSite,
	"in person":         models.WorkOnSite,
}

var employmentSynonyms = map[string]models.EmploymentKind{
	"full time":        models.EmploymentFullTime,
	"fulltime":         models.EmploymentFullTime,
	"permanent":        models.EmploymentFullTime,
	"ft":               models.EmploymentFullTime,
	"part time":        models.EmploymentPartTime,
	"parttime":         models.EmploymentPartTime,
	"pt":               models.EmploymentPartTime,
	"contract":         models.EmploymentContract,
	"contractor":       models.EmploymentContract,
	"contract to hire": models.EmploymentContract,
	"fixed term":       models.EmploymentContract,
	"temporary":        models.EmploymentContract,
	"temp":             models.EmploymentContract,
	"freelance":        models.EmploymentContract,
	"freelancer":       models.EmploymentContract,
	"internship":       models.EmploymentInternship,
	"intern":           models.EmploymentInternship,
	"apprenticeship":   models.EmploymentInternship,
}

// Token scans, most specific first: "hybrid remote" is Hybrid and a
// "full time internship" is an Internship.
var workScan = []struct {
	value models.WorkArrangement
	re    *regexp.Regexp
}{
	{models.WorkHybrid, regexp.MustCompile(`\b(?:hybrid|partially remote|flexible location)\b`)},
	{models.WorkRemote, regexp.MustCompile(`\b(?:remote|wfh|work from home|telecommute|telework)\b`)},
	{models.WorkOnSite, regexp.MustCompile(`\b(?:on ?site|in office|office based|in person)\b`)},
}

var employmentScan = []struct {
	value models.EmploymentKind
	re    *regexp.Regexp
}{
	{models.EmploymentInternship, regexp.MustCompile(`\b(?:internship|intern|apprenticeship)\b`)},
	{models.EmploymentPartTime, regexp.MustCompile(`\bpart ?time\b`)},
	{models.EmploymentContract, regexp.MustCompile(`\b(?:contract|contractor|temporary|temp|freelance|freelancer|fixed term)\b`)},
	{models.EmploymentFullTime, regexp.MustCompile(`\b(?:full ?time|permanent)\b`)},
}

// Extractor is safe for concurrent use.
type Extractor struct {
	work       rules.Chain[string, models.WorkArrangement]
	employment rules.Chain[string, models.EmploymentKind]
}

func NewExtractor() *Extractor {
	return &Extractor{
		work: rules.Chain[string, models.WorkArrangement]{
			{Name: "exact-synonym", Match: func(s string) (models.WorkArrangement, bool) {
				v, ok := workSynonyms[s]
				return v, ok
			}},
			{Name: "token-scan", Match: func(s string) (models.WorkArrangement, bool) {
				for _, w := range workScan {
					if w.re.MatchString(s) {
						return w.value, true
					}
				}
				return models.WorkUnknown, false
			}},
		},
		employment: rules.Chain[string, models.EmploymentKind]{
			{Name: "exact-synonym", Match: func(s string) (models.EmploymentKind, bool) {
				v, ok := employmentSynonyms[s]
				return v, ok
			}},
			{Name: "token-scan", Match: func(s string) (models.EmploymentKind, bool) {
				for _, e := range employmentScan {
					if e.re.MatchString(s) {
						return e.value, true
					}
				}
				return models.EmploymentUnknown, false
			}},
		},
	}
}

func (e *Extractor) Extract(workType, employmentType string) models.JobTypeTag {
	return models.JobTypeTag{
		WorkArrangement: e.WorkArrangement(workType),
		EmploymentKind:  e.EmploymentKind(employmentType),
	}
}

func (e *Extractor) WorkArrangement(s string) models.WorkArrangement {
	if v, _, ok := e.work.First(normalize(s)); ok {
		return v
	}
	return models.WorkUnknown
}

func (e *Extractor) EmploymentKind(s string) models.EmploymentKind {
	if v, _, ok := e.employment.First(normalize(s)); ok {
		return v
	}
	return models.EmploymentUnknown
}

var separatorRe = regexp.MustCompile(`[-_\s]+`)

// normalize trims, lower-cases and folds '-', '_' and whitespace runs into a
// single space: "On-Site", "on_site" and "on  site" all become "on site".
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimSpace(separatorRe.ReplaceAllString(s, " "))
}

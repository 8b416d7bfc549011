// Package location resolves free-text posting locations to country names
// using static tables only.
package location

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pizofreude/data-career-navigator/internal/models"
	"github.com/pizofreude/data-career-navigator/internal/rules"
)

var usStates = map[string]bool{
	"al": true, "ak": true, "az": true, "ar": true, "ca": true, "co": true, "ct": true, "de": true,
	"fl": true, "ga": true, "hi": true, "id": true, "il": true, "in": true, "ia": true, "ks": true,
	"ky": true, "la": true, "me": true, "md": true, "ma": true, "mi": true, "mn": true, "ms": true,
	"mo": true, "mt": true, "ne": true, "nv": true, "nh": true, "nj": true, "nm": true, "ny": true,
	"nc": true, "nd": true, "oh": true, "ok": true, "or": true, "pa": true, "ri": true, "sc": true,
	"sd": true, "tn": true, "tx": true, "ut": true, "vt": true, "va": true, "wa": true, "wv": true,
	"wi": true, "wy": true, "dc": true,
}

var cities = map[string]string{
	"new york":       "United States",
	"san francisco":  "United States",
	"bay area":       "United States",
	"washington dc":  "United States",
	"los angeles":    "United States",
	"boston":         "United States",
	"seattle":        "United States",
	"chicago":        "United States",
	"st. louis":      "United States",
	"tampa":          "United States",
	"salt lake":      "United States",
	"charlotte":      "United States",
	"des moines":     "United States",
	"dallas":         "United States",
	"fort worth":     "United States",
	"baltimore":      "United States",
	"minneapolis":    "United States",
	"st. paul":       "United States",
	"columbus":       "United States",
	"austin":         "United States",
	"utah":           "United States",
	"kansas":         "United States",
	"texas":          "United States",
	"california":     "United States",
	"paris":          "France",
	"porto":          "Portugal",
	"lisbon":         "Portugal",
	"mumbai":         "India",
	"kolkata":        "India",
	"bengaluru":      "India",
	"bangalore":      "India",
	"delhi":          "India",
	"hyderabad":      "India",
	"pune":           "India",
	"bangkok":        "Thailand",
	"jakarta":        "Indonesia",
	"istanbul":       "Turkey",
	"coventry":       "United Kingdom",
	"london":         "United Kingdom",
	"manchester":     "United Kingdom",
	"hongkou":        "China",
	"beijing":        "China",
	"shanghai":       "China",
	"kuala lumpur":   "Malaysia",
	"petaling jaya":  "Malaysia",
	"penang":         "Malaysia",
	"selangor":       "Malaysia",
	"mexico city":    "Mexico",
	"rio de janeiro": "Brazil",
	"são paulo":      "Brazil",
	"sao paulo":      "Brazil",
	"campinas":       "Brazil",
	"calgary":        "Canada",
	"toronto":        "Canada",
	"vancouver":      "Canada",
	"rome":           "Italy",
	"milan":          "Italy",
	"madrid":         "Spain",
	"barcelona":      "Spain",
	"berlin":         "Germany",
	"munich":         "Germany",
	"amsterdam":      "Netherlands",
	"dublin":         "Ireland",
	"sydney":         "Australia",
	"melbourne":      "Australia",
	"singapore":      "Singapore",
	"dubai":          "United Arab Emirates",
	"nasr":           "Egypt",
	"cairo":          "Egypt",
	"manila":         "Philippines",
	"ho chi minh":    "Vietnam",
	"hanoi":          "Vietnam",
	"tokyo":          "Japan",
	"seoul":          "South Korea",
}

var countries = map[string]string{
	"united states":            "United States",
	"united states of america": "United States",
	"usa":                      "United States",
	"us":                       "United States",
	"u.s.":                     "United States",
	"united kingdom":           "United Kingdom",
	"uk":                       "United Kingdom",
	"england":                  "United Kingdom",
	"scotland":                 "United Kingdom",
	"wales":                    "United Kingdom",
	"great britain":            "United Kingdom",
	"canada":                   "Canada",
	"mexico":                   "Mexico",
	"brazil":                   "Brazil",
	"argentina":                "Argentina",
	"chile":                    "Chile",
	"colombia":                 "Colombia",
	"france":                   "France",
	"germany":                  "Germany",
	"deutschland":              "Germany",
	"spain":                    "Spain",
	"portugal":                 "Portugal",
	"italy":                    "Italy",
	"netherlands":              "Netherlands",
	"belgium":                  "Belgium",
	"switzerland":              "Switzerland",
	"austria":                  "Austria",
	"ireland":                  "Ireland",
	"poland":                   "Poland",
	"sweden":                   "Sweden",
	"norway":                   "Norway",
	"denmark":                  "Denmark",
	"finland":                  "Finland",
	"turkey":                   "Turkey",
	"türkiye":                  "Turkey",
	"egypt":                    "Egypt",
	"south africa":             "South Africa",
	"nigeria":                  "Nigeria",
	"kenya":                    "Kenya",
	"united arab emirates":     "United Arab Emirates",
	"uae":                      "United Arab Emirates",
	"saudi arabia":             "Saudi Arabia",
	"israel":                   "Israel",
	"india":                    "India",
	"pakistan":                 "Pakistan",
	"china":                    "China",
	"hong kong":                "Hong Kong",
	"taiwan":                   "Taiwan",
	"japan":                    "Japan",
	"south korea":              "South Korea",
	"korea":                    "South Korea",
	"singapore":                "Singapore",
	"malaysia":                 "Malaysia",
	"indonesia":                "Indonesia",
	"thailand":                 "Thailand",
	"vietnam":                  "Vietnam",
	"viet nam":                 "Vietnam",
	"philippines":              "Philippines",
	"australia":                "Australia",
	"new zealand":              "New Zealand",
}

var (
	noiseRe   = regexp.MustCompile(`\b(?:metropolitan area|metroplex|metro|region|area|county|greater)\b`)
	cityRe    = phraseRegexp(cities)
	countryRe = phraseRegexp(countries)
)

// phraseRegexp matches any key of m as a whole phrase, longest first.
func phraseRegexp(m map[string]string) *regexp.Regexp {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return regexp.MustCompile(`(?:^|[^\pL\pN])(` + strings.Join(keys, "|") + `)(?:$|[^\pL\pN])`)
}

// Extractor is safe for concurrent use.
type Extractor struct {
	chain rules.Chain[string, string]
}

func NewExtractor() *Extractor {
	return &Extractor{chain: rules.Chain[string, string]{
		{Name: "country-name", Match: func(loc string) (string, bool) {
			return lookup(countryRe, countries, loc)
		}},
		{Name: "city", Match: func(loc string) (string, bool) {
			return lookup(cityRe, cities, loc)
		}},
		{Name: "us-state-code", Match: matchStateCode},
	}}
}

// Country returns the country for a location string, or
// models.UnknownCountry.
func (e *Extractor) Country(location string) string {
	loc := normalize(location)
	if loc == "" {
		return models.UnknownCountry
	}
	if country, _, ok := e.chain.First(loc); ok {
		return country
	}
	return models.UnknownCountry
}

func lookup(re *regexp.Regexp, table map[string]string, loc string) (string, bool) {
	m := re.FindStringSubmatch(loc)
	if m == nil {
		return "", false
	}
	return table[m[1]], true
}

// matchStateCode reads "Austin, TX" style locations: a two-letter last part.
func matchStateCode(loc string) (string, bool) {
	parts := strings.Split(loc, ",")
	last := strings.TrimSpace(parts[len(parts)-1])
	if len(parts) > 1 && usStates[last] {
		return "United States", true
	}
	return "", false
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = noiseRe.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, " ,", ",")
	return strings.Trim(s, " ,")
}

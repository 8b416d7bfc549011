// Package experience assigns a seniority level to a posting from its title
// and description.
package experience

import (
	"regexp"
	"strconv"

	"github.com/pizofreude/data-career-navigator/internal/models"
	"github.com/pizofreude/data-career-navigator/internal/rules"
)

// maxYears bounds plausible experience requirements; larger numbers are
// company ages, headcounts and the like.
const maxYears = 50

// Posting is the classifier input.
type Posting struct {
	Title       string
	Description string
}

var (
	yearsRe = regexp.MustCompile(`(?i)(?:^|[^\d$€£.,])(\d{1,3})\s*(?:\+|plus)?\s*(?:(?:-|–|—|to)\s*\d{1,3}\s*\+?\s*)?(?:years?|yrs?)\b`)

	titleKeywords = []struct {
		name  string
		level models.ExperienceLevel
		re    *regexp.Regexp
	}{
		{"intern", models.ExperienceInternship, regexp.MustCompile(`(?i)\b(?:intern|internship|trainee)\b`)},
		{"executive", models.ExperienceLeadExecutive, regexp.MustCompile(`(?i)\b(?:lead|head|director|vp|vice\s+president|chief|cto|ceo|cio|cdo|executive)\b`)},
		{"senior", models.ExperienceSenior, regexp.MustCompile(`(?i)\b(?:senior|sr|staff|principal|manager)\b`)},
		{"mid", models.ExperienceMid, regexp.MustCompile(`(?i)\b(?:mid[\s-]?level|intermediate|specialist)\b`)},
		{"entry", models.ExperienceEntry, regexp.MustCompile(`(?i)\b(?:junior|jr|associate|entry|entry[\s-]level|graduate)\b`)},
	}

	entryDescriptionRe = regexp.MustCompile(`(?i)\b(?:recent\s+graduates?|fresh\s+graduates?|entry[\s-]level\s+(?:role|position)|new\s+grads?)\b`)
)

// Band maps a years-of-experience figure to a level. Boundary values
// belong to the lower band.
func Band(years int) models.ExperienceLevel {
	switch {
	case years <= 2:
		return models.ExperienceEntry
	case years <= 5:
		return models.ExperienceMid
	case years <= 9:
		return models.ExperienceSenior
	default:
		return models.ExperienceLeadExecutive
	}
}

// Classifier is safe for concurrent use.
type Classifier struct {
	chain rules.Chain[Posting, models.ExperienceLevel]
}

func NewClassifier() *Classifier {
	return &Classifier{chain: rules.Chain[Posting, models.ExperienceLevel]{
		{Name: "years-of-experience", Match: matchYears},
		{Name: "title-keywords", Match: matchTitle},
		{Name: "description-keywords", Match: matchDescription},
	}}
}

// Classify returns the first matching rule's level, or ExperienceUnknown.
func (c *Classifier) Classify(title, description string) models.ExperienceLevel {
	level, _ := c.ClassifyWithRule(title, description)
	return level
}

// ClassifyWithRule also reports which rule decided; rule is empty for
// ExperienceUnknown.
func (c *Classifier) ClassifyWithRule(title, description string) (models.ExperienceLevel, string) {
	level, rule, ok := c.chain.First(Posting{Title: title, Description: description})
	if !ok {
		return models.ExperienceUnknown, ""
	}
	return level, rule
}

func (c *Classifier) Rules() []string {
	return c.chain.Names()
}

func matchYears(p Posting) (models.ExperienceLevel, bool) {
	for _, text := range []string{p.Title, p.Description} {
		for _, m := range yearsRe.FindAllStringSubmatch(text, -1) {
			years, err := strconv.Atoi(m[1])
			if err != nil || years > maxYears {
				continue
			}
			return Band(years), true
		}
	}
	return models.ExperienceUnknown, false
}

func matchTitle(p Posting) (models.ExperienceLevel, bool) {
	for _, kw := range titleKeywords {
		if kw.re.MatchString(p.Title) {
			return kw.level, true
		}
	}
	return models.ExperienceUnknown, false
}

func matchDescription(p Posting) (models.ExperienceLevel, bool) {
	if entryDescriptionRe.MatchString(p.Description) {
		return models.ExperienceEntry, true
	}
	return models.ExperienceUnknown, false
}

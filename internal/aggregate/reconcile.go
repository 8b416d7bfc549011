package aggregate

import (
	"fmt"

	"github.com/pizofreude/data-career-navigator/internal/errors"
	"github.com/pizofreude/data-career-navigator/internal/models"
)

// Reconcile checks that every grouped table adds back up to its source:
// company job counts to the number of postings, and each skill statistic,
// in total and per group, to the job–skill pairs.
func Reconcile(postings []models.EnrichedJobPosting, t *Tables) error {
	jobs := 0
	for _, c := range t.Companies {
		jobs += c.JobCount
	}
	if jobs != len(postings) {
		return imbalance("companies", jobs, len(postings))
	}

	pairs := len(t.JobSkills)
	wantCountry := make(map[string]int)
	wantExperience := make(map[models.ExperienceLevel]int)
	for _, p := range postings {
		wantCountry[countryOf(p)] += len(p.Skills)
		wantExperience[p.Experience] += len(p.Skills)
	}

	freq := 0
	for _, s := range t.Skills {
		freq += s.Frequency
	}
	if freq != pairs {
		return imbalance("skills", freq, pairs)
	}

	gotCountry := make(map[string]int)
	total := 0
	for _, r := range t.CountrySkillCounts {
		gotCountry[r.Country] += r.Count
		total += r.Count
	}
	if total != pairs {
		return imbalance("country_skill_counts", total, pairs)
	}
	for country, want := range wantCountry {
		if gotCountry[country] != want {
			return imbalance("country_skill_counts["+country+"]", gotCountry[country], want)
		}
	}

	gotExperience := make(map[models.ExperienceLevel]int)
	total = 0
	for _, r := range t.ExperienceSkillCounts {
		gotExperience[r.Experience] += r.Count
		total += r.Count
	}
	if total != pairs {
		return imbalance("experience_skill_counts", total, pairs)
	}
	for level, want := range wantExperience {
		if gotExperience[level] != want {
			return imbalance("experience_skill_counts["+level.String()+"]", gotExperience[level], want)
		}
	}

	total = 0
	for _, r := range t.SalarySkillStats {
		total += r.Count + r.NoSalaryCount
	}
	if total != pairs {
		return imbalance("salary_skill_stats", total, pairs)
	}
	return nil
}

func imbalance(table string, got, want int) error {
	return errors.Imbalance(fmt.Sprintf("%s sums to %d, expected %d", table, got, want), nil)
}

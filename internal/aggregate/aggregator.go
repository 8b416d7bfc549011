package aggregate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pizofreude/data-career-navigator/common/telemetry"
	"github.com/pizofreude/data-career-navigator/internal/models"
	"github.com/pizofreude/data-career-navigator/internal/skills"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Aggregator is a pure fold; it keeps no state between Build calls.
type Aggregator struct {
	vocab  *skills.Vocabulary
	logger *zap.Logger
	tracer trace.Tracer
}

// NewAggregator takes the vocabulary used during enrichment to attach skill
// categories; vocab may be nil.
func NewAggregator(vocab *skills.Vocabulary, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		vocab:  vocab,
		logger: logger,
		tracer: telemetry.GetTracer("data-career-navigator/aggregate"),
	}
}

type pairKey struct {
	group string
	skill string
}

type companyAcc struct {
	jobs      int
	salaries  []float64
	countries map[string]int
}

// Build derives every gold table and reconciles them against postings. An
// imbalance is returned as an IMBALANCE domain error and no tables.
func (a *Aggregator) Build(ctx context.Context, postings []models.EnrichedJobPosting) (*Tables, error) {
	_, span := a.tracer.Start(ctx, "aggregate.Build")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("aggregation cancelled: %w", err)
	}

	freq := make(map[string]int)
	byCountry := make(map[pairKey]int)
	byExperience := make(map[models.ExperienceLevel]map[string]int)
	salaries := make(map[string][]float64)
	noSalary := make(map[string]int)
	companies := make(map[string]*companyAcc)

	t := &Tables{}
	for _, p := range postings {
		name := companyName(p.Company)
		acc, ok := companies[name]
		if !ok {
			acc = &companyAcc{countries: make(map[string]int)}
			companies[name] = acc
		}
		acc.jobs++
		acc.countries[countryOf(p)]++
		if avg := p.Salary.AnnualUSDAvg(); avg != nil {
			acc.salaries = append(acc.salaries, *avg)
		}

		if byExperience[p.Experience] == nil {
			byExperience[p.Experience] = make(map[string]int)
		}
		for _, s := range p.Skills {
			freq[s]++
			t.JobSkills = append(t.JobSkills, JobSkill{
				JobID:    p.ID,
				SkillID:  Key("skill", s),
				Skill:    s,
				Category: a.category(s),
			})
			byCountry[pairKey{group: countryOf(p), skill: s}]++
			byExperience[p.Experience][s]++
			if p.Salary.HasUSD() {
				salaries[s] = append(salaries[s], *p.Salary.AnnualUSDMin)
			} else {
				noSalary[s]++
			}
		}
	}

	t.Skills = a.skillDimension(freq)
	t.Companies = companyDimension(companies)
	t.CountrySkillCounts = countrySkillCounts(byCountry)
	t.ExperienceSkillCounts = experienceSkillCounts(byExperience)
	t.SalarySkillStats = salarySkillStats(freq, salaries, noSalary)

	if err := Reconcile(postings, t); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "imbalance")
		a.logger.Error("aggregate tables do not reconcile", zap.Error(err))
		return nil, err
	}

	a.logger.Info("aggregation finished",
		zap.Int("postings", len(postings)),
		zap.Int("skills", len(t.Skills)),
		zap.Int("job_skills", len(t.JobSkills)),
		zap.Int("companies", len(t.Companies)))
	span.SetAttributes(
		telemetry.Int("postings", len(postings)),
		telemetry.Int("job_skills", len(t.JobSkills)),
	)
	return t, nil
}

func (a *Aggregator) category(skill string) string {
	if a.vocab == nil {
		return ""
	}
	return a.vocab.Category(skill)
}

// skillDimension orders skills by frequency, then name.
func (a *Aggregator) skillDimension(freq map[string]int) []Skill {
	rows := make([]Skill, 0, len(freq))
	for name, n := range freq {
		rows = append(rows, Skill{
			ID:        Key("skill", name),
			Name:      name,
			Category:  a.category(name),
			Frequency: n,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Frequency != rows[j].Frequency {
			return rows[i].Frequency > rows[j].Frequency
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

func companyDimension(companies map[string]*companyAcc) []Company {
	rows := make([]Company, 0, len(companies))
	for name, acc := range companies {
		rows = append(rows, Company{
			ID:              Key("company", name),
			Name:            name,
			JobCount:        acc.jobs,
			MedianAnnualUSD: median(acc.salaries),
			Country:         mode(acc.countries),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

func countrySkillCounts(counts map[pairKey]int) []CountrySkillCount {
	rows := make([]CountrySkillCount, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, CountrySkillCount{Country: k.group, Skill: k.skill, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Country != rows[j].Country {
			return rows[i].Country < rows[j].Country
		}
		return rows[i].Skill < rows[j].Skill
	})
	return rows
}

func experienceSkillCounts(counts map[models.ExperienceLevel]map[string]int) []ExperienceSkillCount {
	var rows []ExperienceSkillCount
	for level, bySkill := range counts {
		for s, n := range bySkill {
			rows = append(rows, ExperienceSkillCount{Experience: level, Skill: s, Count: n})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Experience != rows[j].Experience {
			return rows[i].Experience < rows[j].Experience
		}
		return rows[i].Skill < rows[j].Skill
	})
	return rows
}

func salarySkillStats(freq map[string]int, salaries map[string][]float64, noSalary map[string]int) []SalarySkillStat {
	rows := make([]SalarySkillStat, 0, len(freq))
	for s := range freq {
		sum := summarize(salaries[s])
		rows = append(rows, SalarySkillStat{
			Skill:         s,
			Count:         len(salaries[s]),
			NoSalaryCount: noSalary[s],
			Mean:          sum.mean,
			P25:           sum.p25,
			Median:        sum.median,
			P75:           sum.p75,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Skill < rows[j].Skill })
	return rows
}

func companyName(s string) string {
	if name := strings.TrimSpace(s); name != "" {
		return name
	}
	return UnknownCompany
}

func countryOf(p models.EnrichedJobPosting) string {
	if p.Country == "" {
		return models.UnknownCountry
	}
	return p.Country
}

// mode returns the most frequent key; ties go to the alphabetically first.
func mode(counts map[string]int) string {
	best, bestN := "", 0
	for k, n := range counts {
		if n > bestN || (n == bestN && k < best) {
			best, bestN = k, n
		}
	}
	return best
}

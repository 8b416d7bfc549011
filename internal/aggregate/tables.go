// Package aggregate folds enriched postings into the gold reporting tables.
package aggregate

import (
	"github.com/google/uuid"

	"github.com/pizofreude/data-career-navigator/internal/models"
)

const UnknownCompany = "Unknown"

// Skill is a row of the skill dimension.
type Skill struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Frequency int       `json:"frequency"`
}

// JobSkill associates one posting with one skill.
type JobSkill struct {
	JobID    string    `json:"job_id"`
	SkillID  uuid.UUID `json:"skill_id"`
	Skill    string    `json:"skill"`
	Category string    `json:"category"`
}

// Company is a row of the company dimension. Postings without a company
// name are grouped under UnknownCompany.
type Company struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	JobCount        int       `json:"job_count"`
	MedianAnnualUSD *float64  `json:"median_annual_usd"`
	Country         string    `json:"country"`
}

type CountrySkillCount struct {
	Country string `json:"country"`
	Skill   string `json:"skill"`
	Count   int    `json:"count"`
}

type ExperienceSkillCount struct {
	Experience models.ExperienceLevel `json:"experience_level"`
	Skill      string                 `json:"skill"`
	Count      int                    `json:"count"`
}

// SalarySkillStat summarises AnnualUSDMin over the postings requiring a
// skill. NoSalaryCount counts postings without a USD figure; the
// statistics are nil when Count is zero.
type SalarySkillStat struct {
	Skill         string   `json:"skill"`
	Count         int      `json:"count"`
	NoSalaryCount int      `json:"no_salary_count"`
	Mean          *float64 `json:"mean"`
	P25           *float64 `json:"p25"`
	Median        *float64 `json:"median"`
	P75           *float64 `json:"p75"`
}

// Tables holds the gold layer.
type Tables struct {
	Skills                []Skill                `json:"skills"`
	JobSkills             []JobSkill             `json:"job_skills"`
	Companies             []Company              `json:"companies"`
	CountrySkillCounts    []CountrySkillCount    `json:"country_skill_counts"`
	ExperienceSkillCounts []ExperienceSkillCount `json:"experience_skill_counts"`
	SalarySkillStats      []SalarySkillStat      `json:"salary_skill_stats"`
}

var keyNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// Key derives a stable row key so reruns over the same data upsert rather
// than duplicate.
func Key(kind, name string) uuid.UUID {
	return uuid.NewSHA1(keyNamespace, []byte(kind+":"+name))
}

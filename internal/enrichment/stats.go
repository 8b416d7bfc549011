package enrichment

import (
	"github.com/pizofreude/data-career-navigator/internal/models"

	"go.uber.org/zap"
)

// Stats counts misses per extractor so a run can tell "no salary in the
// text" apart from "salary in a currency without a rate".
type Stats struct {
	Input               int `json:"input"`
	Enriched            int `json:"enriched"`
	RejectedEmptyID     int `json:"rejected_empty_id"`
	RejectedDuplicateID int `json:"rejected_duplicate_id"`

	SalaryParsed      int `json:"salary_parsed"`
	SalaryParseMiss   int `json:"salary_parse_miss"`
	SalaryInvalid     int `json:"salary_invalid"`
	SalaryLookupMiss  int `json:"salary_lookup_miss"`
	SalaryImplausible int `json:"salary_implausible"`

	ExperienceUnknown int `json:"experience_unknown"`
	SkillsEmpty       int `json:"skills_empty"`
	WorkUnknown       int `json:"work_arrangement_unknown"`
	EmploymentUnknown int `json:"employment_kind_unknown"`
	CountryUnknown    int `json:"country_unknown"`
}

func (s *Stats) Rejected() int {
	return s.RejectedEmptyID + s.RejectedDuplicateID
}

func (s *Stats) observe(e models.EnrichedJobPosting) {
	s.Enriched++

	switch e.Salary.Miss {
	case models.SalaryMissNone:
		s.SalaryParsed++
	case models.SalaryMissParse:
		s.SalaryParseMiss++
	case models.SalaryMissInvalid:
		s.SalaryInvalid++
	case models.SalaryMissLookup:
		s.SalaryLookupMiss++
	case models.SalaryMissImplausible:
		s.SalaryImplausible++
	}

	if e.Experience == models.ExperienceUnknown {
		s.ExperienceUnknown++
	}
	if len(e.Skills) == 0 {
		s.SkillsEmpty++
	}
	if e.JobType.WorkArrangement == models.WorkUnknown {
		s.WorkUnknown++
	}
	if e.JobType.EmploymentKind == models.EmploymentUnknown {
		s.EmploymentUnknown++
	}
	if e.Country == models.UnknownCountry {
		s.CountryUnknown++
	}
}

func (s *Stats) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("input", s.Input),
		zap.Int("enriched", s.Enriched),
		zap.Int("rejected", s.Rejected()),
		zap.Int("salary_parsed", s.SalaryParsed),
		zap.Int("salary_parse_miss", s.SalaryParseMiss),
		zap.Int("salary_invalid", s.SalaryInvalid),
		zap.Int("salary_lookup_miss", s.SalaryLookupMiss),
		zap.Int("salary_implausible", s.SalaryImplausible),
		zap.Int("experience_unknown", s.ExperienceUnknown),
		zap.Int("skills_empty", s.SkillsEmpty),
		zap.Int("work_arrangement_unknown", s.WorkUnknown),
		zap.Int("employment_kind_unknown", s.EmploymentUnknown),
		zap.Int("country_unknown", s.CountryUnknown),
	}
}

package models

import (
	"time"
)

// RawJobPosting is a bronze record as supplied by the dataset collaborator.
type RawJobPosting struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	Link           string    `json:"link"`
	Source         string    `json:"source"`
	DatePosted     time.Time `json:"date_posted"`
	WorkType       string    `json:"work_type"`
	EmploymentType string    `json:"employment_type"`
	Description    string    `json:"description"`
}

// EnrichedJobPosting is the silver record: one per accepted raw posting,
// carrying the same ID.
type EnrichedJobPosting struct {
	RawJobPosting

	Salary     SalaryResult    `json:"salary"`
	Experience ExperienceLevel `json:"experience_level"`
	Skills     SkillSet        `json:"skills"`
	JobType    JobTypeTag      `json:"job_type"`
	Country    string          `json:"country"`
}

// SkillSet holds canonical skill names, sorted and deduplicated.
type SkillSet []string

func (s SkillSet) Contains(name string) bool {
	for _, v := range s {
		if v == name {
			return true
		}
	}
	return false
}

// UnknownCountry is the explicit group for postings whose location does not
// resolve to a country.
const UnknownCountry = "Unknown"

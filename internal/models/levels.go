package models

// ExperienceLevel is ordered; Unknown sorts after every real level.
type ExperienceLevel int

const (
	ExperienceInternship ExperienceLevel = iota
	ExperienceEntry
	ExperienceMid
	ExperienceSenior
	ExperienceLeadExecutive
	ExperienceUnknown
)

var experienceNames = map[ExperienceLevel]string{
	ExperienceInternship:    "Internship",
	ExperienceEntry:         "Entry",
	ExperienceMid:           "Mid",
	ExperienceSenior:        "Senior",
	ExperienceLeadExecutive: "Lead/Executive",
	ExperienceUnknown:       "Unknown",
}

func (l ExperienceLevel) String() string {
	if name, ok := experienceNames[l]; ok {
		return name
	}
	return experienceNames[ExperienceUnknown]
}

func (l ExperienceLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *ExperienceLevel) UnmarshalText(text []byte) error {
	*l = ParseExperienceLevel(string(text))
	return nil
}

func ParseExperienceLevel(s string) ExperienceLevel {
	for level, name := range experienceNames {
		if name == s {
			return level
		}
	}
	return ExperienceUnknown
}

type WorkArrangement string

const (
	WorkRemote  WorkArrangement = "Remote"
	WorkOnSite  WorkArrangement = "On-site"
	WorkHybrid  WorkArrangement = "Hybrid"
	WorkUnknown WorkArrangement = "Unknown"
)

type EmploymentKind string

const (
	EmploymentFullTime   EmploymentKind = "Full-time"
	EmploymentPartTime   EmploymentKind = "Part-time"
	EmploymentContract   EmploymentKind = "Contract"
	EmploymentInternship EmploymentKind = "Internship"
	EmploymentUnknown    EmploymentKind = "Unknown"
)

type JobTypeTag struct {
	WorkArrangement WorkArrangement `json:"work_arrangement"`
	EmploymentKind  EmploymentKind  `json:"employment_kind"`
}

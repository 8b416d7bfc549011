package jobtype

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pizofreude/data-career-navigator/internal/models"
)

func TestWorkArrangement(t *testing.T) {
	e := NewExtractor()

	cases := map[string]models.WorkArrangement{
		"Remote":                   models.WorkRemote,
		"  REMOTE ":                models.WorkRemote,
		"Work_From_Home":           models.WorkRemote,
		"Remote (US only)":         models.WorkRemote,
		"Hybrid":                   models.WorkHybrid,
		"hybrid remote":            models.WorkHybrid,
		"On-site":                  models.WorkOnSite,
		"on_site":                  models.WorkOnSite,
		"Onsite - Kuala Lumpur":    models.WorkOnSite,
		"In-Person":                models.WorkOnSite,
		"":                         models.WorkUnknown,
		"Flexible hours available": models.WorkUnknown,
	}
	for in, want := range cases {
		assert.Equal(t, want, e.WorkArrangement(in), "input %q", in)
	}
}

func TestEmploymentKind(t *testing.T) {
	e := NewExtractor()

	cases := map[string]models.EmploymentKind{
		"Full-time":            models.EmploymentFullTime,
		"FULL_TIME":            models.EmploymentFullTime,
		"Permanent":            models.EmploymentFullTime,
		"Part-time":            models.EmploymentPartTime,
		"Contract":             models.EmploymentContract,
		"Temporary":            models.EmploymentContract,
		"Freelance":            models.EmploymentContract,
		"12 month contract":    models.EmploymentContract,
		"Internship":           models.EmploymentInternship,
		"Full-time internship": models.EmploymentInternship,
		"Volunteer":            models.EmploymentUnknown,
		"":                     models.EmploymentUnknown,
	}
	for in, want := range cases {
		assert.Equal(t, want, e.EmploymentKind(in), "input %q", in)
	}
}

func TestExtractAxesAreIndependent(t *testing.T) {
	e := NewExtractor()

	assert.Equal(t,
		models.JobTypeTag{WorkArrangement: models.WorkRemote, EmploymentKind: models.EmploymentUnknown},
		e.Extract("Remote", "something else"))
	assert.Equal(t,
		models.JobTypeTag{WorkArrangement: models.WorkUnknown, EmploymentKind: models.EmploymentPartTime},
		e.Extract("", "Part-time"))
	// A remote marker in the employment column does not leak into the work axis.
	assert.Equal(t,
		models.JobTypeTag{WorkArrangement: models.WorkUnknown, EmploymentKind: models.EmploymentContract},
		e.Extract("", "Contract, remote"))
}

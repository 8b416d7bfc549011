package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pizofreude/data-career-navigator/internal/currency"
	"github.com/pizofreude/data-career-navigator/internal/errors"
	"github.com/pizofreude/data-career-navigator/internal/models"
	"github.com/pizofreude/data-career-navigator/internal/salary"
	"github.com/pizofreude/data-career-navigator/internal/skills"
)

func newPipeline(t *testing.T, workers int) *Pipeline {
	t.Helper()
	vocab, err := skills.DefaultVocabulary()
	require.NoError(t, err)
	return NewPipeline(vocab, salary.DefaultPolicy(), workers, zaptest.NewLogger(t))
}

func rates() *currency.Table {
	return currency.NewTable(map[string]float64{"EUR": 0.92, "MYR": 4.5})
}

func samplePostings(n int) []models.RawJobPosting {
	descriptions := []string{
		"Experience with R and Python required. Salary: $80,000 - $100,000/yr",
		"5 years of experience with SQL and Tableau. Pay: €45/hr",
		"Competitive salary. Excel and Power BI",
		"10+ years leading analytics teams. AWS, Snowflake",
		"Ringgit salary RM 4,500 - RM 7,200 per month, Python",
	}
	titles := []string{"Data Analyst", "BI Developer", "Junior Analyst", "Director of Data", "Data Engineer"}
	locations := []string{"Austin, TX", "Berlin", "London", "Remote", "Kuala Lumpur, Malaysia"}

	raws := make([]models.RawJobPosting, n)
	for i := range raws {
		raws[i] = models.RawJobPosting{
			ID:             fmt.Sprintf("job-%03d", i),
			Title:          titles[i%len(titles)],
			Company:        fmt.Sprintf("Company %d", i%3),
			Location:       locations[i%len(locations)],
			WorkType:       []string{"Remote", "Hybrid", "On-site", ""}[i%4],
			EmploymentType: []string{"Full-time", "Contract", "Part-time"}[i%3],
			Description:    descriptions[i%len(descriptions)],
		}
	}
	return raws
}

func TestRunPreservesOrderAndCount(t *testing.T) {
	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			raws := samplePostings(25)
			res, err := newPipeline(t, workers).Run(context.Background(), raws, rates())
			require.NoError(t, err)

			require.Len(t, res.Postings, len(raws))
			for i, p := range res.Postings {
				assert.Equal(t, raws[i].ID, p.ID)
				assert.Equal(t, raws[i], p.RawJobPosting)
			}
			assert.Empty(t, res.Rejected)
			assert.Equal(t, 25, res.Stats.Enriched)
		})
	}
}

func TestRunEnrichesFields(t *testing.T) {
	res, err := newPipeline(t, 1).Run(context.Background(), samplePostings(5), rates())
	require.NoError(t, err)

	first := res.Postings[0]
	assert.Equal(t, models.SkillSet{"Python", "R"}, first.Skills)
	require.True(t, first.Salary.HasUSD())
	assert.Equal(t, 80000.0, *first.Salary.AnnualUSDMin)
	assert.Equal(t, 100000.0, *first.Salary.AnnualUSDMax)
	assert.Equal(t, "United States", first.Country)
	assert.Equal(t, models.JobTypeTag{WorkArrangement: models.WorkRemote, EmploymentKind: models.EmploymentFullTime}, first.JobType)

	second := res.Postings[1]
	assert.Equal(t, models.ExperienceMid, second.Experience)
	require.NotNil(t, second.Salary.AnnualUSDMin)
	assert.Equal(t, 101739.13, *second.Salary.AnnualUSDMin)

	third := res.Postings[2]
	assert.Equal(t, models.SalaryMissParse, third.Salary.Miss)
	assert.Nil(t, third.Salary.Min)
	assert.Equal(t, models.ExperienceEntry, third.Experience)

	fourth := res.Postings[3]
	assert.Equal(t, models.ExperienceLeadExecutive, fourth.Experience)
	assert.Equal(t, models.UnknownCountry, fourth.Country)

	assert.Equal(t, 3, res.Stats.SalaryParsed)
	assert.Equal(t, 2, res.Stats.SalaryParseMiss)
	assert.Equal(t, 1, res.Stats.CountryUnknown)
}

func TestRunRejectsMissingAndDuplicateIDs(t *testing.T) {
	raws := samplePostings(4)
	raws[1].ID = "  "
	raws[3].ID = raws[0].ID

	res, err := newPipeline(t, 2).Run(context.Background(), raws, rates())
	require.NoError(t, err)

	require.Len(t, res.Postings, 2)
	assert.Equal(t, raws[0].ID, res.Postings[0].ID)
	assert.Equal(t, raws[2].ID, res.Postings[1].ID)

	assert.Equal(t, []Rejection{
		{Index: 1, ID: "  ", Reason: RejectEmptyID},
		{Index: 3, ID: raws[0].ID, Reason: RejectDuplicateID},
	}, res.Rejected)
	assert.Equal(t, 1, res.Stats.RejectedEmptyID)
	assert.Equal(t, 1, res.Stats.RejectedDuplicateID)
	assert.Equal(t, 2, res.Stats.Rejected())
	assert.Equal(t, res.Stats.Input, res.Stats.Enriched+res.Stats.Rejected())
}

func TestRunIsIdempotent(t *testing.T) {
	raws := samplePostings(30)

	first, err := newPipeline(t, 1).Run(context.Background(), raws, rates())
	require.NoError(t, err)
	second, err := newPipeline(t, 8).Run(context.Background(), raws, rates())
	require.NoError(t, err)

	a, err := json.Marshal(first.Postings)
	require.NoError(t, err)
	b, err := json.Marshal(second.Postings)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, first.Stats, second.Stats)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		res, err := newPipeline(t, workers).Run(ctx, samplePostings(10), rates())
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, res)
	}
}

func TestRunEmptyInput(t *testing.T) {
	res, err := newPipeline(t, 1).Run(context.Background(), nil, rates())
	require.NoError(t, err)
	assert.Empty(t, res.Postings)
	assert.Empty(t, res.Rejected)
}

func TestEnrichSingleRecord(t *testing.T) {
	p := newPipeline(t, 1)

	e, err := p.Enrich(samplePostings(1)[0], rates())
	require.NoError(t, err)
	assert.Equal(t, "job-000", e.ID)

	_, err = p.Enrich(models.RawJobPosting{Title: "No id"}, rates())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTypeMalformedRecord))
}

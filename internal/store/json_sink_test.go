package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pizofreude/data-career-navigator/internal/aggregate"
	"github.com/pizofreude/data-career-navigator/internal/enrichment"
	"github.com/pizofreude/data-career-navigator/internal/models"
)

func sampleRun() *Run {
	postings := []models.EnrichedJobPosting{
		{RawJobPosting: models.RawJobPosting{ID: "1", Title: "Data Analyst"}, Skills: models.SkillSet{"SQL"}, Country: "Malaysia"},
		{RawJobPosting: models.RawJobPosting{ID: "2", Title: "Data Engineer"}, Skills: models.SkillSet{"Python", "SQL"}, Country: "Singapore"},
	}
	res := &enrichment.Result{
		Postings: postings,
		Rejected: []enrichment.Rejection{{Index: 2, Reason: enrichment.RejectEmptyID}},
		Stats:    enrichment.Stats{Input: 3, Enriched: 2, RejectedEmptyID: 1},
	}
	tables := &aggregate.Tables{
		Skills: []aggregate.Skill{
			{ID: aggregate.Key("skill", "Python"), Name: "Python", Frequency: 1},
			{ID: aggregate.Key("skill", "SQL"), Name: "SQL", Frequency: 2},
		},
	}
	return NewRun(1, res, tables)
}

func TestJSONSinkWrite(t *testing.T) {
	root := t.TempDir()
	sink := NewJSONSink(root, zaptest.NewLogger(t))
	run := sampleRun()

	require.NoError(t, sink.Write(context.Background(), run))

	data, err := os.ReadFile(filepath.Join(sink.Dir(run), ManifestFile))
	require.NoError(t, err)
	var manifest Manifest
	require.NoError(t, json.Unmarshal(data, &manifest))
	assert.Equal(t, run.ID.String(), manifest.RunID)
	assert.Equal(t, 1, manifest.VocabularyVersion)
	assert.Equal(t, 2, manifest.Files["enriched_jobs.json"])
	assert.Equal(t, 1, manifest.Files["rejected.json"])
	assert.Equal(t, 0, manifest.Files["companies.json"])
	assert.Equal(t, 1, manifest.Stats.Rejected())

	data, err = os.ReadFile(filepath.Join(sink.Dir(run), "enriched_jobs.json"))
	require.NoError(t, err)
	var enriched []models.EnrichedJobPosting
	require.NoError(t, json.Unmarshal(data, &enriched))
	require.Len(t, enriched, 2)
	assert.Equal(t, "2", enriched[1].ID)

	entries, err := os.ReadDir(sink.Dir(run))
	require.NoError(t, err)
	assert.Len(t, entries, 9, "no temp files left behind")
}

func TestJSONSinkRerunIsByteIdentical(t *testing.T) {
	sink := NewJSONSink(t.TempDir(), zaptest.NewLogger(t))

	read := func() map[string][]byte {
		out := map[string][]byte{}
		run := sampleRun()
		require.NoError(t, sink.Write(context.Background(), run))
		entries, err := os.ReadDir(sink.Dir(run))
		require.NoError(t, err)
		for _, e := range entries {
			b, err := os.ReadFile(filepath.Join(sink.Dir(run), e.Name()))
			require.NoError(t, err)
			out[e.Name()] = b
		}
		return out
	}

	assert.Equal(t, read(), read())
}

func TestJSONSinkCancelledLeavesNoManifest(t *testing.T) {
	sink := NewJSONSink(t.TempDir(), zaptest.NewLogger(t))
	run := sampleRun()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, sink.Write(ctx, run))

	_, err := os.Stat(filepath.Join(sink.Dir(run), ManifestFile))
	assert.True(t, os.IsNotExist(err))
}

func TestRunIDDeterministic(t *testing.T) {
	a, b := sampleRun(), sampleRun()
	assert.Equal(t, a.ID, b.ID)

	other := NewRun(2, a.Result, a.Tables)
	assert.NotEqual(t, a.ID, other.ID)
}

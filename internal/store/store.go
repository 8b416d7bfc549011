// Package store persists a completed pipeline run: the silver postings and
// the gold tables built from them.
package store

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pizofreude/data-career-navigator/internal/aggregate"
	"github.com/pizofreude/data-career-navigator/internal/enrichment"
	"github.com/pizofreude/data-career-navigator/internal/models"
)

// Run is everything one batch run produces.
type Run struct {
	ID                uuid.UUID
	VocabularyVersion int
	Result            *enrichment.Result
	Tables            *aggregate.Tables
}

// NewRun derives the run ID from its content, so rerunning over the same
// input and vocabulary yields the same ID.
func NewRun(vocabularyVersion int, res *enrichment.Result, tables *aggregate.Tables) *Run {
	return &Run{
		ID:                RunID(vocabularyVersion, res.Postings),
		VocabularyVersion: vocabularyVersion,
		Result:            res,
		Tables:            tables,
	}
}

func RunID(vocabularyVersion int, postings []models.EnrichedJobPosting) uuid.UUID {
	var b strings.Builder
	b.WriteString(strconv.Itoa(vocabularyVersion))
	for _, p := range postings {
		b.WriteByte(0)
		b.WriteString(p.ID)
	}
	return aggregate.Key("run", b.String())
}

// Sink writes a run. A run is complete only once Write returns nil; readers
// must ignore partially written runs.
type Sink interface {
	Write(ctx context.Context, run *Run) error
}

// SilverWriter stores enriched postings one batch at a time, as the
// streaming processor produces them.
type SilverWriter interface {
	WriteEnriched(ctx context.Context, runID uuid.UUID, postings []models.EnrichedJobPosting) error
}

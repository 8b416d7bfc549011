// Package enrichment turns bronze postings into silver postings by running
// every extractor over each record.
package enrichment

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pizofreude/data-career-navigator/common/telemetry"
	"github.com/pizofreude/data-career-navigator/internal/currency"
	"github.com/pizofreude/data-career-navigator/internal/errors"
	"github.com/pizofreude/data-career-navigator/internal/experience"
	"github.com/pizofreude/data-career-navigator/internal/jobtype"
	"github.com/pizofreude/data-career-navigator/internal/location"
	"github.com/pizofreude/data-career-navigator/internal/models"
	"github.com/pizofreude/data-career-navigator/internal/salary"
	"github.com/pizofreude/data-career-navigator/internal/skills"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	RejectEmptyID     = "empty id"
	RejectDuplicateID = "duplicate id"
)

// Rejection records an input row that produced no output.
type Rejection struct {
	Index  int    `json:"index"`
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type Result struct {
	Postings []models.EnrichedJobPosting
	Rejected []Rejection
	Stats    Stats
}

type Pipeline struct {
	salary     *salary.Parser
	experience *experience.Classifier
	skills     *skills.Extractor
	jobType    *jobtype.Extractor
	location   *location.Extractor

	workers int
	logger  *zap.Logger
	tracer  trace.Tracer
}

// NewPipeline builds a pipeline over the given vocabulary and salary policy.
// workers <= 1 enriches sequentially.
func NewPipeline(vocab *skills.Vocabulary, policy salary.Policy, workers int, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		salary:     salary.NewParser(policy),
		experience: experience.NewClassifier(),
		skills:     skills.NewExtractor(vocab),
		jobType:    jobtype.NewExtractor(),
		location:   location.NewExtractor(),
		workers:    workers,
		logger:     logger,
		tracer:     telemetry.GetTracer("data-career-navigator/enrichment"),
	}
}

// Run enriches raws in input order. Records with an empty or repeated ID are
// rejected and reported; every other record yields exactly one output. A
// cancelled context aborts the run with no partial output.
func (p *Pipeline) Run(ctx context.Context, raws []models.RawJobPosting, table *currency.Table) (*Result, error) {
	ctx, span := p.tracer.Start(ctx, "enrichment.Run")
	defer span.End()
	span.SetAttributes(telemetry.Int("input.records", len(raws)))

	res := &Result{Stats: Stats{Input: len(raws)}}
	accepted := make([]int, 0, len(raws))
	seen := make(map[string]bool, len(raws))
	for i, raw := range raws {
		id := strings.TrimSpace(raw.ID)
		switch {
		case id == "":
			res.Rejected = append(res.Rejected, Rejection{Index: i, ID: raw.ID, Reason: RejectEmptyID})
			res.Stats.RejectedEmptyID++
		case seen[id]:
			res.Rejected = append(res.Rejected, Rejection{Index: i, ID: raw.ID, Reason: RejectDuplicateID})
			res.Stats.RejectedDuplicateID++
		default:
			seen[id] = true
			accepted = append(accepted, i)
		}
	}

	out := make([]models.EnrichedJobPosting, len(accepted))
	if err := p.enrichAll(ctx, raws, accepted, table, out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "enrichment aborted")
		return nil, err
	}

	for _, e := range out {
		res.Stats.observe(e)
	}
	res.Postings = out

	if len(res.Rejected) > 0 {
		p.logger.Warn("rejected malformed records",
			zap.Int("empty_id", res.Stats.RejectedEmptyID),
			zap.Int("duplicate_id", res.Stats.RejectedDuplicateID))
	}
	p.logger.Info("enrichment finished", res.Stats.Fields()...)
	span.SetAttributes(
		telemetry.Int("output.records", len(out)),
		telemetry.Int("rejected.records", len(res.Rejected)),
	)
	return res, nil
}

// Enrich processes one record, as the streaming path does.
func (p *Pipeline) Enrich(raw models.RawJobPosting, table *currency.Table) (models.EnrichedJobPosting, error) {
	if strings.TrimSpace(raw.ID) == "" {
		return models.EnrichedJobPosting{}, errors.MalformedRecord("job posting without id", nil)
	}
	return p.enrich(raw, table), nil
}

func (p *Pipeline) enrich(raw models.RawJobPosting, table *currency.Table) models.EnrichedJobPosting {
	return models.EnrichedJobPosting{
		RawJobPosting: raw,
		Salary:        p.salary.Extract(raw.Title, raw.Description, table),
		Experience:    p.experience.Classify(raw.Title, raw.Description),
		Skills:        p.skills.Extract(raw.Description),
		JobType:       p.jobType.Extract(raw.WorkType, raw.EmploymentType),
		Country:       p.location.Country(raw.Location),
	}
}

// enrichAll fills out[k] from raws[accepted[k]]. Workers write disjoint
// slots, so output order never depends on scheduling.
func (p *Pipeline) enrichAll(ctx context.Context, raws []models.RawJobPosting, accepted []int, table *currency.Table, out []models.EnrichedJobPosting) error {
	if p.workers <= 1 {
		for k, i := range accepted {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("enrichment cancelled: %w", err)
			}
			out[k] = p.enrich(raws[i], table)
		}
		return nil
	}

	slots := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range slots {
				out[k] = p.enrich(raws[accepted[k]], table)
			}
		}()
	}

feed:
	for k := range accepted {
		select {
		case <-ctx.Done():
			break feed
		case slots <- k:
		}
	}
	close(slots)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("enrichment cancelled: %w", err)
	}
	return nil
}

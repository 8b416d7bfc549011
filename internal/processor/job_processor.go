// Package processor enriches single postings arriving on the message bus.
package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/pizofreude/data-career-navigator/common/telemetry"
	"github.com/pizofreude/data-career-navigator/internal/currency"
	"github.com/pizofreude/data-career-navigator/internal/enrichment"
	"github.com/pizofreude/data-career-navigator/internal/errors"
	"github.com/pizofreude/data-career-navigator/internal/models"
	"github.com/pizofreude/data-career-navigator/internal/store"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type JobProcessor struct {
	logger   *zap.Logger
	pipeline *enrichment.Pipeline
	rates    *currency.Table
	writer   store.SilverWriter
	runID    uuid.UUID
	tracer   trace.Tracer
}

// NewJobProcessor enriches against a rate table fixed for the processor's
// lifetime. Every posting it stores carries the same run ID.
func NewJobProcessor(logger *zap.Logger, pipeline *enrichment.Pipeline, rates *currency.Table, writer store.SilverWriter) *JobProcessor {
	return &JobProcessor{
		logger:   logger,
		pipeline: pipeline,
		rates:    rates,
		writer:   writer,
		runID:    uuid.New(),
		tracer:   telemetry.GetTracer("data-career-navigator/processor"),
	}
}

func (p *JobProcessor) RunID() uuid.UUID {
	return p.runID
}

func (p *JobProcessor) ProcessJobPosting(ctx context.Context, rawData []byte) (*models.EnrichedJobPosting, error) {
	ctx, span := p.tracer.Start(ctx, "ProcessJobPosting")
	defer span.End()

	var raw models.RawJobPosting
	if err := json.Unmarshal(rawData, &raw); err != nil {
		span.RecordError(err)
		return nil, errors.MalformedRecord("decoding raw job posting", err)
	}
	span.SetAttributes(telemetry.String("job.id", raw.ID))

	enriched, err := p.pipeline.Enrich(raw, p.rates)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("enrich job posting: %w", err)
	}

	if err := p.writer.WriteEnriched(ctx, p.runID, []models.EnrichedJobPosting{enriched}); err != nil {
		span.RecordError(err)
		p.logger.Error("Failed to store enriched job posting",
			zap.String("id", enriched.ID),
			zap.Error(err))
		return nil, fmt.Errorf("store job posting: %w", err)
	}

	return &enriched, nil
}

package events

import (
	"context"
	"encoding/json"

	"github.com/pizofreude/data-career-navigator/common/telemetry"
	"github.com/pizofreude/data-career-navigator/internal/errors"
	"github.com/pizofreude/data-career-navigator/internal/models"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// msgPublisher is the part of *nats.Conn the publisher needs.
type msgPublisher interface {
	Publish(subject string, data []byte) error
}

type Publisher struct {
	conn    msgPublisher
	subject string
	logger  *zap.Logger
	tracer  trace.Tracer
}

func NewPublisher(conn msgPublisher, subject string, logger *zap.Logger) *Publisher {
	return &Publisher{
		conn:    conn,
		subject: subject,
		logger:  logger,
		tracer:  telemetry.GetTracer("data-career-navigator/events"),
	}
}

// PublishRaw feeds a bronze posting to the processor's input subject.
func (p *Publisher) PublishRaw(ctx context.Context, posting *models.RawJobPosting) error {
	return p.publish(ctx, "PublishRaw", posting.ID, posting)
}

func (p *Publisher) PublishEnriched(ctx context.Context, posting *models.EnrichedJobPosting) error {
	return p.publish(ctx, "PublishEnriched", posting.ID, posting)
}

func (p *Publisher) publish(ctx context.Context, op, id string, v any) error {
	_, span := p.tracer.Start(ctx, op)
	defer span.End()

	data, err := json.Marshal(v)
	if err != nil {
		span.RecordError(err)
		return errors.Internal("marshaling job posting", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", p.subject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(p.subject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish job posting",
			zap.String("id", id),
			zap.String("subject", p.subject),
			zap.Error(err))
		return errors.Unavailable("publishing to NATS", err)
	}

	p.logger.Debug("published job posting",
		zap.String("id", id),
		zap.String("subject", p.subject))
	return nil
}

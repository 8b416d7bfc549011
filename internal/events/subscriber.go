// Package events connects the enrichment processor to NATS: raw postings in,
// enriched postings out.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/pizofreude/data-career-navigator/common/telemetry"
	"github.com/pizofreude/data-career-navigator/internal/errors"
	"github.com/pizofreude/data-career-navigator/internal/models"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Processor interface {
	ProcessJobPosting(ctx context.Context, rawData []byte) (*models.EnrichedJobPosting, error)
}

type Handler struct {
	logger    *zap.Logger
	nc        *nats.Conn
	tracer    trace.Tracer
	processor Processor
	publisher *Publisher
	timeout   time.Duration
	sub       *nats.Subscription
}

func NewHandler(logger *zap.Logger, nc *nats.Conn, processor Processor, publisher *Publisher, timeout time.Duration) *Handler {
	return &Handler{
		logger:    logger,
		nc:        nc,
		tracer:    telemetry.GetTracer("data-career-navigator/events"),
		processor: processor,
		publisher: publisher,
		timeout:   timeout,
	}
}

func (h *Handler) RegisterSubscriptions(lc fx.Lifecycle, subject, queue string) error {
	sub, err := h.nc.QueueSubscribe(subject, queue, h.handleJobPosting)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", subject, err)
	}

	h.sub = sub
	h.logger.Info("Registered NATS subscriptions",
		zap.String("subject", subject),
		zap.String("queue", queue))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return h.sub.Drain()
		},
	})

	return nil
}

func (h *Handler) handleJobPosting(msg *nats.Msg) {
	ctx := context.Background()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	ctx, span := h.tracer.Start(ctx, "handleJobPosting")
	defer span.End()

	enriched, err := h.processor.ProcessJobPosting(ctx, msg.Data)
	if err != nil {
		level := h.logger.Error
		if errors.Is(err, errors.ErrTypeMalformedRecord) {
			level = h.logger.Warn
		}
		level("Failed to process job posting",
			zap.Error(err),
			zap.String("subject", msg.Subject))
		return
	}

	if h.publisher != nil {
		if err := h.publisher.PublishEnriched(ctx, enriched); err != nil {
			return
		}
	}

	h.logger.Info("Successfully processed job posting",
		zap.String("id", enriched.ID),
		zap.String("subject", msg.Subject))
}

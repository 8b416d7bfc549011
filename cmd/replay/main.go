// Command replay publishes a bronze CSV file to the processor's input subject,
// one message per posting.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pizofreude/data-career-navigator/internal/config"
	"github.com/pizofreude/data-career-navigator/internal/events"
	"github.com/pizofreude/data-career-navigator/internal/ingest"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bronze, err := ingest.NewReader(logger).ReadFile(ctx, cfg.InputPath)
	if err != nil {
		logger.Fatal("Failed to read bronze file", zap.Error(err))
	}

	nc, err := nats.Connect(cfg.NATSURL,
		nats.Timeout(cfg.NATSConnTimeout),
		nats.Name("bronze-replay"),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer nc.Close()

	publisher := events.NewPublisher(nc, cfg.RawSubject, logger)

	published, failed := 0, 0
	for i := range bronze.Postings {
		if ctx.Err() != nil {
			break
		}
		if err := publisher.PublishRaw(ctx, &bronze.Postings[i]); err != nil {
			failed++
			continue
		}
		published++
	}

	if err := nc.Flush(); err != nil {
		logger.Error("Failed to flush NATS connection", zap.Error(err))
	}

	logger.Info("Replay finished",
		zap.String("subject", cfg.RawSubject),
		zap.Int("published", published),
		zap.Int("failed", failed),
		zap.Int("total", len(bronze.Postings)))
}

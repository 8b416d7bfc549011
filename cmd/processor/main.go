package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pizofreude/data-career-navigator/common/cache"
	"github.com/pizofreude/data-career-navigator/common/cache/memory"
	"github.com/pizofreude/data-career-navigator/common/cache/redis"
	"github.com/pizofreude/data-career-navigator/common/database"
	"github.com/pizofreude/data-career-navigator/common/telemetry"
	"github.com/pizofreude/data-career-navigator/internal/config"
	"github.com/pizofreude/data-career-navigator/internal/currency"
	"github.com/pizofreude/data-career-navigator/internal/enrichment"
	"github.com/pizofreude/data-career-navigator/internal/events"
	"github.com/pizofreude/data-career-navigator/internal/processor"
	"github.com/pizofreude/data-career-navigator/internal/skills"
	"github.com/pizofreude/data-career-navigator/internal/store"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/nats-io/nats.go"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const serviceName = "enrichment-processor"

func newLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

func newTracing(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) error {
	shutdown, err := telemetry.InitTracer(context.Background(), serviceName, cfg.OTelCollectorURL, logger)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			shutdown()
			return nil
		},
	})
	return nil
}

func newNATSConnection(lc fx.Lifecycle, cfg *config.Config) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.NATSConnTimeout),
		nats.Name(serviceName),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	}
	nc, err := nats.Connect(cfg.NATSURL, opts...)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return nc.Drain()
		},
	})
	return nc, nil
}

func newClickHouseConnection(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (clickhouse.Conn, error) {
	db, err := database.New(context.Background(), database.Options{
		Addr:            cfg.ClickHouseAddr,
		MaxOpenConns:    cfg.ClickHouseMaxOpenConns,
		MaxIdleConns:    cfg.ClickHouseMaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouseConnMaxLife,
		Username:        cfg.ClickHouseUsername,
		Password:        cfg.ClickHousePassword,
		Database:        cfg.ClickHouseDatabase,
	}, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})
	return db.Conn(), nil
}

func newCache(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) cache.Cache {
	opts := cache.Options{
		DefaultTTL:    cfg.CacheTTL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	}
	var c cache.Cache = memory.New(opts)
	if cfg.RedisEnabled {
		rc := redis.New(opts)
		if err := rc.Ping(context.Background()); err != nil {
			logger.Warn("redis unavailable, using in-memory rate cache", zap.Error(err))
			_ = rc.Close()
		} else {
			c = rc
		}
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return c.Close()
		},
	})
	return c
}

func newRates(c cache.Cache, cfg *config.Config, logger *zap.Logger) *currency.Table {
	return currency.NewLoader(c, logger, cfg.CacheTTL).Load(context.Background(), cfg.RatesPath)
}

func newPipeline(cfg *config.Config, logger *zap.Logger) (*enrichment.Pipeline, error) {
	vocab, err := skills.LoadVocabulary(cfg.VocabularyPath)
	if err != nil {
		return nil, err
	}
	return enrichment.NewPipeline(vocab, cfg.SalaryPolicy(), 1, logger), nil
}

func newSilverWriter(conn clickhouse.Conn, logger *zap.Logger) store.SilverWriter {
	return store.NewClickHouseSink(conn, logger)
}

func newPublisher(nc *nats.Conn, cfg *config.Config, logger *zap.Logger) *events.Publisher {
	return events.NewPublisher(nc, cfg.EnrichedSubject, logger)
}

func newHandler(logger *zap.Logger, nc *nats.Conn, p *processor.JobProcessor, pub *events.Publisher, cfg *config.Config) *events.Handler {
	return events.NewHandler(logger, nc, p, pub, cfg.ProcessingTimeout)
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newNATSConnection,
			newClickHouseConnection,
			newCache,
			newRates,
			newPipeline,
			newSilverWriter,
			newPublisher,
			processor.NewJobProcessor,
			newHandler,
		),
		fx.Invoke(
			newTracing,
			func(handler *events.Handler, cfg *config.Config, lc fx.Lifecycle) error {
				return handler.RegisterSubscriptions(lc, cfg.RawSubject, cfg.QueueGroup)
			},
		),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}

// Command pipeline runs one batch: bronze CSV in, silver and gold tables out.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pizofreude/data-career-navigator/common/cache"
	"github.com/pizofreude/data-career-navigator/common/cache/memory"
	"github.com/pizofreude/data-career-navigator/common/cache/redis"
	"github.com/pizofreude/data-career-navigator/common/database"
	"github.com/pizofreude/data-career-navigator/common/telemetry"
	"github.com/pizofreude/data-career-navigator/internal/aggregate"
	"github.com/pizofreude/data-career-navigator/internal/config"
	"github.com/pizofreude/data-career-navigator/internal/currency"
	"github.com/pizofreude/data-career-navigator/internal/enrichment"
	"github.com/pizofreude/data-career-navigator/internal/ingest"
	"github.com/pizofreude/data-career-navigator/internal/skills"
	"github.com/pizofreude/data-career-navigator/internal/store"

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

	shutdown, err := telemetry.InitTracer(ctx, "enrichment-pipeline", cfg.OTelCollectorURL, logger)
	if err != nil {
		logger.Fatal("Failed to initialise tracing", zap.Error(err))
	}
	defer shutdown()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Pipeline run failed", zap.Error(err))
		shutdown()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	rateCache := newCache(ctx, cfg, logger)
	defer rateCache.Close()
	rates := currency.NewLoader(rateCache, logger, cfg.CacheTTL).Load(ctx, cfg.RatesPath)

	vocab, err := skills.LoadVocabulary(cfg.VocabularyPath)
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}

	bronze, err := ingest.NewReader(logger).ReadFile(ctx, cfg.InputPath)
	if err != nil {
		return fmt.Errorf("read bronze: %w", err)
	}
	for _, w := range bronze.Warnings {
		logger.Warn("bronze row warning", zap.Int("row", w.Row), zap.String("message", w.Message))
	}

	res, err := enrichment.NewPipeline(vocab, cfg.SalaryPolicy(), cfg.Workers, logger).Run(ctx, bronze.Postings, rates)
	if err != nil {
		return fmt.Errorf("enrich: %w", err)
	}

	tables, err := aggregate.NewAggregator(vocab, logger).Build(ctx, res.Postings)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	sink, closeSink, err := newSink(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSink()

	r := store.NewRun(vocab.Version(), res, tables)
	if err := sink.Write(ctx, r); err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	return printSummary(r)
}

func newCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) cache.Cache {
	opts := cache.Options{
		DefaultTTL:    cfg.CacheTTL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	}
	if cfg.RedisEnabled {
		rc := redis.New(opts)
		err := rc.Ping(ctx)
		if err == nil {
			return rc
		}
		logger.Warn("redis unavailable, using in-memory rate cache", zap.Error(err))
		_ = rc.Close()
	}
	return memory.New(opts)
}

func newSink(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Sink, func(), error) {
	if cfg.Sink != config.SinkClickHouse {
		return store.NewJSONSink(cfg.OutputDir, logger), func() {}, nil
	}

	db, err := database.New(ctx, database.Options{
		Addr:            cfg.ClickHouseAddr,
		Database:        cfg.ClickHouseDatabase,
		Username:        cfg.ClickHouseUsername,
		Password:        cfg.ClickHousePassword,
		MaxOpenConns:    cfg.ClickHouseMaxOpenConns,
		MaxIdleConns:    cfg.ClickHouseMaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouseConnMaxLife,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect clickhouse: %w", err)
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Warn("closing clickhouse connection", zap.Error(err))
		}
	}
	return store.NewClickHouseSink(db.Conn(), logger), closeDB, nil
}

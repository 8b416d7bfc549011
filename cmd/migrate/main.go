package main

import (
	"context"
	"log"
	"os"

	"github.com/pizofreude/data-career-navigator/common/database"
	"github.com/pizofreude/data-career-navigator/common/database/schema"
	"github.com/pizofreude/data-career-navigator/common/database/schema/migrations"
	"github.com/pizofreude/data-career-navigator/internal/config"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	ctx := context.Background()

	db, err := database.New(ctx, database.Options{
		Addr:     cfg.ClickHouseAddr,
		Database: cfg.ClickHouseDatabase,
		Username: cfg.ClickHouseUsername,
		Password: cfg.ClickHousePassword,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to connect to ClickHouse", zap.Error(err))
	}
	defer db.Close()

	migrator := schema.NewMigrator(db.Conn(), logger)

	switch direction {
	case "up":
		applied, err := migrator.Up(ctx, migrations.All())
		if err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		logger.Info("All migrations completed successfully", zap.Int("applied", applied))
	case "down":
		rolled, err := migrator.Down(ctx, migrations.All())
		if err != nil {
			logger.Fatal("Failed to roll back migration", zap.Error(err))
		}
		if rolled == nil {
			logger.Info("No migrations to roll back")
			return
		}
		logger.Info("Rolled back migration", zap.Int("version", rolled.Version))
	default:
		logger.Fatal("Unknown direction, expected up or down", zap.String("direction", direction))
	}
}

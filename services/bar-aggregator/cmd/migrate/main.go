package main

import (
	"context"
	"flag"
	stdlog "log"

	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/migration"
	"github.com/muhammadchandra19/exchange/pkg/questdb"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/pkg/config"
)

func main() {
	var (
		direction = flag.String("direction", "up", "Migration direction: up or down")
		steps     = flag.Int("steps", 0, "Number of steps to migrate (0 = all)")
		dir       = flag.String("dir", "internal/infrastructure/questdb/migrations", "Directory holding the *.up.sql and *.down.sql files")
	)
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}

	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.ParseLevel(cfg.App.LogLevel)))
	if err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	defer log.Sync()

	questdbClient, err := questdb.NewClient(ctx, cfg.QuestDB)
	if err != nil {
		stdlog.Fatalf("Failed to initialize QuestDB client: %v", err)
	}
	defer questdbClient.Close()

	runner := migration.NewRunner(questdbClient, log, *dir)

	if err := runner.EnsureMigrationTable(ctx); err != nil {
		stdlog.Fatalf("Failed to create migration table: %v", err)
	}

	switch *direction {
	case "up":
		err = runner.MigrateUp(ctx, *steps)
	case "down":
		err = runner.MigrateDown(ctx, *steps)
	default:
		stdlog.Fatalf("Invalid direction: %s. Use 'up' or 'down'", *direction)
	}
	if err != nil {
		stdlog.Fatalf("Failed to migrate %s: %v", *direction, err)
	}

	log.Info("Migration completed", logger.Field{Key: "direction", Value: *direction})
}

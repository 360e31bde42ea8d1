package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"obrafacil-backend/internal/config"
	"obrafacil-backend/internal/logger"
	"obrafacil-backend/internal/repository/postgres"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: migrate [-config path] up|down|status|reset\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	if cfg.Database.Driver == config.DriverMemory {
		log.Fatalf("Nothing to migrate for the %q driver", cfg.Database.Driver)
	}

	db, err := postgres.Open(cfg.Database, cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	logger.Info("Running migrations", "command", command, "database", cfg.Database.Database)
	if err := postgres.Migrate(context.Background(), db, command); err != nil {
		logger.Error("Migration failed", "command", command, "error", err)
		db.Close()
		os.Exit(1)
	}
	logger.Info("Migrations finished", "command", command)
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"obrafacil-backend/internal/config"
	"obrafacil-backend/internal/jobs"
	"obrafacil-backend/internal/logger"
	"obrafacil-backend/internal/repository/postgres"
	"obrafacil-backend/internal/scheduler"
	"obrafacil-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'reconcile-equipment', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ObraFacil cronjob runner...", "log_level", cfg.Log.Level)

	// Jobs repair shared state, so they need the shared database.
	if cfg.Database.Driver == config.DriverMemory {
		log.Fatalf("The cronjob runner needs the postgres driver, got %q", cfg.Database.Driver)
	}

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := postgres.Open(cfg.Database, cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	jobRunner := jobs.NewJobRunner(
		jobs.Repositories{Orders: store.OrderRepository, Equipment: store.EquipmentRepository},
		&jobs.Services{Email: service.NewEmailService(cfg.Email)},
		cfg,
	)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to initialize scheduler: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "reconcile-equipment":
		jobRunner.ReconcileEquipment()
	case "send-delivery-reminders":
		jobRunner.SendDeliveryReminders()
	case "send-quote-expiring":
		jobRunner.SendQuoteExpiring()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - reconcile-equipment\n")
		fmt.Printf("  - send-delivery-reminders\n")
		fmt.Printf("  - send-quote-expiring\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "obrafacil-backend/internal/api/http"
	"obrafacil-backend/internal/config"
	"obrafacil-backend/internal/logger"
	"obrafacil-backend/internal/repository"
	"obrafacil-backend/internal/repository/memory"
	"obrafacil-backend/internal/repository/postgres"
	"obrafacil-backend/internal/security"
	"obrafacil-backend/internal/service"
)

type repositories struct {
	orders    repository.OrderRepository
	equipment repository.EquipmentRepository
	contracts repository.ContractRepository
}

// openRepositories returns the configured backend and the database handle to
// close on shutdown (nil for the memory driver).
func openRepositories(cfg *config.Config) (repositories, *sql.DB, error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn("Using in-memory repositories, data is lost on restart")
		store := memory.NewStore()
		return repositories{store.OrderRepository, store.EquipmentRepository, store.ContractRepository}, nil, nil
	}

	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	db, err := postgres.Open(cfg.Database, cfg.GetDatabaseConnectionString())
	if err != nil {
		return repositories{}, nil, err
	}
	logger.Info("Database connection established")
	store := postgres.NewStore(db)
	return repositories{store.OrderRepository, store.EquipmentRepository, store.ContractRepository}, db, nil
}

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ObraFacil backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "driver", cfg.Database.Driver)

	repos, db, err := openRepositories(cfg)
	if err != nil {
		logger.Error("Failed to open repositories", "error", err)
		log.Fatalf("Failed to open repositories: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email)
	orderSvc := service.NewOrderService(repos.orders, repos.equipment, repos.contracts, emailSvc, service.OrderOptions{
		StrictTransitions: cfg.Orders.StrictTransitions,
		QuoteExpiryDays:   cfg.Orders.QuoteExpiryDays,
	})
	equipmentSvc := service.NewEquipmentService(repos.equipment, repos.orders)
	contractSvc := service.NewContractService(repos.contracts)

	// Initialize HTTP handlers
	handlers := httpapi.Handlers{
		Orders:    httpapi.NewOrderHandler(orderSvc, contractSvc),
		Equipment: httpapi.NewEquipmentHandler(equipmentSvc),
		Contracts: httpapi.NewContractHandler(contractSvc),
	}
	if cfg.Auth.Enabled {
		handlers.Auth = httpapi.NewAuthMiddleware(security.NewTokenManager(cfg.Auth.JWTSecret))
	} else {
		logger.Warn("Authentication disabled, API is open")
	}

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      httpapi.NewRouter(handlers),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped. Goodbye!")
}

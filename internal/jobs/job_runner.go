package jobs

import (
	"time"

	"obrafacil-backend/internal/config"
	"obrafacil-backend/internal/logger"
	"obrafacil-backend/internal/repository"
	"obrafacil-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	repos    Repositories
	services *Services
	config   *config.Config
	now      func() time.Time
}

// Repositories are the stores the jobs read and repair.
type Repositories struct {
	Orders    repository.OrderRepository
	Equipment repository.EquipmentRepository
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Email service.EmailService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(repos Repositories, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		repos:    repos,
		services: services,
		config:   cfg,
		now:      time.Now,
	}
}

// Config exposes the configuration the scheduler registers jobs from.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	log := logger.WithService("cronjob").With("job", jobName)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Job panicked", "panic", r)
		}
	}()

	log.Info("Starting job")
	jobFunc()
	log.Info("Job completed")
}

// RunAll runs every job once, repairs first.
func (jr *JobRunner) RunAll() {
	jr.ReconcileEquipment()
	jr.SendDeliveryReminders()
	jr.SendQuoteExpiring()
}

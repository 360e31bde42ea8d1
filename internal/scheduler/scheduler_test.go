package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obrafacil-backend/internal/config"
	"obrafacil-backend/internal/jobs"
	"obrafacil-backend/internal/repository/memory"
	"obrafacil-backend/internal/service"
)

func newRunner(sched config.SchedulerConfig) *jobs.JobRunner {
	store := memory.NewStore()
	return jobs.NewJobRunner(
		jobs.Repositories{Orders: store.OrderRepository, Equipment: store.EquipmentRepository},
		&jobs.Services{Email: service.NewEmailService(config.EmailConfig{})},
		&config.Config{Scheduler: sched},
	)
}

func TestNewScheduler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s, err := NewScheduler(newRunner(config.SchedulerConfig{
			ReconcileEquipment:    "0 */15 * * * *",
			SendDeliveryReminders: "0 0 8 * * *",
			SendQuoteExpiring:     "0 0 9 * * *",
		}))
		require.NoError(t, err)
		assert.Len(t, s.cron.Entries(), 3)
		assert.True(t, s.IsRunning())

		s.Start()
		s.Stop()
	})

	t.Run("Invalid spec", func(t *testing.T) {
		_, err := NewScheduler(newRunner(config.SchedulerConfig{
			ReconcileEquipment:    "every fifteen minutes",
			SendDeliveryReminders: "0 0 8 * * *",
			SendQuoteExpiring:     "0 0 9 * * *",
		}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ReconcileEquipment")
	})
}

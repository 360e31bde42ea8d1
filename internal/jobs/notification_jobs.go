package jobs

import (
	"context"
	"fmt"
	"time"

	"obrafacil-backend/internal/domain"
	"obrafacil-backend/internal/logger"
)

// quoteExpiringWindow is how close to ValidUntil a proposal must be.
const quoteExpiringWindow = 48 * time.Hour

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SendDeliveryReminders emails the operations team about scheduled
// deliveries due within the configured number of days.
func (jr *JobRunner) SendDeliveryReminders() {
	jr.runWithRecovery("SendDeliveryReminders", func() {
		sent, err := jr.sendDeliveryReminders(context.Background())
		if err != nil {
			logger.Error("Failed to send delivery reminders", "error", err)
			return
		}
		logger.Info("Sent delivery reminders", "count", sent)
	})
}

func (jr *JobRunner) sendDeliveryReminders(ctx context.Context) (int, error) {
	orders, _, err := jr.repos.Orders.List(ctx, domain.OrderFilter{
		Statuses: []domain.OrderStatus{domain.OrderStatusScheduled},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list scheduled orders: %w", err)
	}

	today := startOfDay(jr.now().UTC())
	until := today.AddDate(0, 0, jr.config.Orders.DeliveryReminderDays+1)

	sent := 0
	for i := range orders {
		o := &orders[i]
		if o.DeliveryDate == nil || o.DeliveryDate.Before(today) || !o.DeliveryDate.Before(until) {
			continue
		}
		if err := jr.services.Email.SendDeliveryReminder(ctx, o); err != nil {
			logger.Error("Failed to send delivery reminder", "orderID", o.ID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}

// SendQuoteExpiring warns about proposals whose validity ends within two days.
func (jr *JobRunner) SendQuoteExpiring() {
	jr.runWithRecovery("SendQuoteExpiring", func() {
		sent, err := jr.sendQuoteExpiring(context.Background())
		if err != nil {
			logger.Error("Failed to send quote expiring notices", "error", err)
			return
		}
		logger.Info("Sent quote expiring notices", "count", sent)
	})
}

func (jr *JobRunner) sendQuoteExpiring(ctx context.Context) (int, error) {
	orders, _, err := jr.repos.Orders.List(ctx, domain.OrderFilter{
		Statuses: []domain.OrderStatus{domain.OrderStatusProposal},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list proposals: %w", err)
	}

	now := jr.now()
	sent := 0
	for i := range orders {
		o := &orders[i]
		if o.ValidUntil.Before(now) || o.ValidUntil.After(now.Add(quoteExpiringWindow)) {
			continue
		}
		if err := jr.services.Email.SendQuoteExpiring(ctx, o); err != nil {
			logger.Error("Failed to send quote expiring notice", "orderID", o.ID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}

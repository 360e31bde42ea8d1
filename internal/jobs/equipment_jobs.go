package jobs

import (
	"context"
	"fmt"

	"obrafacil-backend/internal/domain"
	"obrafacil-backend/internal/logger"
)

// EquipmentRepair summarizes one reconcile-equipment pass.
type EquipmentRepair struct {
	Checked   int
	Claimed   []string
	Released  []string
	Failed    []string
	Untouched int
}

// ReconcileEquipment recomputes equipment status from the orders that hold
// it and repairs drift left by failed equipment writes.
func (jr *JobRunner) ReconcileEquipment() {
	jr.runWithRecovery("ReconcileEquipment", func() {
		repair, err := jr.reconcileEquipment(context.Background())
		if err != nil {
			logger.Error("Failed to reconcile equipment", "error", err)
			return
		}
		logger.Info("Equipment reconciled",
			"checked", repair.Checked,
			"claimed", len(repair.Claimed),
			"released", len(repair.Released),
			"failed", len(repair.Failed))
	})
}

// reconcileEquipment marks equipment referenced by an in-use order IN_USE and
// frees IN_USE equipment nobody holds. PENDING_PAYMENT orders keep what they
// hold since the lifecycle never releases on that status. Equipment in
// MAINTENANCE that no in-use order references is left alone.
func (jr *JobRunner) reconcileEquipment(ctx context.Context) (EquipmentRepair, error) {
	var repair EquipmentRepair

	holders, err := jr.repos.Orders.ListByStatuses(ctx,
		append(domain.InUseStatuses(), domain.OrderStatusPendingPayment))
	if err != nil {
		return repair, fmt.Errorf("failed to load holding orders: %w", err)
	}
	claimed := make(map[string]string)
	held := make(map[string]bool)
	for _, o := range holders {
		for _, id := range o.EquipmentIDs() {
			held[id] = true
			if o.Status.InUse() {
				claimed[id] = o.ID
			}
		}
	}

	equipment, _, err := jr.repos.Equipment.List(ctx, domain.EquipmentFilter{})
	if err != nil {
		return repair, fmt.Errorf("failed to list equipment: %w", err)
	}

	for _, eq := range equipment {
		repair.Checked++
		var target domain.EquipmentStatus
		switch {
		case claimed[eq.ID] != "" && eq.Status != domain.EquipmentStatusInUse:
			target = domain.EquipmentStatusInUse
		case eq.Status == domain.EquipmentStatusInUse && !held[eq.ID]:
			target = domain.EquipmentStatusAvailable
		default:
			repair.Untouched++
			continue
		}

		if err := jr.repos.Equipment.UpdateStatus(ctx, eq.ID, target); err != nil {
			logger.Error("Failed to repair equipment status", "equipmentID", eq.ID, "status", target, "error", err)
			repair.Failed = append(repair.Failed, eq.ID)
			continue
		}
		if target == domain.EquipmentStatusInUse {
			logger.Warn("Equipment claimed by reconcile", "equipmentID", eq.ID, "orderID", claimed[eq.ID], "was", eq.Status)
			repair.Claimed = append(repair.Claimed, eq.ID)
		} else {
			logger.Warn("Equipment released by reconcile", "equipmentID", eq.ID)
			repair.Released = append(repair.Released, eq.ID)
		}
	}
	return repair, nil
}

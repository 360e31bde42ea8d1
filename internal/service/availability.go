package service

import (
	"context"

	"obrafacil-backend/internal/domain"
	"obrafacil-backend/internal/logger"
	"obrafacil-backend/internal/repository"
)

// EquipmentDelta is the set of equipment writes a status change requires.
type EquipmentDelta struct {
	Claim   []string
	Release []string
	Retain  []string
}

func (d EquipmentDelta) Empty() bool {
	return len(d.Claim) == 0 && len(d.Release) == 0
}

// ReconcileEquipment decides the equipment writes for order moving from
// previous to next. others must hold the in-use orders as they are after the
// order write; order itself is skipped by id.
func ReconcileEquipment(order *domain.RentalOrder, previous, next domain.OrderStatus, others []domain.RentalOrder) EquipmentDelta {
	switch {
	case next.InUse():
		return EquipmentDelta{Claim: order.EquipmentIDs()}
	case previous.InUse() && next.Releases():
		return releaseDelta(order.ID, order.EquipmentIDs(), others)
	}
	return EquipmentDelta{}
}

// releaseDelta frees each id unless another in-use order still references it.
func releaseDelta(orderID string, ids []string, others []domain.RentalOrder) EquipmentDelta {
	var d EquipmentDelta
	for _, id := range ids {
		if claimedElsewhere(orderID, id, others) {
			d.Retain = append(d.Retain, id)
		} else {
			d.Release = append(d.Release, id)
		}
	}
	return d
}

func claimedElsewhere(orderID, equipmentID string, others []domain.RentalOrder) bool {
	for i := range others {
		o := &others[i]
		if o.ID == orderID || !o.Status.InUse() {
			continue
		}
		if o.References(equipmentID) {
			return true
		}
	}
	return false
}

// availabilityReconciler loads the other claimants and applies deltas.
// Equipment writes are best-effort: failures are logged and reported, never
// returned.
type availabilityReconciler struct {
	orders    repository.OrderRepository
	equipment repository.EquipmentRepository
}

func (r *availabilityReconciler) inUseOrders(ctx context.Context) ([]domain.RentalOrder, error) {
	return r.orders.ListByStatuses(ctx, domain.InUseStatuses())
}

// reconcile computes and applies the delta for a status change, recording the
// outcome in result.
func (r *availabilityReconciler) reconcile(ctx context.Context, order *domain.RentalOrder, previous, next domain.OrderStatus, result *domain.TransitionResult) {
	var others []domain.RentalOrder
	if previous.InUse() && next.Releases() {
		var err error
		others, err = r.inUseOrders(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to load in-use orders, equipment left unchanged",
				"orderID", order.ID, "error", err)
			result.FailedEquipment = append(result.FailedEquipment, order.EquipmentIDs()...)
			return
		}
	}
	r.apply(ctx, order.ID, ReconcileEquipment(order, previous, next, others), result)
}

// release frees ids that order no longer needs, subject to the shared-claim
// check. Used when an order is deleted or drops items.
func (r *availabilityReconciler) release(ctx context.Context, orderID string, ids []string, result *domain.TransitionResult) {
	if len(ids) == 0 {
		return
	}
	others, err := r.inUseOrders(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load in-use orders, equipment left unchanged",
			"orderID", orderID, "error", err)
		result.FailedEquipment = append(result.FailedEquipment, ids...)
		return
	}
	r.apply(ctx, orderID, releaseDelta(orderID, ids, others), result)
}

func (r *availabilityReconciler) apply(ctx context.Context, orderID string, d EquipmentDelta, result *domain.TransitionResult) {
	result.Retained = append(result.Retained, d.Retain...)
	for _, id := range d.Claim {
		if r.write(ctx, orderID, id, domain.EquipmentStatusInUse) {
			result.Claimed = append(result.Claimed, id)
		} else {
			result.FailedEquipment = append(result.FailedEquipment, id)
		}
	}
	for _, id := range d.Release {
		if r.write(ctx, orderID, id, domain.EquipmentStatusAvailable) {
			result.Released = append(result.Released, id)
		} else {
			result.FailedEquipment = append(result.FailedEquipment, id)
		}
	}
}

func (r *availabilityReconciler) write(ctx context.Context, orderID, equipmentID string, status domain.EquipmentStatus) bool {
	if err := r.equipment.UpdateStatus(ctx, equipmentID, status); err != nil {
		logger.ErrorContext(ctx, "Failed to update equipment status",
			"orderID", orderID, "equipmentID", equipmentID, "status", status, "error", err)
		return false
	}
	logger.DebugContext(ctx, "Equipment status updated", "orderID", orderID, "equipmentID", equipmentID, "status", status)
	return true
}

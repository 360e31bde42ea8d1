package domain

import "fmt"

// Orders in one of these statuses reserve their equipment.
var inUseStatuses = map[OrderStatus]bool{
	OrderStatusApproved:  true,
	OrderStatusScheduled: true,
	OrderStatusInTransit: true,
	OrderStatusActive:    true,
}

// Orders moving into one of these statuses stop claiming their equipment.
var releaseStatuses = map[OrderStatus]bool{
	OrderStatusCompleted: true,
	OrderStatusRejected:  true,
	OrderStatusProposal:  true,
}

func (s OrderStatus) InUse() bool    { return inUseStatuses[s] }
func (s OrderStatus) Releases() bool { return releaseStatuses[s] }

// InUseStatuses lists the statuses that reserve equipment.
func InUseStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusApproved,
		OrderStatusScheduled,
		OrderStatusInTransit,
		OrderStatusActive,
	}
}

// allowedTransitions documents the lifecycle edges. PENDING_PAYMENT can be
// entered from any working status and left back into it.
var allowedTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusProposal: {
		OrderStatusApproved:       true,
		OrderStatusRejected:       true,
		OrderStatusPendingPayment: true,
	},
	OrderStatusApproved: {
		OrderStatusScheduled:      true,
		OrderStatusPendingPayment: true,
		OrderStatusProposal:       true,
	},
	OrderStatusScheduled: {
		OrderStatusInTransit:      true,
		OrderStatusPendingPayment: true,
	},
	OrderStatusInTransit: {
		OrderStatusActive:         true,
		OrderStatusPendingPayment: true,
	},
	OrderStatusActive: {
		OrderStatusCompleted:      true,
		OrderStatusPendingPayment: true,
	},
	OrderStatusPendingPayment: {
		OrderStatusApproved:  true,
		OrderStatusScheduled: true,
		OrderStatusInTransit: true,
		OrderStatusActive:    true,
		OrderStatusCompleted: true,
	},
	OrderStatusRejected:  {},
	OrderStatusCompleted: {},
}

// CanTransition reports whether from -> to is one of the documented edges.
func CanTransition(from, to OrderStatus) bool {
	return allowedTransitions[from][to]
}

// TransitionError is returned for edges outside the lifecycle table when
// strict transitions are enabled.
type TransitionError struct {
	OrderID string
	From    OrderStatus
	To      OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order %s: illegal status transition %s -> %s", e.OrderID, e.From, e.To)
}

// TransitionResult reports everything a status change touched.
type TransitionResult struct {
	Order           *RentalOrder `json:"order"`
	PreviousStatus  OrderStatus  `json:"previous_status"`
	Claimed         []string     `json:"claimed_equipment,omitempty"`
	Released        []string     `json:"released_equipment,omitempty"`
	Retained        []string     `json:"retained_equipment,omitempty"`
	FailedEquipment []string     `json:"failed_equipment,omitempty"`
	Contract        *Contract    `json:"contract,omitempty"`
}

package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusProposal       OrderStatus = "PROPOSAL"
	OrderStatusApproved       OrderStatus = "APPROVED"
	OrderStatusScheduled      OrderStatus = "SCHEDULED"
	OrderStatusInTransit      OrderStatus = "IN_TRANSIT"
	OrderStatusActive         OrderStatus = "ACTIVE"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusRejected       OrderStatus = "REJECTED"
	OrderStatusPendingPayment OrderStatus = "PENDING_PAYMENT"
)

var orderStatuses = []OrderStatus{
	OrderStatusProposal,
	OrderStatusApproved,
	OrderStatusScheduled,
	OrderStatusInTransit,
	OrderStatusActive,
	OrderStatusCompleted,
	OrderStatusRejected,
	OrderStatusPendingPayment,
}

// OrderStatuses returns every known order status in lifecycle order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(orderStatuses))
	copy(out, orderStatuses)
	return out
}

// ParseOrderStatus accepts the canonical upper-case value; surrounding
// whitespace and case are ignored.
func ParseOrderStatus(s string) (OrderStatus, error) {
	candidate := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range orderStatuses {
		if st == candidate {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown order status: %q", s)
}

func (s OrderStatus) Valid() bool {
	_, err := ParseOrderStatus(string(s))
	return err == nil
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusOverdue PaymentStatus = "OVERDUE"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch p := PaymentStatus(strings.ToUpper(strings.TrimSpace(s))); p {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusOverdue:
		return p, nil
	}
	return "", fmt.Errorf("unknown payment status: %q", s)
}

// StatusChange is one entry of an order's append-only status history.
type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
}

// OrderItem references a piece of equipment. Name and Value are snapshots
// taken when the item was added to the order.
type OrderItem struct {
	EquipmentID   string          `json:"equipment_id"`
	EquipmentName string          `json:"equipment_name"`
	Value         decimal.Decimal `json:"value"`
}

type RentalOrder struct {
	ID              string          `json:"id"`
	Client          string          `json:"client"`
	EquipmentItems  []OrderItem     `json:"equipment_items"`
	Status          OrderStatus     `json:"status"`
	StatusHistory   []StatusChange  `json:"status_history"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	PaymentDate     *time.Time      `json:"payment_date,omitempty"`
	Value           decimal.Decimal `json:"value"`
	FreightCost     decimal.Decimal `json:"freight_cost"`
	AccessoriesCost decimal.Decimal `json:"accessories_cost"`
	Discount        decimal.Decimal `json:"discount"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	CreatedDate     time.Time       `json:"created_date"`
	ValidUntil      time.Time       `json:"valid_until"`
	DeliveryDate    *time.Time      `json:"delivery_date,omitempty"`
	Notes           string          `json:"notes"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Total is value + freight + accessories - discount.
func (o *RentalOrder) Total() decimal.Decimal {
	return o.Value.Add(o.FreightCost).Add(o.AccessoriesCost).Sub(o.Discount)
}

// EquipmentIDs returns the referenced equipment ids in item order, without
// duplicates.
func (o *RentalOrder) EquipmentIDs() []string {
	seen := make(map[string]struct{}, len(o.EquipmentItems))
	ids := make([]string, 0, len(o.EquipmentItems))
	for _, item := range o.EquipmentItems {
		if _, ok := seen[item.EquipmentID]; ok {
			continue
		}
		seen[item.EquipmentID] = struct{}{}
		ids = append(ids, item.EquipmentID)
	}
	return ids
}

func (o *RentalOrder) References(equipmentID string) bool {
	for _, item := range o.EquipmentItems {
		if item.EquipmentID == equipmentID {
			return true
		}
	}
	return false
}

// SetStatus moves the order to status and appends the change to its history.
// History is never rewritten.
func (o *RentalOrder) SetStatus(status OrderStatus, at time.Time) {
	o.Status = status
	o.StatusHistory = append(o.StatusHistory, StatusChange{Status: status, Timestamp: at})
}

// ItemsValue sums the item values.
func (o *RentalOrder) ItemsValue() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.EquipmentItems {
		total = total.Add(item.Value)
	}
	return total
}

// Clone returns a deep copy so callers can keep the pre-update state around.
func (o *RentalOrder) Clone() *RentalOrder {
	c := *o
	c.EquipmentItems = append([]OrderItem(nil), o.EquipmentItems...)
	c.StatusHistory = append([]StatusChange(nil), o.StatusHistory...)
	if o.PaymentDate != nil {
		t := *o.PaymentDate
		c.PaymentDate = &t
	}
	if o.DeliveryDate != nil {
		t := *o.DeliveryDate
		c.DeliveryDate = &t
	}
	return &c
}

// OrderFilter narrows order listings. Zero values mean "any".
type OrderFilter struct {
	Statuses      []OrderStatus
	PaymentStatus PaymentStatus
	Client        string
	EquipmentID   string
	Page          int32
	PageSize      int32
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "ACTIVE"
	ContractStatusCompleted ContractStatus = "COMPLETED"
	ContractStatusCancelled ContractStatus = "CANCELLED"
)

const contractIDPrefix = "CON-"

// ContractIDFor derives the contract id of an order. This naming convention is
// the only link between an order and its contract.
func ContractIDFor(orderID string) string {
	return contractIDPrefix + orderID
}

// Contract is a snapshot of an approved and paid order. TotalValue is frozen at
// creation time.
type Contract struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"order_id"`
	Client      string          `json:"client"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	TotalValue  decimal.Decimal `json:"total_value"`
	Status      ContractStatus  `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// NewContractFromOrder builds the ACTIVE contract for order.
func NewContractFromOrder(order *RentalOrder, now time.Time) *Contract {
	return &Contract{
		ID:         ContractIDFor(order.ID),
		OrderID:    order.ID,
		Client:     order.Client,
		StartDate:  order.StartDate,
		EndDate:    order.EndDate,
		TotalValue: order.Total(),
		Status:     ContractStatusActive,
		CreatedAt:  now,
	}
}

type ContractFilter struct {
	Status   ContractStatus
	Client   string
	Page     int32
	PageSize int32
}

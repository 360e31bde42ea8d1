package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"obrafacil-backend/internal/domain"
	"obrafacil-backend/internal/utils"
)

// Clock returns the current time. Services take one so tests can pin it.
type Clock func() time.Time

type OrderItemInput struct {
	EquipmentID string
	// Value overrides the rate-table quote when set.
	Value *decimal.Decimal
}

type CreateOrderInput struct {
	ID              string
	Client          string
	Items           []OrderItemInput
	InitialStatus   domain.OrderStatus // PROPOSAL or APPROVED; empty means PROPOSAL
	PaymentStatus   domain.PaymentStatus
	FreightCost     decimal.Decimal
	AccessoriesCost decimal.Decimal
	Discount        decimal.Decimal
	StartDate       time.Time
	EndDate         time.Time
	ValidUntil      *time.Time
	DeliveryDate    *time.Time
	Notes           string
}

// UpdateOrderInput carries the non-status fields of an order. Nil fields are
// left untouched; a nil Items keeps the current items.
type UpdateOrderInput struct {
	Client          *string
	Items           []OrderItemInput
	FreightCost     *decimal.Decimal
	AccessoriesCost *decimal.Decimal
	Discount        *decimal.Decimal
	StartDate       *time.Time
	EndDate         *time.Time
	ValidUntil      *time.Time
	Notes           *string
}

type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.TransitionResult, error)
	GetOrder(ctx context.Context, id string) (*domain.RentalOrder, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.RentalOrder, int32, error)
	UpdateOrderDetails(ctx context.Context, id string, input UpdateOrderInput) (*domain.TransitionResult, error)
	DeleteOrder(ctx context.Context, id string) error
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.TransitionResult, error)
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.RentalOrder, *domain.Contract, error)
	ScheduleDelivery(ctx context.Context, id string, deliveryDate time.Time) (*domain.TransitionResult, error)
}

type EquipmentService interface {
	CreateEquipment(ctx context.Context, eq *domain.Equipment) error
	GetEquipment(ctx context.Context, id string) (*domain.Equipment, error)
	ListEquipment(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, int32, error)
	UpdateEquipment(ctx context.Context, eq *domain.Equipment) error
	SetEquipmentStatus(ctx context.Context, id string, status domain.EquipmentStatus) (*domain.Equipment, error)
	DeleteEquipment(ctx context.Context, id string) error
	QuoteItem(ctx context.Context, id string, start, end time.Time) (*utils.Breakdown, error)
}

type ContractService interface {
	GetContract(ctx context.Context, id string) (*domain.Contract, error)
	GetContractForOrder(ctx context.Context, orderID string) (*domain.Contract, error)
	ListContracts(ctx context.Context, filter domain.ContractFilter) ([]domain.Contract, int32, error)
	DeleteContract(ctx context.Context, id string) error
}

type EmailService interface {
	SendContractCreated(ctx context.Context, contract *domain.Contract) error
	SendContractCompleted(ctx context.Context, contract *domain.Contract) error
	SendDeliveryReminder(ctx context.Context, order *domain.RentalOrder) error
	SendQuoteExpiring(ctx context.Context, order *domain.RentalOrder) error
}

package repository

import (
	"context"
	"errors"

	"obrafacil-backend/internal/domain"
)

var (
	// ErrNotFound is returned by every repository when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned by Create when a row with the same id exists.
	ErrDuplicate = errors.New("duplicate record")
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.RentalOrder) error
	GetByID(ctx context.Context, id string) (*domain.RentalOrder, error)
	Update(ctx context.Context, order *domain.RentalOrder) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.RentalOrder, int32, error)
	ListByStatuses(ctx context.Context, statuses []domain.OrderStatus) ([]domain.RentalOrder, error)
}

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	UpdateStatus(ctx context.Context, id string, status domain.EquipmentStatus) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, int32, error)
}

type ContractRepository interface {
	// Create inserts the contract unless one with the same id already exists.
	// created is false when the row was already there.
	Create(ctx context.Context, contract *domain.Contract) (created bool, err error)
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	Update(ctx context.Context, contract *domain.Contract) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.ContractFilter) ([]domain.Contract, int32, error)
}

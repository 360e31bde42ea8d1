package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"obrafacil-backend/internal/domain"
)

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendContractCreated(ctx context.Context, contract *domain.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}
func (m *MockEmailService) SendContractCompleted(ctx context.Context, contract *domain.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}
func (m *MockEmailService) SendDeliveryReminder(ctx context.Context, order *domain.RentalOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockEmailService) SendQuoteExpiring(ctx context.Context, order *domain.RentalOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockContractRepo
type MockContractRepo struct {
	mock.Mock
}

func (m *MockContractRepo) Create(ctx context.Context, c *domain.Contract) (bool, error) {
	args := m.Called(ctx, c)
	return args.Bool(0), args.Error(1)
}
func (m *MockContractRepo) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractRepo) Update(ctx context.Context, c *domain.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockContractRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockContractRepo) List(ctx context.Context, f domain.ContractFilter) ([]domain.Contract, int32, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Contract), args.Get(1).(int32), args.Error(2)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, o *domain.RentalOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, id string) (*domain.RentalOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalOrder), args.Error(1)
}
func (m *MockOrderRepo) Update(ctx context.Context, o *domain.RentalOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOrderRepo) List(ctx context.Context, f domain.OrderFilter) ([]domain.RentalOrder, int32, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.RentalOrder), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderRepo) ListByStatuses(ctx context.Context, statuses []domain.OrderStatus) ([]domain.RentalOrder, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).([]domain.RentalOrder), args.Error(1)
}

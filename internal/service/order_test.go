package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"obrafacil-backend/internal/domain"
	"obrafacil-backend/internal/repository"
	"obrafacil-backend/internal/repository/memory"
	"obrafacil-backend/internal/service"
)

var baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// tickingClock advances one minute per call so history timestamps differ.
func tickingClock() service.Clock {
	n := 0
	return func() time.Time {
		n++
		return baseTime.Add(time.Duration(n) * time.Minute)
	}
}

type fixture struct {
	store *memory.Store
	email *MockEmailService
	svc   service.OrderService
}

func newFixture(t *testing.T, strict bool) *fixture {
	t.Helper()
	store := memory.NewStore()
	email := new(MockEmailService)
	email.On("SendContractCreated", mock.Anything, mock.Anything).Return(nil).Maybe()
	email.On("SendContractCompleted", mock.Anything, mock.Anything).Return(nil).Maybe()

	ctx := context.Background()
	for _, eq := range []domain.Equipment{
		{ID: "EQ-9", Name: "Betoneira 400L", Status: domain.EquipmentStatusAvailable,
			Rates: domain.Rates{Daily: decimal.NewFromInt(50)}},
		{ID: "EQ-1", Name: "Andaime tubular", Status: domain.EquipmentStatusAvailable,
			Rates: domain.Rates{Daily: decimal.NewFromInt(20)}},
	} {
		eq := eq
		require.NoError(t, store.EquipmentRepository.Create(ctx, &eq))
	}

	svc := service.NewOrderService(store.OrderRepository, store.EquipmentRepository, store.ContractRepository, email,
		service.OrderOptions{StrictTransitions: strict, QuoteExpiryDays: 15, Clock: tickingClock()})
	return &fixture{store: store, email: email, svc: svc}
}

func (f *fixture) createOrder(t *testing.T, id string, equipment ...string) *domain.RentalOrder {
	t.Helper()
	value := decimal.NewFromInt(150)
	items := make([]service.OrderItemInput, 0, len(equipment))
	for _, eq := range equipment {
		items = append(items, service.OrderItemInput{EquipmentID: eq, Value: &value})
	}
	res, err := f.svc.CreateOrder(context.Background(), service.CreateOrderInput{
		ID:          id,
		Client:      "Construtora Alfa",
		Items:       items,
		FreightCost: decimal.NewFromInt(20),
		Discount:    decimal.NewFromInt(10),
		StartDate:   baseTime,
		EndDate:     baseTime.AddDate(0, 0, 6),
	})
	require.NoError(t, err)
	return res.Order
}

func (f *fixture) equipmentStatus(t *testing.T, id string) domain.EquipmentStatus {
	t.Helper()
	eq, err := f.store.EquipmentRepository.GetByID(context.Background(), id)
	require.NoError(t, err)
	return eq.Status
}

func (f *fixture) move(t *testing.T, id string, statuses ...domain.OrderStatus) *domain.TransitionResult {
	t.Helper()
	var res *domain.TransitionResult
	for _, st := range statuses {
		var err error
		res, err = f.svc.UpdateOrderStatus(context.Background(), id, st)
		require.NoError(t, err, "moving %s to %s", id, st)
	}
	return res
}

func TestOrderService_CreateOrder(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	t.Run("Prices items without a value", func(t *testing.T) {
		res, err := f.svc.CreateOrder(ctx, service.CreateOrderInput{
			Client:    "Construtora Beta",
			Items:     []service.OrderItemInput{{EquipmentID: "EQ-1"}},
			StartDate: baseTime,
			EndDate:   baseTime.AddDate(0, 0, 2),
		})
		require.NoError(t, err)
		order := res.Order
		assert.NotEmpty(t, order.ID)
		assert.Equal(t, domain.OrderStatusProposal, order.Status)
		assert.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)
		require.Len(t, order.StatusHistory, 1)
		assert.Equal(t, "Andaime tubular", order.EquipmentItems[0].EquipmentName)
		assert.Equal(t, "60", order.Value.String())
		assert.Empty(t, res.Claimed)
		assert.Equal(t, domain.EquipmentStatusAvailable, f.equipmentStatus(t, "EQ-1"))
	})

	t.Run("Approved entry point claims equipment", func(t *testing.T) {
		value := decimal.NewFromInt(100)
		res, err := f.svc.CreateOrder(ctx, service.CreateOrderInput{
			ID:            "ORD-APP",
			Client:        "Construtora Beta",
			Items:         []service.OrderItemInput{{EquipmentID: "EQ-9", Value: &value}},
			InitialStatus: domain.OrderStatusApproved,
			PaymentStatus: domain.PaymentStatusPaid,
			StartDate:     baseTime,
			EndDate:       baseTime,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"EQ-9"}, res.Claimed)
		require.NotNil(t, res.Contract)
		assert.Equal(t, "CON-ORD-APP", res.Contract.ID)
		assert.NotNil(t, res.Order.PaymentDate)
	})

	t.Run("Validation", func(t *testing.T) {
		_, err := f.svc.CreateOrder(ctx, service.CreateOrderInput{Client: "", Items: []service.OrderItemInput{{EquipmentID: "EQ-9"}}})
		assert.ErrorIs(t, err, service.ErrInvalidOrder)

		_, err = f.svc.CreateOrder(ctx, service.CreateOrderInput{Client: "X"})
		assert.ErrorIs(t, err, service.ErrInvalidOrder)

		_, err = f.svc.CreateOrder(ctx, service.CreateOrderInput{
			Client: "X", Items: []service.OrderItemInput{{EquipmentID: "EQ-404"}}, StartDate: baseTime, EndDate: baseTime,
		})
		assert.ErrorIs(t, err, service.ErrEquipmentNotFound)

		_, err = f.svc.CreateOrder(ctx, service.CreateOrderInput{
			Client: "X", Items: []service.OrderItemInput{{EquipmentID: "EQ-9"}}, InitialStatus: domain.OrderStatusActive,
			StartDate: baseTime, EndDate: baseTime,
		})
		assert.ErrorIs(t, err, service.ErrInvalidStatus)
	})

	t.Run("Duplicate id", func(t *testing.T) {
		value := decimal.NewFromInt(10)
		_, err := f.svc.CreateOrder(ctx, service.CreateOrderInput{
			ID: "ORD-APP", Client: "Construtora Gama", Items: []service.OrderItemInput{{EquipmentID: "EQ-1", Value: &value}},
			StartDate: baseTime, EndDate: baseTime,
		})
		assert.ErrorIs(t, err, service.ErrOrderExists)

		stored, err := f.store.OrderRepository.GetByID(ctx, "ORD-APP")
		require.NoError(t, err)
		assert.Equal(t, "Construtora Beta", stored.Client)
	})

	t.Run("Negative quoted value", func(t *testing.T) {
		require.NoError(t, f.store.EquipmentRepository.Create(ctx, &domain.Equipment{
			ID: "EQ-NEG", Name: "Gerador", Status: domain.EquipmentStatusAvailable,
			Rates: domain.Rates{Daily: decimal.NewFromInt(-5)},
		}))
		_, err := f.svc.CreateOrder(ctx, service.CreateOrderInput{
			Client: "X", Items: []service.OrderItemInput{{EquipmentID: "EQ-NEG"}}, StartDate: baseTime, EndDate: baseTime,
		})
		assert.ErrorIs(t, err, service.ErrInvalidOrder)
	})
}

func TestOrderService_NoOpTransition(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.createOrder(t, "ORD-1", "EQ-9")
	f.move(t, "ORD-1", domain.OrderStatusApproved)
	writes := f.store.EquipmentRepository.StatusWrites()

	res, err := f.svc.UpdateOrderStatus(ctx, "ORD-1", domain.OrderStatusApproved)
	assert.ErrorIs(t, err, service.ErrStatusUnchanged)
	assert.Nil(t, res)

	order, err := f.svc.GetOrder(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Len(t, order.StatusHistory, 2)
	assert.Equal(t, writes, f.store.EquipmentRepository.StatusWrites())
	assert.Equal(t, 0, f.store.ContractRepository.Count())
}

func TestOrderService_HistoryMonotonicity(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.createOrder(t, "ORD-1", "EQ-9")

	sequence := []domain.OrderStatus{
		domain.OrderStatusApproved,
		domain.OrderStatusScheduled,
		domain.OrderStatusPendingPayment,
		domain.OrderStatusInTransit,
		domain.OrderStatusActive,
		domain.OrderStatusCompleted,
	}
	for i, st := range sequence {
		f.move(t, "ORD-1", st)
		order, err := f.svc.GetOrder(ctx, "ORD-1")
		require.NoError(t, err)
		require.Len(t, order.StatusHistory, i+2)
		last := order.StatusHistory[len(order.StatusHistory)-1]
		assert.Equal(t, order.Status, last.Status)
		assert.True(t, last.Timestamp.After(order.StatusHistory[len(order.StatusHistory)-2].Timestamp))
	}
}

func TestOrderService_SingleClaim(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.createOrder(t, "ORD-1", "EQ-9", "EQ-1", "EQ-9")

	require.NoError(t, f.store.EquipmentRepository.UpdateStatus(ctx, "EQ-9", domain.EquipmentStatusMaintenance))
	before := f.store.EquipmentRepository.StatusWrites()

	res := f.move(t, "ORD-1", domain.OrderStatusApproved)
	assert.ElementsMatch(t, []string{"EQ-9", "EQ-1"}, res.Claimed)
	assert.Equal(t, before+2, f.store.EquipmentRepository.StatusWrites())
	assert.Equal(t, domain.EquipmentStatusInUse, f.equipmentStatus(t, "EQ-9"))
	assert.Equal(t, domain.EquipmentStatusInUse, f.equipmentStatus(t, "EQ-1"))

	// moving between two in-use statuses claims again
	res = f.move(t, "ORD-1", domain.OrderStatusScheduled)
	assert.Len(t, res.Claimed, 2)

	// PENDING_PAYMENT is in neither set
	res = f.move(t, "ORD-1", domain.OrderStatusPendingPayment)
	assert.Empty(t, res.Claimed)
	assert.Empty(t, res.Released)
	assert.Equal(t, domain.EquipmentStatusInUse, f.equipmentStatus(t, "EQ-9"))
}

func TestOrderService_SharedEquipmentReleaseGuard(t *testing.T) {
	f := newFixture(t, false)
	f.createOrder(t, "ORD-A", "EQ-9")
	f.createOrder(t, "ORD-B", "EQ-9")
	f.move(t, "ORD-A", domain.OrderStatusApproved, domain.OrderStatusScheduled, domain.OrderStatusInTransit, domain.OrderStatusActive)
	f.move(t, "ORD-B", domain.OrderStatusApproved)

	res := f.move(t, "ORD-A", domain.OrderStatusCompleted)
	assert.Equal(t, []string{"EQ-9"}, res.Retained)
	assert.Empty(t, res.Released)
	assert.Equal(t, domain.EquipmentStatusInUse, f.equipmentStatus(t, "EQ-9"))

	res = f.move(t, "ORD-B", domain.OrderStatusProposal)
	assert.Equal(t, []string{"EQ-9"}, res.Released)
	assert.Equal(t, domain.EquipmentStatusAvailable, f.equipmentStatus(t, "EQ-9"))
}

func TestOrderService_ProposalsDoNotHoldEquipment(t *testing.T) {
	f := newFixture(t, false)
	f.createOrder(t, "ORD-A", "EQ-9")
	f.createOrder(t, "ORD-B", "EQ-9")
	f.move(t, "ORD-A", domain.OrderStatusApproved)

	res := f.move(t, "ORD-A", domain.OrderStatusRejected)
	assert.Equal(t, []string{"EQ-9"}, res.Released)
	assert.Equal(t, domain.EquipmentStatusAvailable, f.equipmentStatus(t, "EQ-9"))
}

func TestOrderService_ContractCreatedOnce(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.createOrder(t, "ORD-1", "EQ-9")
	f.move(t, "ORD-1", domain.OrderStatusApproved)

	_, contract, err := f.svc.UpdatePaymentStatus(ctx, "ORD-1", domain.PaymentStatusPaid)
	require.NoError(t, err)
	require.NotNil(t, contract)
	assert.True(t, contract.TotalValue.Equal(decimal.NewFromInt(160)))

	for i := 0; i < 3; i++ {
		order, again, err := f.svc.UpdatePaymentStatus(ctx, "ORD-1", domain.PaymentStatusPaid)
		require.NoError(t, err)
		assert.Nil(t, again)
		assert.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)
	}

	// leave and re-enter APPROVED while paid
	res := f.move(t, "ORD-1", domain.OrderStatusPendingPayment, domain.OrderStatusApproved)
	assert.Nil(t, res.Contract)
	assert.Equal(t, 1, f.store.ContractRepository.Count())
	f.email.AssertNumberOfCalls(t, "SendContractCreated", 1)
}

func TestOrderService_ContractCompletionMonotone(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.createOrder(t, "ORD-1", "EQ-9")
	f.move(t, "ORD-1", domain.OrderStatusApproved)
	_, _, err := f.svc.UpdatePaymentStatus(ctx, "ORD-1", domain.PaymentStatusPaid)
	require.NoError(t, err)

	res := f.move(t, "ORD-1", domain.OrderStatusActive, domain.OrderStatusCompleted)
	require.NotNil(t, res.Contract)
	completedAt := *res.Contract.CompletedAt

	// permissive mode lets the order bounce back and complete again
	res = f.move(t, "ORD-1", domain.OrderStatusActive, domain.OrderStatusCompleted)
	assert.Nil(t, res.Contract)

	c, err := f.store.ContractRepository.GetByID(ctx, "CON-ORD-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusCompleted, c.Status)
	assert.Equal(t, completedAt, *c.CompletedAt)
	f.email.AssertNumberOfCalls(t, "SendContractCompleted", 1)
}

func TestOrderService_EndToEnd(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.createOrder(t, "ORD-1", "EQ-9")

	res := f.move(t, "ORD-1", domain.OrderStatusApproved)
	assert.Equal(t, domain.EquipmentStatusInUse, f.equipmentStatus(t, "EQ-9"))
	assert.Nil(t, res.Contract)
	assert.Equal(t, 0, f.store.ContractRepository.Count())

	order, contract, err := f.svc.UpdatePaymentStatus(ctx, "ORD-1", domain.PaymentStatusPaid)
	require.NoError(t, err)
	require.NotNil(t, order.PaymentDate)
	require.NotNil(t, contract)
	assert.Equal(t, "CON-ORD-1", contract.ID)
	assert.Equal(t, domain.ContractStatusActive, contract.Status)

	res = f.move(t, "ORD-1", domain.OrderStatusCompleted)
	require.NotNil(t, res.Contract)
	assert.Equal(t, domain.ContractStatusCompleted, res.Contract.Status)
	assert.Equal(t, []string{"EQ-9"}, res.Released)
	assert.Equal(t, domain.EquipmentStatusAvailable, f.equipmentStatus(t, "EQ-9"))
}

func TestOrderService_OrderWriteFailureAborts(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	value := decimal.NewFromInt(100)
	_, err := f.svc.CreateOrder(ctx, service.CreateOrderInput{
		ID: "ORD-1", Client: "Alfa", Items: []service.OrderItemInput{{EquipmentID: "EQ-9", Value: &value}},
		PaymentStatus: domain.PaymentStatusPaid, StartDate: baseTime, EndDate: baseTime,
	})
	require.NoError(t, err)

	f.store.OrderRepository.FailUpdate = errors.New("connection refused")
	res, err := f.svc.UpdateOrderStatus(ctx, "ORD-1", domain.OrderStatusApproved)
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update order status")

	assert.Equal(t, 0, f.store.EquipmentRepository.StatusWrites())
	assert.Equal(t, domain.EquipmentStatusAvailable, f.equipmentStatus(t, "EQ-9"))
	assert.Equal(t, 0, f.store.ContractRepository.Count())

	f.store.OrderRepository.FailUpdate = nil
	order, err := f.svc.GetOrder(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProposal, order.Status)
}

func TestOrderService_EquipmentWriteFailureContinues(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	value := decimal.NewFromInt(100)
	_, err := f.svc.CreateOrder(ctx, service.CreateOrderInput{
		ID: "ORD-1", Client: "Alfa",
		Items:         []service.OrderItemInput{{EquipmentID: "EQ-9", Value: &value}, {EquipmentID: "EQ-1", Value: &value}},
		PaymentStatus: domain.PaymentStatusPaid, StartDate: baseTime, EndDate: baseTime,
	})
	require.NoError(t, err)

	f.store.EquipmentRepository.FailStatusFor["EQ-9"] = errors.New("timeout")
	res, err := f.svc.UpdateOrderStatus(ctx, "ORD-1", domain.OrderStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, []string{"EQ-9"}, res.FailedEquipment)
	assert.Equal(t, []string{"EQ-1"}, res.Claimed)
	require.NotNil(t, res.Contract)
	assert.Equal(t, domain.OrderStatusApproved, res.Order.Status)
	assert.Equal(t, domain.EquipmentStatusAvailable, f.equipmentStatus(t, "EQ-9"))
}

func TestOrderService_ContractWriteFailure(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.EquipmentRepository.Create(ctx, &domain.Equipment{ID: "EQ-9", Name: "Betoneira"}))

	contracts := new(MockContractRepo)
	email := new(MockEmailService)
	svc := service.NewOrderService(store.OrderRepository, store.EquipmentRepository, contracts, email,
		service.OrderOptions{Clock: tickingClock()})

	value := decimal.NewFromInt(100)
	_, err := svc.CreateOrder(ctx, service.CreateOrderInput{
		ID: "ORD-1", Client: "Alfa", Items: []service.OrderItemInput{{EquipmentID: "EQ-9", Value: &value}},
		InitialStatus: domain.OrderStatusApproved, StartDate: baseTime, EndDate: baseTime,
	})
	require.NoError(t, err)

	contracts.On("GetByID", mock.Anything, "CON-ORD-1").Return(nil, repository.ErrNotFound)
	contracts.On("Create", mock.Anything, mock.AnythingOfType("*domain.Contract")).Return(false, errors.New("disk full"))

	order, contract, err := svc.UpdatePaymentStatus(ctx, "ORD-1", domain.PaymentStatusPaid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create contract")
	assert.Nil(t, contract)
	assert.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)
	email.AssertNotCalled(t, "SendContractCreated", mock.Anything, mock.Anything)
	contracts.AssertExpectations(t)
}

func TestOrderService_StrictTransitions(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	f.createOrder(t, "ORD-1", "EQ-9")

	_, err := f.svc.UpdateOrderStatus(ctx, "ORD-1", domain.OrderStatusActive)
	var terr *domain.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, domain.OrderStatusProposal, terr.From)
	assert.Equal(t, domain.OrderStatusActive, terr.To)
	assert.Equal(t, 0, f.store.EquipmentRepository.StatusWrites())

	f.move(t, "ORD-1", domain.OrderStatusApproved, domain.OrderStatusScheduled)

	_, err = f.svc.UpdateOrderStatus(ctx, "ORD-1", domain.OrderStatusProposal)
	assert.ErrorAs(t, err, &terr)
}

func TestOrderService_InvalidInputs(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.createOrder(t, "ORD-1", "EQ-9")

	_, err := f.svc.UpdateOrderStatus(ctx, "ORD-1", "SHIPPED")
	assert.ErrorIs(t, err, service.ErrInvalidStatus)

	_, err = f.svc.UpdateOrderStatus(ctx, "ORD-404", domain.OrderStatusApproved)
	assert.ErrorIs(t, err, service.ErrOrderNotFound)

	_, _, err = f.svc.UpdatePaymentStatus(ctx, "ORD-1", "REFUNDED")
	assert.ErrorIs(t, err, service.ErrInvalidPaymentStatus)
}

func TestOrderService_ScheduleDelivery(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.createOrder(t, "ORD-1", "EQ-9")
	f.move(t, "ORD-1", domain.OrderStatusApproved)

	delivery := baseTime.AddDate(0, 0, 3)
	res, err := f.svc.ScheduleDelivery(ctx, "ORD-1", delivery)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusScheduled, res.Order.Status)
	assert.Equal(t, domain.OrderStatusApproved, res.PreviousStatus)
	assert.Equal(t, delivery, *res.Order.DeliveryDate)
	assert.Len(t, res.Order.StatusHistory, 3)

	later := delivery.AddDate(0, 0, 1)
	res, err = f.svc.ScheduleDelivery(ctx, "ORD-1", later)
	require.NoError(t, err)
	assert.Equal(t, later, *res.Order.DeliveryDate)
	assert.Len(t, res.Order.StatusHistory, 3)
	assert.Empty(t, res.Claimed)

	_, err = f.svc.ScheduleDelivery(ctx, "ORD-1", time.Time{})
	assert.ErrorIs(t, err, service.ErrInvalidOrder)
}

func TestOrderService_DeleteOrderReleasesEquipment(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.createOrder(t, "ORD-A", "EQ-9", "EQ-1")
	f.createOrder(t, "ORD-B", "EQ-1")
	f.move(t, "ORD-A", domain.OrderStatusApproved)
	f.move(t, "ORD-B", domain.OrderStatusApproved)

	require.NoError(t, f.svc.DeleteOrder(ctx, "ORD-A"))
	assert.Equal(t, domain.EquipmentStatusAvailable, f.equipmentStatus(t, "EQ-9"))
	assert.Equal(t, domain.EquipmentStatusInUse, f.equipmentStatus(t, "EQ-1"))

	assert.ErrorIs(t, f.svc.DeleteOrder(ctx, "ORD-A"), service.ErrOrderNotFound)
}

func TestOrderService_UpdateOrderDetails(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.createOrder(t, "ORD-1", "EQ-9")
	f.move(t, "ORD-1", domain.OrderStatusApproved)

	client := "Construtora Gama"
	discount := decimal.NewFromInt(30)
	res, err := f.svc.UpdateOrderDetails(ctx, "ORD-1", service.UpdateOrderInput{
		Client:   &client,
		Discount: &discount,
		Items:    []service.OrderItemInput{{EquipmentID: "EQ-1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, client, res.Order.Client)
	assert.Equal(t, domain.OrderStatusApproved, res.Order.Status)
	assert.Len(t, res.Order.StatusHistory, 2)
	assert.Equal(t, []string{"EQ-1"}, res.Claimed)
	assert.Equal(t, []string{"EQ-9"}, res.Released)
	assert.Equal(t, domain.EquipmentStatusAvailable, f.equipmentStatus(t, "EQ-9"))
	assert.Equal(t, domain.EquipmentStatusInUse, f.equipmentStatus(t, "EQ-1"))
	// 7 days at 20/day, quoted as one week
	assert.Equal(t, "140", res.Order.Value.String())

	negative := decimal.NewFromInt(-1)
	_, err = f.svc.UpdateOrderDetails(ctx, "ORD-1", service.UpdateOrderInput{FreightCost: &negative})
	assert.ErrorIs(t, err, service.ErrInvalidOrder)
}

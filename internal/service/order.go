package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"obrafacil-backend/internal/domain"
	"obrafacil-backend/internal/logger"
	"obrafacil-backend/internal/repository"
	"obrafacil-backend/internal/utils"
)

// OrderOptions tunes the lifecycle controller.
type OrderOptions struct {
	// StrictTransitions rejects edges missing from the lifecycle table.
	StrictTransitions bool
	// QuoteExpiryDays sets ValidUntil when an order is created without one.
	QuoteExpiryDays int
	Clock           Clock
}

type orderService struct {
	orderRepo     repository.OrderRepository
	equipmentRepo repository.EquipmentRepository
	reconciler    *availabilityReconciler
	deriver       *contractDeriver
	strict        bool
	quoteExpiry   int
	now           Clock
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	equipmentRepo repository.EquipmentRepository,
	contractRepo repository.ContractRepository,
	emailSvc EmailService,
	opts OrderOptions,
) OrderService {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	return &orderService{
		orderRepo:     orderRepo,
		equipmentRepo: equipmentRepo,
		reconciler:    &availabilityReconciler{orders: orderRepo, equipment: equipmentRepo},
		deriver:       &contractDeriver{contracts: contractRepo, emailSvc: emailSvc, now: now},
		strict:        opts.StrictTransitions,
		quoteExpiry:   opts.QuoteExpiryDays,
		now:           now,
	}
}

func (s *orderService) getOrder(ctx context.Context, id string) (*domain.RentalOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound, "failed to get order")
	}
	return order, nil
}

// buildItems resolves equipment names and prices items that carry no value.
func (s *orderService) buildItems(ctx context.Context, inputs []OrderItemInput, start, end time.Time) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in.EquipmentID) == "" {
			return nil, invalidOrder("item without equipment id")
		}
		eq, err := s.equipmentRepo.GetByID(ctx, in.EquipmentID)
		if err != nil {
			return nil, notFound(err, fmt.Errorf("%w: %s", ErrEquipmentNotFound, in.EquipmentID), "failed to load equipment")
		}
		item := domain.OrderItem{EquipmentID: eq.ID, EquipmentName: eq.Name}
		if in.Value != nil {
			item.Value = *in.Value
		} else {
			value, err := utils.QuoteItem(start, end, eq.Rates)
			if err != nil {
				return nil, invalidOrder("%v", err)
			}
			item.Value = value
		}
		if item.Value.IsNegative() {
			return nil, invalidOrder("negative value for %s", eq.ID)
		}
		items = append(items, item)
	}
	return items, nil
}

func validateMoney(fields map[string]decimal.Decimal) error {
	for name, v := range fields {
		if v.IsNegative() {
			return invalidOrder("%s must not be negative", name)
		}
	}
	return nil
}

func (s *orderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.TransitionResult, error) {
	logger.EnterMethod("orderService.CreateOrder", "client", input.Client, "items", len(input.Items))

	if strings.TrimSpace(input.Client) == "" {
		return nil, invalidOrder("client is required")
	}
	if len(input.Items) == 0 {
		return nil, invalidOrder("at least one equipment item is required")
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, invalidOrder("end date must be >= start date")
	}
	if err := validateMoney(map[string]decimal.Decimal{
		"freight_cost": input.FreightCost, "accessories_cost": input.AccessoriesCost, "discount": input.Discount,
	}); err != nil {
		return nil, err
	}

	initial := input.InitialStatus
	if initial == "" {
		initial = domain.OrderStatusProposal
	}
	if initial != domain.OrderStatusProposal && initial != domain.OrderStatusApproved {
		return nil, fmt.Errorf("%w: orders start as PROPOSAL or APPROVED, got %q", ErrInvalidStatus, initial)
	}
	payment := input.PaymentStatus
	if payment == "" {
		payment = domain.PaymentStatusPending
	}
	if _, err := domain.ParsePaymentStatus(string(payment)); err != nil {
		return nil, ErrInvalidPaymentStatus
	}

	items, err := s.buildItems(ctx, input.Items, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	now := s.now()
	id := input.ID
	if id == "" {
		id = "ORD-" + strings.ToUpper(uuid.NewString()[:8])
	}
	validUntil := now.AddDate(0, 0, s.quoteExpiry)
	if input.ValidUntil != nil {
		validUntil = *input.ValidUntil
	}

	order := &domain.RentalOrder{
		ID:              id,
		Client:          strings.TrimSpace(input.Client),
		EquipmentItems:  items,
		PaymentStatus:   payment,
		FreightCost:     input.FreightCost,
		AccessoriesCost: input.AccessoriesCost,
		Discount:        input.Discount,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		CreatedDate:     now,
		ValidUntil:      validUntil,
		DeliveryDate:    input.DeliveryDate,
		Notes:           input.Notes,
	}
	order.Value = order.ItemsValue()
	if payment == domain.PaymentStatusPaid {
		order.PaymentDate = &now
	}
	order.SetStatus(initial, now)

	if err := s.orderRepo.Create(ctx, order); err != nil {
		logger.ExitMethodWithError("orderService.CreateOrder", err, "orderID", order.ID)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrOrderExists, order.ID)
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	logger.InfoContext(ctx, "Order created", "orderID", order.ID, "status", order.Status, "total", order.Total().StringFixed(2))

	result := &domain.TransitionResult{Order: order}
	s.reconciler.reconcile(ctx, order, "", initial, result)

	contract, err := s.deriver.evaluate(ctx, order)
	result.Contract = contract
	if err != nil {
		return result, err
	}
	logger.ExitMethod("orderService.CreateOrder", "orderID", order.ID)
	return result, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*domain.RentalOrder, error) {
	return s.getOrder(ctx, id)
}

func (s *orderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.RentalOrder, int32, error) {
	orders, count, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, count, nil
}

// UpdateOrderDetails edits everything except status, history and payment. If
// the order currently claims its equipment, added items are claimed and
// dropped items are released.
func (s *orderService) UpdateOrderDetails(ctx context.Context, id string, input UpdateOrderInput) (*domain.TransitionResult, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := order.Clone()

	if input.Client != nil {
		if strings.TrimSpace(*input.Client) == "" {
			return nil, invalidOrder("client is required")
		}
		updated.Client = strings.TrimSpace(*input.Client)
	}
	if input.StartDate != nil {
		updated.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		updated.EndDate = *input.EndDate
	}
	if updated.EndDate.Before(updated.StartDate) {
		return nil, invalidOrder("end date must be >= start date")
	}
	if input.ValidUntil != nil {
		updated.ValidUntil = *input.ValidUntil
	}
	if input.Notes != nil {
		updated.Notes = *input.Notes
	}
	if input.FreightCost != nil {
		updated.FreightCost = *input.FreightCost
	}
	if input.AccessoriesCost != nil {
		updated.AccessoriesCost = *input.AccessoriesCost
	}
	if input.Discount != nil {
		updated.Discount = *input.Discount
	}
	if err := validateMoney(map[string]decimal.Decimal{
		"freight_cost": updated.FreightCost, "accessories_cost": updated.AccessoriesCost, "discount": updated.Discount,
	}); err != nil {
		return nil, err
	}
	if input.Items != nil {
		if len(input.Items) == 0 {
			return nil, invalidOrder("at least one equipment item is required")
		}
		items, err := s.buildItems(ctx, input.Items, updated.StartDate, updated.EndDate)
		if err != nil {
			return nil, err
		}
		updated.EquipmentItems = items
		updated.Value = updated.ItemsValue()
	}

	if err := s.orderRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	result := &domain.TransitionResult{Order: updated, PreviousStatus: order.Status}
	if input.Items != nil && updated.Status.InUse() {
		var added, dropped []string
		for _, eqID := range updated.EquipmentIDs() {
			if !order.References(eqID) {
				added = append(added, eqID)
			}
		}
		for _, eqID := range order.EquipmentIDs() {
			if !updated.References(eqID) {
				dropped = append(dropped, eqID)
			}
		}
		s.reconciler.apply(ctx, updated.ID, EquipmentDelta{Claim: added}, result)
		s.reconciler.release(ctx, updated.ID, dropped, result)
	}
	return result, nil
}

// DeleteOrder removes the order. Equipment it was claiming is released as if
// the order had left the in-use set; its contract, if any, is kept.
func (s *orderService) DeleteOrder(ctx context.Context, id string) error {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return err
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return notFound(err, ErrOrderNotFound, "failed to delete order")
	}
	logger.InfoContext(ctx, "Order deleted", "orderID", id, "status", order.Status)

	if order.Status.InUse() {
		result := &domain.TransitionResult{Order: order}
		s.reconciler.release(ctx, order.ID, order.EquipmentIDs(), result)
		if len(result.FailedEquipment) > 0 {
			logger.WarnContext(ctx, "Equipment not released after order deletion",
				"orderID", id, "equipment", result.FailedEquipment)
		}
	}
	return nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.TransitionResult, error) {
	logger.EnterMethod("orderService.UpdateOrderStatus", "orderID", id, "status", status)

	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == status {
		return nil, ErrStatusUnchanged
	}
	if err := s.checkTransition(order, status); err != nil {
		return nil, err
	}

	result, err := s.transition(ctx, order, status, nil)
	if err != nil {
		logger.ExitMethodWithError("orderService.UpdateOrderStatus", err, "orderID", id)
		return result, err
	}
	logger.ExitMethod("orderService.UpdateOrderStatus", "orderID", id, "from", result.PreviousStatus, "to", status)
	return result, nil
}

func (s *orderService) checkTransition(order *domain.RentalOrder, next domain.OrderStatus) error {
	if s.strict && !domain.CanTransition(order.Status, next) {
		return &domain.TransitionError{OrderID: order.ID, From: order.Status, To: next}
	}
	return nil
}

// transition persists order moved to next (after mutate), then reconciles
// equipment against the previous status and evaluates the contract
// predicates. A failed order write aborts before any other write.
func (s *orderService) transition(ctx context.Context, order *domain.RentalOrder, next domain.OrderStatus, mutate func(*domain.RentalOrder)) (*domain.TransitionResult, error) {
	previous := order.Status
	updated := order.Clone()
	if mutate != nil {
		mutate(updated)
	}
	if previous != next {
		updated.SetStatus(next, s.now())
	}

	if err := s.orderRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	logger.InfoContext(ctx, "Order status updated", "orderID", updated.ID, "from", previous, "to", next)

	result := &domain.TransitionResult{Order: updated, PreviousStatus: previous}
	if previous != next {
		s.reconciler.reconcile(ctx, updated, previous, next, result)
	}

	contract, err := s.deriver.evaluate(ctx, updated)
	result.Contract = contract
	if err != nil {
		return result, err
	}
	return result, nil
}

func (s *orderService) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.RentalOrder, *domain.Contract, error) {
	if _, err := domain.ParsePaymentStatus(string(status)); err != nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidPaymentStatus, status)
	}
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if order.PaymentStatus == status {
		return order, nil, nil
	}

	updated := order.Clone()
	updated.PaymentStatus = status
	if status == domain.PaymentStatusPaid {
		now := s.now()
		updated.PaymentDate = &now
	}
	if err := s.orderRepo.Update(ctx, updated); err != nil {
		return nil, nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	logger.InfoContext(ctx, "Payment status updated", "orderID", id, "from", order.PaymentStatus, "to", status)

	contract, err := s.deriver.evaluate(ctx, updated)
	if err != nil {
		return updated, contract, err
	}
	return updated, contract, nil
}

// ScheduleDelivery sets the delivery date and moves the order to SCHEDULED in
// one write.
func (s *orderService) ScheduleDelivery(ctx context.Context, id string, deliveryDate time.Time) (*domain.TransitionResult, error) {
	if deliveryDate.IsZero() {
		return nil, invalidOrder("delivery date is required")
	}
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusScheduled {
		if err := s.checkTransition(order, domain.OrderStatusScheduled); err != nil {
			return nil, err
		}
	}

	return s.transition(ctx, order, domain.OrderStatusScheduled, func(o *domain.RentalOrder) {
		o.DeliveryDate = &deliveryDate
	})
}

package service

import (
	"context"
	"errors"
	"fmt"

	"obrafacil-backend/internal/domain"
	"obrafacil-backend/internal/logger"
	"obrafacil-backend/internal/repository"
)

// contractDeriver creates and completes contracts from order state. Both
// predicates are guarded so evaluating them again is a no-op.
type contractDeriver struct {
	contracts repository.ContractRepository
	emailSvc  EmailService
	now       Clock
}

// evaluate runs the creation and completion predicates for order and returns
// the contract that was created or completed, if any.
func (d *contractDeriver) evaluate(ctx context.Context, order *domain.RentalOrder) (*domain.Contract, error) {
	created, err := d.createIfDue(ctx, order)
	if err != nil {
		return nil, err
	}
	completed, err := d.completeIfDue(ctx, order)
	if err != nil {
		return created, err
	}
	if completed != nil {
		return completed, nil
	}
	return created, nil
}

func (d *contractDeriver) lookup(ctx context.Context, orderID string) (*domain.Contract, error) {
	c, err := d.contracts.GetByID(ctx, domain.ContractIDFor(orderID))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return c, err
}

func (d *contractDeriver) createIfDue(ctx context.Context, order *domain.RentalOrder) (*domain.Contract, error) {
	if order.Status != domain.OrderStatusApproved || order.PaymentStatus != domain.PaymentStatusPaid {
		return nil, nil
	}
	existing, err := d.lookup(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contract: %w", err)
	}
	if existing != nil {
		return nil, nil
	}

	contract := domain.NewContractFromOrder(order, d.now())
	created, err := d.contracts.Create(ctx, contract)
	if err != nil {
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}
	if !created {
		// Lost a race with a concurrent writer.
		return nil, nil
	}
	logger.InfoContext(ctx, "Contract created", "contractID", contract.ID, "orderID", order.ID,
		"totalValue", contract.TotalValue.StringFixed(2))

	if err := d.emailSvc.SendContractCreated(ctx, contract); err != nil {
		logger.WarnContext(ctx, "Failed to send contract created email", "contractID", contract.ID, "error", err)
	}
	return contract, nil
}

func (d *contractDeriver) completeIfDue(ctx context.Context, order *domain.RentalOrder) (*domain.Contract, error) {
	if order.Status != domain.OrderStatusCompleted || order.PaymentStatus != domain.PaymentStatusPaid {
		return nil, nil
	}
	contract, err := d.lookup(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contract: %w", err)
	}
	if contract == nil || contract.Status == domain.ContractStatusCompleted {
		return nil, nil
	}

	now := d.now()
	contract.Status = domain.ContractStatusCompleted
	contract.CompletedAt = &now
	if err := d.contracts.Update(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to complete contract: %w", err)
	}
	logger.InfoContext(ctx, "Contract completed", "contractID", contract.ID, "orderID", order.ID)

	if err := d.emailSvc.SendContractCompleted(ctx, contract); err != nil {
		logger.WarnContext(ctx, "Failed to send contract completed email", "contractID", contract.ID, "error", err)
	}
	return contract, nil
}

type contractService struct {
	contractRepo repository.ContractRepository
}

func NewContractService(contractRepo repository.ContractRepository) ContractService {
	return &contractService{contractRepo: contractRepo}
}

func (s *contractService) GetContract(ctx context.Context, id string) (*domain.Contract, error) {
	c, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrContractNotFound, "failed to get contract")
	}
	return c, nil
}

func (s *contractService) GetContractForOrder(ctx context.Context, orderID string) (*domain.Contract, error) {
	return s.GetContract(ctx, domain.ContractIDFor(orderID))
}

func (s *contractService) ListContracts(ctx context.Context, filter domain.ContractFilter) ([]domain.Contract, int32, error) {
	contracts, count, err := s.contractRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, count, nil
}

func (s *contractService) DeleteContract(ctx context.Context, id string) error {
	if err := s.contractRepo.Delete(ctx, id); err != nil {
		return notFound(err, ErrContractNotFound, "failed to delete contract")
	}
	logger.InfoContext(ctx, "Contract deleted", "contractID", id)
	return nil
}

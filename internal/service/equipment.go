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

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
	orderRepo     repository.OrderRepository
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository, orderRepo repository.OrderRepository) EquipmentService {
	return &equipmentService{
		equipmentRepo: equipmentRepo,
		orderRepo:     orderRepo,
	}
}

func validateEquipment(eq *domain.Equipment) error {
	if strings.TrimSpace(eq.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidEquipment)
	}
	for name, rate := range map[string]decimal.Decimal{
		"daily_rate":    eq.Daily,
		"weekly_rate":   eq.Weekly,
		"biweekly_rate": eq.Biweekly,
		"monthly_rate":  eq.Monthly,
	} {
		if rate.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidEquipment, name)
		}
	}
	return nil
}

func (s *equipmentService) CreateEquipment(ctx context.Context, eq *domain.Equipment) error {
	if err := validateEquipment(eq); err != nil {
		return err
	}
	if eq.ID == "" {
		eq.ID = "EQ-" + strings.ToUpper(uuid.NewString()[:8])
	}
	if eq.Status == "" {
		eq.Status = domain.EquipmentStatusAvailable
	}
	if err := s.equipmentRepo.Create(ctx, eq); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("%w: %s", ErrEquipmentExists, eq.ID)
		}
		return fmt.Errorf("failed to create equipment: %w", err)
	}
	logger.InfoContext(ctx, "Equipment created", "equipmentID", eq.ID, "name", eq.Name)
	return nil
}

func (s *equipmentService) GetEquipment(ctx context.Context, id string) (*domain.Equipment, error) {
	eq, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrEquipmentNotFound, "failed to get equipment")
	}
	return eq, nil
}

func (s *equipmentService) ListEquipment(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, int32, error) {
	items, count, err := s.equipmentRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list equipment: %w", err)
	}
	return items, count, nil
}

// UpdateEquipment edits name, category, serial number and rates. Status is
// kept; it only changes through SetEquipmentStatus or the order lifecycle.
func (s *equipmentService) UpdateEquipment(ctx context.Context, eq *domain.Equipment) error {
	if err := validateEquipment(eq); err != nil {
		return err
	}
	current, err := s.GetEquipment(ctx, eq.ID)
	if err != nil {
		return err
	}
	eq.Status = current.Status
	if err := s.equipmentRepo.Update(ctx, eq); err != nil {
		return notFound(err, ErrEquipmentNotFound, "failed to update equipment")
	}
	return nil
}

// SetEquipmentStatus is a manual override, e.g. sending a unit to
// maintenance.
func (s *equipmentService) SetEquipmentStatus(ctx context.Context, id string, status domain.EquipmentStatus) (*domain.Equipment, error) {
	if _, err := domain.ParseEquipmentStatus(string(status)); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := s.equipmentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, notFound(err, ErrEquipmentNotFound, "failed to update equipment status")
	}
	logger.InfoContext(ctx, "Equipment status set manually", "equipmentID", id, "status", status)
	return s.GetEquipment(ctx, id)
}

// DeleteEquipment refuses to remove equipment an in-use order still claims.
func (s *equipmentService) DeleteEquipment(ctx context.Context, id string) error {
	claiming, _, err := s.orderRepo.List(ctx, domain.OrderFilter{
		Statuses:    domain.InUseStatuses(),
		EquipmentID: id,
		PageSize:    1,
	})
	if err != nil {
		return fmt.Errorf("failed to check equipment claims: %w", err)
	}
	if len(claiming) > 0 {
		return fmt.Errorf("%w: %s is claimed by %s", ErrEquipmentInUse, id, claiming[0].ID)
	}
	if err := s.equipmentRepo.Delete(ctx, id); err != nil {
		return notFound(err, ErrEquipmentNotFound, "failed to delete equipment")
	}
	return nil
}

func (s *equipmentService) QuoteItem(ctx context.Context, id string, start, end time.Time) (*utils.Breakdown, error) {
	eq, err := s.GetEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := utils.QuoteBreakdown(start, end, eq.Rates)
	if err != nil {
		return nil, invalidOrder("%v", err)
	}
	return &b, nil
}

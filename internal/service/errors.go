package service

import (
	"errors"
	"fmt"

	"obrafacil-backend/internal/repository"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrEquipmentNotFound    = errors.New("equipment not found")
	ErrContractNotFound     = errors.New("contract not found")
	ErrStatusUnchanged      = errors.New("status unchanged")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInvalidOrder         = errors.New("invalid order")
	ErrInvalidEquipment     = errors.New("invalid equipment")
	ErrEquipmentInUse       = errors.New("equipment is claimed by an active order")
	ErrOrderExists          = errors.New("order already exists")
	ErrEquipmentExists      = errors.New("equipment already exists")
)

// notFound swaps repository.ErrNotFound for the service sentinel and wraps
// anything else with the failed action.
func notFound(err error, sentinel error, action string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return sentinel
	}
	return fmt.Errorf("%s: %w", action, err)
}

func invalidOrder(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOrder, fmt.Sprintf(format, args...))
}

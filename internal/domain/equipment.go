package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type EquipmentStatus string

const (
	EquipmentStatusAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentStatusInUse       EquipmentStatus = "IN_USE"
	EquipmentStatusMaintenance EquipmentStatus = "MAINTENANCE"
)

func ParseEquipmentStatus(s string) (EquipmentStatus, error) {
	switch st := EquipmentStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case EquipmentStatusAvailable, EquipmentStatusInUse, EquipmentStatusMaintenance:
		return st, nil
	}
	return "", fmt.Errorf("unknown equipment status: %q", s)
}

// Rates is the pricing table of a piece of equipment. A zero rate means the
// tier is not offered.
type Rates struct {
	Daily    decimal.Decimal `json:"daily_rate"`
	Weekly   decimal.Decimal `json:"weekly_rate"`
	Biweekly decimal.Decimal `json:"biweekly_rate"`
	Monthly  decimal.Decimal `json:"monthly_rate"`
}

type Equipment struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	SerialNumber string          `json:"serial_number"`
	Status       EquipmentStatus `json:"status"`
	Rates
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EquipmentFilter struct {
	Status   EquipmentStatus
	Category string
	Page     int32
	PageSize int32
}

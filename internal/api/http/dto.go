package http

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"obrafacil-backend/internal/domain"
	"obrafacil-backend/internal/service"
)

const dateLayout = "2006-01-02"

type orderItemRequest struct {
	EquipmentID string           `json:"equipment_id" validate:"required"`
	Value       *decimal.Decimal `json:"value,omitempty"`
}

type createOrderRequest struct {
	ID              string             `json:"id" validate:"omitempty,max=64"`
	Client          string             `json:"client" validate:"required"`
	Items           []orderItemRequest `json:"equipment_items" validate:"required,min=1,dive"`
	Status          string             `json:"status"`
	PaymentStatus   string             `json:"payment_status"`
	FreightCost     decimal.Decimal    `json:"freight_cost"`
	AccessoriesCost decimal.Decimal    `json:"accessories_cost"`
	Discount        decimal.Decimal    `json:"discount"`
	StartDate       string             `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         string             `json:"end_date" validate:"required,datetime=2006-01-02"`
	ValidUntil      string             `json:"valid_until" validate:"omitempty,datetime=2006-01-02"`
	DeliveryDate    string             `json:"delivery_date" validate:"omitempty,datetime=2006-01-02"`
	Notes           string             `json:"notes" validate:"max=2000"`
}

type updateOrderRequest struct {
	Client          *string            `json:"client" validate:"omitempty,min=1"`
	Items           []orderItemRequest `json:"equipment_items" validate:"omitempty,dive"`
	FreightCost     *decimal.Decimal   `json:"freight_cost"`
	AccessoriesCost *decimal.Decimal   `json:"accessories_cost"`
	Discount        *decimal.Decimal   `json:"discount"`
	StartDate       *string            `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate         *string            `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	ValidUntil      *string            `json:"valid_until" validate:"omitempty,datetime=2006-01-02"`
	Notes           *string            `json:"notes" validate:"omitempty,max=2000"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type deliveryRequest struct {
	DeliveryDate string `json:"delivery_date" validate:"required,datetime=2006-01-02"`
}

type equipmentRequest struct {
	Name         string          `json:"name" validate:"required,max=200"`
	Category     string          `json:"category" validate:"max=100"`
	SerialNumber string          `json:"serial_number" validate:"max=100"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
	WeeklyRate   decimal.Decimal `json:"weekly_rate"`
	BiweeklyRate decimal.Decimal `json:"biweekly_rate"`
	MonthlyRate  decimal.Decimal `json:"monthly_rate"`
}

func (req equipmentRequest) toDomain(id string) *domain.Equipment {
	return &domain.Equipment{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Category:     req.Category,
		SerialNumber: req.SerialNumber,
		Rates: domain.Rates{
			Daily:    req.DailyRate,
			Weekly:   req.WeeklyRate,
			Biweekly: req.BiweeklyRate,
			Monthly:  req.MonthlyRate,
		},
	}
}

// parseDate reads a yyyy-mm-dd value as midnight UTC. Validation tags have
// already checked the layout, so errors only come from direct query params.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, badRequest("%s must be yyyy-mm-dd", field)
	}
	return t, nil
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toItemInputs(items []orderItemRequest) []service.OrderItemInput {
	if items == nil {
		return nil
	}
	out := make([]service.OrderItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, service.OrderItemInput{EquipmentID: item.EquipmentID, Value: item.Value})
	}
	return out
}

func (req createOrderRequest) toInput() (service.CreateOrderInput, error) {
	in := service.CreateOrderInput{
		ID:              req.ID,
		Client:          req.Client,
		Items:           toItemInputs(req.Items),
		FreightCost:     req.FreightCost,
		AccessoriesCost: req.AccessoriesCost,
		Discount:        req.Discount,
		Notes:           req.Notes,
	}
	if req.Status != "" {
		st, err := domain.ParseOrderStatus(req.Status)
		if err != nil {
			return in, badRequest("%v", err)
		}
		in.InitialStatus = st
	}
	if req.PaymentStatus != "" {
		ps, err := domain.ParsePaymentStatus(req.PaymentStatus)
		if err != nil {
			return in, badRequest("%v", err)
		}
		in.PaymentStatus = ps
	}

	var err error
	if in.StartDate, err = parseDate("start_date", req.StartDate); err != nil {
		return in, err
	}
	if in.EndDate, err = parseDate("end_date", req.EndDate); err != nil {
		return in, err
	}
	if in.ValidUntil, err = parseOptionalDate("valid_until", req.ValidUntil); err != nil {
		return in, err
	}
	if in.DeliveryDate, err = parseOptionalDate("delivery_date", req.DeliveryDate); err != nil {
		return in, err
	}
	return in, nil
}

func (req updateOrderRequest) toInput() (service.UpdateOrderInput, error) {
	in := service.UpdateOrderInput{
		Client:          req.Client,
		Items:           toItemInputs(req.Items),
		FreightCost:     req.FreightCost,
		AccessoriesCost: req.AccessoriesCost,
		Discount:        req.Discount,
		Notes:           req.Notes,
	}
	dates := []struct {
		field string
		value *string
		dst   **time.Time
	}{
		{"start_date", req.StartDate, &in.StartDate},
		{"end_date", req.EndDate, &in.EndDate},
		{"valid_until", req.ValidUntil, &in.ValidUntil},
	}
	for _, d := range dates {
		if d.value == nil {
			continue
		}
		t, err := parseDate(d.field, *d.value)
		if err != nil {
			return in, err
		}
		*d.dst = &t
	}
	return in, nil
}

func queryInt32(q url.Values, key string) (int32, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n < 0 {
		return 0, badRequest("%s must be a non-negative integer", key)
	}
	return int32(n), nil
}

func pageParams(q url.Values) (int32, int32, error) {
	page, err := queryInt32(q, "page")
	if err != nil {
		return 0, 0, err
	}
	size, err := queryInt32(q, "page_size")
	if err != nil {
		return 0, 0, err
	}
	return page, size, nil
}

func orderFilterFromQuery(q url.Values) (domain.OrderFilter, error) {
	var f domain.OrderFilter
	if raw := q.Get("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			st, err := domain.ParseOrderStatus(part)
			if err != nil {
				return f, badRequest("%v", err)
			}
			f.Statuses = append(f.Statuses, st)
		}
	}
	if raw := q.Get("payment_status"); raw != "" {
		ps, err := domain.ParsePaymentStatus(raw)
		if err != nil {
			return f, badRequest("%v", err)
		}
		f.PaymentStatus = ps
	}
	f.Client = q.Get("client")
	f.EquipmentID = q.Get("equipment_id")

	var err error
	f.Page, f.PageSize, err = pageParams(q)
	return f, err
}

func equipmentFilterFromQuery(q url.Values) (domain.EquipmentFilter, error) {
	var f domain.EquipmentFilter
	if raw := q.Get("status"); raw != "" {
		st, err := domain.ParseEquipmentStatus(raw)
		if err != nil {
			return f, badRequest("%v", err)
		}
		f.Status = st
	}
	f.Category = q.Get("category")

	var err error
	f.Page, f.PageSize, err = pageParams(q)
	return f, err
}

func contractFilterFromQuery(q url.Values) (domain.ContractFilter, error) {
	f := domain.ContractFilter{
		Status: domain.ContractStatus(strings.ToUpper(q.Get("status"))),
		Client: q.Get("client"),
	}
	var err error
	f.Page, f.PageSize, err = pageParams(q)
	return f, err
}

// Package memory keeps orders, equipment and contracts in process memory. It
// backs the "memory" database driver and the service tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"obrafacil-backend/internal/domain"
	"obrafacil-backend/internal/repository"
)

type Store struct {
	*OrderRepository
	*EquipmentRepository
	*ContractRepository
}

func NewStore() *Store {
	return &Store{
		OrderRepository:     NewOrderRepository(),
		EquipmentRepository: NewEquipmentRepository(),
		ContractRepository:  NewContractRepository(),
	}
}

// page slices items the same way the postgres LIMIT/OFFSET does.
func page[T any](items []T, page, pageSize int32) []T {
	if pageSize <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := int((page - 1) * pageSize)
	if start >= len(items) {
		return nil
	}
	end := start + int(pageSize)
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.RentalOrder
	// FailUpdate, when set, is returned by Update. Tests use it to simulate
	// a failing primary write.
	FailUpdate error
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]*domain.RentalOrder)}
}

var _ repository.OrderRepository = (*OrderRepository)(nil)

func (r *OrderRepository) Create(_ context.Context, o *domain.RentalOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; ok {
		return &duplicateError{table: "orders", id: o.ID}
	}
	o.UpdatedAt = time.Now()
	r.orders[o.ID] = o.Clone()
	return nil
}

func (r *OrderRepository) GetByID(_ context.Context, id string) (*domain.RentalOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return o.Clone(), nil
}

func (r *OrderRepository) Update(_ context.Context, o *domain.RentalOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailUpdate != nil {
		return r.FailUpdate
	}
	if _, ok := r.orders[o.ID]; !ok {
		return repository.ErrNotFound
	}
	o.UpdatedAt = time.Now()
	r.orders[o.ID] = o.Clone()
	return nil
}

func (r *OrderRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func matchesOrder(o *domain.RentalOrder, f domain.OrderFilter) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if o.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.PaymentStatus != "" && o.PaymentStatus != f.PaymentStatus {
		return false
	}
	if f.Client != "" && !strings.Contains(strings.ToLower(o.Client), strings.ToLower(f.Client)) {
		return false
	}
	if f.EquipmentID != "" && !o.References(f.EquipmentID) {
		return false
	}
	return true
}

func (r *OrderRepository) List(_ context.Context, f domain.OrderFilter) ([]domain.RentalOrder, int32, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.RentalOrder
	for _, o := range r.orders {
		if matchesOrder(o, f) {
			out = append(out, *o.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedDate.Equal(out[j].CreatedDate) {
			return out[i].CreatedDate.After(out[j].CreatedDate)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, f.Page, f.PageSize), int32(len(out)), nil
}

func (r *OrderRepository) ListByStatuses(ctx context.Context, statuses []domain.OrderStatus) ([]domain.RentalOrder, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	orders, _, err := r.List(ctx, domain.OrderFilter{Statuses: statuses})
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

type EquipmentRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Equipment
	// FailStatusFor makes UpdateStatus fail for the listed equipment ids.
	FailStatusFor map[string]error
	statusWrites  int
}

func NewEquipmentRepository() *EquipmentRepository {
	return &EquipmentRepository{
		items:         make(map[string]*domain.Equipment),
		FailStatusFor: make(map[string]error),
	}
}

var _ repository.EquipmentRepository = (*EquipmentRepository)(nil)

func (r *EquipmentRepository) Create(_ context.Context, e *domain.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[e.ID]; ok {
		return &duplicateError{table: "equipment", id: e.ID}
	}
	now := time.Now()
	e.CreatedAt, e.UpdatedAt = now, now
	cp := *e
	r.items[e.ID] = &cp
	return nil
}

func (r *EquipmentRepository) GetByID(_ context.Context, id string) (*domain.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *EquipmentRepository) Update(_ context.Context, e *domain.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[e.ID]
	if !ok {
		return repository.ErrNotFound
	}
	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = time.Now()
	cp := *e
	r.items[e.ID] = &cp
	return nil
}

func (r *EquipmentRepository) UpdateStatus(_ context.Context, id string, status domain.EquipmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.FailStatusFor[id]; err != nil {
		return err
	}
	e, ok := r.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	e.Status = status
	e.UpdatedAt = time.Now()
	r.statusWrites++
	return nil
}

// StatusWrites counts successful UpdateStatus calls.
func (r *EquipmentRepository) StatusWrites() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.statusWrites
}

func (r *EquipmentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *EquipmentRepository) List(_ context.Context, f domain.EquipmentFilter) ([]domain.Equipment, int32, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Equipment
	for _, e := range r.items {
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return page(out, f.Page, f.PageSize), int32(len(out)), nil
}

type ContractRepository struct {
	mu        sync.RWMutex
	contracts map[string]*domain.Contract
	// FailCreate, when set, is returned by Create.
	FailCreate error
}

func NewContractRepository() *ContractRepository {
	return &ContractRepository{contracts: make(map[string]*domain.Contract)}
}

var _ repository.ContractRepository = (*ContractRepository)(nil)

func (r *ContractRepository) Create(_ context.Context, c *domain.Contract) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCreate != nil {
		return false, r.FailCreate
	}
	if _, ok := r.contracts[c.ID]; ok {
		return false, nil
	}
	cp := *c
	r.contracts[c.ID] = &cp
	return true, nil
}

func (r *ContractRepository) GetByID(_ context.Context, id string) (*domain.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contracts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *ContractRepository) Update(_ context.Context, c *domain.Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contracts[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	r.contracts[c.ID] = &cp
	return nil
}

func (r *ContractRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contracts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.contracts, id)
	return nil
}

func (r *ContractRepository) List(_ context.Context, f domain.ContractFilter) ([]domain.Contract, int32, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Contract
	for _, c := range r.contracts {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.Client != "" && !strings.Contains(strings.ToLower(c.Client), strings.ToLower(f.Client)) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, f.Page, f.PageSize), int32(len(out)), nil
}

// Count returns the number of stored contracts.
func (r *ContractRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contracts)
}

type duplicateError struct {
	table string
	id    string
}

func (e *duplicateError) Error() string {
	return e.table + ": duplicate id " + e.id
}

func (e *duplicateError) Is(target error) bool {
	return target == repository.ErrDuplicate
}

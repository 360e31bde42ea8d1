package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"obrafacil-backend/internal/domain"
	"obrafacil-backend/internal/logger"
	"obrafacil-backend/internal/repository"
)

const orderColumns = `id, client, equipment_items, status, status_history, payment_status, payment_date,
	value, freight_cost, accessories_cost, discount, start_date, end_date, created_date, valid_until,
	delivery_date, notes, updated_at`

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.RentalOrder, error) {
	o := &domain.RentalOrder{}
	var items, history []byte
	err := row.Scan(&o.ID, &o.Client, &items, &o.Status, &history, &o.PaymentStatus, &o.PaymentDate,
		&o.Value, &o.FreightCost, &o.AccessoriesCost, &o.Discount, &o.StartDate, &o.EndDate,
		&o.CreatedDate, &o.ValidUntil, &o.DeliveryDate, &o.Notes, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.EquipmentItems); err != nil {
		return nil, fmt.Errorf("decode equipment_items of %s: %w", o.ID, err)
	}
	if err := json.Unmarshal(history, &o.StatusHistory); err != nil {
		return nil, fmt.Errorf("decode status_history of %s: %w", o.ID, err)
	}
	return o, nil
}

func encodeOrderJSON(o *domain.RentalOrder) (items, history []byte, err error) {
	itemsSrc := o.EquipmentItems
	if itemsSrc == nil {
		itemsSrc = []domain.OrderItem{}
	}
	if items, err = json.Marshal(itemsSrc); err != nil {
		return nil, nil, fmt.Errorf("encode equipment_items: %w", err)
	}
	historySrc := o.StatusHistory
	if historySrc == nil {
		historySrc = []domain.StatusChange{}
	}
	if history, err = json.Marshal(historySrc); err != nil {
		return nil, nil, fmt.Errorf("encode status_history: %w", err)
	}
	return items, history, nil
}

func (r *orderRepository) Create(ctx context.Context, o *domain.RentalOrder) error {
	logger.EnterMethod("orderRepository.Create", "orderID", o.ID)

	items, history, err := encodeOrderJSON(o)
	if err != nil {
		logger.ExitMethodWithError("orderRepository.Create", err)
		return err
	}

	now := time.Now()
	query := `INSERT INTO orders (id, client, equipment_items, equipment_ids, status, status_history, payment_status,
	          payment_date, value, freight_cost, accessories_cost, discount, start_date, end_date, created_date,
	          valid_until, delivery_date, notes, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	logger.DatabaseCall("INSERT", "orders", "orderID", o.ID)
	_, err = r.db.ExecContext(ctx, query, o.ID, o.Client, items, pq.Array(o.EquipmentIDs()), o.Status, history,
		o.PaymentStatus, o.PaymentDate, o.Value, o.FreightCost, o.AccessoriesCost, o.Discount, o.StartDate,
		o.EndDate, o.CreatedDate, o.ValidUntil, o.DeliveryDate, o.Notes, now)
	logger.DatabaseResult("INSERT", 1, err, "orderID", o.ID)
	if err != nil {
		logger.ExitMethodWithError("orderRepository.Create", err, "class", ClassifyError(err).String())
		return wrapInsert("create order", err)
	}
	o.UpdatedAt = now
	logger.ExitMethod("orderRepository.Create", "orderID", o.ID)
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.RentalOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrap("get order", err)
	}
	return o, nil
}

// Update overwrites every mutable column. Concurrent writers are not
// coordinated: the last write wins.
func (r *orderRepository) Update(ctx context.Context, o *domain.RentalOrder) error {
	items, history, err := encodeOrderJSON(o)
	if err != nil {
		return err
	}

	now := time.Now()
	query := `UPDATE orders SET client=$1, equipment_items=$2, equipment_ids=$3, status=$4, status_history=$5,
	          payment_status=$6, payment_date=$7, value=$8, freight_cost=$9, accessories_cost=$10, discount=$11,
	          start_date=$12, end_date=$13, valid_until=$14, delivery_date=$15, notes=$16, updated_at=$17
	          WHERE id=$18`
	logger.DatabaseCall("UPDATE", "orders", "orderID", o.ID, "status", o.Status)
	res, err := r.db.ExecContext(ctx, query, o.Client, items, pq.Array(o.EquipmentIDs()), o.Status, history,
		o.PaymentStatus, o.PaymentDate, o.Value, o.FreightCost, o.AccessoriesCost, o.Discount, o.StartDate,
		o.EndDate, o.ValidUntil, o.DeliveryDate, o.Notes, now, o.ID)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "orderID", o.ID)
		return fmt.Errorf("update order: %w", err)
	}
	if err := expectOneRow("update order", res); err != nil {
		return err
	}
	logger.DatabaseResult("UPDATE", 1, nil, "orderID", o.ID)
	o.UpdatedAt = now
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return expectOneRow("delete order", res)
}

func orderConditions(f domain.OrderFilter) sq.And {
	cond := sq.And{}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		cond = append(cond, sq.Eq{"status": statuses})
	}
	if f.PaymentStatus != "" {
		cond = append(cond, sq.Eq{"payment_status": string(f.PaymentStatus)})
	}
	if f.Client != "" {
		cond = append(cond, sq.ILike{"client": "%" + f.Client + "%"})
	}
	if f.EquipmentID != "" {
		cond = append(cond, sq.Expr("? = ANY(equipment_ids)", f.EquipmentID))
	}
	return cond
}

func (r *orderRepository) List(ctx context.Context, f domain.OrderFilter) ([]domain.RentalOrder, int32, error) {
	cond := orderConditions(f)

	countSQL, countArgs, err := psql.Select("count(*)").From("orders").Where(cond).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build order count: %w", err)
	}
	var count int32
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	b := psql.Select(orderColumns).From("orders").Where(cond).OrderBy("created_date DESC", "id")
	orders, err := r.query(ctx, paginate(b, f.Page, f.PageSize))
	if err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

func (r *orderRepository) ListByStatuses(ctx context.Context, statuses []domain.OrderStatus) ([]domain.RentalOrder, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	b := psql.Select(orderColumns).From("orders").Where(orderConditions(domain.OrderFilter{Statuses: statuses})).OrderBy("id")
	return r.query(ctx, b)
}

func (r *orderRepository) query(ctx context.Context, b sq.SelectBuilder) ([]domain.RentalOrder, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.RentalOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return orders, nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"obrafacil-backend/internal/domain"
	"obrafacil-backend/internal/logger"
	"obrafacil-backend/internal/repository"
)

const equipmentColumns = `id, name, category, serial_number, status, daily_rate, weekly_rate, biweekly_rate,
	monthly_rate, created_at, updated_at`

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

func scanEquipment(row rowScanner) (*domain.Equipment, error) {
	e := &domain.Equipment{}
	err := row.Scan(&e.ID, &e.Name, &e.Category, &e.SerialNumber, &e.Status, &e.Daily, &e.Weekly,
		&e.Biweekly, &e.Monthly, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *equipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	now := time.Now()
	query := `INSERT INTO equipment (id, name, category, serial_number, status, daily_rate, weekly_rate,
	          biweekly_rate, monthly_rate, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	logger.DatabaseCall("INSERT", "equipment", "equipmentID", e.ID)
	_, err := r.db.ExecContext(ctx, query, e.ID, e.Name, e.Category, e.SerialNumber, e.Status, e.Daily,
		e.Weekly, e.Biweekly, e.Monthly, now, now)
	if err != nil {
		return wrapInsert("create equipment", err)
	}
	e.CreatedAt, e.UpdatedAt = now, now
	return nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	e, err := scanEquipment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrap("get equipment", err)
	}
	return e, nil
}

func (r *equipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	now := time.Now()
	query := `UPDATE equipment SET name=$1, category=$2, serial_number=$3, status=$4, daily_rate=$5,
	          weekly_rate=$6, biweekly_rate=$7, monthly_rate=$8, updated_at=$9 WHERE id=$10`
	res, err := r.db.ExecContext(ctx, query, e.Name, e.Category, e.SerialNumber, e.Status, e.Daily,
		e.Weekly, e.Biweekly, e.Monthly, now, e.ID)
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	if err := expectOneRow("update equipment", res); err != nil {
		return err
	}
	e.UpdatedAt = now
	return nil
}

// UpdateStatus touches only the status column so the reconciler never
// overwrites concurrent edits to name or rates.
func (r *equipmentRepository) UpdateStatus(ctx context.Context, id string, status domain.EquipmentStatus) error {
	logger.DatabaseCall("UPDATE", "equipment.status", "equipmentID", id, "status", status)
	res, err := r.db.ExecContext(ctx, `UPDATE equipment SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "equipmentID", id)
		return fmt.Errorf("update equipment status: %w", err)
	}
	return expectOneRow("update equipment status", res)
}

func (r *equipmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	return expectOneRow("delete equipment", res)
}

func (r *equipmentRepository) List(ctx context.Context, f domain.EquipmentFilter) ([]domain.Equipment, int32, error) {
	cond := sq.And{}
	if f.Status != "" {
		cond = append(cond, sq.Eq{"status": string(f.Status)})
	}
	if f.Category != "" {
		cond = append(cond, sq.Eq{"category": f.Category})
	}

	countSQL, countArgs, err := psql.Select("count(*)").From("equipment").Where(cond).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build equipment count: %w", err)
	}
	var count int32
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count equipment: %w", err)
	}

	query, args, err := paginate(psql.Select(equipmentColumns).From("equipment").Where(cond).OrderBy("name", "id"),
		f.Page, f.PageSize).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build equipment query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan equipment: %w", err)
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}
	return items, count, nil
}

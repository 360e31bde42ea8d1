package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"obrafacil-backend/internal/domain"
	"obrafacil-backend/internal/logger"
	"obrafacil-backend/internal/repository"
)

const contractColumns = `id, order_id, client, start_date, end_date, total_value, status, created_at, completed_at`

type contractRepository struct {
	db *sql.DB
}

func NewContractRepository(db *sql.DB) repository.ContractRepository {
	return &contractRepository{db: db}
}

func scanContract(row rowScanner) (*domain.Contract, error) {
	c := &domain.Contract{}
	err := row.Scan(&c.ID, &c.OrderID, &c.Client, &c.StartDate, &c.EndDate, &c.TotalValue, &c.Status,
		&c.CreatedAt, &c.CompletedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *contractRepository) Create(ctx context.Context, c *domain.Contract) (bool, error) {
	query := `INSERT INTO contracts (id, order_id, client, start_date, end_date, total_value, status, created_at,
	          completed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          ON CONFLICT (id) DO NOTHING`
	logger.DatabaseCall("INSERT", "contracts", "contractID", c.ID)
	res, err := r.db.ExecContext(ctx, query, c.ID, c.OrderID, c.Client, c.StartDate, c.EndDate, c.TotalValue,
		c.Status, c.CreatedAt, c.CompletedAt)
	if err != nil {
		logger.DatabaseResult("INSERT", 0, err, "contractID", c.ID)
		return false, fmt.Errorf("create contract: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create contract: rows affected: %w", err)
	}
	logger.DatabaseResult("INSERT", n, nil, "contractID", c.ID)
	return n == 1, nil
}

func (r *contractRepository) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	c, err := scanContract(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrap("get contract", err)
	}
	return c, nil
}

func (r *contractRepository) Update(ctx context.Context, c *domain.Contract) error {
	query := `UPDATE contracts SET client=$1, start_date=$2, end_date=$3, total_value=$4, status=$5,
	          completed_at=$6 WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query, c.Client, c.StartDate, c.EndDate, c.TotalValue, c.Status,
		c.CompletedAt, c.ID)
	if err != nil {
		return fmt.Errorf("update contract: %w", err)
	}
	return expectOneRow("update contract", res)
}

func (r *contractRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contract: %w", err)
	}
	return expectOneRow("delete contract", res)
}

func (r *contractRepository) List(ctx context.Context, f domain.ContractFilter) ([]domain.Contract, int32, error) {
	cond := sq.And{}
	if f.Status != "" {
		cond = append(cond, sq.Eq{"status": string(f.Status)})
	}
	if f.Client != "" {
		cond = append(cond, sq.ILike{"client": "%" + f.Client + "%"})
	}

	countSQL, countArgs, err := psql.Select("count(*)").From("contracts").Where(cond).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build contract count: %w", err)
	}
	var count int32
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count contracts: %w", err)
	}

	query, args, err := paginate(psql.Select(contractColumns).From("contracts").Where(cond).OrderBy("created_at DESC", "id"),
		f.Page, f.PageSize).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build contract query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []domain.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan contract: %w", err)
		}
		contracts = append(contracts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}
	return contracts, count, nil
}

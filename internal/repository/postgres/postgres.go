package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"obrafacil-backend/internal/config"
	"obrafacil-backend/internal/repository"
)

// psql builds every dynamic query with postgres placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Store struct {
	db *sql.DB
	repository.OrderRepository
	repository.EquipmentRepository
	repository.ContractRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		OrderRepository:     NewOrderRepository(db),
		EquipmentRepository: NewEquipmentRepository(db),
		ContractRepository:  NewContractRepository(db),
	}
}

func (s *Store) DB() *sql.DB { return s.db }

// Open connects to PostgreSQL, applies the pool settings and pings the server.
func Open(cfg config.DatabaseConfig, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// paginate applies LIMIT/OFFSET when a page size is requested.
func paginate(b sq.SelectBuilder, page, pageSize int32) sq.SelectBuilder {
	if pageSize <= 0 {
		return b
	}
	if page < 1 {
		page = 1
	}
	return b.Limit(uint64(pageSize)).Offset(uint64((page - 1) * pageSize))
}

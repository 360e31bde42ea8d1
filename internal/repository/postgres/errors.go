package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"obrafacil-backend/internal/repository"
)

type ErrorClass int

const (
	ErrorClassPermanent ErrorClass = iota
	ErrorClassTransient
	ErrorClassDeadlock
	ErrorClassSerialization
	ErrorClassConflict
)

func (c ErrorClass) String() string {
	switch c {
	case ErrorClassTransient:
		return "transient"
	case ErrorClassDeadlock:
		return "deadlock"
	case ErrorClassSerialization:
		return "serialization"
	case ErrorClassConflict:
		return "conflict"
	}
	return "permanent"
}

// ClassifyError maps PostgreSQL error codes onto a coarse class for logging
// and retry decisions.
func ClassifyError(err error) ErrorClass {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001":
			return ErrorClassSerialization
		case "40P01":
			return ErrorClassDeadlock
		case "55P03", "57014":
			return ErrorClassTransient
		case "23505":
			return ErrorClassConflict
		}
	}
	return ErrorClassPermanent
}

func IsRetryable(err error) bool {
	switch ClassifyError(err) {
	case ErrorClassTransient, ErrorClassDeadlock, ErrorClassSerialization:
		return true
	}
	return false
}

// wrap converts sql.ErrNoRows into repository.ErrNotFound and annotates the rest.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// wrapInsert marks unique violations with repository.ErrDuplicate.
func wrapInsert(op string, err error) error {
	if ClassifyError(err) == ErrorClassConflict {
		return fmt.Errorf("%s: %w: %v", op, repository.ErrDuplicate, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// expectOneRow turns a zero-row UPDATE/DELETE into repository.ErrNotFound.
func expectOneRow(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obrafacil-backend/internal/domain"
	"obrafacil-backend/internal/repository"
	"obrafacil-backend/internal/repository/postgres"
)

var equipmentRowColumns = []string{"id", "name", "category", "serial_number", "status", "daily_rate", "weekly_rate",
	"biweekly_rate", "monthly_rate", "created_at", "updated_at"}

func TestEquipmentRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewEquipmentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE equipment SET status=\\$1, updated_at=\\$2 WHERE id=\\$3").
			WithArgs(domain.EquipmentStatusInUse, sqlmock.AnyArg(), "EQ-9").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(ctx, "EQ-9", domain.EquipmentStatusInUse))
	})

	t.Run("Unknown equipment", func(t *testing.T) {
		mock.ExpectExec("UPDATE equipment SET status").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateStatus(ctx, "EQ-0", domain.EquipmentStatusAvailable), repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_GetAndList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewEquipmentRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM equipment WHERE id = \\$1").
		WithArgs("EQ-9").
		WillReturnRows(sqlmock.NewRows(equipmentRowColumns).
			AddRow("EQ-9", "Betoneira 400L", "concreto", "SN-1", "AVAILABLE", "50", "300", "550", "1000", now, now))

	e, err := repo.GetByID(ctx, "EQ-9")
	require.NoError(t, err)
	assert.Equal(t, "Betoneira 400L", e.Name)
	assert.Equal(t, "1000", e.Monthly.String())

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM equipment WHERE \\(status = \\$1\\)").
		WithArgs("IN_USE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM equipment WHERE \\(status = \\$1\\) ORDER BY name, id").
		WithArgs("IN_USE").
		WillReturnRows(sqlmock.NewRows(equipmentRowColumns).
			AddRow("EQ-9", "Betoneira 400L", "concreto", "SN-1", "IN_USE", "50", "300", "550", "1000", now, now))

	items, count, err := repo.List(ctx, domain.EquipmentFilter{Status: domain.EquipmentStatusInUse})
	require.NoError(t, err)
	assert.Equal(t, int32(1), count)
	require.Len(t, items, 1)
	assert.Equal(t, domain.EquipmentStatusInUse, items[0].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, postgres.ErrorClassConflict, postgres.ClassifyError(&pq.Error{Code: "23505"}))
	assert.Equal(t, postgres.ErrorClassDeadlock, postgres.ClassifyError(&pq.Error{Code: "40P01"}))
	assert.Equal(t, postgres.ErrorClassSerialization, postgres.ClassifyError(&pq.Error{Code: "40001"}))
	assert.Equal(t, postgres.ErrorClassPermanent, postgres.ClassifyError(errors.New("boom")))

	assert.True(t, postgres.IsRetryable(&pq.Error{Code: "40P01"}))
	assert.False(t, postgres.IsRetryable(&pq.Error{Code: "23505"}))
}

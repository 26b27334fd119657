package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/goal"
	"github.com/cmlabs-hris/salon-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalRepository_UniquePerEmployeeMonth(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewGoalRepository(db)
	ctx := context.Background()
	emp := createTestEmployee(t, db, "Alex")

	g := goal.Goal{
		EmployeeID:    emp.ID,
		Month:         3,
		Year:          2025,
		MonthlyTarget: decimal.NewFromInt(3000),
		DailyTarget:   decimal.NewFromInt(100),
		RemainingDays: 30,
	}
	created, err := repo.Create(ctx, g)
	require.NoError(t, err)
	require.NotNil(t, created.EmployeeName)
	assert.Equal(t, "Alex Test", *created.EmployeeName)

	_, err = repo.Create(ctx, g)
	assert.ErrorIs(t, err, goal.ErrGoalAlreadyExists)
}

func TestGoalRepository_AddCarryOver(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewGoalRepository(db)
	ctx := context.Background()
	emp := createTestEmployee(t, db, "Alex")

	created, err := repo.Create(ctx, goal.Goal{
		EmployeeID:    emp.ID,
		Month:         4,
		Year:          2025,
		MonthlyTarget: decimal.NewFromInt(1000),
		RemainingDays: 30,
	})
	require.NoError(t, err)

	updated, err := repo.AddCarryOver(ctx, created.ID, decimal.RequireFromString("50.25"))
	require.NoError(t, err)
	assert.True(t, updated.MonthlyTarget.Equal(decimal.RequireFromString("1050.25")))
	assert.True(t, updated.CarryOverAmount.Equal(decimal.RequireFromString("50.25")))
}

func TestCarryOverLedger_SecondClaimRollsBack(t *testing.T) {
	db := newTestDB(t)
	ledger := postgresql.NewCarryOverLedger(db)
	goals := postgresql.NewGoalRepository(db)
	tx := postgresql.NewTransactor(db)
	ctx := context.Background()
	emp := createTestEmployee(t, db, "Alex")

	run := goal.CarryOverRun{Month: 2, Year: 2025, TotalUnmet: decimal.NewFromInt(10), Recipients: 1, ProcessedAt: time.Now()}
	require.NoError(t, ledger.MarkProcessed(ctx, run))

	err := tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := goals.Create(txCtx, goal.Goal{EmployeeID: emp.ID, Month: 3, Year: 2025, RemainingDays: 30}); err != nil {
			return err
		}
		return ledger.MarkProcessed(txCtx, run)
	})
	assert.True(t, errors.Is(err, goal.ErrCarryOverAlreadyProcessed))

	_, err = goals.GetByEmployeePeriod(ctx, emp.ID, 3, 2025)
	assert.ErrorIs(t, err, goal.ErrGoalNotFound, "goal insert must be rolled back with the ledger conflict")

	runs, err := ledger.List(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

package goal

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/goal"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/salon-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var february = func() time.Time { return time.Date(2024, time.February, 1, 0, 5, 0, 0, time.UTC) }

func newCarryOverService(store *memory.Store, hub *sse.Hub) goal.CarryOverService {
	return NewCarryOverService(memory.Transactor{}, store.Goals(), store.CarryOverLedger(), store.Employees(), store.Alerts(), hub, february)
}

func seedGoal(t *testing.T, store *memory.Store, employeeID string, month, year int, target, achieved int64) goal.Goal {
	t.Helper()
	g, err := store.Goals().Create(context.Background(), goal.Goal{
		EmployeeID:          employeeID,
		Month:               month,
		Year:                year,
		MonthlyTarget:       decimal.NewFromInt(target),
		DailyTarget:         decimal.Zero,
		CurrentMonthlyTotal: decimal.NewFromInt(achieved),
		RemainingDays:       20,
		CarryOverAmount:     decimal.Zero,
	})
	require.NoError(t, err)
	return g
}

func TestSplitEvenly(t *testing.T) {
	shares := splitEvenly(decimal.NewFromInt(100), 3)
	require.Len(t, shares, 3)
	assert.Equal(t, "33.34", shares[0].StringFixed(2))
	assert.Equal(t, "33.33", shares[1].StringFixed(2))
	assert.Equal(t, "33.33", shares[2].StringFixed(2))
	assert.True(t, decimal.NewFromInt(100).Equal(shares[0].Add(shares[1]).Add(shares[2])))

	assert.Nil(t, splitEvenly(decimal.NewFromInt(10), 0))
}

func TestSplitEvenly_NeverNegative(t *testing.T) {
	tests := []struct {
		total string
		n     int
		first string
		other string
	}{
		{"0.05", 10, "0.05", "0.00"},
		{"0.25", 50, "0.25", "0.00"},
		{"0.67", 3, "0.23", "0.22"},
		{"150", 3, "50.00", "50.00"},
	}

	for _, tt := range tests {
		t.Run(tt.total, func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)
			shares := splitEvenly(total, tt.n)
			require.Len(t, shares, tt.n)

			sum := decimal.Zero
			for _, s := range shares {
				assert.False(t, s.IsNegative(), "share %s", s)
				sum = sum.Add(s)
			}
			assert.True(t, total.Equal(sum))
			assert.Equal(t, tt.first, shares[0].StringFixed(2))
			assert.Equal(t, tt.other, shares[tt.n-1].StringFixed(2))
		})
	}
}

func TestCarryOver_DistributesUnmetTargets(t *testing.T) {
	store := memory.NewStore()
	hub := sse.NewHub()
	svc := newCarryOverService(store, hub)
	ctx := context.Background()

	a := seedEmployee(t, store, "Alice", employee.StatusActive)
	b := seedEmployee(t, store, "Bruno", employee.StatusActive)
	c := seedEmployee(t, store, "Chloe", employee.StatusActive)
	seedEmployee(t, store, "Dora", employee.StatusInactive)

	// January: A short by 100, B short by 50, C exceeded
	ga := seedGoal(t, store, a.ID, 1, 2024, 1000, 900)
	gb := seedGoal(t, store, b.ID, 1, 2024, 500, 450)
	seedGoal(t, store, c.ID, 1, 2024, 300, 400)

	// A already has a February goal
	existing := seedGoal(t, store, a.ID, 2, 2024, 800, 0)

	events, cleanup := hub.Subscribe(sse.TopicAdmins)
	defer cleanup()

	result, err := svc.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SourceMonth)
	assert.Equal(t, 2024, result.SourceYear)
	assert.Equal(t, 2, result.TargetMonth)
	assert.Equal(t, "150.00", result.TotalUnmet.StringFixed(2))
	assert.ElementsMatch(t, []string{ga.ID, gb.ID}, result.ContributingGoalIDs)
	require.Len(t, result.Allocations, 3)
	for _, alloc := range result.Allocations {
		assert.Equal(t, "50.00", alloc.Amount.StringFixed(2))
	}
	assert.False(t, result.Allocations[0].Created)
	assert.True(t, result.Allocations[1].Created)

	updated, err := store.Goals().GetByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "850.00", updated.MonthlyTarget.StringFixed(2))
	assert.Equal(t, "50.00", updated.CarryOverAmount.StringFixed(2))

	opened, err := store.Goals().GetByEmployeePeriod(ctx, b.ID, 2, 2024)
	require.NoError(t, err)
	assert.Equal(t, "50.00", opened.MonthlyTarget.StringFixed(2))
	assert.Equal(t, "1.67", opened.DailyTarget.StringFixed(2))
	assert.Equal(t, 30, opened.RemainingDays)
	assert.True(t, opened.CurrentMonthlyTotal.IsZero())

	alerts, err := store.Alerts().List(ctx, &b.ID)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, alert.TypeGoalCarryOver, alerts[0].Type)
	assert.Contains(t, alerts[0].Message, "50.00€")
	assert.Equal(t, "50.00", alerts[0].Data["remaining"])

	all, err := store.Alerts().List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	received := map[string]alert.Payload{}
	for i := 0; i < 3; i++ {
		select {
		case ev := <-events:
			received[ev.Name] = ev.Data.(alert.Payload)
		case <-time.After(time.Second):
			t.Fatal("expected a carry-over event")
		}
	}
	require.Contains(t, received, alert.EventName(a.ID))
	assert.Equal(t, "850.00", received[alert.EventName(a.ID)].Remaining.StringFixed(2))
	assert.Equal(t, "50.00", received[alert.EventName(c.ID)].Remaining.StringFixed(2))
}

func TestCarryOver_RunsOncePerMonth(t *testing.T) {
	store := memory.NewStore()
	svc := newCarryOverService(store, sse.NewHub())
	ctx := context.Background()

	emp := seedEmployee(t, store, "Alice", employee.StatusActive)
	seedGoal(t, store, emp.ID, 1, 2024, 200, 100)

	_, err := svc.Run(ctx)
	require.NoError(t, err)

	_, err = svc.Run(ctx)
	assert.ErrorIs(t, err, goal.ErrCarryOverAlreadyProcessed)

	g, err := store.Goals().GetByEmployeePeriod(ctx, emp.ID, 2, 2024)
	require.NoError(t, err)
	assert.Equal(t, "100.00", g.MonthlyTarget.StringFixed(2))

	runs, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].Month)
	assert.Equal(t, 1, runs[0].Recipients)
}

func TestCarryOver_NothingUnmetStillMarksMonth(t *testing.T) {
	store := memory.NewStore()
	svc := newCarryOverService(store, sse.NewHub())
	ctx := context.Background()

	emp := seedEmployee(t, store, "Alice", employee.StatusActive)
	seedGoal(t, store, emp.ID, 1, 2024, 200, 250)

	result, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.True(t, result.TotalUnmet.IsZero())
	assert.Empty(t, result.Allocations)

	_, err = store.Goals().GetByEmployeePeriod(ctx, emp.ID, 2, 2024)
	assert.ErrorIs(t, err, goal.ErrGoalNotFound)

	runs, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 0, runs[0].Recipients)
}

func TestCarryOver_YearBoundary(t *testing.T) {
	store := memory.NewStore()
	january := func() time.Time { return time.Date(2025, time.January, 1, 0, 5, 0, 0, time.UTC) }
	svc := NewCarryOverService(memory.Transactor{}, store.Goals(), store.CarryOverLedger(), store.Employees(), store.Alerts(), sse.NewHub(), january)
	ctx := context.Background()

	emp := seedEmployee(t, store, "Alice", employee.StatusActive)
	seedGoal(t, store, emp.ID, 12, 2024, 90, 0)

	result, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, result.SourceMonth)
	assert.Equal(t, 2024, result.SourceYear)
	assert.Equal(t, 1, result.TargetMonth)
	assert.Equal(t, 2025, result.TargetYear)

	g, err := store.Goals().GetByEmployeePeriod(ctx, emp.ID, 1, 2025)
	require.NoError(t, err)
	assert.Equal(t, "90.00", g.MonthlyTarget.StringFixed(2))
	assert.Equal(t, "3.00", g.DailyTarget.StringFixed(2))
}

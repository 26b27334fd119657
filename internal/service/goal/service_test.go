package goal

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/goal"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/revenue"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/salon-backend-go/internal/repository/memory"
	analyticsservice "github.com/cmlabs-hris/salon-backend-go/internal/service/analytics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoalService(store *memory.Store) *GoalServiceImpl {
	return NewGoalService(store.Goals(), store.Employees(), analyticsservice.NewTurnoverAggregator(store.Turnover()), time.UTC)
}

func seedEmployee(t *testing.T, store *memory.Store, first string, status employee.Status) employee.Employee {
	t.Helper()
	emp, err := store.Employees().Create(context.Background(), employee.Employee{
		FirstName: first,
		LastName:  "Test",
		Position:  "Barber",
		Status:    status,
	})
	require.NoError(t, err)
	return emp
}

func addSale(t *testing.T, store *memory.Store, employeeID string, amount int64, date time.Time) revenue.Sale {
	t.Helper()
	sale, err := store.Sales().Create(context.Background(), revenue.Sale{
		EmployeeID: employeeID,
		PackageID:  "pkg-1",
		Amount:     decimal.NewFromInt(amount),
		Date:       date,
	})
	require.NoError(t, err)
	return sale
}

func TestGoalService_Create(t *testing.T) {
	store := memory.NewStore()
	svc := newGoalService(store)
	ctx := context.Background()
	emp := seedEmployee(t, store, "Karim", employee.StatusActive)

	addSale(t, store, emp.ID, 300, time.Date(2024, time.March, 4, 11, 0, 0, 0, time.UTC))
	addSale(t, store, emp.ID, 500, time.Date(2024, time.April, 1, 9, 0, 0, 0, time.UTC))
	_, err := store.Receipts().Create(ctx, revenue.Receipt{
		EmployeeID: emp.ID,
		ClientName: "Ana",
		Amount:     decimal.NewFromInt(150),
		Date:       time.Date(2024, time.March, 31, 23, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	resp, err := svc.Create(ctx, goal.CreateGoalRequest{
		EmployeeID:    emp.ID,
		Month:         3,
		Year:          2024,
		MonthlyTarget: decimal.NewFromInt(1000),
		DailyTarget:   decimal.NewFromInt(40),
		RemainingDays: 26,
	})
	require.NoError(t, err)

	assert.Equal(t, "450.00", resp.CurrentMonthlyTotal.StringFixed(2))
	assert.Equal(t, "550.00", resp.Remaining.StringFixed(2))
	assert.True(t, resp.CarryOverAmount.IsZero())
	require.NotNil(t, resp.EmployeeName)
	assert.Equal(t, "Karim Test", *resp.EmployeeName)

	_, err = svc.Create(ctx, goal.CreateGoalRequest{
		EmployeeID:    emp.ID,
		Month:         3,
		Year:          2024,
		MonthlyTarget: decimal.NewFromInt(10),
		RemainingDays: 1,
	})
	assert.ErrorIs(t, err, goal.ErrGoalAlreadyExists)
}

func TestGoalService_Create_Invalid(t *testing.T) {
	store := memory.NewStore()
	svc := newGoalService(store)

	_, err := svc.Create(context.Background(), goal.CreateGoalRequest{EmployeeID: "emp-x", Month: 13, Year: 2024, RemainingDays: 10})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "month")

	assert.Contains(t, verrs.ToMap(), "employee_id")

	_, err = svc.Create(context.Background(), goal.CreateGoalRequest{EmployeeID: "6f1c7a52-3f7e-4d0e-9a51-0c0f4f1f4b10", Month: 3, Year: 2024, RemainingDays: 10})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGoalService_GetForEmployee_Recomputes(t *testing.T) {
	store := memory.NewStore()
	svc := newGoalService(store)
	ctx := context.Background()
	emp := seedEmployee(t, store, "Karim", employee.StatusActive)

	created, err := svc.Create(ctx, goal.CreateGoalRequest{
		EmployeeID:    emp.ID,
		Month:         5,
		Year:          2024,
		MonthlyTarget: decimal.NewFromInt(2000),
		DailyTarget:   decimal.NewFromInt(80),
		RemainingDays: 25,
	})
	require.NoError(t, err)
	assert.True(t, created.CurrentMonthlyTotal.IsZero())

	// written behind the service's back
	addSale(t, store, emp.ID, 120, time.Date(2024, time.May, 14, 10, 0, 0, 0, time.UTC))

	resp, err := svc.GetForEmployee(ctx, emp.ID, 5, 2024)
	require.NoError(t, err)
	assert.Equal(t, "120.00", resp.CurrentMonthlyTotal.StringFixed(2))
	assert.Equal(t, "1880.00", resp.Remaining.StringFixed(2))

	stored, err := store.Goals().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "120.00", stored.CurrentMonthlyTotal.StringFixed(2))

	_, err = svc.GetForEmployee(ctx, emp.ID, 6, 2024)
	assert.ErrorIs(t, err, goal.ErrGoalNotFound)
}

func TestGoalService_RefreshForEmployee(t *testing.T) {
	store := memory.NewStore()
	svc := newGoalService(store)
	ctx := context.Background()
	emp := seedEmployee(t, store, "Karim", employee.StatusActive)

	created, err := svc.Create(ctx, goal.CreateGoalRequest{
		EmployeeID:    emp.ID,
		Month:         5,
		Year:          2024,
		MonthlyTarget: decimal.NewFromInt(100),
		RemainingDays: 25,
	})
	require.NoError(t, err)

	date := time.Date(2024, time.May, 20, 16, 0, 0, 0, time.UTC)
	addSale(t, store, emp.ID, 130, date)
	require.NoError(t, svc.RefreshForEmployee(ctx, emp.ID, date))

	stored, err := store.Goals().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "130.00", stored.CurrentMonthlyTotal.StringFixed(2))
	assert.Equal(t, "-30.00", stored.Remaining().StringFixed(2))
	assert.True(t, stored.Unmet().IsZero())

	// no goal for June: nothing to refresh
	assert.NoError(t, svc.RefreshForEmployee(ctx, emp.ID, time.Date(2024, time.June, 2, 10, 0, 0, 0, time.UTC)))
}

func TestGoalService_UpdateAndList(t *testing.T) {
	store := memory.NewStore()
	svc := newGoalService(store)
	ctx := context.Background()
	emp := seedEmployee(t, store, "Karim", employee.StatusActive)

	for _, month := range []int{1, 2} {
		_, err := svc.Create(ctx, goal.CreateGoalRequest{
			EmployeeID:    emp.ID,
			Month:         month,
			Year:          2024,
			MonthlyTarget: decimal.NewFromInt(500),
			RemainingDays: 20,
		})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, goal.GoalFilter{EmployeeID: &emp.ID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].Month)

	target := decimal.NewFromInt(750)
	updated, err := svc.Update(ctx, goal.UpdateGoalRequest{ID: list[1].ID, MonthlyTarget: &target})
	require.NoError(t, err)
	assert.Equal(t, "750.00", updated.MonthlyTarget.StringFixed(2))

	require.NoError(t, svc.Delete(ctx, list[1].ID))
	_, err = svc.GetByID(ctx, list[1].ID)
	assert.ErrorIs(t, err, goal.ErrGoalNotFound)
}

package alert

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/salon-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEmployees(t *testing.T, store *memory.Store, names ...string) []employee.Employee {
	t.Helper()
	out := make([]employee.Employee, 0, len(names))
	for _, name := range names {
		emp, err := store.Employees().Create(context.Background(), employee.Employee{FirstName: name, Position: "Barber"})
		require.NoError(t, err)
		out = append(out, emp)
	}
	return out
}

func TestAlertService_Create(t *testing.T) {
	store := memory.NewStore()
	svc := NewAlertService(store.Alerts(), store.Employees())
	emps := seedEmployees(t, store, "Karim")

	resp, err := svc.Create(context.Background(), alert.CreateAlertRequest{
		EmployeeID: emps[0].ID,
		Type:       alert.TypeDailyObjective,
		Message:    "Objectif du jour: 200€",
	})
	require.NoError(t, err)
	assert.False(t, resp.IsRead)
	assert.Equal(t, alert.TypeDailyObjective, resp.Type)
	require.NotNil(t, resp.EmployeeName)
	assert.Equal(t, "Karim", *resp.EmployeeName)

	_, err = svc.Create(context.Background(), alert.CreateAlertRequest{EmployeeID: emps[0].ID, Type: "weekly", Message: ""})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "type")
	assert.Contains(t, verrs.ToMap(), "message")

	_, err = svc.Create(context.Background(), alert.CreateAlertRequest{EmployeeID: "emp-404", Type: alert.TypeDailyObjective, Message: "hi"})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "employee_id")

	_, err = svc.Create(context.Background(), alert.CreateAlertRequest{EmployeeID: "6f1c7a52-3f7e-4d0e-9a51-0c0f4f1f4b10", Type: alert.TypeDailyObjective, Message: "hi"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAlertService_Scopes(t *testing.T) {
	store := memory.NewStore()
	svc := NewAlertService(store.Alerts(), store.Employees())
	ctx := context.Background()
	emps := seedEmployees(t, store, "Karim", "Sofia")

	var sofiaAlert string
	for _, emp := range []employee.Employee{emps[0], emps[0], emps[1]} {
		resp, err := svc.Create(ctx, alert.CreateAlertRequest{EmployeeID: emp.ID, Type: alert.TypeMonthlyObjective, Message: "rappel"})
		require.NoError(t, err)
		if emp.ID == emps[1].ID {
			sofiaAlert = resp.ID
		}
	}

	admin := alert.Scope{}
	karim := alert.Scope{EmployeeID: &emps[0].ID, Restricted: true}

	all, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	own, err := svc.List(ctx, karim)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	filtered, err := svc.List(ctx, alert.Scope{EmployeeID: &emps[1].ID})
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	_, err = svc.List(ctx, alert.Scope{Restricted: true})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	assert.ErrorIs(t, svc.MarkRead(ctx, karim, sofiaAlert), alert.ErrUnauthorized)
	assert.ErrorIs(t, svc.MarkRead(ctx, karim, "alert-404"), alert.ErrAlertNotFound)
	require.NoError(t, svc.MarkRead(ctx, admin, sofiaAlert))

	count, err := svc.UnreadCount(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count.Count)

	n, err := svc.MarkAllRead(ctx, karim)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	count, err = svc.UnreadCount(ctx, karim)
	require.NoError(t, err)
	assert.Zero(t, count.Count)
}

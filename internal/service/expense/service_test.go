package expense

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/salon-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseService_CreateAndFilter(t *testing.T) {
	svc := NewExpenseService(memory.NewStore().Expenses())
	ctx := context.Background()

	for _, req := range []expense.CreateExpenseRequest{
		{Category: "supplies", Amount: decimal.NewFromInt(40), Date: "2024-05-02", CreatedBy: "admin-1"},
		{Category: "supplies", Amount: decimal.NewFromInt(15), Date: "2024-06-10", CreatedBy: "admin-1"},
		{Category: "cleaning", Amount: decimal.NewFromInt(30), Date: "2024-05-20", CreatedBy: "admin-2"},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	category := "supplies"
	list, err := svc.List(ctx, expense.ExpenseFilter{Category: &category})
	require.NoError(t, err)
	require.Len(t, list, 2)
	// newest first
	assert.Equal(t, "2024-06-10", list[0].Date)

	start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.May, 31, 23, 59, 59, 0, time.UTC)
	may, err := svc.List(ctx, expense.ExpenseFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Len(t, may, 2)
	for _, e := range may {
		assert.Contains(t, []string{"admin-1", "admin-2"}, e.CreatedBy)
	}
}

func TestExpenseService_Validation(t *testing.T) {
	svc := NewExpenseService(memory.NewStore().Expenses())

	_, err := svc.Create(context.Background(), expense.CreateExpenseRequest{Category: "rent", Amount: decimal.Zero, Date: "05/02/2024"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "amount")
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "created_by")
}

func TestExpenseService_UpdateAndDelete(t *testing.T) {
	svc := NewExpenseService(memory.NewStore().Expenses())
	ctx := context.Background()

	created, err := svc.Create(ctx, expense.CreateExpenseRequest{Category: "rent", Amount: decimal.NewFromInt(900), Date: "2024-05-01", CreatedBy: "admin-1"})
	require.NoError(t, err)

	amount := decimal.NewFromInt(950)
	date := "2024-05-03"
	updated, err := svc.Update(ctx, expense.UpdateExpenseRequest{ID: created.ID, Amount: &amount, Date: &date})
	require.NoError(t, err)
	assert.True(t, amount.Equal(updated.Amount))
	assert.Equal(t, "2024-05-03", updated.Date)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), expense.ErrExpenseNotFound)
}

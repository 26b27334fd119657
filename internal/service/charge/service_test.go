package charge

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/charge"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/revenue"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/salon-backend-go/internal/repository/memory"
	analyticsservice "github.com/cmlabs-hris/salon-backend-go/internal/service/analytics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.May, 10, 14, 0, 0, 0, time.UTC)

func newChargeService(store *memory.Store) charge.AdminChargeService {
	return NewAdminChargeService(
		store.AdminCharges(),
		analyticsservice.NewTurnoverAggregator(store.Turnover()),
		decimal.NewFromInt(60000),
		func() time.Time { return fixedNow },
	)
}

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestAdminChargeService_UpsertDefaultsToCurrentMonth(t *testing.T) {
	store := memory.NewStore()
	svc := newChargeService(store)
	ctx := context.Background()

	resp, err := svc.Upsert(ctx, charge.UpsertAdminChargeRequest{Rent: d("800"), Electricity: d("120.50")})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Month)
	assert.Equal(t, 2024, resp.Year)
	assert.Equal(t, "920.50", resp.Total.StringFixed(2))

	// same month replaces the row
	resp2, err := svc.Upsert(ctx, charge.UpsertAdminChargeRequest{Month: 5, Year: 2024, Rent: d("900")})
	require.NoError(t, err)
	assert.Equal(t, resp.ID, resp2.ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "900.00", list[0].Total.StringFixed(2))
}

func TestAdminChargeService_UpsertValidation(t *testing.T) {
	svc := newChargeService(memory.NewStore())

	_, err := svc.Upsert(context.Background(), charge.UpsertAdminChargeRequest{Month: 13, Rent: d("-1")})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "month")
	assert.Contains(t, verrs.ToMap(), "rent")
}

func TestAdminChargeService_ChargesForFallsBackToLatest(t *testing.T) {
	store := memory.NewStore()
	svc := newChargeService(store)
	ctx := context.Background()

	total, err := svc.ChargesFor(ctx, 5, 2024)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	_, err = svc.Upsert(ctx, charge.UpsertAdminChargeRequest{Month: 2, Year: 2024, Rent: d("500")})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, charge.UpsertAdminChargeRequest{Month: 3, Year: 2024, Rent: d("700")})
	require.NoError(t, err)

	total, err = svc.ChargesFor(ctx, 5, 2024)
	require.NoError(t, err)
	assert.Equal(t, "700.00", total.StringFixed(2))

	total, err = svc.ChargesFor(ctx, 2, 2024)
	require.NoError(t, err)
	assert.Equal(t, "500.00", total.StringFixed(2))
}

func TestAdminChargeService_DailySummary(t *testing.T) {
	store := memory.NewStore()
	svc := newChargeService(store)
	ctx := context.Background()

	_, err := store.Sales().Create(ctx, revenue.Sale{EmployeeID: "emp-1", PackageID: "pkg-1", Amount: d("100"), Date: fixedNow})
	require.NoError(t, err)
	_, err = store.Receipts().Create(ctx, revenue.Receipt{EmployeeID: "emp-1", ClientName: "Ana", Amount: d("450"), Date: fixedNow.AddDate(0, 0, -5)})
	require.NoError(t, err)
	// previous month is ignored
	_, err = store.Receipts().Create(ctx, revenue.Receipt{EmployeeID: "emp-1", ClientName: "Ana", Amount: d("999"), Date: fixedNow.AddDate(0, -1, 0)})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, charge.UpsertAdminChargeRequest{Month: 4, Year: 2024, Rent: d("1000")})
	require.NoError(t, err)

	summary, err := svc.DailySummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, "2024-05-10", summary.Date)
	assert.Equal(t, "100.00", summary.DailyTurnover.StringFixed(2))
	assert.Equal(t, "550.00", summary.MonthlyTurnover.StringFixed(2))
	assert.Equal(t, "5000.00", summary.MonthlyObjective.StringFixed(2))
	assert.Equal(t, "4450.00", summary.RemainingToObjective.StringFixed(2))
	assert.Equal(t, 21, summary.DaysLeftInMonth)
	assert.Equal(t, "211.90", summary.AverageDailyNeeded.StringFixed(2))
	assert.Equal(t, "1000.00", summary.TotalCharges.StringFixed(2))
}

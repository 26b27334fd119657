package analytics

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/revenue"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/period"
	"github.com/cmlabs-hris/salon-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapCache keeps JSON blobs in memory, like the redis cache does.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *mapCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *mapCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *mapCache) AcquireLock(context.Context, string, time.Duration) (bool, error) { return true, nil }
func (c *mapCache) ReleaseLock(context.Context, string) error { return nil }

// Wednesday
var now = time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store   *memory.Store
	cache   *mapCache
	service analytics.AnalyticsService
	alice   employee.Employee
	bruno   employee.Employee
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	c := newMapCache()

	alice, err := store.Employees().Create(ctx, employee.Employee{FirstName: "Alice", Position: "Barber", DeductionPercentage: decimal.NewFromInt(20)})
	require.NoError(t, err)
	bruno, err := store.Employees().Create(ctx, employee.Employee{FirstName: "Bruno", Position: "Barber", DeductionPercentage: decimal.Zero})
	require.NoError(t, err)

	sale := func(emp string, amount int64, date time.Time) {
		_, err := store.Sales().Create(ctx, revenue.Sale{EmployeeID: emp, PackageID: "pkg", Amount: decimal.NewFromInt(amount), Date: date})
		require.NoError(t, err)
	}
	sale(alice.ID, 100, now)
	sale(bruno.ID, 300, time.Date(2024, time.May, 2, 10, 0, 0, 0, time.UTC))
	sale(alice.ID, 80, time.Date(2024, time.April, 10, 10, 0, 0, 0, time.UTC))
	_, err = store.Receipts().Create(ctx, revenue.Receipt{EmployeeID: alice.ID, ClientName: "Ana", Amount: decimal.NewFromInt(50), Date: now.AddDate(0, 0, -1)})
	require.NoError(t, err)
	_, err = store.Expenses().Create(ctx, expense.Expense{Category: "rent", Amount: decimal.NewFromInt(120), Date: time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	svc := NewAnalyticsService(store.Turnover(), store.Expenses(), store.Employees(), c, time.Minute, decimal.NewFromInt(50000), func() time.Time { return now })
	return fixture{store: store, cache: c, service: svc, alice: alice, bruno: bruno}
}

func TestAnalytics_TurnoverAndProfit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := analytics.TurnoverQuery{Period: period.Monthly, Date: now}

	resp, err := f.service.Turnover(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "400.00", resp.Turnover.Sales.StringFixed(2))
	assert.Equal(t, "50.00", resp.Turnover.Receipts.StringFixed(2))
	assert.Equal(t, "450.00", resp.Turnover.Total.StringFixed(2))
	assert.Equal(t, int64(3), resp.Transactions.Total)

	q.EmployeeID = &f.alice.ID
	own, err := f.service.Turnover(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "150.00", own.Turnover.Total.StringFixed(2))

	profit, err := f.service.Profit(ctx, analytics.TurnoverQuery{Period: period.Monthly, Date: now})
	require.NoError(t, err)
	assert.Equal(t, "120.00", profit.Expenses.StringFixed(2))
	assert.Equal(t, "330.00", profit.Profit.StringFixed(2))

	_, err = f.service.Turnover(ctx, analytics.TurnoverQuery{Period: "hourly", Date: now})
	assert.ErrorIs(t, err, period.ErrInvalidPeriod)
}

func TestAnalytics_CacheIsInvalidatedOnWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := analytics.TurnoverQuery{Period: period.Daily, Date: now}

	first, err := f.service.Turnover(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "100.00", first.Turnover.Total.StringFixed(2))

	_, err = f.store.Sales().Create(ctx, revenue.Sale{EmployeeID: f.bruno.ID, PackageID: "pkg", Amount: decimal.NewFromInt(40), Date: now})
	require.NoError(t, err)

	cached, err := f.service.Turnover(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "100.00", cached.Turnover.Total.StringFixed(2))

	f.service.InvalidateCache(ctx)
	fresh, err := f.service.Turnover(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "140.00", fresh.Turnover.Total.StringFixed(2))
}

func TestAnalytics_Performance(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.Performance(context.Background(), analytics.TurnoverQuery{Period: period.Monthly, Date: now})
	require.NoError(t, err)
	require.Len(t, resp.Employees, 2)
	assert.Equal(t, f.bruno.ID, resp.Employees[0].EmployeeID)
	assert.Equal(t, "300.00", resp.Employees[0].NetTurnover.StringFixed(2))
	assert.Equal(t, "150.00", resp.Employees[1].TotalTurnover.StringFixed(2))
	assert.Equal(t, "120.00", resp.Employees[1].NetTurnover.StringFixed(2))
}

func TestAnalytics_Evolution(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.service.Evolution(ctx, 3, nil)
	require.NoError(t, err)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "2024-03", resp.Data[0].Month)
	assert.True(t, resp.Data[0].Total.IsZero())
	assert.Equal(t, "80.00", resp.Data[1].Total.StringFixed(2))
	assert.Equal(t, "2024-05", resp.Data[2].Month)
	assert.Equal(t, "450.00", resp.Data[2].Total.StringFixed(2))

	_, err = f.service.Evolution(ctx, 0, nil)
	assert.ErrorIs(t, err, analytics.ErrInvalidMonths)
}

func TestAnalytics_PeriodAndAnnual(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	week, err := f.service.PeriodTurnover(ctx, period.Weekly, now)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-13", week.Label)
	assert.Equal(t, "150.00", week.Turnover.Total.StringFixed(2))

	annual, err := f.service.AnnualTurnover(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, annual.Monthly, 12)
	require.Len(t, annual.Daily, 366)
	assert.Equal(t, "80.00", annual.Monthly[3].Total.StringFixed(2))
	assert.Equal(t, "450.00", annual.Monthly[4].Total.StringFixed(2))
	assert.Equal(t, "2024-05-15", annual.Daily[135].Date)
	assert.Equal(t, "100.00", annual.Daily[135].Total.StringFixed(2))

	_, err = f.service.AnnualTurnover(ctx, 1999)
	assert.ErrorIs(t, err, analytics.ErrInvalidYear)
}

func TestAnalytics_RealtimeAndForecast(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rt, err := f.service.Realtime(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-15", rt.Date)
	assert.Equal(t, int64(1), rt.TotalTransactions)
	assert.Equal(t, "100.00", rt.AverageBasket.StringFixed(2))

	fc, err := f.service.Forecast(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "530.00", fc.YTDTurnover.StringFixed(2))
	assert.Equal(t, "1.06", fc.PercentageAchieved.StringFixed(2))
	assert.Equal(t, "1426.32", fc.ProjectedTotal.StringFixed(2))
	assert.Equal(t, analytics.ForecastBehind, fc.ForecastAccuracy)

	low := decimal.NewFromInt(1000)
	fc, err = f.service.Forecast(ctx, &low)
	require.NoError(t, err)
	assert.Equal(t, analytics.ForecastOnTrack, fc.ForecastAccuracy)

	zero := decimal.Zero
	_, err = f.service.Forecast(ctx, &zero)
	assert.ErrorIs(t, err, analytics.ErrInvalidObjective)
}

func TestAnalytics_Dashboard(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Barbers, 2)
	assert.Equal(t, "Bruno", resp.Barbers[0].Name)
	alice := resp.Barbers[1]
	assert.Equal(t, "100.00", alice.DailyTurnover.StringFixed(2))
	assert.Equal(t, "150.00", alice.WeeklyTurnover.StringFixed(2))
	assert.Equal(t, "150.00", alice.MonthlyTurnover.StringFixed(2))

	require.Len(t, resp.Charts.Daily, 7)
	assert.Equal(t, "2024-05-15", resp.Charts.Daily[6].Label)
	require.Len(t, resp.Charts.Monthly, 12)
	assert.Equal(t, "2023-06", resp.Charts.Monthly[0].Label)
	require.Len(t, resp.Charts.Yearly, 5)
	assert.Equal(t, "2020", resp.Charts.Yearly[0].Label)
	assert.Equal(t, "530.00", resp.Charts.Yearly[4].Turnover.StringFixed(2))
	assert.Equal(t, "530.00", resp.Forecast.YTDTurnover.StringFixed(2))
}

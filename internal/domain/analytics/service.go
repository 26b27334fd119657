package analytics

import (
	"context"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

// TurnoverAggregator sums sales and receipts over a window, optionally for one employee.
type TurnoverAggregator interface {
	Turnover(ctx context.Context, employeeID *string, start, end time.Time) (TurnoverBreakdown, error)
}

// CacheInvalidator is the part of AnalyticsService revenue writes depend on.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context)
}

type AnalyticsService interface {
	Turnover(ctx context.Context, q TurnoverQuery) (TurnoverResponse, error)
	Evolution(ctx context.Context, months int, employeeID *string) (EvolutionResponse, error)
	Profit(ctx context.Context, q TurnoverQuery) (ProfitResponse, error)
	Performance(ctx context.Context, q TurnoverQuery) (PerformanceResponse, error)
	PeriodTurnover(ctx context.Context, p period.Granularity, date time.Time) (PeriodTurnoverResponse, error)
	AnnualTurnover(ctx context.Context, year int) (AnnualTurnoverResponse, error)
	Realtime(ctx context.Context) (RealtimeResponse, error)
	Forecast(ctx context.Context, annualObjective *decimal.Decimal) (ForecastResponse, error)
	Dashboard(ctx context.Context) (DashboardResponse, error)

	// InvalidateCache drops cached reports after a revenue write.
	InvalidateCache(ctx context.Context)
}

package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/period"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const cachePrefix = "analytics:"

type AnalyticsServiceImpl struct {
	turnoverRepo    analytics.TurnoverRepository
	expenseRepo     expense.ExpenseRepository
	employeeRepo    employee.EmployeeRepository
	cache           cache.Cache
	cacheTTL        time.Duration
	annualObjective decimal.Decimal
	now             func() time.Time
}

func NewAnalyticsService(
	turnoverRepo analytics.TurnoverRepository,
	expenseRepo expense.ExpenseRepository,
	employeeRepo employee.EmployeeRepository,
	reportCache cache.Cache,
	cacheTTL time.Duration,
	annualObjective decimal.Decimal,
	now func() time.Time,
) analytics.AnalyticsService {
	return &AnalyticsServiceImpl{
		turnoverRepo:    turnoverRepo,
		expenseRepo:     expenseRepo,
		employeeRepo:    employeeRepo,
		cache:           reportCache,
		cacheTTL:        cacheTTL,
		annualObjective: annualObjective,
		now:             now,
	}
}

// cached serves key from the report cache, loading and storing it on a miss.
// Cache failures only cost a recomputation.
func cached[T any](ctx context.Context, s *AnalyticsServiceImpl, key string, load func() (T, error)) (T, error) {
	var out T
	key = cachePrefix + key

	err := s.cache.GetJSON(ctx, key, &out)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("analytics cache read failed", "key", key, "error", err)
	}

	out, err = load()
	if err != nil {
		return out, err
	}
	if err := s.cache.SetJSON(ctx, key, out, s.cacheTTL); err != nil {
		slog.Warn("analytics cache write failed", "key", key, "error", err)
	}
	return out, nil
}

func cacheKey(parts ...interface{}) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		switch v := p.(type) {
		case *string:
			if v == nil {
				s[i] = "all"
			} else {
				s[i] = *v
			}
		case time.Time:
			s[i] = v.Format("2006-01-02")
		default:
			s[i] = fmt.Sprint(v)
		}
	}
	return strings.Join(s, ":")
}

func (s *AnalyticsServiceImpl) InvalidateCache(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, cachePrefix); err != nil {
		slog.Warn("analytics cache invalidation failed", "error", err)
	}
}

// ========== TURNOVER ==========

func (s *AnalyticsServiceImpl) Turnover(ctx context.Context, q analytics.TurnoverQuery) (analytics.TurnoverResponse, error) {
	r, err := period.For(q.Period, q.Date)
	if err != nil {
		return analytics.TurnoverResponse{}, err
	}

	return cached(ctx, s, cacheKey("turnover", q.Period, q.Date, q.EmployeeID), func() (analytics.TurnoverResponse, error) {
		totals, err := s.turnoverRepo.Aggregate(ctx, q.EmployeeID, r.Start, r.End)
		if err != nil {
			return analytics.TurnoverResponse{}, err
		}
		return analytics.TurnoverResponse{
			Period:    q.Period,
			DateRange: r,
			Turnover:  analytics.NewBreakdown(totals.Sales, totals.Receipts),
			Transactions: analytics.TransactionCounts{
				Sales:    totals.SalesCount,
				Receipts: totals.ReceiptsCount,
				Total:    totals.SalesCount + totals.ReceiptsCount,
			},
		}, nil
	})
}

// ========== EVOLUTION ==========

// Evolution returns one point per calendar month, oldest first, ending with the current month.
func (s *AnalyticsServiceImpl) Evolution(ctx context.Context, months int, employeeID *string) (analytics.EvolutionResponse, error) {
	if months < 1 || months > 60 {
		return analytics.EvolutionResponse{}, analytics.ErrInvalidMonths
	}
	now := s.now()

	return cached(ctx, s, cacheKey("evolution", months, now, employeeID), func() (analytics.EvolutionResponse, error) {
		data := make([]analytics.MonthlyPoint, 0, months)
		for i := 0; i < months; i++ {
			first := time.Date(now.Year(), now.Month()-time.Month(months-1-i), 1, 0, 0, 0, 0, now.Location())
			r, _ := period.For(period.Monthly, first)

			totals, err := s.turnoverRepo.Aggregate(ctx, employeeID, r.Start, r.End)
			if err != nil {
				return analytics.EvolutionResponse{}, err
			}
			data = append(data, analytics.MonthlyPoint{
				Month:    first.Format("2006-01"),
				Sales:    totals.Sales,
				Receipts: totals.Receipts,
				Total:    totals.Sales.Add(totals.Receipts),
			})
		}
		return analytics.EvolutionResponse{Months: months, Data: data}, nil
	})
}

// ========== PROFIT ==========

func (s *AnalyticsServiceImpl) Profit(ctx context.Context, q analytics.TurnoverQuery) (analytics.ProfitResponse, error) {
	r, err := period.For(q.Period, q.Date)
	if err != nil {
		return analytics.ProfitResponse{}, err
	}

	return cached(ctx, s, cacheKey("profit", q.Period, q.Date, q.EmployeeID), func() (analytics.ProfitResponse, error) {
		totals, err := s.turnoverRepo.Aggregate(ctx, q.EmployeeID, r.Start, r.End)
		if err != nil {
			return analytics.ProfitResponse{}, err
		}
		expenses, err := s.expenseRepo.Sum(ctx, r.Start, r.End)
		if err != nil {
			return analytics.ProfitResponse{}, err
		}

		turnover := totals.Sales.Add(totals.Receipts)
		return analytics.ProfitResponse{
			Period:    q.Period,
			DateRange: r,
			Turnover:  turnover,
			Expenses:  expenses,
			Profit:    turnover.Sub(expenses),
		}, nil
	})
}

// ========== PERFORMANCE ==========

// Performance lists every employee with its turnover over the period, best first.
func (s *AnalyticsServiceImpl) Performance(ctx context.Context, q analytics.TurnoverQuery) (analytics.PerformanceResponse, error) {
	r, err := period.For(q.Period, q.Date)
	if err != nil {
		return analytics.PerformanceResponse{}, err
	}

	return cached(ctx, s, cacheKey("performance", q.Period, q.Date, q.EmployeeID), func() (analytics.PerformanceResponse, error) {
		employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{})
		if err != nil {
			return analytics.PerformanceResponse{}, err
		}
		byEmployee, err := s.turnoverRepo.AggregateByEmployee(ctx, r.Start, r.End)
		if err != nil {
			return analytics.PerformanceResponse{}, err
		}

		rows := make([]analytics.EmployeePerformance, 0, len(employees))
		for _, emp := range employees {
			if q.EmployeeID != nil && *q.EmployeeID != emp.ID {
				continue
			}
			t := byEmployee[emp.ID]
			total := t.Sales.Add(t.Receipts)
			rows = append(rows, analytics.EmployeePerformance{
				EmployeeID:          emp.ID,
				EmployeeName:        emp.FullName(),
				Sales:               t.Sales,
				Receipts:            t.Receipts,
				TotalTurnover:       total,
				DeductionPercentage: emp.DeductionPercentage,
				NetTurnover:         emp.NetShare(total),
			})
		}
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].TotalTurnover.GreaterThan(rows[j].TotalTurnover)
		})

		return analytics.PerformanceResponse{Period: q.Period, DateRange: r, Employees: rows}, nil
	})
}

// ========== PERIOD TURNOVER ==========

func periodLabel(p period.Granularity, r period.Range) string {
	switch p {
	case period.Monthly:
		return r.Start.Format("2006-01")
	case period.Yearly:
		return r.Start.Format("2006")
	}
	return r.Start.Format("2006-01-02")
}

func (s *AnalyticsServiceImpl) PeriodTurnover(ctx context.Context, p period.Granularity, date time.Time) (analytics.PeriodTurnoverResponse, error) {
	r, err := period.For(p, date)
	if err != nil {
		return analytics.PeriodTurnoverResponse{}, err
	}

	return cached(ctx, s, cacheKey("period", p, date), func() (analytics.PeriodTurnoverResponse, error) {
		totals, err := s.turnoverRepo.Aggregate(ctx, nil, r.Start, r.End)
		if err != nil {
			return analytics.PeriodTurnoverResponse{}, err
		}
		return analytics.PeriodTurnoverResponse{
			Period:    p,
			DateRange: r,
			Label:     periodLabel(p, r),
			Turnover:  analytics.NewBreakdown(totals.Sales, totals.Receipts),
		}, nil
	})
}

// ========== ANNUAL ==========

// AnnualTurnover returns 12 monthly points and one point per day of year, zero-filled.
func (s *AnalyticsServiceImpl) AnnualTurnover(ctx context.Context, year int) (analytics.AnnualTurnoverResponse, error) {
	if year < 2000 || year > 2100 {
		return analytics.AnnualTurnoverResponse{}, analytics.ErrInvalidYear
	}
	loc := s.now().Location()

	return cached(ctx, s, cacheKey("annual", year), func() (analytics.AnnualTurnoverResponse, error) {
		r, _ := period.For(period.Yearly, time.Date(year, time.January, 1, 0, 0, 0, 0, loc))
		days, err := s.turnoverRepo.DailyTotals(ctx, r.Start, r.End)
		if err != nil {
			return analytics.AnnualTurnoverResponse{}, err
		}

		byDay := make(map[string]analytics.DailyTotals, len(days))
		for _, d := range days {
			byDay[d.Day.Format("2006-01-02")] = d
		}

		monthly := make([]analytics.MonthlyPoint, 12)
		for m := range monthly {
			monthly[m] = analytics.MonthlyPoint{
				Month:    fmt.Sprintf("%d-%02d", year, m+1),
				Sales:    decimal.Zero,
				Receipts: decimal.Zero,
				Total:    decimal.Zero,
			}
		}

		daily := make([]analytics.DailyPoint, 0, period.DaysInYear(year))
		for _, day := range period.Days(r.Start, r.End) {
			key := day.Start.Format("2006-01-02")
			d, ok := byDay[key]
			if !ok {
				d = analytics.DailyTotals{Sales: decimal.Zero, Receipts: decimal.Zero}
			}
			total := d.Sales.Add(d.Receipts)
			daily = append(daily, analytics.DailyPoint{Date: key, Sales: d.Sales, Receipts: d.Receipts, Total: total})

			mp := &monthly[day.Start.Month()-1]
			mp.Sales = mp.Sales.Add(d.Sales)
			mp.Receipts = mp.Receipts.Add(d.Receipts)
			mp.Total = mp.Total.Add(total)
		}

		return analytics.AnnualTurnoverResponse{Year: year, Monthly: monthly, Daily: daily}, nil
	})
}

// ========== REALTIME ==========

// Realtime is never cached; it backs the live counters of the dashboard.
func (s *AnalyticsServiceImpl) Realtime(ctx context.Context) (analytics.RealtimeResponse, error) {
	today, _ := period.For(period.Daily, s.now())

	totals, err := s.turnoverRepo.Aggregate(ctx, nil, today.Start, today.End)
	if err != nil {
		return analytics.RealtimeResponse{}, err
	}

	count := totals.SalesCount + totals.ReceiptsCount
	turnover := analytics.NewBreakdown(totals.Sales, totals.Receipts)
	average := decimal.Zero
	if count > 0 {
		average = turnover.Total.Div(decimal.NewFromInt(count)).Round(2)
	}

	return analytics.RealtimeResponse{
		Date:              today.Start.Format("2006-01-02"),
		Turnover:          turnover,
		AverageBasket:     average,
		TotalTransactions: count,
		Clients: analytics.TransactionCounts{
			Sales:    totals.SalesCount,
			Receipts: totals.ReceiptsCount,
			Total:    count,
		},
	}, nil
}

// ========== FORECAST ==========

// Forecast projects the year-to-date daily average over the whole year.
func (s *AnalyticsServiceImpl) Forecast(ctx context.Context, annualObjective *decimal.Decimal) (analytics.ForecastResponse, error) {
	objective := s.annualObjective
	if annualObjective != nil {
		objective = *annualObjective
	}
	if !objective.IsPositive() {
		return analytics.ForecastResponse{}, analytics.ErrInvalidObjective
	}
	return s.forecast(ctx, objective, s.now())
}

func (s *AnalyticsServiceImpl) forecast(ctx context.Context, objective decimal.Decimal, now time.Time) (analytics.ForecastResponse, error) {
	year, _ := period.For(period.Yearly, now)

	totals, err := s.turnoverRepo.Aggregate(ctx, nil, year.Start, now)
	if err != nil {
		return analytics.ForecastResponse{}, err
	}
	ytd := totals.Sales.Add(totals.Receipts)

	daysPassed := decimal.NewFromInt(int64(now.YearDay()))
	daysInYear := decimal.NewFromInt(int64(period.DaysInYear(now.Year())))
	projected := ytd.Div(daysPassed).Mul(daysInYear).Round(2)

	accuracy := analytics.ForecastBehind
	if projected.GreaterThanOrEqual(objective) {
		accuracy = analytics.ForecastOnTrack
	}
	percentage := decimal.Zero
	if objective.IsPositive() {
		percentage = ytd.Div(objective).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return analytics.ForecastResponse{
		Year:               now.Year(),
		AnnualObjective:    objective,
		YTDTurnover:        ytd,
		PercentageAchieved: percentage,
		ProjectedTotal:     projected,
		ForecastAccuracy:   accuracy,
	}, nil
}

// ========== DASHBOARD ==========

// Dashboard loads the barber ranking, the three charts and the forecast concurrently.
func (s *AnalyticsServiceImpl) Dashboard(ctx context.Context) (analytics.DashboardResponse, error) {
	now := s.now()

	return cached(ctx, s, cacheKey("dashboard", now.Format("2006-01-02T15")), func() (analytics.DashboardResponse, error) {
		var resp analytics.DashboardResponse
		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() (err error) {
			resp.Barbers, err = s.barberRanking(gctx, now)
			return err
		})
		g.Go(func() (err error) {
			resp.Charts.Daily, err = s.chart(gctx, now, period.Daily, 7, "2006-01-02")
			return err
		})
		g.Go(func() (err error) {
			resp.Charts.Monthly, err = s.chart(gctx, now, period.Monthly, 12, "2006-01")
			return err
		})
		g.Go(func() (err error) {
			resp.Charts.Yearly, err = s.chart(gctx, now, period.Yearly, 5, "2006")
			return err
		})
		g.Go(func() (err error) {
			resp.Forecast, err = s.forecast(gctx, s.annualObjective, now)
			return err
		})

		if err := g.Wait(); err != nil {
			return analytics.DashboardResponse{}, err
		}
		return resp, nil
	})
}

func (s *AnalyticsServiceImpl) barberRanking(ctx context.Context, now time.Time) ([]analytics.BarberRanking, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	windows := []period.Granularity{period.Daily, period.Weekly, period.Monthly}
	totals := make([]map[string]analytics.TurnoverTotals, len(windows))
	for i, p := range windows {
		r, _ := period.For(p, now)
		if totals[i], err = s.turnoverRepo.AggregateByEmployee(ctx, r.Start, r.End); err != nil {
			return nil, err
		}
	}

	sum := func(t analytics.TurnoverTotals) decimal.Decimal { return t.Sales.Add(t.Receipts) }
	ranking := make([]analytics.BarberRanking, 0, len(employees))
	for _, emp := range employees {
		ranking = append(ranking, analytics.BarberRanking{
			EmployeeID:          emp.ID,
			Name:                emp.FullName(),
			Position:            emp.Position,
			DeductionPercentage: emp.DeductionPercentage,
			DailyTurnover:       sum(totals[0][emp.ID]),
			WeeklyTurnover:      sum(totals[1][emp.ID]),
			MonthlyTurnover:     sum(totals[2][emp.ID]),
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].MonthlyTurnover.GreaterThan(ranking[j].MonthlyTurnover)
	})
	return ranking, nil
}

// chart returns n consecutive buckets of granularity p ending with the one containing now.
func (s *AnalyticsServiceImpl) chart(ctx context.Context, now time.Time, p period.Granularity, n int, layout string) ([]analytics.ChartPoint, error) {
	points := make([]analytics.ChartPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		var ref time.Time
		switch p {
		case period.Daily:
			ref = now.AddDate(0, 0, -i)
		case period.Monthly:
			ref = time.Date(now.Year(), now.Month()-time.Month(i), 1, 12, 0, 0, 0, now.Location())
		default:
			ref = time.Date(now.Year()-i, time.January, 1, 12, 0, 0, 0, now.Location())
		}
		r, err := period.For(p, ref)
		if err != nil {
			return nil, err
		}

		totals, err := s.turnoverRepo.Aggregate(ctx, nil, r.Start, r.End)
		if err != nil {
			return nil, err
		}
		points = append(points, analytics.ChartPoint{
			Label:    r.Start.Format(layout),
			Turnover: totals.Sales.Add(totals.Receipts),
		})
	}
	return points, nil
}

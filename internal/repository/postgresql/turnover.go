package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/database"
)

type turnoverRepositoryImpl struct {
	db *database.DB
}

func NewTurnoverRepository(db *database.DB) analytics.TurnoverRepository {
	return &turnoverRepositoryImpl{db: db}
}

// Aggregate sums sales and receipts independently over [start, end]. Sums are never NULL.
func (r *turnoverRepositoryImpl) Aggregate(ctx context.Context, employeeID *string, start, end time.Time) (analytics.TurnoverTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COALESCE(SUM(amount), 0) FROM sales
			  WHERE date >= $1 AND date <= $2 AND ($3::uuid IS NULL OR employee_id = $3)),
			(SELECT COUNT(*) FROM sales
			  WHERE date >= $1 AND date <= $2 AND ($3::uuid IS NULL OR employee_id = $3)),
			(SELECT COALESCE(SUM(amount), 0) FROM receipts
			  WHERE date >= $1 AND date <= $2 AND ($3::uuid IS NULL OR employee_id = $3)),
			(SELECT COUNT(*) FROM receipts
			  WHERE date >= $1 AND date <= $2 AND ($3::uuid IS NULL OR employee_id = $3))
	`

	var t analytics.TurnoverTotals
	err := q.QueryRow(ctx, query, start, end, employeeID).Scan(&t.Sales, &t.SalesCount, &t.Receipts, &t.ReceiptsCount)
	if err != nil {
		return analytics.TurnoverTotals{}, fmt.Errorf("failed to aggregate turnover: %w", err)
	}
	return t, nil
}

// AggregateByEmployee returns totals keyed by employee id. Employees without revenue are absent.
func (r *turnoverRepositoryImpl) AggregateByEmployee(ctx context.Context, start, end time.Time) (map[string]analytics.TurnoverTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id,
			   COALESCE(SUM(amount) FILTER (WHERE kind = 'sale'), 0),
			   COUNT(*) FILTER (WHERE kind = 'sale'),
			   COALESCE(SUM(amount) FILTER (WHERE kind = 'receipt'), 0),
			   COUNT(*) FILTER (WHERE kind = 'receipt')
		FROM (
			SELECT employee_id, amount, 'sale' AS kind FROM sales WHERE date >= $1 AND date <= $2
			UNION ALL
			SELECT employee_id, amount, 'receipt' AS kind FROM receipts WHERE date >= $1 AND date <= $2
		) revenue
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate turnover by employee: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]analytics.TurnoverTotals)
	for rows.Next() {
		var id string
		var t analytics.TurnoverTotals
		if err := rows.Scan(&id, &t.Sales, &t.SalesCount, &t.Receipts, &t.ReceiptsCount); err != nil {
			return nil, fmt.Errorf("failed to scan employee turnover: %w", err)
		}
		totals[id] = t
	}
	return totals, rows.Err()
}

// DailyTotals buckets revenue per calendar day in the session time zone.
func (r *turnoverRepositoryImpl) DailyTotals(ctx context.Context, start, end time.Time) ([]analytics.DailyTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT day::date,
			   COALESCE(SUM(amount) FILTER (WHERE kind = 'sale'), 0),
			   COALESCE(SUM(amount) FILTER (WHERE kind = 'receipt'), 0)
		FROM (
			SELECT date_trunc('day', date) AS day, amount, 'sale' AS kind FROM sales WHERE date >= $1 AND date <= $2
			UNION ALL
			SELECT date_trunc('day', date) AS day, amount, 'receipt' AS kind FROM receipts WHERE date >= $1 AND date <= $2
		) revenue
		GROUP BY day
		ORDER BY day
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily turnover: %w", err)
	}
	defer rows.Close()

	var days []analytics.DailyTotals
	for rows.Next() {
		var d analytics.DailyTotals
		if err := rows.Scan(&d.Day, &d.Sales, &d.Receipts); err != nil {
			return nil, fmt.Errorf("failed to scan daily turnover: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

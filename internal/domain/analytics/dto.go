package analytics

import (
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

// TurnoverBreakdown splits revenue into package sales and free receipts. Total = Sales + Receipts.
type TurnoverBreakdown struct {
	Sales    decimal.Decimal `json:"sales"`
	Receipts decimal.Decimal `json:"receipts"`
	Total    decimal.Decimal `json:"total"`
}

func NewBreakdown(sales, receipts decimal.Decimal) TurnoverBreakdown {
	return TurnoverBreakdown{Sales: sales, Receipts: receipts, Total: sales.Add(receipts)}
}

type TransactionCounts struct {
	Sales    int64 `json:"sales"`
	Receipts int64 `json:"receipts"`
	Total    int64 `json:"total"`
}

// ========== QUERY ==========

// TurnoverQuery is the common period/date/employee query of the analytics endpoints.
type TurnoverQuery struct {
	Period     period.Granularity
	Date       time.Time
	EmployeeID *string
}

// ========== TURNOVER ==========

type TurnoverResponse struct {
	Period       period.Granularity `json:"period"`
	DateRange    period.Range       `json:"date_range"`
	Turnover     TurnoverBreakdown  `json:"turnover"`
	Transactions TransactionCounts  `json:"transactions"`
}

// ========== EVOLUTION ==========

type MonthlyPoint struct {
	Month    string          `json:"month"` // Format: "YYYY-MM"
	Sales    decimal.Decimal `json:"sales"`
	Receipts decimal.Decimal `json:"receipts"`
	Total    decimal.Decimal `json:"total"`
}

type EvolutionResponse struct {
	Months int            `json:"months"`
	Data   []MonthlyPoint `json:"data"`
}

// ========== PROFIT ==========

type ProfitResponse struct {
	Period    period.Granularity `json:"period"`
	DateRange period.Range       `json:"date_range"`
	Turnover  decimal.Decimal    `json:"turnover"`
	Expenses  decimal.Decimal    `json:"expenses"`
	Profit    decimal.Decimal    `json:"profit"`
}

// ========== PERFORMANCE ==========

type EmployeePerformance struct {
	EmployeeID          string          `json:"employee_id"`
	EmployeeName        string          `json:"employee_name"`
	Sales               decimal.Decimal `json:"sales"`
	Receipts            decimal.Decimal `json:"receipts"`
	TotalTurnover       decimal.Decimal `json:"total_turnover"`
	DeductionPercentage decimal.Decimal `json:"deduction_percentage"`
	NetTurnover         decimal.Decimal `json:"net_turnover"`
}

type PerformanceResponse struct {
	Period    period.Granularity    `json:"period"`
	DateRange period.Range          `json:"date_range"`
	Employees []EmployeePerformance `json:"employees"`
}

// ========== PERIOD TURNOVER (daily / weekly / monthly) ==========

type PeriodTurnoverResponse struct {
	Period    period.Granularity `json:"period"`
	DateRange period.Range       `json:"date_range"`
	Label     string             `json:"label"` // day "YYYY-MM-DD", week start, or month "YYYY-MM"
	Turnover  TurnoverBreakdown  `json:"turnover"`
}

// ========== ANNUAL ==========

type DailyPoint struct {
	Date     string          `json:"date"` // Format: "YYYY-MM-DD"
	Sales    decimal.Decimal `json:"sales"`
	Receipts decimal.Decimal `json:"receipts"`
	Total    decimal.Decimal `json:"total"`
}

type AnnualTurnoverResponse struct {
	Year    int            `json:"year"`
	Monthly []MonthlyPoint `json:"monthly"`
	Daily   []DailyPoint   `json:"daily"`
}

// ========== REALTIME ==========

type RealtimeResponse struct {
	Date              string            `json:"date"`
	Turnover          TurnoverBreakdown `json:"turnover"`
	AverageBasket     decimal.Decimal   `json:"average_basket"`
	TotalTransactions int64             `json:"total_transactions"`
	Clients           TransactionCounts `json:"clients"`
}

// ========== FORECAST ==========

const (
	ForecastOnTrack = "on_track"
	ForecastBehind  = "behind"
)

type ForecastResponse struct {
	Year               int             `json:"year"`
	AnnualObjective    decimal.Decimal `json:"annual_objective"`
	YTDTurnover        decimal.Decimal `json:"ytd_turnover"`
	PercentageAchieved decimal.Decimal `json:"percentage_achieved"`
	ProjectedTotal     decimal.Decimal `json:"projected_total"`
	ForecastAccuracy   string          `json:"forecast_accuracy"`
}

// ========== DASHBOARD ==========

type BarberRanking struct {
	EmployeeID          string          `json:"employee_id"`
	Name                string          `json:"name"`
	Position            string          `json:"position"`
	DeductionPercentage decimal.Decimal `json:"deduction_percentage"`
	DailyTurnover       decimal.Decimal `json:"daily_turnover"`
	WeeklyTurnover      decimal.Decimal `json:"weekly_turnover"`
	MonthlyTurnover     decimal.Decimal `json:"monthly_turnover"`
}

type ChartPoint struct {
	Label    string          `json:"label"`
	Turnover decimal.Decimal `json:"turnover"`
}

type DashboardCharts struct {
	Daily   []ChartPoint `json:"daily"`   // last 7 days
	Monthly []ChartPoint `json:"monthly"` // last 12 months
	Yearly  []ChartPoint `json:"yearly"`  // last 5 years
}

// DashboardResponse is the combined admin dashboard
type DashboardResponse struct {
	Barbers  []BarberRanking  `json:"barbers"`
	Charts   DashboardCharts  `json:"charts"`
	Forecast ForecastResponse `json:"forecast"`
}

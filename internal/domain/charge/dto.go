package charge

import (
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AdminChargeResponse struct {
	ID             string          `json:"id"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	Rent           decimal.Decimal `json:"rent"`
	Charges        decimal.Decimal `json:"charges"`
	OperatingCosts decimal.Decimal `json:"operating_costs"`
	Electricity    decimal.Decimal `json:"electricity"`
	Salaries       decimal.Decimal `json:"salaries"`
	Total          decimal.Decimal `json:"total"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func ToResponse(c AdminCharge) AdminChargeResponse {
	return AdminChargeResponse{
		ID:             c.ID,
		Month:          c.Month,
		Year:           c.Year,
		Rent:           c.Rent,
		Charges:        c.Charges,
		OperatingCosts: c.OperatingCosts,
		Electricity:    c.Electricity,
		Salaries:       c.Salaries,
		Total:          c.Total(),
		UpdatedAt:      c.UpdatedAt,
	}
}

// UpsertAdminChargeRequest writes the costs of (month, year). Month and year default to the current month.
type UpsertAdminChargeRequest struct {
	Month          int             `json:"month" validate:"omitempty,min=1,max=12"`
	Year           int             `json:"year" validate:"omitempty,min=2020,max=2100"`
	Rent           decimal.Decimal `json:"rent" validate:"gte=0"`
	Charges        decimal.Decimal `json:"charges" validate:"gte=0"`
	OperatingCosts decimal.Decimal `json:"operating_costs" validate:"gte=0"`
	Electricity    decimal.Decimal `json:"electricity" validate:"gte=0"`
	Salaries       decimal.Decimal `json:"salaries" validate:"gte=0"`
}

func (r *UpsertAdminChargeRequest) Validate() error {
	errs := validator.Struct(r)
	return errs.Err()
}

// DailySummary tracks today's turnover against the monthly share of the annual objective.
type DailySummary struct {
	Date                 string          `json:"date"`
	DailyTurnover        decimal.Decimal `json:"daily_turnover"`
	MonthlyTurnover      decimal.Decimal `json:"monthly_turnover"`
	MonthlyObjective     decimal.Decimal `json:"monthly_objective"`
	RemainingToObjective decimal.Decimal `json:"remaining_to_objective"`
	DaysLeftInMonth      int             `json:"days_left_in_month"`
	AverageDailyNeeded   decimal.Decimal `json:"average_daily_needed"`
	TotalCharges         decimal.Decimal `json:"total_charges"`
}

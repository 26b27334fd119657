package goal

import (
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GoalResponse struct {
	ID                  string          `json:"id"`
	EmployeeID          string          `json:"employee_id"`
	EmployeeName        *string         `json:"employee_name,omitempty"`
	Month               int             `json:"month"`
	Year                int             `json:"year"`
	MonthlyTarget       decimal.Decimal `json:"monthly_target"`
	DailyTarget         decimal.Decimal `json:"daily_target"`
	CurrentMonthlyTotal decimal.Decimal `json:"current_monthly_total"`
	Remaining           decimal.Decimal `json:"remaining"`
	RemainingDays       int             `json:"remaining_days"`
	CarryOverAmount     decimal.Decimal `json:"carry_over_amount"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func ToResponse(g Goal) GoalResponse {
	return GoalResponse{
		ID:                  g.ID,
		EmployeeID:          g.EmployeeID,
		EmployeeName:        g.EmployeeName,
		Month:               g.Month,
		Year:                g.Year,
		MonthlyTarget:       g.MonthlyTarget,
		DailyTarget:         g.DailyTarget,
		CurrentMonthlyTotal: g.CurrentMonthlyTotal,
		Remaining:           g.Remaining(),
		RemainingDays:       g.RemainingDays,
		CarryOverAmount:     g.CarryOverAmount,
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
	}
}

type CreateGoalRequest struct {
	EmployeeID    string          `json:"employee_id" validate:"required,uuid"`
	Month         int             `json:"month" validate:"min=1,max=12"`
	Year          int             `json:"year" validate:"min=2020,max=2100"`
	MonthlyTarget decimal.Decimal `json:"monthly_target" validate:"gte=0"`
	DailyTarget   decimal.Decimal `json:"daily_target" validate:"gte=0"`
	RemainingDays int             `json:"remaining_days" validate:"min=1,max=31"`
}

func (r *CreateGoalRequest) Validate() error {
	errs := validator.Struct(r)
	return errs.Err()
}

// UpdateGoalRequest changes targets only; employee and period are fixed at creation.
type UpdateGoalRequest struct {
	ID              string           `json:"-"`
	MonthlyTarget   *decimal.Decimal `json:"monthly_target,omitempty" validate:"omitempty,gte=0"`
	DailyTarget     *decimal.Decimal `json:"daily_target,omitempty" validate:"omitempty,gte=0"`
	RemainingDays   *int             `json:"remaining_days,omitempty" validate:"omitempty,min=1,max=31"`
	CarryOverAmount *decimal.Decimal `json:"carry_over_amount,omitempty" validate:"omitempty,gte=0"`
}

func (r *UpdateGoalRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	return errs.Err()
}

type GoalFilter struct {
	EmployeeID *string
	Month      *int
	Year       *int
}

// ========== CARRY-OVER ==========

// CarryOverAllocation is the share credited to one employee
type CarryOverAllocation struct {
	EmployeeID string          `json:"employee_id"`
	GoalID     string          `json:"goal_id"`
	Amount     decimal.Decimal `json:"amount"`
	Created    bool            `json:"created"` // true when a new goal was opened for the share
}

type CarryOverResult struct {
	SourceMonth         int                   `json:"source_month"`
	SourceYear          int                   `json:"source_year"`
	TargetMonth         int                   `json:"target_month"`
	TargetYear          int                   `json:"target_year"`
	TotalUnmet          decimal.Decimal       `json:"total_unmet"`
	ContributingGoalIDs []string              `json:"contributing_goal_ids"`
	Allocations         []CarryOverAllocation `json:"allocations"`
}

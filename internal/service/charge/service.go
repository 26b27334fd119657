package charge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/charge"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

type AdminChargeServiceImpl struct {
	chargeRepo      charge.AdminChargeRepository
	aggregator      analytics.TurnoverAggregator
	annualObjective decimal.Decimal
	now             func() time.Time
}

func NewAdminChargeService(
	chargeRepo charge.AdminChargeRepository,
	aggregator analytics.TurnoverAggregator,
	annualObjective decimal.Decimal,
	now func() time.Time,
) charge.AdminChargeService {
	return &AdminChargeServiceImpl{
		chargeRepo:      chargeRepo,
		aggregator:      aggregator,
		annualObjective: annualObjective,
		now:             now,
	}
}

func (s *AdminChargeServiceImpl) List(ctx context.Context) ([]charge.AdminChargeResponse, error) {
	charges, err := s.chargeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin charges: %w", err)
	}

	out := make([]charge.AdminChargeResponse, 0, len(charges))
	for _, c := range charges {
		out = append(out, charge.ToResponse(c))
	}
	return out, nil
}

// Upsert writes the costs of req's month, defaulting to the current one.
func (s *AdminChargeServiceImpl) Upsert(ctx context.Context, req charge.UpsertAdminChargeRequest) (charge.AdminChargeResponse, error) {
	if err := req.Validate(); err != nil {
		return charge.AdminChargeResponse{}, err
	}

	now := s.now()
	if req.Month == 0 {
		req.Month = int(now.Month())
	}
	if req.Year == 0 {
		req.Year = now.Year()
	}

	c, err := s.chargeRepo.Upsert(ctx, charge.AdminCharge{
		Month:          req.Month,
		Year:           req.Year,
		Rent:           req.Rent.Round(2),
		Charges:        req.Charges.Round(2),
		OperatingCosts: req.OperatingCosts.Round(2),
		Electricity:    req.Electricity.Round(2),
		Salaries:       req.Salaries.Round(2),
	})
	if err != nil {
		return charge.AdminChargeResponse{}, err
	}
	return charge.ToResponse(c), nil
}

func (s *AdminChargeServiceImpl) ChargesFor(ctx context.Context, month, year int) (decimal.Decimal, error) {
	c, err := s.chargeRepo.GetByPeriod(ctx, month, year)
	if err == nil {
		return c.Total(), nil
	}
	if !errors.Is(err, charge.ErrAdminChargeNotFound) {
		return decimal.Zero, fmt.Errorf("failed to get admin charges: %w", err)
	}

	c, err = s.chargeRepo.GetLatest(ctx)
	if errors.Is(err, charge.ErrAdminChargeNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get latest admin charges: %w", err)
	}
	return c.Total(), nil
}

// DailySummary compares the month so far against a twelfth of the annual objective.
func (s *AdminChargeServiceImpl) DailySummary(ctx context.Context) (charge.DailySummary, error) {
	now := s.now()
	today, _ := period.For(period.Daily, now)
	month, _ := period.For(period.Monthly, now)

	daily, err := s.aggregator.Turnover(ctx, nil, today.Start, today.End)
	if err != nil {
		return charge.DailySummary{}, err
	}
	monthly, err := s.aggregator.Turnover(ctx, nil, month.Start, month.End)
	if err != nil {
		return charge.DailySummary{}, err
	}
	totalCharges, err := s.ChargesFor(ctx, int(now.Month()), now.Year())
	if err != nil {
		return charge.DailySummary{}, err
	}

	objective := s.annualObjective.Div(decimal.NewFromInt(12)).Round(2)
	remaining := decimal.Max(decimal.Zero, objective.Sub(monthly.Total))
	daysLeft := period.DaysInMonth(int(now.Month()), now.Year()) - now.Day()

	averageNeeded := decimal.Zero
	if daysLeft > 0 {
		averageNeeded = remaining.Div(decimal.NewFromInt(int64(daysLeft))).Round(2)
	}

	return charge.DailySummary{
		Date:                 today.Start.Format("2006-01-02"),
		DailyTurnover:        daily.Total,
		MonthlyTurnover:      monthly.Total,
		MonthlyObjective:     objective,
		RemainingToObjective: remaining,
		DaysLeftInMonth:      daysLeft,
		AverageDailyNeeded:   averageNeeded,
		TotalCharges:         totalCharges,
	}, nil
}

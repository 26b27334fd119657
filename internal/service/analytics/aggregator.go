package analytics

import (
	"context"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/analytics"
)

type TurnoverAggregatorImpl struct {
	turnoverRepo analytics.TurnoverRepository
}

func NewTurnoverAggregator(turnoverRepo analytics.TurnoverRepository) analytics.TurnoverAggregator {
	return &TurnoverAggregatorImpl{turnoverRepo: turnoverRepo}
}

// Turnover sums sales and receipts dated inside [start, end]; a nil employeeID covers the whole salon.
func (a *TurnoverAggregatorImpl) Turnover(ctx context.Context, employeeID *string, start, end time.Time) (analytics.TurnoverBreakdown, error) {
	totals, err := a.turnoverRepo.Aggregate(ctx, employeeID, start, end)
	if err != nil {
		return analytics.TurnoverBreakdown{}, err
	}
	return analytics.NewBreakdown(totals.Sales, totals.Receipts), nil
}

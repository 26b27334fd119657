package revenue

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/goal"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/sse"
)

// effects runs what follows every committed revenue write. None of it can fail the write.
type effects struct {
	refresher   goal.GoalRefresher
	invalidator analytics.CacheInvalidator
	publisher   sse.Publisher
}

// after refreshes the goals covering dates, drops cached reports and pushes event.
// The refresher owns month bucketing, so only identical instants are skipped here.
func (e effects) after(ctx context.Context, employeeID string, dates []time.Time, event sse.Event) {
	for i, d := range dates {
		if i > 0 && d.Equal(dates[i-1]) {
			continue
		}
		if err := e.refresher.RefreshForEmployee(ctx, employeeID, d); err != nil {
			slog.Warn("failed to refresh goal", "employee_id", employeeID, "date", d, "error", err)
		}
	}

	e.invalidator.InvalidateCache(ctx)
	e.publisher.PublishToMany([]string{sse.TopicEmployee(employeeID), sse.TopicAdmins}, event)
}

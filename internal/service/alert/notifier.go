package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/goal"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/sse"
	"github.com/shopspring/decimal"
)

type NotifierImpl struct {
	goalRepo  goal.GoalRepository
	alertRepo alert.AlertRepository
	publisher sse.Publisher
	now       func() time.Time
}

func NewNotifier(goalRepo goal.GoalRepository, alertRepo alert.AlertRepository, publisher sse.Publisher, now func() time.Time) alert.Notifier {
	return &NotifierImpl{
		goalRepo:  goalRepo,
		alertRepo: alertRepo,
		publisher: publisher,
		now:       now,
	}
}

// SendDailyAlerts reminds every employee with a goal this month of what is left to reach it.
// Every goal gets a reminder, including goals already met.
func (n *NotifierImpl) SendDailyAlerts(ctx context.Context) (int, error) {
	now := n.now()
	goals, err := n.goalRepo.ListByPeriod(ctx, int(now.Month()), now.Year())
	if err != nil {
		return 0, fmt.Errorf("failed to list current goals: %w", err)
	}
	if len(goals) == 0 {
		return 0, nil
	}

	alerts := make([]alert.Alert, 0, len(goals))
	remaining := make([]decimal.Decimal, 0, len(goals))
	for _, g := range goals {
		left := g.Remaining()
		remaining = append(remaining, left)
		alerts = append(alerts, alert.Alert{
			EmployeeID: g.EmployeeID,
			Type:       alert.TypeMonthlyObjective,
			Message: fmt.Sprintf("Objectif mensuel: %s€, restant à atteindre: %s€",
				g.MonthlyTarget.StringFixed(2), left.StringFixed(2)),
			Data: map[string]interface{}{
				"monthly_target": g.MonthlyTarget.StringFixed(2),
				"remaining":      left.StringFixed(2),
			},
			SentAt: now,
		})
	}

	created, err := n.alertRepo.CreateBatch(ctx, alerts)
	if err != nil {
		return 0, fmt.Errorf("failed to create daily alerts: %w", err)
	}

	for i, a := range created {
		n.publisher.PublishToMany(
			[]string{sse.TopicEmployee(a.EmployeeID), sse.TopicAdmins},
			sse.Event{Name: alert.EventName(a.EmployeeID), Data: alert.Payload{Message: a.Message, Remaining: remaining[i]}},
		)
	}

	slog.Info("daily alerts sent", "count", len(created), "month", int(now.Month()), "year", now.Year())
	return len(created), nil
}

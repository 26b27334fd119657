package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/goal"
)

const (
	JobGoalCarryOver = "goal_carry_over"
	JobDailyAlerts   = "daily_objective_alerts"
)

type GoalJobs struct {
	carryOver     goal.CarryOverService
	notifier      alert.Notifier
	carryOverSpec string
	alertsSpec    string
}

func NewGoalJobs(carryOver goal.CarryOverService, notifier alert.Notifier, carryOverSpec, alertsSpec string) *GoalJobs {
	return &GoalJobs{
		carryOver:     carryOver,
		notifier:      notifier,
		carryOverSpec: carryOverSpec,
		alertsSpec:    alertsSpec,
	}
}

func (j *GoalJobs) RegisterJobs(scheduler *Scheduler) error {
	if err := scheduler.AddJob(JobGoalCarryOver, j.carryOverSpec, j.ProcessCarryOver); err != nil {
		return err
	}
	return scheduler.AddJob(JobDailyAlerts, j.alertsSpec, j.SendDailyAlerts)
}

// ProcessCarryOver distributes last month's shortfall. A month already processed is not an error.
func (j *GoalJobs) ProcessCarryOver(ctx context.Context) error {
	slog.Info("Cron: Running monthly carry-over job")

	result, err := j.carryOver.Run(ctx)
	if errors.Is(err, goal.ErrCarryOverAlreadyProcessed) {
		slog.Info("Cron: Carry-over already processed", "month", result.SourceMonth, "year", result.SourceYear)
		return nil
	}
	if err != nil {
		return fmt.Errorf("carry-over failed: %w", err)
	}

	slog.Info("Cron: Processed carry-over",
		"total_unmet", result.TotalUnmet.StringFixed(2),
		"recipients", len(result.Allocations),
		"source_month", result.SourceMonth,
		"source_year", result.SourceYear,
	)
	return nil
}

func (j *GoalJobs) SendDailyAlerts(ctx context.Context) error {
	slog.Info("Cron: Running daily alert job")

	sent, err := j.notifier.SendDailyAlerts(ctx)
	if err != nil {
		return fmt.Errorf("daily alerts failed after %d alerts: %w", sent, err)
	}

	slog.Info("Cron: Daily alerts sent", "count", sent)
	return nil
}

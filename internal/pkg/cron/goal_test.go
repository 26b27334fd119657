package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/goal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCarryOver struct {
	result goal.CarryOverResult
	err    error
	calls  int
}

func (f *fakeCarryOver) Run(context.Context) (goal.CarryOverResult, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeCarryOver) History(context.Context) ([]goal.CarryOverRun, error) {
	return nil, nil
}

type fakeNotifier struct {
	sent  int
	err   error
	calls int
}

func (f *fakeNotifier) SendDailyAlerts(context.Context) (int, error) {
	f.calls++
	return f.sent, f.err
}

func TestGoalJobs_RegisterJobs(t *testing.T) {
	s := NewScheduler(nil, nil)
	jobs := NewGoalJobs(&fakeCarryOver{}, &fakeNotifier{}, "0 0 1 * *", "0 9 * * *")

	require.NoError(t, jobs.RegisterJobs(s))

	registered := s.Jobs()
	require.Len(t, registered, 2)
	assert.Equal(t, JobDailyAlerts, registered[0].Name)
	assert.Equal(t, "0 9 * * *", registered[0].Spec)
	assert.Equal(t, JobGoalCarryOver, registered[1].Name)
	assert.Equal(t, "0 0 1 * *", registered[1].Spec)
}

func TestGoalJobs_CarryOverAlreadyProcessedIsNotAFailure(t *testing.T) {
	co := &fakeCarryOver{err: goal.ErrCarryOverAlreadyProcessed}
	jobs := NewGoalJobs(co, &fakeNotifier{}, "0 0 1 * *", "0 9 * * *")

	assert.NoError(t, jobs.ProcessCarryOver(context.Background()))
	assert.Equal(t, 1, co.calls)
}

func TestGoalJobs_CarryOverFailurePropagates(t *testing.T) {
	boom := errors.New("db down")
	jobs := NewGoalJobs(&fakeCarryOver{err: boom}, &fakeNotifier{}, "0 0 1 * *", "0 9 * * *")

	assert.ErrorIs(t, jobs.ProcessCarryOver(context.Background()), boom)
}

func TestGoalJobs_CarryOverSuccess(t *testing.T) {
	co := &fakeCarryOver{result: goal.CarryOverResult{TotalUnmet: decimal.NewFromInt(150)}}
	jobs := NewGoalJobs(co, &fakeNotifier{}, "0 0 1 * *", "0 9 * * *")

	assert.NoError(t, jobs.ProcessCarryOver(context.Background()))
}

func TestGoalJobs_DailyAlerts(t *testing.T) {
	n := &fakeNotifier{sent: 3}
	jobs := NewGoalJobs(&fakeCarryOver{}, n, "0 0 1 * *", "0 9 * * *")

	assert.NoError(t, jobs.SendDailyAlerts(context.Background()))
	assert.Equal(t, 1, n.calls)

	n.err = errors.New("insert failed")
	assert.Error(t, jobs.SendDailyAlerts(context.Background()))
}

package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/goal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type goalRepo struct{ s *Store }

func (s *Store) Goals() goal.GoalRepository { return goalRepo{s} }

func (r goalRepo) joined(g goal.Goal) goal.Goal {
	g.EmployeeName = r.s.employeeName(g.EmployeeID)
	return g
}

func (r goalRepo) Create(_ context.Context, g goal.Goal) (goal.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.goals {
		if other.EmployeeID == g.EmployeeID && other.Month == g.Month && other.Year == g.Year {
			return goal.Goal{}, goal.ErrGoalAlreadyExists
		}
	}
	g.ID = uuid.NewString()
	g.CreatedAt = r.s.now()
	g.UpdatedAt = g.CreatedAt
	r.s.goals = append(r.s.goals, g)
	return r.joined(g), nil
}

func (r goalRepo) GetByID(_ context.Context, id string) (goal.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, g := range r.s.goals {
		if g.ID == id {
			return r.joined(g), nil
		}
	}
	return goal.Goal{}, goal.ErrGoalNotFound
}

func (r goalRepo) GetByEmployeePeriod(_ context.Context, employeeID string, month, year int) (goal.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, g := range r.s.goals {
		if g.EmployeeID == employeeID && g.Month == month && g.Year == year {
			return r.joined(g), nil
		}
	}
	return goal.Goal{}, goal.ErrGoalNotFound
}

func (r goalRepo) List(_ context.Context, filter goal.GoalFilter) ([]goal.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []goal.Goal
	for _, g := range r.s.goals {
		if filter.EmployeeID != nil && g.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Month != nil && g.Month != *filter.Month {
			continue
		}
		if filter.Year != nil && g.Year != *filter.Year {
			continue
		}
		out = append(out, r.joined(g))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out, nil
}

func (r goalRepo) ListByPeriod(ctx context.Context, month, year int) ([]goal.Goal, error) {
	return r.List(ctx, goal.GoalFilter{Month: &month, Year: &year})
}

func (r goalRepo) update(id string, fn func(g *goal.Goal)) (goal.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.goals {
		g := &r.s.goals[i]
		if g.ID == id {
			fn(g)
			g.UpdatedAt = r.s.now()
			return r.joined(*g), nil
		}
	}
	return goal.Goal{}, goal.ErrGoalNotFound
}

func (r goalRepo) Update(_ context.Context, req goal.UpdateGoalRequest) (goal.Goal, error) {
	return r.update(req.ID, func(g *goal.Goal) {
		if req.MonthlyTarget != nil {
			g.MonthlyTarget = *req.MonthlyTarget
		}
		if req.DailyTarget != nil {
			g.DailyTarget = *req.DailyTarget
		}
		if req.RemainingDays != nil {
			g.RemainingDays = *req.RemainingDays
		}
		if req.CarryOverAmount != nil {
			g.CarryOverAmount = *req.CarryOverAmount
		}
	})
}

func (r goalRepo) UpdateCurrentTotal(_ context.Context, id string, total decimal.Decimal) error {
	_, err := r.update(id, func(g *goal.Goal) { g.CurrentMonthlyTotal = total })
	return err
}

func (r goalRepo) AddCarryOver(_ context.Context, id string, amount decimal.Decimal) (goal.Goal, error) {
	return r.update(id, func(g *goal.Goal) {
		g.CarryOverAmount = g.CarryOverAmount.Add(amount)
		g.MonthlyTarget = g.MonthlyTarget.Add(amount)
	})
}

func (r goalRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, g := range r.s.goals {
		if g.ID == id {
			r.s.goals = append(r.s.goals[:i], r.s.goals[i+1:]...)
			return nil
		}
	}
	return goal.ErrGoalNotFound
}

type ledgerRepo struct{ s *Store }

func (s *Store) CarryOverLedger() goal.CarryOverLedger { return ledgerRepo{s} }

func (r ledgerRepo) MarkProcessed(_ context.Context, run goal.CarryOverRun) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.runs {
		if existing.Month == run.Month && existing.Year == run.Year {
			return goal.ErrCarryOverAlreadyProcessed
		}
	}
	if run.ProcessedAt.IsZero() {
		run.ProcessedAt = r.s.now()
	}
	r.s.runs = append(r.s.runs, run)
	return nil
}

func (r ledgerRepo) List(_ context.Context) ([]goal.CarryOverRun, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := append([]goal.CarryOverRun(nil), r.s.runs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ProcessedAt.After(out[j].ProcessedAt) })
	return out, nil
}

type alertRepo struct{ s *Store }

func (s *Store) Alerts() alert.AlertRepository { return alertRepo{s} }

func (r alertRepo) Create(ctx context.Context, a alert.Alert) (alert.Alert, error) {
	created, err := r.CreateBatch(ctx, []alert.Alert{a})
	if err != nil {
		return alert.Alert{}, err
	}
	return created[0], nil
}

func (r alertRepo) CreateBatch(_ context.Context, alerts []alert.Alert) ([]alert.Alert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	out := make([]alert.Alert, 0, len(alerts))
	for _, a := range alerts {
		a.ID = uuid.NewString()
		a.IsRead = false
		if a.SentAt.IsZero() {
			a.SentAt = now
		}
		a.CreatedAt = now
		a.UpdatedAt = now
		r.s.alerts = append(r.s.alerts, a)
		a.EmployeeName = r.s.employeeName(a.EmployeeID)
		out = append(out, a)
	}
	return out, nil
}

func (r alertRepo) GetByID(_ context.Context, id string) (alert.Alert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.alerts {
		if a.ID == id {
			a.EmployeeName = r.s.employeeName(a.EmployeeID)
			return a, nil
		}
	}
	return alert.Alert{}, alert.ErrAlertNotFound
}

func (r alertRepo) List(_ context.Context, employeeID *string) ([]alert.Alert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []alert.Alert
	for _, a := range r.s.alerts {
		if employeeID == nil || a.EmployeeID == *employeeID {
			a.EmployeeName = r.s.employeeName(a.EmployeeID)
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SentAt.After(out[j].SentAt) })
	return out, nil
}

func (r alertRepo) CountUnread(_ context.Context, employeeID *string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, a := range r.s.alerts {
		if !a.IsRead && (employeeID == nil || a.EmployeeID == *employeeID) {
			n++
		}
	}
	return n, nil
}

func (r alertRepo) MarkRead(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.alerts {
		if r.s.alerts[i].ID == id {
			r.s.alerts[i].IsRead = true
			r.s.alerts[i].UpdatedAt = r.s.now()
			return nil
		}
	}
	return alert.ErrAlertNotFound
}

func (r alertRepo) MarkAllRead(_ context.Context, employeeID *string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for i := range r.s.alerts {
		a := &r.s.alerts[i]
		if !a.IsRead && (employeeID == nil || a.EmployeeID == *employeeID) {
			a.IsRead = true
			a.UpdatedAt = r.s.now()
			n++
		}
	}
	return n, nil
}

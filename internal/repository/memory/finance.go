package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/charge"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/salary"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type expenseRepo struct{ s *Store }

func (s *Store) Expenses() expense.ExpenseRepository { return expenseRepo{s} }

func (r expenseRepo) Create(_ context.Context, e expense.Expense) (expense.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = uuid.NewString()
	e.CreatedAt = r.s.now()
	e.UpdatedAt = e.CreatedAt
	r.s.expenses = append(r.s.expenses, e)
	return e, nil
}

func (r expenseRepo) GetByID(_ context.Context, id string) (expense.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return expense.Expense{}, expense.ErrExpenseNotFound
}

func (r expenseRepo) List(_ context.Context, filter expense.ExpenseFilter) ([]expense.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []expense.Expense
	for _, e := range r.s.expenses {
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		if filter.StartDate != nil && e.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && e.Date.After(*filter.EndDate) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r expenseRepo) Update(_ context.Context, req expense.UpdateExpenseRequest) (expense.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.expenses {
		e := &r.s.expenses[i]
		if e.ID != req.ID {
			continue
		}
		if req.Category != nil {
			e.Category = *req.Category
		}
		if req.Amount != nil {
			e.Amount = *req.Amount
		}
		if req.Date != nil {
			if d, err := time.Parse("2006-01-02", *req.Date); err == nil {
				e.Date = d
			}
		}
		if req.Description != nil {
			e.Description = req.Description
		}
		e.UpdatedAt = r.s.now()
		return *e, nil
	}
	return expense.Expense{}, expense.ErrExpenseNotFound
}

func (r expenseRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, e := range r.s.expenses {
		if e.ID == id {
			r.s.expenses = append(r.s.expenses[:i], r.s.expenses[i+1:]...)
			return nil
		}
	}
	return expense.ErrExpenseNotFound
}

func (r expenseRepo) Sum(_ context.Context, start, end time.Time) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	total := decimal.Zero
	for _, e := range r.s.expenses {
		if inRange(e.Date, start, end) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

type chargeRepo struct{ s *Store }

func (s *Store) AdminCharges() charge.AdminChargeRepository { return chargeRepo{s} }

func (r chargeRepo) Upsert(_ context.Context, c charge.AdminCharge) (charge.AdminCharge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	for i := range r.s.charges {
		existing := &r.s.charges[i]
		if existing.Month == c.Month && existing.Year == c.Year {
			c.ID = existing.ID
			c.CreatedAt = existing.CreatedAt
			c.UpdatedAt = now
			*existing = c
			return c, nil
		}
	}
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.s.charges = append(r.s.charges, c)
	return c, nil
}

func (r chargeRepo) GetByPeriod(_ context.Context, month, year int) (charge.AdminCharge, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.charges {
		if c.Month == month && c.Year == year {
			return c, nil
		}
	}
	return charge.AdminCharge{}, charge.ErrAdminChargeNotFound
}

func (r chargeRepo) GetLatest(ctx context.Context) (charge.AdminCharge, error) {
	all, _ := r.List(ctx)
	if len(all) == 0 {
		return charge.AdminCharge{}, charge.ErrAdminChargeNotFound
	}
	return all[0], nil
}

func (r chargeRepo) List(_ context.Context) ([]charge.AdminCharge, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := append([]charge.AdminCharge(nil), r.s.charges...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out, nil
}

type salaryRepo struct{ s *Store }

func (s *Store) Salaries() salary.SalaryRepository { return salaryRepo{s} }

func (r salaryRepo) Create(_ context.Context, sal salary.Salary) (salary.Salary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sal.ID = uuid.NewString()
	sal.CreatedAt = r.s.now()
	sal.BaseSalary = sal.BaseSalary.Round(2)
	sal.CommissionPercentage = sal.CommissionPercentage.Round(2)
	sal.TotalSalary = sal.TotalSalary.Round(2)
	r.s.salaries = append(r.s.salaries, sal)
	sal.EmployeeName = r.s.employeeName(sal.EmployeeID)
	return sal, nil
}

func (r salaryRepo) GetByID(_ context.Context, id string) (salary.Salary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sal := range r.s.salaries {
		if sal.ID == id {
			sal.EmployeeName = r.s.employeeName(sal.EmployeeID)
			return sal, nil
		}
	}
	return salary.Salary{}, salary.ErrSalaryNotFound
}

func (r salaryRepo) List(_ context.Context, filter salary.SalaryFilter) ([]salary.Salary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []salary.Salary
	for _, sal := range r.s.salaries {
		if filter.EmployeeID != nil && sal.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.PeriodStart != nil && !sal.PeriodStart.Equal(*filter.PeriodStart) {
			continue
		}
		if filter.PeriodEnd != nil && !sal.PeriodEnd.Equal(*filter.PeriodEnd) {
			continue
		}
		sal.EmployeeName = r.s.employeeName(sal.EmployeeID)
		out = append(out, sal)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PeriodEnd.After(out[j].PeriodEnd) })
	return out, nil
}

package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type userRepo struct{ s *Store }

func (s *Store) Users() user.UserRepository { return userRepo{s} }

func (r userRepo) withEmployee(u user.User) user.User {
	u.EmployeeID = nil
	for _, e := range r.s.employees {
		if e.UserID != nil && *e.UserID == u.ID {
			id := e.ID
			u.EmployeeID = &id
		}
	}
	return u
}

func (r userRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return r.withEmployee(u), nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r userRepo) GetByID(_ context.Context, id string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.ID == id {
			return r.withEmployee(u), nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r userRepo) List(_ context.Context) ([]user.UserWithEmployee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []user.UserWithEmployee
	for _, u := range r.s.users {
		row := user.UserWithEmployee{User: r.withEmployee(u)}
		for _, e := range r.s.employees {
			if e.UserID != nil && *e.UserID == u.ID {
				row.Employee = &user.EmployeeSummary{
					ID:                  e.ID,
					FirstName:           e.FirstName,
					LastName:            e.LastName,
					Position:            e.Position,
					Status:              string(e.Status),
					HireDate:            e.HireDate.Format("2006-01-02"),
					DeductionPercentage: e.DeductionPercentage,
				}
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (r userRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.User{}, user.ErrUserEmailExists
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = r.s.now()
	u.UpdatedAt = u.CreatedAt
	r.s.users = append(r.s.users, u)
	return u, nil
}

func (r userRepo) Update(_ context.Context, req user.UpdateUserRequest) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		u := &r.s.users[i]
		if u.ID != req.ID {
			continue
		}
		if req.Email != nil {
			for _, other := range r.s.users {
				if other.ID != u.ID && strings.EqualFold(other.Email, *req.Email) {
					return user.User{}, user.ErrUserEmailExists
				}
			}
			u.Email = *req.Email
		}
		if req.Username != nil {
			u.Username = *req.Username
		}
		if req.Role != nil {
			u.Role = user.Role(*req.Role)
		}
		if req.Siret != nil {
			u.Siret = req.Siret
		}
		if req.Phone != nil {
			u.Phone = req.Phone
		}
		u.UpdatedAt = r.s.now()
		return r.withEmployee(*u), nil
	}
	return user.User{}, user.ErrUserNotFound
}

func (r userRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, u := range r.s.users {
		if u.ID == id {
			r.s.users = append(r.s.users[:i], r.s.users[i+1:]...)
			return nil
		}
	}
	return user.ErrUserNotFound
}

func (r userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

type employeeRepo struct{ s *Store }

func (s *Store) Employees() employee.EmployeeRepository { return employeeRepo{s} }

func (r employeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e.Email != nil {
		for _, other := range r.s.employees {
			if other.Email != nil && strings.EqualFold(*other.Email, *e.Email) {
				return employee.Employee{}, employee.ErrEmployeeEmailExists
			}
		}
	}
	e.ID = uuid.NewString()
	if e.Status == "" {
		e.Status = employee.StatusActive
	}
	e.CreatedAt = r.s.now()
	e.UpdatedAt = e.CreatedAt
	r.s.employees = append(r.s.employees, e)
	return e, nil
}

func (r employeeRepo) find(match func(employee.Employee) bool) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.employees {
		if match(e) {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r employeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	return r.find(func(e employee.Employee) bool { return e.ID == id })
}

func (r employeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	return r.find(func(e employee.Employee) bool { return e.UserID != nil && *e.UserID == userID })
}

func (r employeeRepo) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []employee.Employee
	for _, e := range r.s.employees {
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if filter.Search != nil && !strings.Contains(strings.ToLower(e.FullName()), strings.ToLower(*filter.Search)) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FullName() < out[j].FullName() })
	return out, nil
}

func (r employeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []employee.Employee
	for _, e := range r.s.employees {
		if e.Status == employee.StatusActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r employeeRepo) update(id string, fn func(e *employee.Employee)) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.employees {
		if r.s.employees[i].ID == id {
			fn(&r.s.employees[i])
			r.s.employees[i].UpdatedAt = r.s.now()
			return r.s.employees[i], nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r employeeRepo) Update(_ context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	return r.update(req.ID, func(e *employee.Employee) {
		if req.FirstName != nil {
			e.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			e.LastName = *req.LastName
		}
		if req.Email != nil {
			e.Email = req.Email
		}
		if req.Phone != nil {
			e.Phone = req.Phone
		}
		if req.Position != nil {
			e.Position = *req.Position
		}
		if req.Salary != nil {
			e.Salary = *req.Salary
		}
		if req.HireDate != nil {
			if d, err := time.Parse("2006-01-02", *req.HireDate); err == nil {
				e.HireDate = d
			}
		}
		if req.Status != nil {
			e.Status = employee.Status(*req.Status)
		}
		if req.DeductionPercentage != nil {
			e.DeductionPercentage = *req.DeductionPercentage
		}
	})
}

func (r employeeRepo) UpdateDeductionPercentage(_ context.Context, id string, percentage decimal.Decimal) error {
	_, err := r.update(id, func(e *employee.Employee) { e.DeductionPercentage = percentage })
	return err
}

func (r employeeRepo) UpdateFilePath(_ context.Context, id string, path string) error {
	_, err := r.update(id, func(e *employee.Employee) { e.FilePath = &path })
	return err
}

func (r employeeRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, e := range r.s.employees {
		if e.ID == id {
			r.s.employees = append(r.s.employees[:i], r.s.employees[i+1:]...)
			return nil
		}
	}
	return employee.ErrEmployeeNotFound
}

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/salon-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	transactor   postgresql.Transactor
	userRepo     user.UserRepository
	employeeRepo employee.EmployeeRepository
}

func NewUserService(transactor postgresql.Transactor, userRepo user.UserRepository, employeeRepo employee.EmployeeRepository) user.UserService {
	return &UserServiceImpl{
		transactor:   transactor,
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
	}
}

func toSummary(emp employee.Employee) *user.EmployeeSummary {
	return &user.EmployeeSummary{
		ID:                  emp.ID,
		FirstName:           emp.FirstName,
		LastName:            emp.LastName,
		Position:            emp.Position,
		Status:              string(emp.Status),
		HireDate:            emp.HireDate.Format("2006-01-02"),
		DeductionPercentage: emp.DeductionPercentage,
	}
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	out := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, user.ToResponse(u.User, u.Employee))
	}
	return out, nil
}

// CreateBarber implements user.UserService. The login and its employee row are written together.
func (s *UserServiceImpl) CreateBarber(ctx context.Context, req user.CreateBarberRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return user.UserResponse{}, user.ErrUserEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hireDate, _ := time.Parse("2006-01-02", req.HireDate)
	firstName, lastName := employee.SplitName(req.Name)

	var (
		newUser user.User
		newEmp  employee.Employee
	)
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		newUser, err = s.userRepo.Create(txCtx, user.User{
			Username:     strings.TrimSpace(req.Name),
			Email:        email,
			PasswordHash: string(hash),
			Role:         user.RoleUser,
			Phone:        req.Phone,
		})
		if err != nil {
			return err
		}

		newEmp, err = s.employeeRepo.Create(txCtx, employee.Employee{
			UserID:              &newUser.ID,
			FirstName:           firstName,
			LastName:            lastName,
			Email:               &email,
			Phone:               req.Phone,
			Position:            req.Position,
			Salary:              decimal.Zero,
			HireDate:            hireDate,
			Status:              employee.StatusActive,
			DeductionPercentage: req.DeductionPercentage,
		})
		return err
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("barber created", "user_id", newUser.ID, "employee_id", newEmp.ID)
	newUser.EmployeeID = &newEmp.ID
	return user.ToResponse(newUser, toSummary(newEmp)), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	current, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &email
		if !strings.EqualFold(email, current.Email) {
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
			}
			if exists {
				return user.UserResponse{}, user.ErrUserEmailExists
			}
		}
	}

	updated, err := s.userRepo.Update(ctx, req)
	if err != nil {
		return user.UserResponse{}, err
	}

	summary, err := s.summaryFor(ctx, updated.ID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(updated, summary), nil
}

func (s *UserServiceImpl) summaryFor(ctx context.Context, userID string) (*user.EmployeeSummary, error) {
	emp, err := s.employeeRepo.GetByUserID(ctx, userID)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return toSummary(emp), nil
}

// Delete implements user.UserService. The linked employee row goes first.
func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	caller, err := jwt.CallerFromContext(ctx)
	if err != nil {
		return err
	}
	if caller.UserID == id {
		return user.ErrCannotDeleteSelf
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp, err := s.employeeRepo.GetByUserID(txCtx, id)
		switch {
		case err == nil:
			if err := s.employeeRepo.Delete(txCtx, emp.ID); err != nil {
				return err
			}
		case !errors.Is(err, employee.ErrEmployeeNotFound):
			return fmt.Errorf("failed to get employee: %w", err)
		}
		return s.userRepo.Delete(txCtx, id)
	})
}

// UpdateDeductionPercentage implements user.UserService.
func (s *UserServiceImpl) UpdateDeductionPercentage(ctx context.Context, req user.UpdateDeductionPercentageRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	emp, err := s.employeeRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return err
	}
	return s.employeeRepo.UpdateDeductionPercentage(ctx, emp.ID, req.DeductionPercentage)
}

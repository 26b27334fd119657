// Package memory holds map-backed repositories used by service and handler tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/charge"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/goal"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/revenue"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/user"
)

// Store is shared by every repository so cross-table reads (turnover, joins) see the same data.
type Store struct {
	mu sync.RWMutex

	users     []user.User
	employees []employee.Employee
	packages  []catalog.Package
	sales     []revenue.Sale
	receipts  []revenue.Receipt
	expenses  []expense.Expense
	charges   []charge.AdminCharge
	goals     []goal.Goal
	runs      []goal.CarryOverRun
	alerts    []alert.Alert
	salaries  []salary.Salary
	tokens    map[string]tokenRow
	now       func() time.Time
}

type tokenRow struct {
	userID    string
	expiresAt time.Time
	revoked   bool
}

func NewStore() *Store {
	return &Store{tokens: make(map[string]tokenRow), now: time.Now}
}

func (s *Store) employeeName(id string) *string {
	for _, e := range s.employees {
		if e.ID == id {
			name := e.FullName()
			return &name
		}
	}
	return nil
}

// Transactor runs fn directly. Services write their idempotence marker first, so a
// conflict leaves nothing behind even without rollback.
type Transactor struct{}

func (Transactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

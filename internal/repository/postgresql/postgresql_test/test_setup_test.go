package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/salon-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// truncated in dependency order; CASCADE covers the rest
var tables = []string{
	"salaries",
	"alerts",
	"carry_over_runs",
	"goals",
	"admin_charges",
	"expenses",
	"receipts",
	"sales",
	"packages",
	"employees",
	"refresh_tokens",
	"users",
}

// newTestDB connects to TEST_DATABASE_URL (migrated with migrations/0001_init.up.sql) and
// empties every table. Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, truncateAll(ctx, db))
	return db
}

func truncateAll(ctx context.Context, db *database.DB) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return tx.Commit(ctx)
}

func createTestEmployee(t *testing.T, db *database.DB, firstName string) employee.Employee {
	t.Helper()

	emp, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		FirstName:           firstName,
		LastName:            "Test",
		Position:            "Barber",
		HireDate:            time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Status:              employee.StatusActive,
		DeductionPercentage: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	return emp
}

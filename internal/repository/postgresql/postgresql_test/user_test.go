package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/salon-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	require.NoError(t, err)

	created, err := repo.Create(ctx, user.User{
		Username:     "Admin",
		Email:        "admin@salon.test",
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	found, err := repo.GetByEmail(ctx, "ADMIN@salon.test")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Nil(t, found.EmployeeID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte("Password123!")))

	exists, err := repo.ExistsByEmail(ctx, "admin@salon.test")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, user.User{Username: "a", Email: "dup@salon.test", PasswordHash: "x", Role: user.RoleUser})
	require.NoError(t, err)

	_, err = repo.Create(ctx, user.User{Username: "b", Email: "Dup@salon.test", PasswordHash: "x", Role: user.RoleUser})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestUserRepository_ListJoinsEmployee(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	u, err := repo.Create(ctx, user.User{Username: "Sam", Email: "sam@salon.test", PasswordHash: "x", Role: user.RoleUser})
	require.NoError(t, err)

	emp := createTestEmployee(t, db, "Sam")
	_, err = db.Exec(ctx, `UPDATE employees SET user_id = $1 WHERE id = $2`, u.ID, emp.ID)
	require.NoError(t, err)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.NotNil(t, users[0].Employee)
	assert.Equal(t, emp.ID, users[0].Employee.ID)
	assert.Equal(t, string(employee.StatusActive), users[0].Employee.Status)
	assert.Equal(t, "2024-01-01", users[0].Employee.HireDate)
}

func TestUserRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	err = repo.Delete(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

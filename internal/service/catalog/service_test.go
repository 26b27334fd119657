package catalog

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/salon-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageService_CreateListAndDeactivate(t *testing.T) {
	svc := NewPackageService(memory.NewStore().Packages())
	ctx := context.Background()

	cut, err := svc.Create(ctx, catalog.CreatePackageRequest{Name: " Coupe ", Price: decimal.RequireFromString("25.005")})
	require.NoError(t, err)
	assert.Equal(t, "Coupe", cut.Name)
	assert.True(t, cut.IsActive)
	assert.Equal(t, "25.01", cut.Price.StringFixed(2))

	_, err = svc.Create(ctx, catalog.CreatePackageRequest{Name: "Barbe", Price: decimal.NewFromInt(15)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, cut.ID))

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Barbe", active[0].Name)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := svc.GetByID(ctx, cut.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestPackageService_Validation(t *testing.T) {
	svc := NewPackageService(memory.NewStore().Packages())

	_, err := svc.Create(context.Background(), catalog.CreatePackageRequest{Name: "X", Price: decimal.Zero})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "price")
}

func TestPackageService_UpdateAndNotFound(t *testing.T) {
	svc := NewPackageService(memory.NewStore().Packages())
	ctx := context.Background()

	p, err := svc.Create(ctx, catalog.CreatePackageRequest{Name: "Coupe", Price: decimal.NewFromInt(20)})
	require.NoError(t, err)

	price := decimal.NewFromInt(22)
	updated, err := svc.Update(ctx, catalog.UpdatePackageRequest{ID: p.ID, Price: &price})
	require.NoError(t, err)
	assert.True(t, price.Equal(updated.Price))

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, catalog.ErrPackageNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), catalog.ErrPackageNotFound)
}

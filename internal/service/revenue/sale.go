package revenue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/goal"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/revenue"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/sse"
	"github.com/shopspring/decimal"
)

type SaleServiceImpl struct {
	saleRepo     revenue.SaleRepository
	packageRepo  catalog.PackageRepository
	employeeRepo employee.EmployeeRepository
	effects      effects
	now          func() time.Time
}

func NewSaleService(
	saleRepo revenue.SaleRepository,
	packageRepo catalog.PackageRepository,
	employeeRepo employee.EmployeeRepository,
	refresher goal.GoalRefresher,
	invalidator analytics.CacheInvalidator,
	publisher sse.Publisher,
	now func() time.Time,
) revenue.SaleService {
	return &SaleServiceImpl{
		saleRepo:     saleRepo,
		packageRepo:  packageRepo,
		employeeRepo: employeeRepo,
		effects:      effects{refresher: refresher, invalidator: invalidator, publisher: publisher},
		now:          now,
	}
}

// priceOf returns the current price of an active package.
func (s *SaleServiceImpl) priceOf(ctx context.Context, packageID string) (decimal.Decimal, error) {
	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if errors.Is(err, catalog.ErrPackageNotFound) {
		return decimal.Zero, revenue.ErrInvalidPackage
	}
	if err != nil {
		return decimal.Zero, err
	}
	if !pkg.IsActive {
		return decimal.Zero, revenue.ErrInvalidPackage
	}
	return pkg.Price, nil
}

func (s *SaleServiceImpl) List(ctx context.Context, filter revenue.RevenueFilter) ([]revenue.SaleResponse, error) {
	sales, err := s.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	out := make([]revenue.SaleResponse, 0, len(sales))
	for _, sale := range sales {
		out = append(out, revenue.ToSaleResponse(sale))
	}
	return out, nil
}

// Create records a sale at the package's current price; the client never sends an amount.
func (s *SaleServiceImpl) Create(ctx context.Context, req revenue.CreateSaleRequest) (revenue.SaleResponse, error) {
	if err := req.Validate(); err != nil {
		return revenue.SaleResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return revenue.SaleResponse{}, err
	}

	price, err := s.priceOf(ctx, req.PackageID)
	if err != nil {
		return revenue.SaleResponse{}, err
	}

	date := s.now()
	if req.Date != nil {
		date = *req.Date
	}

	sale, err := s.saleRepo.Create(ctx, revenue.Sale{
		EmployeeID:  req.EmployeeID,
		PackageID:   req.PackageID,
		Amount:      price,
		ClientName:  req.ClientName,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		return revenue.SaleResponse{}, err
	}

	resp := revenue.ToSaleResponse(sale)
	s.effects.after(ctx, sale.EmployeeID, []time.Time{sale.Date}, sse.Event{
		Name: revenue.EventSaleCreated,
		Data: revenue.SaleEvent{EmployeeID: sale.EmployeeID, Sale: resp},
	})
	return resp, nil
}

func (s *SaleServiceImpl) Update(ctx context.Context, req revenue.UpdateSaleRequest) (revenue.SaleResponse, error) {
	if err := req.Validate(); err != nil {
		return revenue.SaleResponse{}, err
	}

	existing, err := s.saleRepo.GetByID(ctx, req.EmployeeID, req.ID)
	if err != nil {
		return revenue.SaleResponse{}, err
	}

	if req.PackageID != nil && *req.PackageID != existing.PackageID {
		price, err := s.priceOf(ctx, *req.PackageID)
		if err != nil {
			return revenue.SaleResponse{}, err
		}
		req.Amount = &price
	}

	sale, err := s.saleRepo.Update(ctx, req)
	if err != nil {
		return revenue.SaleResponse{}, err
	}

	resp := revenue.ToSaleResponse(sale)
	s.effects.after(ctx, sale.EmployeeID, []time.Time{existing.Date, sale.Date}, sse.Event{
		Name: revenue.EventSaleUpdated,
		Data: revenue.SaleEvent{EmployeeID: sale.EmployeeID, Sale: resp},
	})
	return resp, nil
}

func (s *SaleServiceImpl) Delete(ctx context.Context, employeeID, id string) error {
	existing, err := s.saleRepo.GetByID(ctx, employeeID, id)
	if err != nil {
		return err
	}
	if err := s.saleRepo.Delete(ctx, employeeID, id); err != nil {
		return err
	}

	s.effects.after(ctx, employeeID, []time.Time{existing.Date}, sse.Event{
		Name: revenue.EventSaleDeleted,
		Data: revenue.SaleEvent{EmployeeID: employeeID, Sale: revenue.ToSaleResponse(existing)},
	})
	return nil
}

package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/revenue"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type packageRepo struct{ s *Store }

func (s *Store) Packages() catalog.PackageRepository { return packageRepo{s} }

func (r packageRepo) Create(_ context.Context, p catalog.Package) (catalog.Package, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.packages {
		if strings.EqualFold(other.Name, p.Name) {
			return catalog.Package{}, catalog.ErrPackageNameExists
		}
	}
	p.ID = uuid.NewString()
	p.CreatedAt = r.s.now()
	p.UpdatedAt = p.CreatedAt
	r.s.packages = append(r.s.packages, p)
	return p, nil
}

func (r packageRepo) GetByID(_ context.Context, id string) (catalog.Package, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.packages {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Package{}, catalog.ErrPackageNotFound
}

func (r packageRepo) List(_ context.Context, activeOnly bool) ([]catalog.Package, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []catalog.Package
	for _, p := range r.s.packages {
		if !activeOnly || p.IsActive {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r packageRepo) Update(_ context.Context, req catalog.UpdatePackageRequest) (catalog.Package, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.packages {
		p := &r.s.packages[i]
		if p.ID != req.ID {
			continue
		}
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = req.Description
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.IsActive != nil {
			p.IsActive = *req.IsActive
		}
		p.UpdatedAt = r.s.now()
		return *p, nil
	}
	return catalog.Package{}, catalog.ErrPackageNotFound
}

func (r packageRepo) Deactivate(ctx context.Context, id string) error {
	inactive := false
	_, err := r.Update(ctx, catalog.UpdatePackageRequest{ID: id, IsActive: &inactive})
	return err
}

type saleRepo struct{ s *Store }

func (s *Store) Sales() revenue.SaleRepository { return saleRepo{s} }

func (r saleRepo) withPackage(sale revenue.Sale) revenue.Sale {
	for _, p := range r.s.packages {
		if p.ID == sale.PackageID {
			sale.PackageName = p.Name
		}
	}
	return sale
}

func (r saleRepo) Create(_ context.Context, sale revenue.Sale) (revenue.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale.ID = uuid.NewString()
	sale.CreatedAt = r.s.now()
	sale.UpdatedAt = sale.CreatedAt
	r.s.sales = append(r.s.sales, sale)
	return r.withPackage(sale), nil
}

func (r saleRepo) GetByID(_ context.Context, employeeID, id string) (revenue.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sale := range r.s.sales {
		if sale.ID == id && sale.EmployeeID == employeeID {
			return r.withPackage(sale), nil
		}
	}
	return revenue.Sale{}, revenue.ErrSaleNotFound
}

func matchesRevenue(employeeID string, date time.Time, f revenue.RevenueFilter) bool {
	if employeeID != f.EmployeeID {
		return false
	}
	if f.StartDate != nil && date.Before(*f.StartDate) {
		return false
	}
	return f.EndDate == nil || !date.After(*f.EndDate)
}

func (r saleRepo) List(_ context.Context, filter revenue.RevenueFilter) ([]revenue.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []revenue.Sale
	for _, sale := range r.s.sales {
		if matchesRevenue(sale.EmployeeID, sale.Date, filter) {
			out = append(out, r.withPackage(sale))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r saleRepo) Update(_ context.Context, req revenue.UpdateSaleRequest) (revenue.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.sales {
		sale := &r.s.sales[i]
		if sale.ID != req.ID || sale.EmployeeID != req.EmployeeID {
			continue
		}
		if req.PackageID != nil {
			sale.PackageID = *req.PackageID
		}
		if req.Amount != nil {
			sale.Amount = *req.Amount
		}
		if req.ClientName != nil {
			sale.ClientName = req.ClientName
		}
		if req.Description != nil {
			sale.Description = req.Description
		}
		if req.Date != nil {
			sale.Date = *req.Date
		}
		sale.UpdatedAt = r.s.now()
		return r.withPackage(*sale), nil
	}
	return revenue.Sale{}, revenue.ErrSaleNotFound
}

func (r saleRepo) Delete(_ context.Context, employeeID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, sale := range r.s.sales {
		if sale.ID == id && sale.EmployeeID == employeeID {
			r.s.sales = append(r.s.sales[:i], r.s.sales[i+1:]...)
			return nil
		}
	}
	return revenue.ErrSaleNotFound
}

type receiptRepo struct{ s *Store }

func (s *Store) Receipts() revenue.ReceiptRepository { return receiptRepo{s} }

func (r receiptRepo) Create(_ context.Context, rc revenue.Receipt) (revenue.Receipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rc.ID = uuid.NewString()
	rc.CreatedAt = r.s.now()
	rc.UpdatedAt = rc.CreatedAt
	r.s.receipts = append(r.s.receipts, rc)
	return rc, nil
}

func (r receiptRepo) GetByID(_ context.Context, employeeID, id string) (revenue.Receipt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rc := range r.s.receipts {
		if rc.ID == id && rc.EmployeeID == employeeID {
			return rc, nil
		}
	}
	return revenue.Receipt{}, revenue.ErrReceiptNotFound
}

func (r receiptRepo) List(_ context.Context, filter revenue.RevenueFilter) ([]revenue.Receipt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []revenue.Receipt
	for _, rc := range r.s.receipts {
		if matchesRevenue(rc.EmployeeID, rc.Date, filter) {
			out = append(out, rc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r receiptRepo) Update(_ context.Context, req revenue.UpdateReceiptRequest) (revenue.Receipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.receipts {
		rc := &r.s.receipts[i]
		if rc.ID != req.ID || rc.EmployeeID != req.EmployeeID {
			continue
		}
		if req.ClientName != nil {
			rc.ClientName = *req.ClientName
		}
		if req.Amount != nil {
			rc.Amount = *req.Amount
		}
		if req.Description != nil {
			rc.Description = req.Description
		}
		if req.Date != nil {
			rc.Date = *req.Date
		}
		rc.UpdatedAt = r.s.now()
		return *rc, nil
	}
	return revenue.Receipt{}, revenue.ErrReceiptNotFound
}

func (r receiptRepo) Delete(_ context.Context, employeeID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, rc := range r.s.receipts {
		if rc.ID == id && rc.EmployeeID == employeeID {
			r.s.receipts = append(r.s.receipts[:i], r.s.receipts[i+1:]...)
			return nil
		}
	}
	return revenue.ErrReceiptNotFound
}

type turnoverRepo struct{ s *Store }

func (s *Store) Turnover() analytics.TurnoverRepository { return turnoverRepo{s} }

func (r turnoverRepo) Aggregate(_ context.Context, employeeID *string, start, end time.Time) (analytics.TurnoverTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t := analytics.TurnoverTotals{Sales: decimal.Zero, Receipts: decimal.Zero}
	for _, sale := range r.s.sales {
		if inRange(sale.Date, start, end) && (employeeID == nil || *employeeID == sale.EmployeeID) {
			t.Sales = t.Sales.Add(sale.Amount)
			t.SalesCount++
		}
	}
	for _, rc := range r.s.receipts {
		if inRange(rc.Date, start, end) && (employeeID == nil || *employeeID == rc.EmployeeID) {
			t.Receipts = t.Receipts.Add(rc.Amount)
			t.ReceiptsCount++
		}
	}
	return t, nil
}

func (r turnoverRepo) AggregateByEmployee(_ context.Context, start, end time.Time) (map[string]analytics.TurnoverTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]analytics.TurnoverTotals)
	for _, sale := range r.s.sales {
		if inRange(sale.Date, start, end) {
			t := out[sale.EmployeeID]
			t.Sales = t.Sales.Add(sale.Amount)
			t.SalesCount++
			out[sale.EmployeeID] = t
		}
	}
	for _, rc := range r.s.receipts {
		if inRange(rc.Date, start, end) {
			t := out[rc.EmployeeID]
			t.Receipts = t.Receipts.Add(rc.Amount)
			t.ReceiptsCount++
			out[rc.EmployeeID] = t
		}
	}
	return out, nil
}

func (r turnoverRepo) DailyTotals(_ context.Context, start, end time.Time) ([]analytics.DailyTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byDay := make(map[string]*analytics.DailyTotals)
	add := func(date time.Time, sale, receipt decimal.Decimal) {
		if !inRange(date, start, end) {
			return
		}
		key := date.Format("2006-01-02")
		d, ok := byDay[key]
		if !ok {
			day, _ := time.Parse("2006-01-02", key)
			d = &analytics.DailyTotals{Day: day, Sales: decimal.Zero, Receipts: decimal.Zero}
			byDay[key] = d
		}
		d.Sales = d.Sales.Add(sale)
		d.Receipts = d.Receipts.Add(receipt)
	}
	for _, sale := range r.s.sales {
		add(sale.Date, sale.Amount, decimal.Zero)
	}
	for _, rc := range r.s.receipts {
		add(rc.Date, decimal.Zero, rc.Amount)
	}

	out := make([]analytics.DailyTotals, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

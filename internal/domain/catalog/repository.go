package catalog

import "context"

type PackageRepository interface {
	Create(ctx context.Context, pkg Package) (Package, error)
	GetByID(ctx context.Context, id string) (Package, error)
	List(ctx context.Context, activeOnly bool) ([]Package, error)
	Update(ctx context.Context, req UpdatePackageRequest) (Package, error)
	Deactivate(ctx context.Context, id string) error
}

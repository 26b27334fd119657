package catalog

import "context"

type PackageService interface {
	ListActive(ctx context.Context) ([]PackageResponse, error)
	ListAll(ctx context.Context) ([]PackageResponse, error)
	GetByID(ctx context.Context, id string) (PackageResponse, error)
	Create(ctx context.Context, req CreatePackageRequest) (PackageResponse, error)
	Update(ctx context.Context, req UpdatePackageRequest) (PackageResponse, error)
	Delete(ctx context.Context, id string) error
}

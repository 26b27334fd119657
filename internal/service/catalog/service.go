package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/catalog"
)

type PackageServiceImpl struct {
	packageRepo catalog.PackageRepository
}

func NewPackageService(packageRepo catalog.PackageRepository) catalog.PackageService {
	return &PackageServiceImpl{packageRepo: packageRepo}
}

func toResponses(pkgs []catalog.Package) []catalog.PackageResponse {
	out := make([]catalog.PackageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, catalog.ToResponse(p))
	}
	return out
}

// ListActive is the public menu.
func (s *PackageServiceImpl) ListActive(ctx context.Context) ([]catalog.PackageResponse, error) {
	pkgs, err := s.packageRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return toResponses(pkgs), nil
}

func (s *PackageServiceImpl) ListAll(ctx context.Context) ([]catalog.PackageResponse, error) {
	pkgs, err := s.packageRepo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return toResponses(pkgs), nil
}

func (s *PackageServiceImpl) GetByID(ctx context.Context, id string) (catalog.PackageResponse, error) {
	p, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		return catalog.PackageResponse{}, err
	}
	return catalog.ToResponse(p), nil
}

func (s *PackageServiceImpl) Create(ctx context.Context, req catalog.CreatePackageRequest) (catalog.PackageResponse, error) {
	if err := req.Validate(); err != nil {
		return catalog.PackageResponse{}, err
	}

	p, err := s.packageRepo.Create(ctx, catalog.Package{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price.Round(2),
		IsActive:    true,
	})
	if err != nil {
		return catalog.PackageResponse{}, err
	}
	return catalog.ToResponse(p), nil
}

func (s *PackageServiceImpl) Update(ctx context.Context, req catalog.UpdatePackageRequest) (catalog.PackageResponse, error) {
	if err := req.Validate(); err != nil {
		return catalog.PackageResponse{}, err
	}
	if req.Price != nil {
		price := req.Price.Round(2)
		req.Price = &price
	}

	p, err := s.packageRepo.Update(ctx, req)
	if err != nil {
		return catalog.PackageResponse{}, err
	}
	return catalog.ToResponse(p), nil
}

// Delete deactivates the package; past sales keep referencing it.
func (s *PackageServiceImpl) Delete(ctx context.Context, id string) error {
	return s.packageRepo.Deactivate(ctx, id)
}

package http

import (
	"net/http"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/salon-backend-go/internal/handler/http/response"
)

type PackageHandler interface {
	ListActive(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type packageHandlerImpl struct {
	packageService catalog.PackageService
}

func NewPackageHandler(packageService catalog.PackageService) PackageHandler {
	return &packageHandlerImpl{packageService: packageService}
}

func (h *packageHandlerImpl) ListActive(w http.ResponseWriter, r *http.Request) {
	pkgs, err := h.packageService.ListActive(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, pkgs)
}

func (h *packageHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	pkgs, err := h.packageService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, pkgs)
}

func (h *packageHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	pkg, err := h.packageService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, pkg)
}

func (h *packageHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req catalog.CreatePackageRequest
	if !decodeJSON(w, r, &req, "CreatePackage") {
		return
	}

	pkg, err := h.packageService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Package created successfully", pkg)
}

func (h *packageHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req catalog.UpdatePackageRequest
	if !decodeJSON(w, r, &req, "UpdatePackage") {
		return
	}
	req.ID = id

	pkg, err := h.packageService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Package updated successfully", pkg)
}

// Delete deactivates the package; past sales keep pointing at it.
func (h *packageHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.packageService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Package deactivated successfully", nil)
}

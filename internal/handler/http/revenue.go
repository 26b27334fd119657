package http

import (
	"net/http"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/revenue"
	"github.com/cmlabs-hris/salon-backend-go/internal/handler/http/response"
)

// RevenueHandler serves the sales and receipts nested under /employees/{id}.
// Access to {id} is checked by middleware.RequireEmployeeAccess before these run.
type RevenueHandler interface {
	ListSales(w http.ResponseWriter, r *http.Request)
	CreateSale(w http.ResponseWriter, r *http.Request)
	UpdateSale(w http.ResponseWriter, r *http.Request)
	DeleteSale(w http.ResponseWriter, r *http.Request)
	ListReceipts(w http.ResponseWriter, r *http.Request)
	CreateReceipt(w http.ResponseWriter, r *http.Request)
	UpdateReceipt(w http.ResponseWriter, r *http.Request)
	DeleteReceipt(w http.ResponseWriter, r *http.Request)
}

type revenueHandlerImpl struct {
	saleService    revenue.SaleService
	receiptService revenue.ReceiptService
}

func NewRevenueHandler(saleService revenue.SaleService, receiptService revenue.ReceiptService) RevenueHandler {
	return &revenueHandlerImpl{
		saleService:    saleService,
		receiptService: receiptService,
	}
}

func revenueFilter(r *http.Request) (revenue.RevenueFilter, error) {
	employeeID, err := pathUUID(r, "id")
	if err != nil {
		return revenue.RevenueFilter{}, err
	}
	start, end, err := queryDateRange(r)
	if err != nil {
		return revenue.RevenueFilter{}, err
	}
	return revenue.RevenueFilter{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
	}, nil
}

// ========== SALES ==========

func (h *revenueHandlerImpl) ListSales(w http.ResponseWriter, r *http.Request) {
	filter, err := revenueFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	sales, err := h.saleService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, sales)
}

func (h *revenueHandlerImpl) CreateSale(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req revenue.CreateSaleRequest
	if !decodeJSON(w, r, &req, "CreateSale") {
		return
	}
	req.EmployeeID = employeeID

	sale, err := h.saleService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Sale recorded successfully", sale)
}

func (h *revenueHandlerImpl) UpdateSale(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	saleID, ok := urlUUID(w, r, "saleId")
	if !ok {
		return
	}

	var req revenue.UpdateSaleRequest
	if !decodeJSON(w, r, &req, "UpdateSale") {
		return
	}
	req.EmployeeID = employeeID
	req.ID = saleID

	sale, err := h.saleService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Sale updated successfully", sale)
}

func (h *revenueHandlerImpl) DeleteSale(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	saleID, ok := urlUUID(w, r, "saleId")
	if !ok {
		return
	}

	if err := h.saleService.Delete(r.Context(), employeeID, saleID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Sale deleted successfully", nil)
}

// ========== RECEIPTS ==========

func (h *revenueHandlerImpl) ListReceipts(w http.ResponseWriter, r *http.Request) {
	filter, err := revenueFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	receipts, err := h.receiptService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, receipts)
}

func (h *revenueHandlerImpl) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req revenue.CreateReceiptRequest
	if !decodeJSON(w, r, &req, "CreateReceipt") {
		return
	}
	req.EmployeeID = employeeID

	receipt, err := h.receiptService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Receipt recorded successfully", receipt)
}

func (h *revenueHandlerImpl) UpdateReceipt(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	receiptID, ok := urlUUID(w, r, "receiptId")
	if !ok {
		return
	}

	var req revenue.UpdateReceiptRequest
	if !decodeJSON(w, r, &req, "UpdateReceipt") {
		return
	}
	req.EmployeeID = employeeID
	req.ID = receiptID

	receipt, err := h.receiptService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Receipt updated successfully", receipt)
}

func (h *revenueHandlerImpl) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	receiptID, ok := urlUUID(w, r, "receiptId")
	if !ok {
		return
	}

	if err := h.receiptService.Delete(r.Context(), employeeID, receiptID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Receipt deleted successfully", nil)
}

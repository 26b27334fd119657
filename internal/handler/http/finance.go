package http

import (
	"net/http"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/charge"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/salon-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/jwt"
)

type FinanceHandler interface {
	ListExpenses(w http.ResponseWriter, r *http.Request)
	CreateExpense(w http.ResponseWriter, r *http.Request)
	UpdateExpense(w http.ResponseWriter, r *http.Request)
	DeleteExpense(w http.ResponseWriter, r *http.Request)
	ListAdminCharges(w http.ResponseWriter, r *http.Request)
	UpsertAdminCharge(w http.ResponseWriter, r *http.Request)
	DailySummary(w http.ResponseWriter, r *http.Request)
}

type financeHandlerImpl struct {
	expenseService expense.ExpenseService
	chargeService  charge.AdminChargeService
}

func NewFinanceHandler(expenseService expense.ExpenseService, chargeService charge.AdminChargeService) FinanceHandler {
	return &financeHandlerImpl{
		expenseService: expenseService,
		chargeService:  chargeService,
	}
}

// ========== EXPENSES ==========

func (h *financeHandlerImpl) ListExpenses(w http.ResponseWriter, r *http.Request) {
	start, end, err := queryDateRange(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	expenses, err := h.expenseService.List(r.Context(), expense.ExpenseFilter{
		Category:  queryString(r, "category"),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, expenses)
}

func (h *financeHandlerImpl) CreateExpense(w http.ResponseWriter, r *http.Request) {
	caller, err := jwt.CallerFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req expense.CreateExpenseRequest
	if !decodeJSON(w, r, &req, "CreateExpense") {
		return
	}
	req.CreatedBy = caller.UserID

	created, err := h.expenseService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Expense created successfully", created)
}

func (h *financeHandlerImpl) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req expense.UpdateExpenseRequest
	if !decodeJSON(w, r, &req, "UpdateExpense") {
		return
	}
	req.ID = id

	updated, err := h.expenseService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Expense updated successfully", updated)
}

func (h *financeHandlerImpl) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.expenseService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Expense deleted successfully", nil)
}

// ========== ADMIN CHARGES ==========

func (h *financeHandlerImpl) ListAdminCharges(w http.ResponseWriter, r *http.Request) {
	charges, err := h.chargeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, charges)
}

// UpsertAdminCharge replaces the charges of (month, year); both default to the current month.
func (h *financeHandlerImpl) UpsertAdminCharge(w http.ResponseWriter, r *http.Request) {
	var req charge.UpsertAdminChargeRequest
	if !decodeJSON(w, r, &req, "UpsertAdminCharge") {
		return
	}

	saved, err := h.chargeService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Admin charges saved successfully", saved)
}

func (h *financeHandlerImpl) DailySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.chargeService.DailySummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

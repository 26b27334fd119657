package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/salon-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/jwt"
)

type SalaryHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{salaryService: salaryService}
}

// salaryFilter reads the list filters; barbers are pinned to their own employee.
func salaryFilter(r *http.Request) (salary.SalaryFilter, error) {
	caller, err := jwt.CallerFromContext(r.Context())
	if err != nil {
		return salary.SalaryFilter{}, err
	}

	var filter salary.SalaryFilter
	if filter.PeriodStart, err = queryDate(r, "period_start"); err != nil {
		return salary.SalaryFilter{}, err
	}
	if filter.PeriodEnd, err = queryDate(r, "period_end"); err != nil {
		return salary.SalaryFilter{}, err
	}

	if caller.Role.IsAdmin() {
		if filter.EmployeeID, err = queryUUID(r, "employee_id"); err != nil {
			return salary.SalaryFilter{}, err
		}
		return filter, nil
	}
	if caller.EmployeeID == nil {
		return salary.SalaryFilter{}, employee.ErrEmployeeAccessDenied
	}
	filter.EmployeeID = caller.EmployeeID
	return filter, nil
}

func (h *salaryHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req salary.GenerateSalaryRequest
	if !decodeJSON(w, r, &req, "GenerateSalary") {
		return
	}

	result, err := h.salaryService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Salary generated successfully", result)
}

func (h *salaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := salaryFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	salaries, err := h.salaryService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, salaries)
}

func (h *salaryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	caller, err := jwt.CallerFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	sal, err := h.salaryService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !caller.CanAccessEmployee(sal.EmployeeID) {
		response.HandleError(w, salary.ErrSalaryNotFound)
		return
	}
	response.Success(w, sal)
}

// Export streams the filtered salaries as an XLSX attachment.
func (h *salaryHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := salaryFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data, err := h.salaryService.Export(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"salaries_%s.xlsx\"", time.Now().Format("20060102")))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/period"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AnalyticsHandler interface {
	Turnover(w http.ResponseWriter, r *http.Request)
	Evolution(w http.ResponseWriter, r *http.Request)
	Profit(w http.ResponseWriter, r *http.Request)
	Performance(w http.ResponseWriter, r *http.Request)
	PeriodTurnover(p period.Granularity) http.HandlerFunc
	AnnualTurnover(w http.ResponseWriter, r *http.Request)
	Realtime(w http.ResponseWriter, r *http.Request)
	Forecast(w http.ResponseWriter, r *http.Request)
	Dashboard(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
	now              func() time.Time
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService, now func() time.Time) AnalyticsHandler {
	return &analyticsHandlerImpl{
		analyticsService: analyticsService,
		now:              now,
	}
}

// referenceDate reads ?date=YYYY-MM-DD, defaulting to now.
func (h *analyticsHandlerImpl) referenceDate(r *http.Request) (time.Time, error) {
	now := h.now()
	v := r.URL.Query().Get("date")
	if v == "" {
		return now, nil
	}
	d, err := time.ParseInLocation(dateLayout, v, now.Location())
	if err != nil {
		return time.Time{}, validator.Single("date", "date must be in YYYY-MM-DD format")
	}
	return d, nil
}

// employeeScope: admins may pick ?employee_id=, barbers always get their own figures.
func employeeScope(r *http.Request) (*string, error) {
	caller, err := jwt.CallerFromContext(r.Context())
	if err != nil {
		return nil, err
	}
	if caller.Role.IsAdmin() {
		return queryUUID(r, "employee_id")
	}
	if caller.EmployeeID == nil {
		return nil, employee.ErrEmployeeAccessDenied
	}
	return caller.EmployeeID, nil
}

func (h *analyticsHandlerImpl) turnoverQuery(r *http.Request, scoped bool) (analytics.TurnoverQuery, error) {
	p := period.Monthly
	if v := r.URL.Query().Get("period"); v != "" {
		parsed, err := period.ParseGranularity(v)
		if err != nil {
			return analytics.TurnoverQuery{}, validator.Single("period", "period must be one of: daily, weekly, monthly, yearly")
		}
		p = parsed
	}

	date, err := h.referenceDate(r)
	if err != nil {
		return analytics.TurnoverQuery{}, err
	}

	q := analytics.TurnoverQuery{Period: p, Date: date}
	if scoped {
		if q.EmployeeID, err = employeeScope(r); err != nil {
			return analytics.TurnoverQuery{}, err
		}
	}
	return q, nil
}

func (h *analyticsHandlerImpl) Turnover(w http.ResponseWriter, r *http.Request) {
	q, err := h.turnoverQuery(r, true)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.Turnover(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *analyticsHandlerImpl) Evolution(w http.ResponseWriter, r *http.Request) {
	months, err := queryInt(r, "months", 12)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	employeeID, err := employeeScope(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.Evolution(r.Context(), months, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *analyticsHandlerImpl) Profit(w http.ResponseWriter, r *http.Request) {
	q, err := h.turnoverQuery(r, false)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.Profit(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *analyticsHandlerImpl) Performance(w http.ResponseWriter, r *http.Request) {
	q, err := h.turnoverQuery(r, false)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.Performance(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// PeriodTurnover serves the daily-, weekly- and monthly-turnover routes.
func (h *analyticsHandlerImpl) PeriodTurnover(p period.Granularity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := h.referenceDate(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		result, err := h.analyticsService.PeriodTurnover(r.Context(), p, date)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
	}
}

func (h *analyticsHandlerImpl) AnnualTurnover(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year", h.now().Year())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.AnnualTurnover(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *analyticsHandlerImpl) Realtime(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyticsService.Realtime(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Forecast accepts an optional ?objective= overriding the configured annual objective.
func (h *analyticsHandlerImpl) Forecast(w http.ResponseWriter, r *http.Request) {
	var objective *decimal.Decimal
	if v := r.URL.Query().Get("objective"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			response.HandleError(w, validator.Single("objective", "objective must be a number"))
			return
		}
		objective = &d
	}

	result, err := h.analyticsService.Forecast(r.Context(), objective)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *analyticsHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyticsService.Dashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

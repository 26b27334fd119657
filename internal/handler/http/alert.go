package http

import (
	"net/http"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/salon-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/jwt"
)

type AlertHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	MarkAllRead(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	SendDaily(w http.ResponseWriter, r *http.Request)
}

type alertHandlerImpl struct {
	alertService alert.AlertService
	notifier     alert.Notifier
}

func NewAlertHandler(alertService alert.AlertService, notifier alert.Notifier) AlertHandler {
	return &alertHandlerImpl{
		alertService: alertService,
		notifier:     notifier,
	}
}

// scopeFrom: admins see every alert (optionally ?employee_id=), barbers only their employee's.
func scopeFrom(r *http.Request) (alert.Scope, error) {
	caller, err := jwt.CallerFromContext(r.Context())
	if err != nil {
		return alert.Scope{}, err
	}
	if caller.Role.IsAdmin() {
		employeeID, err := queryUUID(r, "employee_id")
		if err != nil {
			return alert.Scope{}, err
		}
		return alert.Scope{EmployeeID: employeeID}, nil
	}
	return alert.Scope{EmployeeID: caller.EmployeeID, Restricted: true}, nil
}

func (h *alertHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	alerts, err := h.alertService.List(r.Context(), scope)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, alerts)
}

func (h *alertHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	count, err := h.alertService.UnreadCount(r.Context(), scope)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, count)
}

func (h *alertHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	scope, err := scopeFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.alertService.MarkRead(r.Context(), scope, id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Alert marked as read", nil)
}

func (h *alertHandlerImpl) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	count, err := h.alertService.MarkAllRead(r.Context(), scope)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "All alerts marked as read", map[string]int64{"updated": count})
}

func (h *alertHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req alert.CreateAlertRequest
	if !decodeJSON(w, r, &req, "CreateAlert") {
		return
	}

	created, err := h.alertService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Alert created successfully", created)
}

// SendDaily runs the scheduled objective reminders on demand.
func (h *alertHandlerImpl) SendDaily(w http.ResponseWriter, r *http.Request) {
	sent, err := h.notifier.SendDailyAlerts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Daily alerts sent", map[string]int{"sent": sent})
}

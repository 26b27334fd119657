package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/goal"
	"github.com/cmlabs-hris/salon-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/jwt"
)

type GoalHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Recompute(w http.ResponseWriter, r *http.Request)
	GetForEmployee(w http.ResponseWriter, r *http.Request)
	RunCarryOver(w http.ResponseWriter, r *http.Request)
	CarryOverHistory(w http.ResponseWriter, r *http.Request)
}

type goalHandlerImpl struct {
	goalService      goal.GoalService
	carryOverService goal.CarryOverService
	now              func() time.Time
}

func NewGoalHandler(goalService goal.GoalService, carryOverService goal.CarryOverService, now func() time.Time) GoalHandler {
	return &goalHandlerImpl{
		goalService:      goalService,
		carryOverService: carryOverService,
		now:              now,
	}
}

// List returns goals newest period first. Barbers only see their own.
func (h *goalHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	caller, err := jwt.CallerFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var filter goal.GoalFilter
	if caller.Role.IsAdmin() {
		if filter.EmployeeID, err = queryUUID(r, "employee_id"); err != nil {
			response.HandleError(w, err)
			return
		}
	} else {
		if caller.EmployeeID == nil {
			response.Success(w, []goal.GoalResponse{})
			return
		}
		filter.EmployeeID = caller.EmployeeID
	}
	if r.URL.Query().Get("month") != "" {
		month, err := queryInt(r, "month", 0)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		filter.Month = &month
	}
	if r.URL.Query().Get("year") != "" {
		year, err := queryInt(r, "year", 0)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		filter.Year = &year
	}

	goals, err := h.goalService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, goals)
}

func (h *goalHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req goal.CreateGoalRequest
	if !decodeJSON(w, r, &req, "CreateGoal") {
		return
	}

	created, err := h.goalService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Goal created successfully", created)
}

func (h *goalHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	goalID, ok := urlUUID(w, r, "goalId")
	if !ok {
		return
	}

	caller, err := jwt.CallerFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	g, err := h.goalService.GetByID(r.Context(), goalID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !caller.CanAccessEmployee(g.EmployeeID) {
		response.HandleError(w, goal.ErrGoalNotFound)
		return
	}
	response.Success(w, g)
}

func (h *goalHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	goalID, ok := urlUUID(w, r, "goalId")
	if !ok {
		return
	}

	var req goal.UpdateGoalRequest
	if !decodeJSON(w, r, &req, "UpdateGoal") {
		return
	}
	req.ID = goalID

	updated, err := h.goalService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Goal updated successfully", updated)
}

func (h *goalHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	goalID, ok := urlUUID(w, r, "goalId")
	if !ok {
		return
	}

	if err := h.goalService.Delete(r.Context(), goalID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Goal deleted successfully", nil)
}

func (h *goalHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	goalID, ok := urlUUID(w, r, "goalId")
	if !ok {
		return
	}

	g, err := h.goalService.RecomputeCurrentTotal(r.Context(), goalID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, g)
}

// GetForEmployee returns the goal of /employees/{id} for ?month=&year=, the current month by default.
func (h *goalHandlerImpl) GetForEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	now := h.now()
	month, err := queryInt(r, "month", int(now.Month()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	year, err := queryInt(r, "year", now.Year())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	g, err := h.goalService.GetForEmployee(r.Context(), id, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, g)
}

func (h *goalHandlerImpl) RunCarryOver(w http.ResponseWriter, r *http.Request) {
	result, err := h.carryOverService.Run(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Carry-over processed successfully", result)
}

func (h *goalHandlerImpl) CarryOverHistory(w http.ResponseWriter, r *http.Request) {
	runs, err := h.carryOverService.History(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, runs)
}

package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

// RequireEmployeeAccess guards routes nested under /employees/{id}: a barber only reaches
// the employee row linked to their account.
func RequireEmployeeAccess(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := jwt.CallerFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !caller.CanAccessEmployee(chi.URLParam(r, param)) {
				response.HandleError(w, employee.ErrEmployeeAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/salon-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/period"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth      AuthHandler
	User      UserHandler
	Employee  EmployeeHandler
	Package   PackageHandler
	Revenue   RevenueHandler
	Finance   FinanceHandler
	Salary    SalaryHandler
	Goal      GoalHandler
	Alert     AlertHandler
	Analytics AnalyticsHandler
	Realtime  RealtimeHandler
}

type RouterOptions struct {
	Logger      *slog.Logger
	LogLevel    slog.Level
	CORSOrigins []string
	// RateLimit is applied to everything under /api, e.g. "100-15M"
	RateLimit   string
	UploadsPath string
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) (*chi.Mux, error) {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.UploadsPath != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsPath))))
	}

	limit, err := middleware.RateLimit(opts.RateLimit)
	if err != nil {
		return nil, err
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limit)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
				r.Get("/me", h.Auth.Me)
			})
		})

		// Public catalog
		r.Get("/packages", h.Package.ListActive)
		r.Get("/packages/{id}", h.Package.Get)

		// Stream endpoints authenticate with ?token= from /events/token
		r.Get("/events/stream", h.Realtime.Stream)
		r.Get("/events/ws", h.Realtime.WebSocket)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Get("/events/token", h.Realtime.Token)

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionUserManage))
				r.Get("/", h.User.List)
				r.Post("/", h.User.CreateBarber)
				r.Put("/{id}", h.User.Update)
				r.Delete("/{id}", h.User.Delete)
				r.Put("/{id}/deduction-percentage", h.User.UpdateDeductionPercentage)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/packages", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionCatalogManage))
					r.Get("/", h.Package.ListAll)
					r.Post("/", h.Package.Create)
					r.Put("/{id}", h.Package.Update)
					r.Delete("/{id}", h.Package.Delete)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeManage)).Get("/", h.Employee.ListEmployees)

				r.Route("/{id}", func(r chi.Router) {
					r.Use(middleware.RequireEmployeeAccess("id"))

					r.Get("/", h.Employee.GetEmployee)
					r.With(middleware.RequirePermission(user.PermissionEmployeeManage)).Put("/", h.Employee.UpdateEmployee)
					r.Post("/file", h.Employee.UploadFile)
					r.Get("/remaining-revenue", h.Employee.RemainingRevenue)
					r.Get("/goal", h.Goal.GetForEmployee)

					r.Route("/sales", func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionRevenueRecordOwn))
						r.Get("/", h.Revenue.ListSales)
						r.Post("/", h.Revenue.CreateSale)
						r.Put("/{saleId}", h.Revenue.UpdateSale)
						r.Delete("/{saleId}", h.Revenue.DeleteSale)
					})

					r.Route("/receipts", func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionRevenueRecordOwn))
						r.Get("/", h.Revenue.ListReceipts)
						r.Post("/", h.Revenue.CreateReceipt)
						r.Put("/{receiptId}", h.Revenue.UpdateReceipt)
						r.Delete("/{receiptId}", h.Revenue.DeleteReceipt)
					})
				})
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionExpenseManage))
				r.Get("/", h.Finance.ListExpenses)
				r.Post("/", h.Finance.CreateExpense)
				r.Put("/{id}", h.Finance.UpdateExpense)
				r.Delete("/{id}", h.Finance.DeleteExpense)
			})

			r.Route("/admin-charges", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionChargeManage))
				r.Get("/", h.Finance.ListAdminCharges)
				r.Post("/", h.Finance.UpsertAdminCharge)
				r.Put("/", h.Finance.UpsertAdminCharge)
				r.Get("/summary", h.Finance.DailySummary)
			})

			r.Route("/salaries", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionSalaryGenerate)).Post("/generate", h.Salary.Generate)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSalaryViewOwn))
					r.Get("/", h.Salary.List)
					r.Get("/export", h.Salary.Export)
					r.Get("/{id}", h.Salary.Get)
				})
			})

			r.Route("/goals", func(r chi.Router) {
				r.Get("/", h.Goal.List)
				r.Get("/{goalId}", h.Goal.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionGoalManage))
					r.Post("/", h.Goal.Create)
					r.Put("/{goalId}", h.Goal.Update)
					r.Delete("/{goalId}", h.Goal.Delete)
					r.Post("/{goalId}/recompute", h.Goal.Recompute)
					r.Post("/carry-over/run", h.Goal.RunCarryOver)
					r.Get("/carry-over/history", h.Goal.CarryOverHistory)
				})
			})

			r.Route("/alerts", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAlertViewOwn))
					r.Get("/", h.Alert.List)
					r.Get("/unread-count", h.Alert.UnreadCount)
					r.Put("/mark-all-read", h.Alert.MarkAllRead)
					r.Put("/{id}/read", h.Alert.MarkRead)
				})
				r.With(middleware.RequirePermission(user.PermissionAlertCreate)).Post("/", h.Alert.Create)
				r.With(middleware.RequirePermission(user.PermissionJobTrigger)).Post("/send-daily", h.Alert.SendDaily)
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAnalyticsView))
				r.Get("/turnover", h.Analytics.Turnover)
				r.Get("/evolution", h.Analytics.Evolution)

				// Salon-wide figures
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDashboardView))
					r.Get("/profit", h.Analytics.Profit)
					r.Get("/performance", h.Analytics.Performance)
					r.Get("/daily-turnover", h.Analytics.PeriodTurnover(period.Daily))
					r.Get("/weekly-turnover", h.Analytics.PeriodTurnover(period.Weekly))
					r.Get("/monthly-turnover", h.Analytics.PeriodTurnover(period.Monthly))
					r.Get("/annual-turnover", h.Analytics.AnnualTurnover)
					r.Get("/realtime", h.Analytics.Realtime)
					r.Get("/forecast", h.Analytics.Forecast)
					r.Get("/dashboard", h.Analytics.Dashboard)
				})
			})
		})
	})
	return r, nil
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/revenue"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/salon-backend-go/internal/repository/memory"
	alertService "github.com/cmlabs-hris/salon-backend-go/internal/service/alert"
	analyticsService "github.com/cmlabs-hris/salon-backend-go/internal/service/analytics"
	serviceAuth "github.com/cmlabs-hris/salon-backend-go/internal/service/auth"
	catalogService "github.com/cmlabs-hris/salon-backend-go/internal/service/catalog"
	chargeService "github.com/cmlabs-hris/salon-backend-go/internal/service/charge"
	employeeService "github.com/cmlabs-hris/salon-backend-go/internal/service/employee"
	expenseService "github.com/cmlabs-hris/salon-backend-go/internal/service/expense"
	"github.com/cmlabs-hris/salon-backend-go/internal/service/file"
	goalService "github.com/cmlabs-hris/salon-backend-go/internal/service/goal"
	revenueService "github.com/cmlabs-hris/salon-backend-go/internal/service/revenue"
	salaryService "github.com/cmlabs-hris/salon-backend-go/internal/service/salary"
	userService "github.com/cmlabs-hris/salon-backend-go/internal/service/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "24h"
	handlerTestSecret     = "test-secret-key-for-jwt"
	handlerTestPassword   = "Sup3r$ecretPassw0rd"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	store  *memory.Store
	jwt    jwt.Service
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	hub := sse.NewHub()
	loc := time.UTC
	now := func() time.Time { return time.Date(2024, time.March, 12, 14, 0, 0, 0, loc) }
	objective := decimal.NewFromInt(50000)

	fileStorage, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	jwtSvc := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)
	aggregator := analyticsService.NewTurnoverAggregator(store.Turnover())

	authSvc := serviceAuth.NewAuthService(memory.Transactor{}, store.Users(), store.Employees(), jwtSvc, store.RefreshTokens())
	analyticsSvc := analyticsService.NewAnalyticsService(store.Turnover(), store.Expenses(), store.Employees(), cache.NewNoopCache(), time.Minute, objective, now)
	goalSvc := goalService.NewGoalService(store.Goals(), store.Employees(), aggregator, loc)
	carryOverSvc := goalService.NewCarryOverService(memory.Transactor{}, store.Goals(), store.CarryOverLedger(), store.Employees(), store.Alerts(), hub, now)
	chargeSvc := chargeService.NewAdminChargeService(store.AdminCharges(), aggregator, objective, now)

	handlers := Handlers{
		Auth:     NewAuthHandler(jwtSvc, authSvc),
		User:     NewUserHandler(userService.NewUserService(memory.Transactor{}, store.Users(), store.Employees())),
		Employee: NewEmployeeHandler(employeeService.NewEmployeeService(store.Employees(), file.NewFileService(fileStorage), aggregator, now)),
		Package:  NewPackageHandler(catalogService.NewPackageService(store.Packages())),
		Revenue: NewRevenueHandler(
			revenueService.NewSaleService(store.Sales(), store.Packages(), store.Employees(), goalSvc, analyticsSvc, hub, now),
			revenueService.NewReceiptService(store.Receipts(), store.Employees(), goalSvc, analyticsSvc, hub, now),
		),
		Finance:   NewFinanceHandler(expenseService.NewExpenseService(store.Expenses()), chargeSvc),
		Salary:    NewSalaryHandler(salaryService.NewSalaryService(store.Salaries(), store.Employees(), aggregator, chargeSvc, now)),
		Goal:      NewGoalHandler(goalSvc, carryOverSvc, now),
		Alert:     NewAlertHandler(alertService.NewAlertService(store.Alerts(), store.Employees()), alertService.NewNotifier(store.Goals(), store.Alerts(), hub, now)),
		Analytics: NewAnalyticsHandler(analyticsSvc, now),
		Realtime:  NewRealtimeHandler(jwtSvc, authSvc, hub, nil),
	}

	router, err := NewRouter(jwtSvc, handlers, RouterOptions{RateLimit: "1000-M"})
	require.NoError(t, err)

	return &testServer{store: store, jwt: jwtSvc, router: router}
}

func (s *testServer) seedBarber(t *testing.T, email string) (user.User, employee.Employee) {
	t.Helper()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(handlerTestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	u, err := s.store.Users().Create(ctx, user.User{
		Username:     "Karim",
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleUser,
	})
	require.NoError(t, err)

	emp, err := s.store.Employees().Create(ctx, employee.Employee{
		UserID:              &u.ID,
		FirstName:           "Karim",
		LastName:            "Benali",
		Position:            "Barber",
		HireDate:            time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		DeductionPercentage: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	return u, emp
}

func (s *testServer) token(t *testing.T, role user.Role, employeeID *string) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken("user-"+string(role), string(role)+"@salon.test", employeeID, role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestAuthHandler_LoginRefreshMe(t *testing.T) {
	s := newTestServer(t)
	_, emp := s.seedBarber(t, "karim@salon.test")

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: "karim@salon.test", Password: handlerTestPassword})
	require.Equal(t, http.StatusCreated, w.Code)

	var refreshCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "refresh_token" {
			refreshCookie = c
		}
	}
	require.NotNil(t, refreshCookie)
	assert.NotEmpty(t, refreshCookie.Value)

	var tokens auth.TokenResponse
	env := decodeEnvelope(t, w, &tokens)
	assert.True(t, env.Success)
	assert.NotEmpty(t, tokens.AccessToken)

	w = s.do(t, http.MethodGet, "/api/v1/auth/me", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me user.UserResponse
	decodeEnvelope(t, w, &me)
	assert.Equal(t, "karim@salon.test", me.Email)
	require.NotNil(t, me.Employee)
	assert.Equal(t, emp.ID, me.Employee.ID)

	w = s.do(t, http.MethodPost, "/api/v1/auth/refresh", "", nil, refreshCookie)
	require.Equal(t, http.StatusCreated, w.Code)
	var refreshed auth.AccessTokenResponse
	decodeEnvelope(t, w, &refreshed)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	s := newTestServer(t)
	s.seedBarber(t, "karim@salon.test")

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: "karim@salon.test", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	env := decodeEnvelope(t, w, nil)
	assert.False(t, env.Success)
}

func TestAuthHandler_Login_InvalidJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("invalid json")))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_RequiresAccessToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/goals", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_PublicCatalog(t *testing.T) {
	s := newTestServer(t)
	_, err := s.store.Packages().Create(context.Background(), catalog.Package{Name: "Coupe", Price: decimal.NewFromInt(25), IsActive: true})
	require.NoError(t, err)
	_, err = s.store.Packages().Create(context.Background(), catalog.Package{Name: "Old", Price: decimal.NewFromInt(10), IsActive: false})
	require.NoError(t, err)

	w := s.do(t, http.MethodGet, "/api/v1/packages", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var packages []catalog.PackageResponse
	decodeEnvelope(t, w, &packages)
	require.Len(t, packages, 1)
	assert.Equal(t, "Coupe", packages[0].Name)
}

func TestRouter_PermissionDenied(t *testing.T) {
	s := newTestServer(t)
	_, emp := s.seedBarber(t, "karim@salon.test")
	barber := s.token(t, user.RoleUser, &emp.ID)

	for _, path := range []string{
		"/api/v1/users",
		"/api/v1/expenses",
		"/api/v1/admin/packages",
		"/api/v1/analytics/dashboard",
	} {
		w := s.do(t, http.MethodGet, path, barber, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}

	w := s.do(t, http.MethodGet, "/api/v1/users", s.token(t, user.RoleAdmin, nil), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_EmployeeAccess(t *testing.T) {
	s := newTestServer(t)
	_, own := s.seedBarber(t, "karim@salon.test")
	_, other := s.seedBarber(t, "sam@salon.test")
	barber := s.token(t, user.RoleUser, &own.ID)

	w := s.do(t, http.MethodGet, "/api/v1/employees/"+own.ID, barber, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/employees/"+other.ID+"/sales", barber, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/employees/"+other.ID, s.token(t, user.RoleAdmin, nil), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRevenueHandler_CreateSale(t *testing.T) {
	s := newTestServer(t)
	_, emp := s.seedBarber(t, "karim@salon.test")
	barber := s.token(t, user.RoleUser, &emp.ID)

	pkg, err := s.store.Packages().Create(context.Background(), catalog.Package{Name: "Coupe", Price: decimal.RequireFromString("25.50"), IsActive: true})
	require.NoError(t, err)

	w := s.do(t, http.MethodPost, "/api/v1/employees/"+emp.ID+"/sales", barber, map[string]string{"package_id": pkg.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	var sale revenue.SaleResponse
	decodeEnvelope(t, w, &sale)
	assert.Equal(t, emp.ID, sale.EmployeeID)
	assert.Equal(t, "25.50", sale.Amount.StringFixed(2))

	w = s.do(t, http.MethodGet, "/api/v1/employees/"+emp.ID+"/sales", barber, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sales []revenue.SaleResponse
	decodeEnvelope(t, w, &sales)
	assert.Len(t, sales, 1)
}

func TestRevenueHandler_CreateSale_InvalidPackage(t *testing.T) {
	s := newTestServer(t)
	_, emp := s.seedBarber(t, "karim@salon.test")

	w := s.do(t, http.MethodPost, "/api/v1/employees/"+emp.ID+"/sales", s.token(t, user.RoleAdmin, nil), map[string]string{"package_id": "not-a-uuid"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	env := decodeEnvelope(t, w, nil)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "package_id")
}

func TestRouter_MalformedIdentifiers(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, user.RoleAdmin, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		field  string
	}{
		{"salary body", http.MethodPost, "/api/v1/salaries/generate", map[string]string{"employee_id": "abc", "period_start": "2024-01-01", "period_end": "2024-01-07"}, "employee_id"},
		{"goal body", http.MethodPost, "/api/v1/goals", map[string]interface{}{"employee_id": "abc", "month": 3, "year": 2024, "monthly_target": "100", "daily_target": "5", "remaining_days": 10}, "employee_id"},
		{"alert body", http.MethodPost, "/api/v1/alerts", map[string]string{"employee_id": "abc", "type": "daily_objective", "message": "hi"}, "employee_id"},
		{"goal filter", http.MethodGet, "/api/v1/goals?employee_id=abc", nil, "employee_id"},
		{"salary filter", http.MethodGet, "/api/v1/salaries?employee_id=abc", nil, "employee_id"},
		{"employee path", http.MethodGet, "/api/v1/employees/abc", nil, "id"},
		{"sale path", http.MethodDelete, "/api/v1/employees/abc/sales/xyz", nil, "id"},
		{"goal path", http.MethodGet, "/api/v1/goals/abc", nil, "goalId"},
		{"salary path", http.MethodGet, "/api/v1/salaries/abc", nil, "id"},
		{"package path", http.MethodGet, "/api/v1/packages/abc", nil, "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, admin, tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)

			env := decodeEnvelope(t, w, nil)
			require.NotNil(t, env.Error)
			assert.Contains(t, env.Error.Details, tt.field)
		})
	}
}

func TestAlertHandler_ListIsScopedToCaller(t *testing.T) {
	s := newTestServer(t)
	_, own := s.seedBarber(t, "karim@salon.test")
	_, other := s.seedBarber(t, "sam@salon.test")
	ctx := context.Background()

	for _, id := range []string{own.ID, other.ID} {
		_, err := s.store.Alerts().Create(ctx, alert.Alert{EmployeeID: id, Type: alert.TypeDailyObjective, Message: "Objectif du jour", SentAt: time.Now()})
		require.NoError(t, err)
	}

	w := s.do(t, http.MethodGet, "/api/v1/alerts", s.token(t, user.RoleUser, &own.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []alert.AlertResponse
	decodeEnvelope(t, w, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, own.ID, mine[0].EmployeeID)

	w = s.do(t, http.MethodGet, "/api/v1/alerts", s.token(t, user.RoleAdmin, nil), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []alert.AlertResponse
	decodeEnvelope(t, w, &all)
	assert.Len(t, all, 2)
}

func TestAlertHandler_SendDailyNeedsJobTrigger(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/alerts/send-daily", s.token(t, user.RoleAdmin, nil), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/alerts/send-daily", s.token(t, user.RoleSuperAdmin, nil), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result map[string]int
	decodeEnvelope(t, w, &result)
	assert.Equal(t, 0, result["sent"])
}

func TestRealtimeHandler_StreamRejectsMissingToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/events/stream", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTopicsFor(t *testing.T) {
	emp := "emp-1"

	assert.Equal(t, []string{sse.TopicAdmins}, topicsFor(jwt.StreamClaims{UserID: "u1", Role: user.RoleAdmin}))
	assert.Equal(t, []string{sse.TopicEmployee(emp)}, topicsFor(jwt.StreamClaims{UserID: "u2", Role: user.RoleUser, EmployeeID: &emp}))
	assert.Empty(t, topicsFor(jwt.StreamClaims{UserID: "u3", Role: user.RoleUser}))
}

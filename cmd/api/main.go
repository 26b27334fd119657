package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/salon-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/salon-backend-go/internal/repository/postgresql"
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
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "salon-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	// Day, week and month boundaries follow the salon's zone, not the host's.
	loc := cfg.Location()
	time.Local = loc
	now := func() time.Time { return time.Now().In(loc) }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{TimeZone: cfg.App.TimeZone})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	// Redis is optional: without it reports are not cached and events stay on this instance.
	hub := sse.NewHub()
	var (
		publisher   sse.Publisher = hub
		reportCache cache.Cache
		jobLocker   cron.Locker
	)
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to redis: ", err)
		}
		defer client.Close()

		reportCache = cache.NewRedisCache(client)
		jobLocker = reportCache
		publisher = sse.NewRedisPublisher(client, hub)
		go sse.Relay(ctx, client, hub)
	} else {
		reportCache = cache.NewNoopCache()
	}

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	packageRepo := postgresql.NewPackageRepository(db)
	saleRepo := postgresql.NewSaleRepository(db)
	receiptRepo := postgresql.NewReceiptRepository(db)
	turnoverRepo := postgresql.NewTurnoverRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)
	chargeRepo := postgresql.NewAdminChargeRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	goalRepo := postgresql.NewGoalRepository(db)
	ledger := postgresql.NewCarryOverLedger(db)
	alertRepo := postgresql.NewAlertRepository(db)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}
	fileService := file.NewFileService(fileStorage)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	aggregator := analyticsService.NewTurnoverAggregator(turnoverRepo)

	authSvc := serviceAuth.NewAuthService(transactor, userRepo, employeeRepo, JWTService, JWTRepository)
	userSvc := userService.NewUserService(transactor, userRepo, employeeRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, fileService, aggregator, now)
	packageSvc := catalogService.NewPackageService(packageRepo)
	analyticsSvc := analyticsService.NewAnalyticsService(
		turnoverRepo,
		expenseRepo,
		employeeRepo,
		reportCache,
		cfg.Business.CacheTTL,
		cfg.Business.AnnualObjective,
		now,
	)
	goalSvc := goalService.NewGoalService(goalRepo, employeeRepo, aggregator, loc)
	carryOverSvc := goalService.NewCarryOverService(transactor, goalRepo, ledger, employeeRepo, alertRepo, publisher, now)
	saleSvc := revenueService.NewSaleService(saleRepo, packageRepo, employeeRepo, goalSvc, analyticsSvc, publisher, now)
	receiptSvc := revenueService.NewReceiptService(receiptRepo, employeeRepo, goalSvc, analyticsSvc, publisher, now)
	expenseSvc := expenseService.NewExpenseService(expenseRepo)
	chargeSvc := chargeService.NewAdminChargeService(chargeRepo, aggregator, cfg.Business.AnnualObjective, now)
	salarySvc := salaryService.NewSalaryService(salaryRepo, employeeRepo, aggregator, chargeSvc, now)
	alertSvc := alertService.NewAlertService(alertRepo, employeeRepo)
	notifier := alertService.NewNotifier(goalRepo, alertRepo, publisher, now)

	scheduler := cron.NewScheduler(loc, jobLocker)
	if err := cron.NewGoalJobs(carryOverSvc, notifier, cfg.Business.CarryOverCron, cfg.Business.DailyAlertsCron).RegisterJobs(scheduler); err != nil {
		log.Fatal("Failed to register goal jobs: ", err)
	}
	if err := cron.NewTokenJobs(JWTRepository, cfg.Business.TokenCleanupCron).RegisterJobs(scheduler); err != nil {
		log.Fatal("Failed to register token jobs: ", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	handlers := appHTTP.Handlers{
		Auth:      appHTTP.NewAuthHandler(JWTService, authSvc),
		User:      appHTTP.NewUserHandler(userSvc),
		Employee:  appHTTP.NewEmployeeHandler(employeeSvc),
		Package:   appHTTP.NewPackageHandler(packageSvc),
		Revenue:   appHTTP.NewRevenueHandler(saleSvc, receiptSvc),
		Finance:   appHTTP.NewFinanceHandler(expenseSvc, chargeSvc),
		Salary:    appHTTP.NewSalaryHandler(salarySvc),
		Goal:      appHTTP.NewGoalHandler(goalSvc, carryOverSvc, now),
		Alert:     appHTTP.NewAlertHandler(alertSvc, notifier),
		Analytics: appHTTP.NewAnalyticsHandler(analyticsSvc, now),
		Realtime:  appHTTP.NewRealtimeHandler(JWTService, authSvc, hub, cfg.App.CORSOrigins),
	}

	router, err := appHTTP.NewRouter(JWTService, handlers, appHTTP.RouterOptions{
		Logger:      logger,
		LogLevel:    cfg.LogLevel(),
		CORSOrigins: cfg.App.CORSOrigins,
		RateLimit:   cfg.RateLimit.Rate,
		UploadsPath: fileStorage.BasePath(),
	})
	if err != nil {
		log.Fatal("Failed to build router: ", err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "time_zone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

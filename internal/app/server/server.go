package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"timepay/internal/domain/employees"
	"timepay/internal/domain/payroll"
	"timepay/internal/domain/rates"
	"timepay/internal/domain/timeclock"
	"timepay/internal/platform/config"
	"timepay/internal/platform/db"
	"timepay/internal/platform/jobs"
	"timepay/internal/platform/locker"
	"timepay/internal/platform/metrics"
	"timepay/internal/transport/http/api"
	authhandler "timepay/internal/transport/http/handlers/auth"
	payrollhandler "timepay/internal/transport/http/handlers/payroll"
	timeclockhandler "timepay/internal/transport/http/handlers/timeclock"
	"timepay/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Jobs    *jobs.Service
	Metrics *metrics.Collector
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	loc := cfg.Location()
	rules := timeclock.DefaultRules()
	collector := metrics.New()

	employeeStore := employees.NewStore(pool)
	rateStore := rates.NewStore(pool)
	timeclockService := timeclock.NewService(timeclock.NewStore(pool), rateStore, rules, loc)
	payrollService := payroll.NewService(payroll.NewStore(pool), employeeStore, timeclock.NewStore(pool), rateStore, rules, loc)

	locks := locker.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
	jobService := jobs.New(pool, cfg, timeclockService, payrollService, locks, collector)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(employeeStore, cfg.JWTSecret)
		r.Post("/auth/login", authHandler.HandleLogin)

		tcHandler := timeclockhandler.NewHandler(timeclockService, loc)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/timeclock/in", tcHandler.HandleClockIn)
			r.Post("/timeclock/out", tcHandler.HandleClockOut)
			r.Get("/timeclock/records", tcHandler.HandleRecords)
			r.Get("/timeclock/summary", tcHandler.HandleSummary)
		})

		prHandler := payrollhandler.NewHandler(payrollService, rateStore, loc)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/payroll/records", prHandler.HandleListRecords)
			r.Get("/payroll/records/{id}", prHandler.HandleGetRecord)
			r.Get("/payroll/records/{id}/payslip.pdf", prHandler.HandlePayslip)
			r.Post("/payroll/advances", prHandler.HandleRequestAdvance)
			r.Get("/payroll/advances", prHandler.HandleListAdvances)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/payroll/rate", prHandler.HandleCurrentRate)
			r.Put("/payroll/rate", prHandler.HandleReplaceRate)
			r.Get("/payroll/rate/history", prHandler.HandleRateHistory)
			r.Get("/payroll/deductions", prHandler.HandleListDeductions)
			r.Post("/payroll/deductions", prHandler.HandleCreateDeduction)
			r.Delete("/payroll/deductions/{id}", prHandler.HandleDeactivateDeduction)
			r.Post("/payroll/advances/{id}/decision", prHandler.HandleDecideAdvance)
			r.Post("/payroll/run", prHandler.HandleRunPayroll)
			r.Get("/payroll/register.xlsx", prHandler.HandleRegister)
		})
	})

	return &App{
		Config:  cfg,
		DB:      pool,
		Router:  router,
		Jobs:    jobService,
		Metrics: collector,
	}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"timepay/internal/domain/auth"
	"timepay/internal/domain/employees"
	"timepay/internal/domain/payroll"
	"timepay/internal/domain/rates"
	"timepay/internal/platform/config"
)

// Seed provisions the initial admin account, the starting salary rate and
// the standard mandatory deductions. Each block is skipped when data is
// already present, so seeding is safe on every boot.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := seedAdmin(ctx, pool, cfg); err != nil {
		return err
	}
	if err := seedRate(ctx, pool, cfg); err != nil {
		return err
	}
	return seedDeductions(ctx, pool)
}

func seedAdmin(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(1) FROM employees`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := cfg.SeedAdminUsername
	if username == "" {
		username = "admin"
	}
	password := cfg.SeedAdminPassword
	if password == "" {
		password = "admin123"
		slog.Warn("seeding admin with default password, change it immediately")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	store := employees.NewStore(pool)
	_, err = store.Create(ctx, employees.Employee{
		Username:     username,
		FirstName:    "System",
		LastName:     "Administrator",
		Role:         employees.RoleAdmin,
		Active:       true,
		HireDate:     time.Now(),
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}
	slog.Info("seeded admin employee", "username", username)
	return nil
}

func seedRate(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(1) FROM salary_rates`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	store := rates.NewStore(pool)
	schedule := rates.NewSchedule(cfg.SeedDailyRate, time.Now())
	schedule.Reason = "initial rate"
	if _, err := store.Replace(ctx, schedule); err != nil {
		return err
	}
	slog.Info("seeded initial salary rate", "dailyRate", cfg.SeedDailyRate)
	return nil
}

func seedDeductions(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(1) FROM mandatory_deductions`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	store := payroll.NewStore(pool)
	defaults := []payroll.Deduction{
		{Name: "SSS", CalcType: payroll.CalcTypePercentage, PercentageRate: 0.045, ApplicableTo: payroll.ApplicableAll, Active: true},
		{Name: "PhilHealth", CalcType: payroll.CalcTypePercentage, PercentageRate: 0.025, ApplicableTo: payroll.ApplicableAll, Active: true},
		{Name: "Pag-IBIG", CalcType: payroll.CalcTypeFixed, FixedAmount: 100, ApplicableTo: payroll.ApplicableAll, Active: true},
	}
	for _, d := range defaults {
		if _, err := store.CreateDeduction(ctx, d); err != nil {
			return err
		}
	}
	slog.Info("seeded mandatory deductions", "count", len(defaults))
	return nil
}

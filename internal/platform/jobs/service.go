package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"timepay/internal/domain/payroll"
	"timepay/internal/domain/timeclock"
	"timepay/internal/platform/config"
	"timepay/internal/platform/locker"
	"timepay/internal/platform/metrics"
)

const (
	JobAutoClose     = "shift_auto_close"
	JobWeeklyPayroll = "weekly_payroll"
)

type Service struct {
	DB        *pgxpool.Pool
	Cfg       config.Config
	Timeclock *timeclock.Service
	Payroll   *payroll.Service
	Locks     *locker.Service
	Metrics   *metrics.Collector
	queue     chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db *pgxpool.Pool, cfg config.Config, tc *timeclock.Service, pr *payroll.Service, locks *locker.Service, collector *metrics.Collector) *Service {
	return &Service{
		DB:        db,
		Cfg:       cfg,
		Timeclock: tc,
		Payroll:   pr,
		Locks:     locks,
		Metrics:   collector,
		queue:     make(chan job, 64),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.AutoCloseInterval > 0 {
		go s.scheduleAutoClose(ctx, s.Cfg.AutoCloseInterval)
	}
	if s.Cfg.PayrollInterval > 0 {
		go s.schedulePayroll(ctx, s.Cfg.PayrollInterval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	release, err := s.Locks.Acquire(ctx, j.Type, 5*time.Minute)
	if errors.Is(err, locker.ErrNotObtained) {
		slog.Info("job already running elsewhere", "jobType", j.Type)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer release()

	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1,$2)
    RETURNING id
  `, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) scheduleAutoClose(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobAutoClose, func(ctx context.Context) (any, error) {
				closed, err := s.Timeclock.AutoCloseSweep(ctx, time.Now())
				s.Metrics.RecordAutoClosed(closed)
				return map[string]any{"closed": closed}, err
			})
		}
	}
}

// schedulePayroll ticks daily and only runs the weekly payroll when the
// business-timezone date is a Sunday.
func (s *Service) schedulePayroll(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now().In(s.Cfg.Location())
			if now.Weekday() != time.Sunday {
				continue
			}
			s.Enqueue(JobWeeklyPayroll, func(ctx context.Context) (any, error) {
				result, err := s.Payroll.RunPeriod(ctx, now)
				if err == nil {
					s.Metrics.RecordPayrollRun(result.Failed)
				}
				return result, err
			})
		}
	}
}

package timeclock

import (
	"context"
	"log/slog"
	"time"

	"timepay/internal/domain/rates"
)

// RateSource yields the salary rate in force at calculation time.
type RateSource interface {
	Current(ctx context.Context) (rates.Schedule, error)
}

type Service struct {
	store StoreAPI
	rates RateSource
	rules Rules
	loc   *time.Location
}

func NewService(store StoreAPI, rateSource RateSource, rules Rules, loc *time.Location) *Service {
	return &Service{store: store, rates: rateSource, rules: rules, loc: loc}
}

func (s *Service) Rules() Rules {
	return s.rules
}

// ClassifiedRecord pairs a stored shift with its derived classification.
type ClassifiedRecord struct {
	TimeRecord
	Classification DayClassification `json:"classification"`
}

// ClockIn opens a shift for the employee at now. The candidate is run
// through every fraud check first; a hard violation rejects the write and
// the full validation result is returned so the caller can surface it.
func (s *Service) ClockIn(ctx context.Context, employeeID string, now time.Time) (TimeRecord, ValidationResult, error) {
	now = now.In(s.loc)
	day := startOfDay(now)
	candidate := TimeRecord{
		EmployeeID:  employeeID,
		Date:        day,
		TimeIn:      &now,
		ClosureKind: ClosureManual,
	}

	history, err := s.store.HistorySince(ctx, employeeID, day.AddDate(0, 0, -s.rules.OvertimeWindowDays))
	if err != nil {
		return TimeRecord{}, ValidationResult{}, err
	}

	result := ValidateShift(candidate, history, s.rules)
	if !result.Passed {
		return candidate, result, ErrShiftRejected
	}
	s.logWarnings(employeeID, result)

	id, err := s.store.Insert(ctx, candidate)
	if err != nil {
		return TimeRecord{}, result, err
	}
	candidate.ID = id
	return candidate, result, nil
}

// ClockOut closes the employee's open shift at now and returns the
// resulting classification under the current rate.
func (s *Service) ClockOut(ctx context.Context, employeeID string, now time.Time) (ClassifiedRecord, ValidationResult, error) {
	now = now.In(s.loc)

	rec, err := s.store.OpenShift(ctx, employeeID)
	if err != nil {
		return ClassifiedRecord{}, ValidationResult{}, err
	}

	candidate := rec
	candidate.TimeOut = &now

	history, err := s.store.HistorySince(ctx, employeeID, startOfDay(now).AddDate(0, 0, -s.rules.OvertimeWindowDays))
	if err != nil {
		return ClassifiedRecord{}, ValidationResult{}, err
	}

	result := ValidateShift(candidate, history, s.rules)
	if !result.Passed {
		return ClassifiedRecord{TimeRecord: candidate}, result, ErrShiftRejected
	}
	s.logWarnings(employeeID, result)

	if err := s.store.CloseShift(ctx, rec.ID, now, ClosureManual, rec.Notes); err != nil {
		return ClassifiedRecord{}, result, err
	}

	rate, err := s.rates.Current(ctx)
	if err != nil {
		return ClassifiedRecord{}, result, err
	}
	return ClassifiedRecord{
		TimeRecord:     candidate,
		Classification: Classify(candidate, rate, s.rules),
	}, result, nil
}

// Records lists an employee's shifts in [from, to] with classifications
// derived under the current rate.
func (s *Service) Records(ctx context.Context, employeeID string, from, to time.Time) ([]ClassifiedRecord, error) {
	records, err := s.store.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	rate, err := s.rates.Current(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ClassifiedRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, ClassifiedRecord{
			TimeRecord:     rec,
			Classification: Classify(rec, rate, s.rules),
		})
	}
	return out, nil
}

// Summary aggregates the Monday to Sunday week ending at end for one
// employee. The end date must fall on a Sunday.
func (s *Service) Summary(ctx context.Context, employeeID string, end time.Time) (PeriodSummary, error) {
	end = startOfDay(end.In(s.loc))
	if end.Weekday() != time.Sunday {
		return PeriodSummary{}, ErrPeriodEndNotSunday
	}
	start := end.AddDate(0, 0, -6)

	records, err := s.store.ListByEmployee(ctx, employeeID, start, end)
	if err != nil {
		return PeriodSummary{}, err
	}
	rate, err := s.rates.Current(ctx)
	if err != nil {
		return PeriodSummary{}, err
	}
	return Aggregate(records, end, rate, s.rules), nil
}

// AutoCloseSweep closes every open shift past the ceiling. Callers must
// serialize sweeps; two concurrent sweeps could race to close the same
// record, though CloseShift's open-only guard keeps the write idempotent.
func (s *Service) AutoCloseSweep(ctx context.Context, now time.Time) (int, error) {
	now = now.In(s.loc)
	open, err := s.store.ListOpenShifts(ctx)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, rec := range open {
		next, ok := Reconcile(rec, now, s.rules)
		if !ok {
			continue
		}
		if err := s.store.CloseShift(ctx, rec.ID, *next.TimeOut, ClosureAuto, next.Notes); err != nil {
			return closed, err
		}
		slog.Info("auto-closed shift",
			slog.String("recordId", rec.ID),
			slog.String("employeeId", rec.EmployeeID),
			slog.Time("timeOut", *next.TimeOut))
		closed++
	}
	return closed, nil
}

func (s *Service) logWarnings(employeeID string, result ValidationResult) {
	for _, w := range result.Warnings {
		slog.Warn("shift validation warning",
			slog.String("employeeId", employeeID),
			slog.String("code", w.Code),
			slog.String("message", w.Message))
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
